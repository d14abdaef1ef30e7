package config

import "github.com/caarlos0/env/v9"

type Config struct {
	Port                   string `env:"PORT" envDefault:"8080"`
	DBUser                 string `env:"DB_USER,required"`
	DBPassword             string `env:"DB_PASSWORD,required"`
	DBHost                 string `env:"DB_HOST,required"` // e.g. tcp(host:3306) or unix(/cloudsql/instance)
	DBName                 string `env:"DB_NAME,required"`
	DBPort                 string `env:"DB_PORT" envDefault:"3306"`
	InstanceConnectionName string `env:"INSTANCE_CONNECTION_NAME"`

	JWTSecret       string `env:"JWT_SECRET,required"`
	TokenTTLMinutes int    `env:"TOKEN_TTL_MINUTES" envDefault:"30"`

	GeminiAPIKey     string `env:"GEMINI_API_KEY"`
	GeminiModel      string `env:"GEMINI_MODEL" envDefault:"gemini-2.5-flash"`
	ElevenLabsAPIKey string `env:"ELEVENLABS_API_KEY"`

	CardServiceURL string `env:"CARD_SERVICE_URL"`

	// StorageBucket selects the GCS audio store. When empty, generated audio
	// is written under AudioDir and served from PublicBaseURL.
	StorageBucket string `env:"STORAGE_BUCKET"`
	AudioDir      string `env:"AUDIO_DIR" envDefault:"static/audio"`
	PublicBaseURL string `env:"PUBLIC_BASE_URL" envDefault:"http://localhost:8080"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
