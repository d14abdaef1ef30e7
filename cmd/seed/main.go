package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/petriapp/petri-backend/internal/config"
	"github.com/petriapp/petri-backend/internal/db"
	"github.com/petriapp/petri-backend/internal/model"
	"golang.org/x/crypto/bcrypt"
)

type seedUser struct {
	Username string
	Email    string
	Password string
}

type seedTree struct {
	OwnerUsername string
	Species       model.TreeSpecies
	Latitude      float64
	Longitude     float64
	LocationName  string
	Nickname      string
	Public        bool
}

func main() {
	if err := run(); err != nil {
		log.Fatalf("seed failed: %v", err)
	}
}

func run() (err error) {
	ctx := context.Background()
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	gdb, err := db.Connect(cfg)
	if err != nil {
		return fmt.Errorf("connect db: %w", err)
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		return fmt.Errorf("sql db: %w", err)
	}

	canSeed, err := shouldSeed(ctx, sqlDB)
	if err != nil {
		return err
	}
	if !canSeed {
		log.Printf("users already exist; skipping seed (set FORCE_SEED=true to override)")
		return nil
	}

	tx, err := sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	userIDs := map[string]uint64{}
	for _, u := range buildSeedUsers() {
		id, insertErr := insertUser(ctx, tx, u)
		if insertErr != nil {
			err = insertErr
			return err
		}
		userIDs[u.Username] = id
	}

	var trees int
	for _, t := range buildSeedTrees() {
		ownerID, ok := userIDs[t.OwnerUsername]
		if !ok {
			err = fmt.Errorf("unknown seed owner %q", t.OwnerUsername)
			return err
		}
		if err = insertTree(ctx, tx, ownerID, t); err != nil {
			return err
		}
		trees++
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}

	log.Printf("seeded %d users and %d trees", len(userIDs), trees)
	return nil
}

func shouldSeed(ctx context.Context, sqlDB *sql.DB) (bool, error) {
	if strings.EqualFold(os.Getenv("FORCE_SEED"), "true") {
		return true, nil
	}
	var count int64
	if err := sqlDB.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&count); err != nil {
		return false, fmt.Errorf("count users: %w", err)
	}
	return count == 0, nil
}

func buildSeedUsers() []seedUser {
	return []seedUser{
		{Username: "alice", Email: "alice@example.com", Password: "alicepassword"},
		{Username: "bob", Email: "bob@example.com", Password: "bobpassword1"},
	}
}

func buildSeedTrees() []seedTree {
	return []seedTree{
		{OwnerUsername: "alice", Species: model.SpeciesOak, Latitude: 35.6895, Longitude: 139.6917, LocationName: "Shinjuku Gyoen", Nickname: "Sage", Public: true},
		{OwnerUsername: "alice", Species: model.SpeciesMaple, Latitude: 43.0618, Longitude: 141.3545, LocationName: "Sapporo", Nickname: "Ruby", Public: false},
		{OwnerUsername: "bob", Species: model.SpeciesPine, Latitude: 34.6937, Longitude: 135.5023, LocationName: "Osaka Castle Park", Nickname: "Needles", Public: true},
	}
}

func insertUser(ctx context.Context, tx *sql.Tx, u seedUser) (uint64, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
	if err != nil {
		return 0, fmt.Errorf("hash password for %s: %w", u.Username, err)
	}
	res, err := tx.ExecContext(ctx,
		`INSERT INTO users (username, email, password_hash, created_at, updated_at) VALUES (?, ?, ?, NOW(), NOW())`,
		u.Username, u.Email, string(hash),
	)
	if err != nil {
		return 0, fmt.Errorf("insert user %s: %w", u.Username, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("user id for %s: %w", u.Username, err)
	}
	return uint64(id), nil
}

func insertTree(ctx context.Context, tx *sql.Tx, ownerID uint64, t seedTree) error {
	res, err := tx.ExecContext(ctx,
		`INSERT INTO trees (user_id, species, latitude, longitude, location_name, nickname, is_public, health_score, current_value, planted_at, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, 100, 100, NOW(), NOW(), NOW())`,
		ownerID, string(t.Species), t.Latitude, t.Longitude, t.LocationName, t.Nickname, t.Public,
	)
	if err != nil {
		return fmt.Errorf("insert tree %s: %w", t.Nickname, err)
	}
	treeID, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("tree id for %s: %w", t.Nickname, err)
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO health_history (tree_id, health_score, token_value, event_type, description, recorded_at)
		 VALUES (?, 100, 100, 'planting', 'Tree planted', NOW())`,
		treeID,
	); err != nil {
		return fmt.Errorf("insert planting entry for %s: %w", t.Nickname, err)
	}
	return nil
}
