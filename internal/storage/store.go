package storage

import "context"

// AudioStore persists generated speech artifacts and returns a URL clients
// can fetch them from.
type AudioStore interface {
	Save(ctx context.Context, name string, data []byte) (string, error)
}
