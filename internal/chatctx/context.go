package chatctx

import "context"

type ctxKey string

const (
	keyRID    ctxKey = "chat_rid"
	keyTreeID ctxKey = "chat_tree_id"
)

// WithRID stores a correlation id for chat pipeline logs.
func WithRID(ctx context.Context, rid string) context.Context {
	return context.WithValue(ctx, keyRID, rid)
}

// RID returns the correlation id if present.
func RID(ctx context.Context) string {
	v, _ := ctx.Value(keyRID).(string)
	return v
}

// WithTreeID stores the tree id for chat pipeline logs.
func WithTreeID(ctx context.Context, id uint64) context.Context {
	return context.WithValue(ctx, keyTreeID, id)
}

// TreeID returns the tree id if present.
func TreeID(ctx context.Context) uint64 {
	v, _ := ctx.Value(keyTreeID).(uint64)
	return v
}
