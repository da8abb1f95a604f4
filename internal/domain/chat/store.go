package chat

import "context"

// Store persists per-session conversation turns.
type Store interface {
	Append(ctx context.Context, sessionID string, turns ...Turn) error
	Recent(ctx context.Context, sessionID string, limit int) ([]Turn, error)
}
