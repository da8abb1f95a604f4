package chathistory

import (
	"context"
	"encoding/json"
	"time"

	"github.com/valkey-io/valkey-go"

	"github.com/yanqian/weather-companion/internal/domain/chat"
)

// ValkeyStore persists conversation turns in a Valkey-compatible database,
// one list per session with a sliding TTL.
type ValkeyStore struct {
	client valkey.Client
	prefix string
	ttl    time.Duration
}

// NewValkeyStore constructs a new store backed by Valkey.
func NewValkeyStore(client valkey.Client, prefix string, ttl time.Duration) *ValkeyStore {
	if prefix == "" {
		prefix = "chat"
	}
	return &ValkeyStore{client: client, prefix: prefix, ttl: ttl}
}

func (s *ValkeyStore) Append(ctx context.Context, sessionID string, turns ...chat.Turn) error {
	if len(turns) == 0 {
		return nil
	}
	elements := make([]string, 0, len(turns))
	for _, turn := range turns {
		payload, err := json.Marshal(turn)
		if err != nil {
			return err
		}
		elements = append(elements, string(payload))
	}

	key := s.sessionKey(sessionID)
	if err := s.client.Do(ctx, s.client.B().Rpush().Key(key).Element(elements...).Build()).Error(); err != nil {
		return err
	}
	if s.ttl > 0 {
		return s.client.Do(ctx, s.client.B().Expire().Key(key).Seconds(int64(s.ttl.Seconds())).Build()).Error()
	}
	return nil
}

func (s *ValkeyStore) Recent(ctx context.Context, sessionID string, limit int) ([]chat.Turn, error) {
	if limit <= 0 {
		limit = 20
	}
	cmd := s.client.B().Lrange().Key(s.sessionKey(sessionID)).Start(int64(-limit)).Stop(-1).Build()
	payloads, err := s.client.Do(ctx, cmd).AsStrSlice()
	if err != nil {
		if valkey.IsValkeyNil(err) {
			return nil, nil
		}
		return nil, err
	}

	turns := make([]chat.Turn, 0, len(payloads))
	for _, payload := range payloads {
		var turn chat.Turn
		if err := json.Unmarshal([]byte(payload), &turn); err != nil {
			return nil, err
		}
		turns = append(turns, turn)
	}
	return turns, nil
}

func (s *ValkeyStore) sessionKey(sessionID string) string {
	return s.prefix + ":session:" + sessionID
}

var _ chat.Store = (*ValkeyStore)(nil)
