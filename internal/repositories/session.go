package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/li812/face-bank/internal/logger"
	"github.com/li812/face-bank/internal/models"
	"github.com/redis/go-redis/v9"
)

// SessionRepository keeps sessions in Redis, one JSON value per key.
type SessionRepository struct {
	client *redis.Client
}

// NewSessionRepository creates a new repository instance
func NewSessionRepository(client *redis.Client) *SessionRepository {
	return &SessionRepository{client: client}
}

func sessionKey(id string) string {
	return fmt.Sprintf("session:%s", id)
}

// Save stores sess and sets its expiration to ttl. A negative ttl keeps the
// expiration already on the key.
func (r *SessionRepository) Save(ctx context.Context, sess *models.Session, ttl time.Duration) error {
	key := sessionKey(sess.ID)
	if ttl < 0 {
		ttl = redis.KeepTTL
	}

	data, err := json.Marshal(sess)
	if err != nil {
		return err
	}
	err = r.client.Set(ctx, key, data, ttl).Err()

	logger.Log.Infow(
		"key", key,
		"ttl", ttl,
		"result", "ok",
		"error", err,
	)

	return err
}

// Get returns nil, nil when the session is absent or expired.
func (r *SessionRepository) Get(ctx context.Context, id string) (*models.Session, error) {
	key := sessionKey(id)

	val, err := r.client.Get(ctx, key).Bytes()

	logger.Log.Infow(
		"key", key,
		"result", len(val),
		"error", err,
	)

	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var sess models.Session
	if err := json.Unmarshal(val, &sess); err != nil {
		return nil, fmt.Errorf("decode session %s: %w", id, err)
	}
	return &sess, nil
}

// Delete removes the session. Deleting an absent session is not an error.
func (r *SessionRepository) Delete(ctx context.Context, id string) error {
	key := sessionKey(id)
	err := r.client.Del(ctx, key).Err()

	logger.Log.Infow(
		"key", key,
		"result", "deleted",
		"error", err,
	)

	return err
}
