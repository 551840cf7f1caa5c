package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"podsum-backend/internal/models"
)

const sessionKeyPrefix = "session:"

// Optimistic append retries before giving up on a contended session.
const appendRetries = 5

// RedisStore keeps sessions in Redis as JSON blobs with a per-key TTL,
// surviving process restarts.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStore(redisURL string, ttl time.Duration) (*RedisStore, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client := redis.NewClient(opt)
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to ping Redis: %w", err)
	}

	return &RedisStore{client: client, ttl: ttl}, nil
}

func (s *RedisStore) Create(ctx context.Context, transcript, summary string, meta models.VideoMetadata) (*models.Session, error) {
	session := &models.Session{
		ID:                  uuid.New(),
		Transcript:          transcript,
		Summary:             summary,
		Metadata:            meta,
		ConversationHistory: []models.ChatMessage{},
		CreatedAt:           time.Now(),
	}

	data, err := json.Marshal(session)
	if err != nil {
		return nil, err
	}
	if err := s.client.Set(ctx, sessionKeyPrefix+session.ID.String(), data, s.ttl).Err(); err != nil {
		return nil, fmt.Errorf("failed to store session: %w", err)
	}

	return session, nil
}

func (s *RedisStore) Get(ctx context.Context, id string) (*models.Session, error) {
	data, err := s.client.Get(ctx, sessionKeyPrefix+id).Bytes()
	if err == redis.Nil {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	var session models.Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("failed to decode session: %w", err)
	}
	return &session, nil
}

// AppendTurn uses WATCH so two concurrent appends to the same session
// cannot lose each other's update.
func (s *RedisStore) AppendTurn(ctx context.Context, id string, userMsg, assistantMsg models.ChatMessage) error {
	key := sessionKeyPrefix + id

	txn := func(tx *redis.Tx) error {
		data, err := tx.Get(ctx, key).Bytes()
		if err == redis.Nil {
			return ErrSessionNotFound
		}
		if err != nil {
			return err
		}

		var session models.Session
		if err := json.Unmarshal(data, &session); err != nil {
			return fmt.Errorf("failed to decode session: %w", err)
		}
		session.ConversationHistory = append(session.ConversationHistory, userMsg, assistantMsg)

		updated, err := json.Marshal(&session)
		if err != nil {
			return err
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, updated, s.ttl)
			return nil
		})
		return err
	}

	for i := 0; i < appendRetries; i++ {
		err := s.client.Watch(ctx, txn, key)
		if err != redis.TxFailedErr {
			return err
		}
	}
	return fmt.Errorf("session %s too contended, append gave up", id)
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}
