package redis

import (
	"context"
	"errors"
	"fmt"

	"github.com/dsmelov/calendar-backend/internal/config"
	"github.com/dsmelov/calendar-backend/internal/model"
	"github.com/gomodule/redigo/redis"
	"go.uber.org/zap"
)

const (
	sessionKeyPrefix = "session:"
	userSessionsKey  = "user_sessions:"
)

// RefreshTokenRepository keeps refresh-token sessions in redis. Tokens
// expire via TTL; a per-user index set allows invalidating all of a
// user's sessions at once.
type RefreshTokenRepository struct {
	pool   *redis.Pool
	logger *zap.SugaredLogger
}

func NewRefreshTokenRepository(pool *redis.Pool, logger *zap.SugaredLogger) *RefreshTokenRepository {
	return &RefreshTokenRepository{
		pool:   pool,
		logger: logger,
	}
}

func (r *RefreshTokenRepository) Add(ctx context.Context, session string, id int64) error {
	conn, err := r.pool.GetContext(ctx)
	if err != nil {
		return fmt.Errorf("get connection: %w", err)
	}
	defer r.close(conn)

	ttl := int(config.SessionTTl().Seconds())

	reply, err := redis.String(conn.Do("SET", sessionKeyPrefix+session, id, "NX", "EX", ttl))
	if errors.Is(err, redis.ErrNil) {
		return model.ErrAlreadyExists
	}
	if err != nil {
		return fmt.Errorf("SET session: %w", err)
	}
	if reply != "OK" {
		return model.ErrAlreadyExists
	}

	if _, err := conn.Do("SADD", userKey(id), session); err != nil {
		return fmt.Errorf("SADD user index: %w", err)
	}

	return nil
}

func (r *RefreshTokenRepository) Get(ctx context.Context, session string) (int64, error) {
	conn, err := r.pool.GetContext(ctx)
	if err != nil {
		return 0, fmt.Errorf("get connection: %w", err)
	}
	defer r.close(conn)

	id, err := redis.Int64(conn.Do("GET", sessionKeyPrefix+session))
	if errors.Is(err, redis.ErrNil) {
		return 0, model.ErrNoRecord
	}
	if err != nil {
		return 0, fmt.Errorf("GET session: %w", err)
	}

	return id, nil
}

// Refresh atomically replaces an old session token with a new one for
// the same user.
func (r *RefreshTokenRepository) Refresh(ctx context.Context, old, new string) error {
	id, err := r.Get(ctx, old)
	if err != nil {
		return err
	}

	if err := r.Add(ctx, new, id); err != nil {
		return err
	}

	return r.Delete(ctx, old)
}

func (r *RefreshTokenRepository) Delete(ctx context.Context, session string) error {
	conn, err := r.pool.GetContext(ctx)
	if err != nil {
		return fmt.Errorf("get connection: %w", err)
	}
	defer r.close(conn)

	id, err := redis.Int64(conn.Do("GET", sessionKeyPrefix+session))
	if errors.Is(err, redis.ErrNil) {
		return model.ErrNoRecord
	}
	if err != nil {
		return fmt.Errorf("GET session: %w", err)
	}

	if _, err := conn.Do("DEL", sessionKeyPrefix+session); err != nil {
		return fmt.Errorf("DEL session: %w", err)
	}
	if _, err := conn.Do("SREM", userKey(id), session); err != nil {
		return fmt.Errorf("SREM user index: %w", err)
	}

	return nil
}

// DeleteExpired is a no-op: sessions carry a TTL and redis evicts them
// itself. Only the per-user index may keep stale members, which Get
// never consults.
func (r *RefreshTokenRepository) DeleteExpired(ctx context.Context) error {
	return nil
}

func (r *RefreshTokenRepository) DeleteByUserID(ctx context.Context, id int64) error {
	conn, err := r.pool.GetContext(ctx)
	if err != nil {
		return fmt.Errorf("get connection: %w", err)
	}
	defer r.close(conn)

	sessions, err := redis.Strings(conn.Do("SMEMBERS", userKey(id)))
	if err != nil {
		return fmt.Errorf("SMEMBERS user index: %w", err)
	}

	for _, s := range sessions {
		if _, err := conn.Do("DEL", sessionKeyPrefix+s); err != nil {
			return fmt.Errorf("DEL session: %w", err)
		}
	}

	if _, err := conn.Do("DEL", userKey(id)); err != nil {
		return fmt.Errorf("DEL user index: %w", err)
	}

	return nil
}

func (r *RefreshTokenRepository) close(conn redis.Conn) {
	if err := conn.Close(); err != nil {
		r.logger.Errorw("Failed closing redis connection", "err", err)
	}
}

func userKey(id int64) string {
	return fmt.Sprintf("%s%d", userSessionsKey, id)
}
