package repository

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/otomarket/otomarket/internal/verification/domain"
	redis "github.com/redis/go-redis/v9"
)

const recordKeyPrefix = "verification:record:"

// Replaces any existing record and resets the attempt counter in one step.
const putScript = `
redis.call("DEL", KEYS[1])
redis.call("HSET", KEYS[1],
  "code", ARGV[1],
  "issued_at", ARGV[2],
  "expires_at", ARGV[3],
  "attempts", 0)
redis.call("PEXPIRE", KEYS[1], ARGV[4])
return 1
`

const incrementScript = `
if redis.call("EXISTS", KEYS[1]) == 0 then
  return -1
end
return redis.call("HINCRBY", KEYS[1], "attempts", 1)
`

// RedisStore is a networked RecordStore. Keys carry a TTL of twice the
// expiry window: a verify shortly after expiry still observes the record and
// reports it expired, while long-lingering records are reclaimed by redis.
type RedisStore struct {
	client    *redis.Client
	putScript *redis.Script
	incScript *redis.Script
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{
		client:    client,
		putScript: redis.NewScript(putScript),
		incScript: redis.NewScript(incrementScript),
	}
}

func recordKey(identifier string) string {
	return recordKeyPrefix + identifier
}

func (s *RedisStore) Put(ctx context.Context, rec domain.Record) error {
	ttl := 2 * rec.ExpiresAt.Sub(rec.IssuedAt)
	if ttl <= 0 {
		ttl = time.Minute
	}
	return s.putScript.Run(ctx, s.client,
		[]string{recordKey(rec.Identifier)},
		rec.Code,
		rec.IssuedAt.UnixNano(),
		rec.ExpiresAt.UnixNano(),
		int64(ttl/time.Millisecond),
	).Err()
}

func (s *RedisStore) Get(ctx context.Context, identifier string) (*domain.Record, error) {
	fields, err := s.client.HGetAll(ctx, recordKey(identifier)).Result()
	if err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return nil, domain.ErrRecordNotFound
	}

	issuedAt, err := parseUnixNano(fields["issued_at"])
	if err != nil {
		return nil, err
	}
	expiresAt, err := parseUnixNano(fields["expires_at"])
	if err != nil {
		return nil, err
	}
	attempts, err := strconv.Atoi(fields["attempts"])
	if err != nil {
		return nil, err
	}

	return &domain.Record{
		Identifier:   identifier,
		Code:         fields["code"],
		IssuedAt:     issuedAt,
		ExpiresAt:    expiresAt,
		AttemptsUsed: attempts,
	}, nil
}

func (s *RedisStore) Delete(ctx context.Context, identifier string) error {
	return s.client.Del(ctx, recordKey(identifier)).Err()
}

func (s *RedisStore) IncrementAttempts(ctx context.Context, identifier string) (int, error) {
	n, err := s.incScript.Run(ctx, s.client, []string{recordKey(identifier)}).Int()
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, domain.ErrRecordNotFound
	}
	return n, nil
}

func parseUnixNano(raw string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, errors.New("missing timestamp field")
	}
	ns, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return time.Time{}, err
	}
	return time.Unix(0, ns).UTC(), nil
}
