package pages

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	pkgerrors "github.com/angelmondragon/aurana-storefront/pkg/errors"
	"github.com/angelmondragon/aurana-storefront/pkg/redis"
	"github.com/google/uuid"
)

const (
	lockTTL       = 5 * time.Second
	lockRetryWait = 25 * time.Millisecond
)

type redisKV interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	SetNX(ctx context.Context, key string, value any, ttl time.Duration) (bool, error)
	ReleaseLock(ctx context.Context, key, token string) (bool, error)
	PageKey(pageID string) string
	PageLockKey(pageID string) string
}

// RedisStore keeps pages as JSON values with a TTL. Updates take a per-page
// SETNX lock so that concurrent clicks on one page are applied in turn.
type RedisStore struct {
	kv          redisKV
	ttl         time.Duration
	lockTimeout time.Duration
}

func NewRedisStore(kv redisKV, ttl, lockTimeout time.Duration) *RedisStore {
	if lockTimeout <= 0 {
		lockTimeout = 2 * time.Second
	}
	return &RedisStore{kv: kv, ttl: ttl, lockTimeout: lockTimeout}
}

func (s *RedisStore) Create(ctx context.Context, page Page) error {
	if page.ID == "" {
		return fmt.Errorf("page id is required")
	}
	return s.write(ctx, page)
}

func (s *RedisStore) Get(ctx context.Context, id string) (*Page, error) {
	raw, err := s.kv.Get(ctx, s.kv.PageKey(id))
	if err != nil {
		if errors.Is(err, redis.ErrNil) {
			return nil, ErrPageNotFound
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load page")
	}

	var page Page
	if err := json.Unmarshal([]byte(raw), &page); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "decode page")
	}
	if page.Quantities == nil {
		page.Quantities = map[string]int{}
	}
	return &page, nil
}

func (s *RedisStore) Update(ctx context.Context, id string, fn Mutator) (*Page, error) {
	release, err := s.lock(ctx, id)
	if err != nil {
		return nil, err
	}
	defer release()

	page, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	persist, err := fn(page)
	if err != nil {
		return nil, err
	}
	if persist {
		if err := s.write(ctx, *page); err != nil {
			return nil, err
		}
	}
	return page, nil
}

func (s *RedisStore) write(ctx context.Context, page Page) error {
	payload, err := json.Marshal(page)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode page")
	}
	if err := s.kv.Set(ctx, s.kv.PageKey(page.ID), string(payload), s.ttl); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "store page")
	}
	return nil
}

func (s *RedisStore) lock(ctx context.Context, id string) (func(), error) {
	key := s.kv.PageLockKey(id)
	token := uuid.NewString()
	deadline := time.Now().Add(s.lockTimeout)

	for {
		ok, err := s.kv.SetNX(ctx, key, token, lockTTL)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "acquire page lock")
		}
		if ok {
			return func() {
				// the lock expires on its own if the release fails.
				_, _ = s.kv.ReleaseLock(context.WithoutCancel(ctx), key, token)
			}, nil
		}
		if time.Now().After(deadline) {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "page is busy")
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(lockRetryWait):
		}
	}
}
