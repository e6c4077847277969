// Package credentials provides the bearer-token sources injected into the
// backend client.
package credentials

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/redis/go-redis/v9"

	"listing_portal/internal/domain"
)

type Static string

func (s Static) Token(context.Context) (string, error) { return strings.TrimSpace(string(s)), nil }

// File reads the token from a file on every call so a login flow can rotate
// it underneath a running client. A missing file means "no token".
type File struct{ Path string }

func (f File) Token(context.Context) (string, error) {
	if f.Path == "" {
		return "", nil
	}
	b, err := os.ReadFile(f.Path)
	if errors.Is(err, os.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("read token file: %w", err)
	}
	return strings.TrimSpace(string(b)), nil
}

// Save writes token with owner-only permissions.
func (f File) Save(token string) error {
	return os.WriteFile(f.Path, []byte(strings.TrimSpace(token)+"\n"), 0o600)
}

// Redis keeps the session token under a single key.
type Redis struct {
	c   *redis.Client
	key string
}

func NewRedis(addr, pass string, db int, key string) *Redis {
	return &Redis{c: redis.NewClient(&redis.Options{Addr: addr, Password: pass, DB: db}), key: key}
}

func (r *Redis) Token(ctx context.Context) (string, error) {
	v, err := r.c.Get(ctx, r.key).Result()
	if err == redis.Nil {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("redis token: %w", err)
	}
	return strings.TrimSpace(v), nil
}

func (r *Redis) Save(ctx context.Context, token string) error {
	return r.c.Set(ctx, r.key, token, 0).Err()
}

func (r *Redis) Close() error { return r.c.Close() }

// Chain asks each provider in order and returns the first non-empty token.
// An error from one provider is remembered but does not stop the chain.
type Chain []domain.CredentialProvider

func (c Chain) Token(ctx context.Context) (string, error) {
	var errs []error
	for _, p := range c {
		if p == nil {
			continue
		}
		tok, err := p.Token(ctx)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if tok != "" {
			return tok, nil
		}
	}
	if len(errs) > 0 {
		return "", errors.Join(errs...)
	}
	return "", nil
}
