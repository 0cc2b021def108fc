package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/mtnworks/gt-client/internal/domain"
	"github.com/mtnworks/gt-client/internal/ports"
)

const (
	cacheDirMode    = 0o700
	cacheFileMode   = 0o600
	tempFilePattern = ".token-*.json.tmp"
)

// Cache stores the bearer token in a single plain-JSON file. Every update
// rewrites the file wholesale through a temp file and rename, so a crash
// mid-write never leaves a partial record behind.
type Cache struct {
	path string
	mu   sync.Mutex
}

var _ ports.TokenCache = (*Cache)(nil)

func NewCache(path string) *Cache {
	return &Cache{path: filepath.Clean(path)}
}

type cacheSchema struct {
	Token     string `json:"token"`
	ExpiresAt int64  `json:"expires_at"`
}

func (c *Cache) Load(ctx context.Context) (domain.BearerToken, error) {
	if err := ctx.Err(); err != nil {
		return domain.BearerToken{}, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	data, err := os.ReadFile(c.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return domain.BearerToken{}, domain.ErrNoCachedToken
		}
		return domain.BearerToken{}, fmt.Errorf("read token cache: %w", err)
	}

	var schema cacheSchema
	if err := json.Unmarshal(data, &schema); err != nil {
		return domain.BearerToken{}, fmt.Errorf("decode token cache: %w", err)
	}
	if schema.Token == "" {
		return domain.BearerToken{}, domain.ErrNoCachedToken
	}

	return domain.BearerToken{
		Value:     schema.Token,
		ExpiresAt: time.Unix(schema.ExpiresAt, 0),
	}, nil
}

func (c *Cache) Store(ctx context.Context, token domain.BearerToken) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := json.Marshal(cacheSchema{
		Token:     token.Value,
		ExpiresAt: token.ExpiresAt.Unix(),
	})
	if err != nil {
		return fmt.Errorf("encode token cache: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	dir := filepath.Dir(c.path)
	if err := os.MkdirAll(dir, cacheDirMode); err != nil {
		return fmt.Errorf("create token cache directory: %w", err)
	}

	tempFile, err := os.CreateTemp(dir, tempFilePattern)
	if err != nil {
		return fmt.Errorf("create token cache temp file: %w", err)
	}
	tempPath := tempFile.Name()

	if _, err := tempFile.Write(data); err != nil {
		_ = tempFile.Close()
		_ = os.Remove(tempPath)
		return fmt.Errorf("write token cache: %w", err)
	}
	if err := tempFile.Chmod(cacheFileMode); err != nil {
		_ = tempFile.Close()
		_ = os.Remove(tempPath)
		return fmt.Errorf("set token cache mode: %w", err)
	}
	if err := tempFile.Close(); err != nil {
		_ = os.Remove(tempPath)
		return fmt.Errorf("close token cache temp file: %w", err)
	}
	if err := os.Rename(tempPath, c.path); err != nil {
		_ = os.Remove(tempPath)
		return fmt.Errorf("replace token cache: %w", err)
	}

	return nil
}

func (c *Cache) Clear(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	err := os.Remove(c.path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("delete token cache: %w", err)
	}
	return nil
}
