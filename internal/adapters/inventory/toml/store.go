package toml

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/mtnworks/gt-client/internal/domain"
	"github.com/mtnworks/gt-client/internal/ports"
)

const (
	inventoryFileMode = 0o600
	inventoryDirMode  = 0o700
	tempFilePattern   = ".inventory-*.toml.tmp"
)

// Store is a file-backed world inventory: the locally-owned tradable stacks,
// one TOML table per stack. In the game the world itself is the inventory;
// here the file stands in for it so the trading flows have something real to
// settle against.
type Store struct {
	path string
	mu   *sync.RWMutex
}

var (
	lockRegistryMu sync.Mutex
	pathLockMap    = map[string]*sync.RWMutex{}
)

var _ ports.WorldInventory = (*Store)(nil)

func NewStore(path string) (*Store, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve inventory path: %w", err)
	}
	absPath = filepath.Clean(absPath)
	return &Store{path: absPath, mu: lockForPath(absPath)}, nil
}

type fileSchema struct {
	Items []itemSchema `toml:"items"`
}

type itemSchema struct {
	Kind     string `toml:"kind"`
	Quantity int    `toml:"quantity"`
	Price    int    `toml:"price"`
	Quality  string `toml:"quality,omitempty"`
}

func (s *Store) CountOf(ctx context.Context, kind string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	file, err := s.readSchema()
	if err != nil {
		return 0, err
	}

	total := 0
	for _, item := range file.Items {
		if item.Kind == kind {
			total += item.Quantity
		}
	}
	return total, nil
}

func (s *Store) Remove(ctx context.Context, kind string, quantity int) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if quantity <= 0 {
		return fmt.Errorf("remove quantity must be positive, got %d", quantity)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	file, err := s.readSchema()
	if err != nil {
		return err
	}

	remaining := quantity
	kept := make([]itemSchema, 0, len(file.Items))
	for _, item := range file.Items {
		if item.Kind != kind || remaining == 0 {
			kept = append(kept, item)
			continue
		}
		if item.Quantity <= remaining {
			remaining -= item.Quantity
			continue
		}
		item.Quantity -= remaining
		remaining = 0
		kept = append(kept, item)
	}
	if remaining > 0 {
		return fmt.Errorf("cannot remove %d of %s, only %d owned", quantity, kind, quantity-remaining)
	}

	file.Items = kept
	return s.writeSchema(file)
}

func (s *Store) Add(ctx context.Context, kind string, quantity int) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if quantity <= 0 {
		return fmt.Errorf("add quantity must be positive, got %d", quantity)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	file, err := s.readSchema()
	if err != nil {
		return err
	}

	merged := false
	for i := range file.Items {
		if file.Items[i].Kind == kind {
			file.Items[i].Quantity += quantity
			merged = true
			break
		}
	}
	if !merged {
		file.Items = append(file.Items, itemSchema{Kind: kind, Quantity: quantity})
	}

	return s.writeSchema(file)
}

func (s *Store) List(ctx context.Context) ([]domain.TradeRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	file, err := s.readSchema()
	if err != nil {
		return nil, err
	}

	records := make([]domain.TradeRecord, 0, len(file.Items))
	for _, item := range file.Items {
		records = append(records, domain.TradeRecord{
			ItemKind:  item.Kind,
			Quantity:  item.Quantity,
			UnitPrice: item.Price,
			Quality:   item.Quality,
		})
	}
	return records, nil
}

func (s *Store) readSchema() (fileSchema, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fileSchema{}, nil
		}
		return fileSchema{}, fmt.Errorf("read inventory file: %w", err)
	}

	var file fileSchema
	if err := toml.Unmarshal(data, &file); err != nil {
		return fileSchema{}, fmt.Errorf("decode inventory file: %w", err)
	}
	return file, nil
}

func (s *Store) writeSchema(file fileSchema) error {
	data, err := toml.Marshal(file)
	if err != nil {
		return fmt.Errorf("encode inventory file: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, inventoryDirMode); err != nil {
		return fmt.Errorf("create inventory directory: %w", err)
	}

	tempFile, err := os.CreateTemp(dir, tempFilePattern)
	if err != nil {
		return fmt.Errorf("create inventory temp file: %w", err)
	}
	tempPath := tempFile.Name()

	if _, err := tempFile.Write(data); err != nil {
		_ = tempFile.Close()
		_ = os.Remove(tempPath)
		return fmt.Errorf("write inventory file: %w", err)
	}
	if err := tempFile.Chmod(inventoryFileMode); err != nil {
		_ = tempFile.Close()
		_ = os.Remove(tempPath)
		return fmt.Errorf("set inventory file mode: %w", err)
	}
	if err := tempFile.Close(); err != nil {
		_ = os.Remove(tempPath)
		return fmt.Errorf("close inventory temp file: %w", err)
	}
	if err := os.Rename(tempPath, s.path); err != nil {
		_ = os.Remove(tempPath)
		return fmt.Errorf("replace inventory file: %w", err)
	}

	return nil
}

func lockForPath(path string) *sync.RWMutex {
	lockRegistryMu.Lock()
	defer lockRegistryMu.Unlock()

	if mu, ok := pathLockMap[path]; ok {
		return mu
	}
	mu := &sync.RWMutex{}
	pathLockMap[path] = mu
	return mu
}
