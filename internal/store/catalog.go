package store

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"signal_bot/pkg/logger"

	"gopkg.in/yaml.v2"
)

// SymbolLister — источник полного списка инструментов (шлюз терминала).
type SymbolLister interface {
	Symbols(ctx context.Context) ([]string, error)
}

// Catalog — кеш торгуемых инструментов. Пустой каталог = разрешено всё.
type Catalog struct {
	mu    sync.RWMutex
	path  string
	names map[string]struct{}
}

func NewCatalog(path string) *Catalog {
	return &Catalog{
		path:  path,
		names: make(map[string]struct{}),
	}
}

// Load читает снапшот с диска. Битый или отсутствующий файл — это не
// ошибка, просто остаёмся с пустым каталогом.
func (c *Catalog) Load() {
	data, err := os.ReadFile(c.path)
	if err != nil {
		return
	}

	var names []string
	if err := yaml.Unmarshal(data, &names); err != nil {
		logger.Warn("catalog: broken snapshot %s: %v", c.path, err)
		return
	}

	next := make(map[string]struct{}, len(names))
	for _, n := range names {
		next[n] = struct{}{}
	}

	c.mu.Lock()
	c.names = next
	c.mu.Unlock()
}

// Refresh забирает список инструментов у шлюза и атомарно заменяет кеш.
// Недоступный шлюз оставляет старый снапшот — это warning, не фатал.
func (c *Catalog) Refresh(ctx context.Context, lister SymbolLister) {
	names, err := lister.Symbols(ctx)
	if err != nil {
		logger.Warn("catalog: refresh failed, keeping previous snapshot: %v", err)
		return
	}

	next := make(map[string]struct{}, len(names))
	for _, n := range names {
		next[n] = struct{}{}
	}

	c.mu.Lock()
	c.names = next
	c.mu.Unlock()

	if err := c.save(); err != nil {
		logger.Warn("catalog: persist failed: %v", err)
	}
}

func (c *Catalog) Has(name string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.names[name]
	return ok
}

func (c *Catalog) Empty() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.names) == 0
}

func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.names)
}

func (c *Catalog) save() error {
	c.mu.RLock()
	names := make([]string, 0, len(c.names))
	for n := range c.names {
		names = append(names, n)
	}
	c.mu.RUnlock()
	sort.Strings(names)

	data, err := yaml.Marshal(names)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(c.path), 0o755); err != nil {
		return err
	}
	tmp := c.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, c.path)
}
