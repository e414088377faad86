package store

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"github.com/peterbourgon/diskv/v3"

	"tableflip.dev/grid/pkg/ctxlog"
)

// ErrNotFound is returned when a grid has no stored document of that kind.
var ErrNotFound = errors.New("store: not found")

const (
	snapshotFile   = "snapshot"
	attributesFile = "attributes"
)

// Attributes are the host-visible values that sit next to a snapshot: the
// row and column counts and the four statistics counters.
type Attributes struct {
	Rows    int `json:"rows"`
	Columns int `json:"columns"`
	Total   int `json:"total"`
	Blocked int `json:"blocked"`
	Merged  int `json:"merged"`
	Blank   int `json:"blank"`
}

// Persistence defines the persistence contract for grid documents.
type Persistence interface {
	// Grids lists stored grid names with the given prefix, sorted.
	Grids(ctx context.Context, prefix string) []string
	LoadSnapshot(name string) (string, error)
	SaveSnapshot(name, raw string) error
	LoadAttributes(name string) (Attributes, error)
	SaveAttributes(name string, attrs Attributes) error
	// Delete removes every document of the grid.
	Delete(name string) error
	Watch(ctx context.Context) (<-chan Event, error)
}

// Load creates a Persistence backed by diskv using the provided config.
func Load(cfg Config) (Persistence, error) {
	if cfg == nil {
		return nil, errors.New("store: config required")
	}
	basePath := cfg.BasePath()
	if basePath == "" {
		return nil, errors.New("store: base path unknown")
	}
	return &persistence{d: diskv.New(diskv.Options{
		BasePath:          basePath,
		AdvancedTransform: keyToPathTransform,
		InverseTransform:  pathToKeyTransform,
		// Other processes write the same files, so reads always go to disk.
		CacheSizeMax: 0,
	}), basePath: basePath}, nil
}

type persistence struct {
	d        *diskv.Diskv
	basePath string
}

func (p *persistence) Grids(ctx context.Context, prefix string) []string {
	seen := make(map[string]struct{})
	for key := range p.d.Keys(ctx.Done()) {
		pk := keyToPathTransform(key)
		if len(pk.Path) == 0 || pk.FileName != snapshotFile {
			continue
		}
		name, err := fromGrid(pk.Path[0])
		if err != nil {
			ctxlog.FromContext(ctx).Warn("store: unreadable grid key", "key", key, "err", err)
			continue
		}
		if prefix == "" || strings.HasPrefix(name, prefix) {
			seen[name] = struct{}{}
		}
	}
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (p *persistence) LoadSnapshot(name string) (string, error) {
	val, err := p.read(toKey(name, snapshotFile))
	if err != nil {
		return "", err
	}
	return string(val), nil
}

func (p *persistence) SaveSnapshot(name, raw string) error {
	if err := validName(name); err != nil {
		return err
	}
	return p.d.Write(toKey(name, snapshotFile), []byte(raw))
}

func (p *persistence) LoadAttributes(name string) (Attributes, error) {
	val, err := p.read(toKey(name, attributesFile))
	if err != nil {
		return Attributes{}, err
	}
	var attrs Attributes
	if err := json.Unmarshal(val, &attrs); err != nil {
		return Attributes{}, fmt.Errorf("store: decode attributes of %q: %w", name, err)
	}
	return attrs, nil
}

func (p *persistence) SaveAttributes(name string, attrs Attributes) error {
	if err := validName(name); err != nil {
		return err
	}
	data, err := json.Marshal(attrs)
	if err != nil {
		return err
	}
	return p.d.Write(toKey(name, attributesFile), data)
}

func (p *persistence) Delete(name string) error {
	var errs []error
	for _, file := range []string{snapshotFile, attributesFile} {
		key := toKey(name, file)
		if !p.d.Has(key) {
			continue
		}
		if err := p.d.Erase(key); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (p *persistence) read(key string) ([]byte, error) {
	val, err := p.d.Read(key)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, key)
		}
		return nil, err
	}
	return val, nil
}

func validName(name string) error {
	if strings.TrimSpace(name) == "" {
		return errors.New("store: grid name required")
	}
	return nil
}

// keyToPathTransform maps `grid-file` keys to a directory per grid.
func keyToPathTransform(s string) *diskv.PathKey {
	i := strings.LastIndex(s, "-")
	if i < 0 {
		return &diskv.PathKey{FileName: s}
	}
	return &diskv.PathKey{
		Path:     []string{s[:i]},
		FileName: s[i+1:],
	}
}

func pathToKeyTransform(pathKey *diskv.PathKey) string {
	if len(pathKey.Path) == 0 {
		return pathKey.FileName
	}
	return fmt.Sprintf("%s-%s", strings.Join(pathKey.Path, "-"), pathKey.FileName)
}

// toKey makes `grid-file`.
func toKey(name, file string) string {
	return fmt.Sprintf("%s-%s", toGrid(name), file)
}

func toGrid(s string) string {
	return base64.RawURLEncoding.EncodeToString([]byte(s))
}

func fromGrid(s string) (string, error) {
	name, err := base64.RawURLEncoding.DecodeString(s)
	if err != nil {
		return "", fmt.Errorf("fromGrid: %w", err)
	}
	return string(name), nil
}
