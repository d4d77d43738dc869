package process

import (
	"embed"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/LiixTT/AMS-IO-Agent/pkg/errors"
)

// EnvConfigDir names an environment variable holding an override directory
// for configuration documents.
const EnvConfigDir = "IORING_CONFIG_DIR"

//go:embed configs/*.toml
var embedded embed.FS

// Loader reads configuration documents once per node and serves the same
// *Config for the rest of the process lifetime.
type Loader struct {
	dir string

	mu      sync.Mutex
	entries map[Node]*loadEntry
}

type loadEntry struct {
	once sync.Once
	cfg  *Config
	err  error
}

// NewLoader creates a loader. When dir is empty the embedded documents are
// used; otherwise every document must exist in dir as "<node>.toml" (e.g.
// "t28.toml").
func NewLoader(dir string) *Loader {
	return &Loader{dir: dir, entries: make(map[Node]*loadEntry)}
}

// Dir returns the override directory, or "" for embedded documents.
func (l *Loader) Dir() string { return l.dir }

// Load returns the configuration for node, reading it on first use.
// A failed load is cached as well, so every caller sees the same error.
func (l *Loader) Load(node Node) (*Config, error) {
	if node != T28 && node != T180 {
		return nil, errors.New(errors.ErrCodeInvalidProcessNode, "unsupported process node %q", node)
	}

	l.mu.Lock()
	e, ok := l.entries[node]
	if !ok {
		e = &loadEntry{}
		l.entries[node] = e
	}
	l.mu.Unlock()

	e.once.Do(func() {
		e.cfg, e.err = l.read(node)
	})
	return e.cfg, e.err
}

func (l *Loader) read(node Node) (*Config, error) {
	name := strings.ToLower(string(node)) + ".toml"

	var (
		data   []byte
		source string
		err    error
	)
	if l.dir != "" {
		source = filepath.Join(l.dir, name)
		data, err = os.ReadFile(source)
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeConfigNotFound, err,
				"configuration for %s not found: %s", node, source)
		}
	} else {
		source = "configs/" + name
		data, err = embedded.ReadFile(source)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeConfigNotFound, err,
				"configuration for %s not found: %s", node, source)
		}
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeConfigMalformed, err, "read %s", source)
	}

	cfg, err := Parse(data, source)
	if err != nil {
		return nil, err
	}
	if cfg.Node != node {
		return nil, errors.New(errors.ErrCodeConfigMalformed,
			"%s: document declares node %q, expected %q", source, cfg.Node, node)
	}
	return cfg, nil
}

var (
	defaultLoader     *Loader
	defaultLoaderOnce sync.Once
)

// DefaultLoader returns the process-wide loader. Its override directory is
// taken from IORING_CONFIG_DIR the first time it is requested.
func DefaultLoader() *Loader {
	defaultLoaderOnce.Do(func() {
		defaultLoader = NewLoader(os.Getenv(EnvConfigDir))
	})
	return defaultLoader
}

// Load reads node's configuration through the default loader.
func Load(node Node) (*Config, error) {
	return DefaultLoader().Load(node)
}
