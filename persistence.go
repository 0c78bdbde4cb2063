package marquee

import (
	"context"
	"path/filepath"
	"strings"
	"time"

	"github.com/agentstation/marquee/internal/store/files"
	"github.com/agentstation/marquee/internal/store/memory"
	redisstore "github.com/agentstation/marquee/internal/store/redis"
	"github.com/agentstation/marquee/internal/store/sqlite"
	"github.com/agentstation/marquee/internal/utils"
	"github.com/agentstation/marquee/pkg/collections"
	"github.com/agentstation/marquee/pkg/constants"
	"github.com/agentstation/marquee/pkg/errors"
	"github.com/agentstation/marquee/pkg/movies"
	"github.com/agentstation/marquee/pkg/store"
)

// Store drivers.
const (
	DriverFiles  = "files"
	DriverSQLite = "sqlite"
	DriverRedis  = "redis"
	DriverMemory = "memory"
)

// StoreConfig selects and configures a durable store backend.
type StoreConfig struct {
	Driver string // files (default), sqlite, redis, memory
	Path   string // data directory for files and sqlite; ~ is expanded

	RedisAddr     string
	RedisPassword string
	RedisDB       int
	RedisPrefix   string
}

// Drivers lists the supported store drivers.
func Drivers() []string {
	return []string{DriverFiles, DriverSQLite, DriverRedis, DriverMemory}
}

// OpenStore opens the backend named by cfg.Driver. The caller closes it.
func OpenStore(ctx context.Context, cfg StoreConfig) (store.Store, error) {
	path := cfg.Path
	if path == "" {
		path = constants.DefaultDataPath
	}
	path = utils.ExpandPath(path)

	switch strings.ToLower(cfg.Driver) {
	case "", DriverFiles:
		s, err := files.Open(path)
		if err != nil {
			return nil, err
		}
		return s, nil
	case DriverSQLite:
		if filepath.Ext(path) == "" {
			path = filepath.Join(path, constants.DefaultSQLiteFile)
		}
		s, err := sqlite.Open(path)
		if err != nil {
			return nil, err
		}
		return s, nil
	case DriverRedis:
		s, err := redisstore.Open(ctx, redisstore.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
			Prefix:   cfg.RedisPrefix,
		})
		if err != nil {
			return nil, err
		}
		return s, nil
	case DriverMemory:
		return memory.New(), nil
	default:
		return nil, errors.NewConfigError("store", "unknown driver "+cfg.Driver+" (want one of "+strings.Join(Drivers(), ", ")+")", errors.ErrInvalidInput)
	}
}

// Snapshot is a point-in-time copy of the durable collections, without
// credentials.
type Snapshot struct {
	ExportedAt time.Time               `json:"exported_at" yaml:"exported_at"`
	Session    *movies.Session         `json:"session" yaml:"session"`
	Watchlist  []movies.WatchlistEntry `json:"watchlist" yaml:"watchlist"`
	Reviews    []movies.Review         `json:"reviews" yaml:"reviews"`
	Profile    collections.GenreStats  `json:"profile" yaml:"profile"`
}

// Export returns a Snapshot of c.
func Export(c Client) Snapshot {
	return Snapshot{
		ExportedAt: time.Now().UTC(),
		Session:    c.Session(),
		Watchlist:  c.Watchlist(),
		Reviews:    c.Reviews(),
		Profile:    c.Profile(),
	}
}
