// Package runtime provides application runtime context for Mitraa.
package runtime

import (
	"context"
	"path/filepath"
	"time"

	"github.com/manav03panchal/mitraa/internal/challenge"
	"github.com/manav03panchal/mitraa/internal/config"
	"github.com/manav03panchal/mitraa/internal/identity"
	"github.com/manav03panchal/mitraa/internal/logging"
	"github.com/manav03panchal/mitraa/internal/output"
	"github.com/manav03panchal/mitraa/internal/storage"
)

// Backend names reported in logs and by whoami.
const (
	BackendBadger = "badger"
	BackendMemory = "memory"
	BackendRedis  = "redis"
)

// Context holds the application runtime context.
type Context struct {
	Ctx       context.Context
	Config    *config.RuntimeConfig
	Store     storage.Store
	Backend   string
	Repo      *storage.ChallengeRepo
	Tracker   *challenge.Tracker
	Identity  identity.Identity
	Formatter *output.Formatter

	lock *storage.FileLock

	// Debug mode
	Debug bool
}

// Options configures the runtime context.
type Options struct {
	// Database overrides the configured Badger directory.
	Database  string
	InMemory  bool
	User      string
	Format    output.Format
	ColorMode output.ColorMode
	Debug     bool

	// Config defaults to config.Global.
	Config *config.RuntimeConfig
	// Now overrides the controller clock.
	Now func() time.Time
}

// DefaultOptions returns default runtime options.
func DefaultOptions() Options {
	return Options{
		Format:    output.FormatCLI,
		ColorMode: output.ColorAuto,
	}
}

// New creates a new runtime context: it opens the store, resolves the user
// and wires the challenge tracker.
func New(ctx context.Context, opts Options) (*Context, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Global
	}
	if ctx == nil {
		ctx = context.Background()
	}
	if logging.RunIDFromContext(ctx) == "" {
		ctx = logging.WithRunID(ctx, logging.GenerateRunID())
	}

	rc := &Context{
		Ctx:    ctx,
		Config: cfg,
		Debug:  opts.Debug,
	}
	if err := rc.openStore(opts); err != nil {
		return nil, err
	}

	rc.Repo = storage.NewChallengeRepo(rc.Store, cfg.Storage.Namespace)
	ctrl := challenge.NewController(challenge.Options{
		Now:           opts.Now,
		MaxTargetDays: cfg.Challenge.MaxTargetDays,
		MaxNoteLength: cfg.Challenge.MaxNoteLength,
	})
	rc.Tracker = challenge.NewTracker(rc.Repo, ctrl)

	id, err := identity.NewResolver(rc.Store, opts.User, cfg.Identity.User).Resolve(ctx)
	if err != nil {
		rc.Close()
		return nil, err
	}
	rc.Identity = id

	formatter := output.NewFormatter()
	if opts.Format != "" {
		formatter.Format = opts.Format
	}
	if opts.ColorMode != "" {
		formatter.ColorMode = opts.ColorMode
	}
	rc.Formatter = formatter

	logging.DebugContext(ctx, "runtime ready",
		logging.KeyBackend, rc.Backend,
		logging.KeyUser, id.UserID,
		"identity_source", string(id.Source))
	return rc, nil
}

// openStore selects Redis when an address is configured, otherwise Badger
// on disk (guarded by the data directory lock) or in memory.
func (c *Context) openStore(opts Options) error {
	cfg := c.Config
	if cfg.Redis.Addr != "" && !opts.InMemory && opts.Database == "" {
		store, err := storage.OpenRedis(c.Ctx, storage.RedisOptions{
			Addr:        cfg.Redis.Addr,
			DB:          cfg.Redis.DB,
			DialTimeout: cfg.Redis.DialTimeout,
		})
		if err != nil {
			return err
		}
		c.Store = store
		c.Backend = BackendRedis
		return nil
	}

	path := opts.Database
	if path == "" {
		path = cfg.Storage.Database
	}
	inMemory := opts.InMemory || path == config.MemoryDatabase
	if inMemory {
		db, err := storage.Open(storage.Options{InMemory: true})
		if err != nil {
			return err
		}
		c.Store = db
		c.Backend = BackendMemory
		return nil
	}

	if path == "" {
		path = storage.DefaultPath()
	}
	lock := storage.NewFileLock(filepath.Dir(path))
	if err := lock.AcquireTimeout(cfg.Storage.LockTimeout); err != nil {
		return storage.NewLockError(err)
	}

	db, err := storage.Open(storage.Options{Path: path})
	if err != nil {
		_ = lock.Release()
		return err
	}
	c.Store = db
	c.Backend = BackendBadger
	c.lock = lock
	if warning := storage.CheckDiskSpaceWarning(path); warning != "" {
		logging.WarnContext(c.Ctx, warning, "path", path)
	}
	return nil
}

// Close closes the store and releases the data directory lock.
func (c *Context) Close() error {
	var err error
	if c.Store != nil {
		err = c.Store.Close()
	}
	if c.lock != nil {
		if lerr := c.lock.Release(); err == nil {
			err = lerr
		}
	}
	return err
}

// UserID returns the resolved user id.
func (c *Context) UserID() string {
	return c.Identity.UserID
}

// CLIFormatter returns a CLI formatter.
func (c *Context) CLIFormatter() *output.CLIFormatter {
	return output.NewCLIFormatter(c.Formatter)
}

// JSONFormatter returns a JSON formatter.
func (c *Context) JSONFormatter() *output.JSONFormatter {
	return output.NewJSONFormatter(c.Formatter)
}

// IsJSON returns true if output format is JSON.
func (c *Context) IsJSON() bool {
	return c.Formatter.Format == output.FormatJSON
}

// IsCLI returns true if output format is CLI.
func (c *Context) IsCLI() bool {
	return c.Formatter.Format == output.FormatCLI
}

// LogDebug logs a debug message tagged with the run id.
func (c *Context) LogDebug(msg string, args ...any) {
	logging.DebugContext(c.Ctx, msg, args...)
}
