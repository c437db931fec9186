// Package app implements the application layer for breakdown.
package app

import (
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"go.trai.ch/breakdown/internal/adapters/watcher" //nolint:depguard // Wired in app layer
	"go.trai.ch/breakdown/internal/core/domain"
	"go.trai.ch/breakdown/internal/core/ports"
	"go.trai.ch/breakdown/internal/engine/policy"
	"go.trai.ch/breakdown/internal/engine/repository"
	"go.trai.ch/breakdown/internal/engine/resolution"
	"go.trai.ch/breakdown/internal/engine/selection"
	"go.trai.ch/zerr"
)

// App represents the main application logic.
type App struct {
	configLoader ports.ConfigLoader
	logger       ports.Logger
	tracer       ports.Tracer
	newStore     ports.ContentStoreFactory
	newWatcher   ports.WatcherFactory

	clock          clockwork.Clock
	readInput      policy.InputReader
	lookupEnv      func(string) (string, bool)
	newID          func() string
	debounceWindow time.Duration

	mu         sync.Mutex
	workspaces map[string]*Workspace
}

// Option configures an App.
type Option func(*App)

// WithClock sets the clock handed to the repositories.
func WithClock(clock clockwork.Clock) Option {
	return func(a *App) {
		a.clock = clock
	}
}

// WithInputReader replaces the reader used for input_text_file.
func WithInputReader(read policy.InputReader) Option {
	return func(a *App) {
		a.readInput = read
	}
}

// WithEnvLookup replaces the process environment lookup.
func WithEnvLookup(lookup func(string) (string, bool)) Option {
	return func(a *App) {
		a.lookupEnv = lookup
	}
}

// WithRequestIDs replaces the request id generator.
func WithRequestIDs(next func() string) Option {
	return func(a *App) {
		a.newID = next
	}
}

// WithDebounceWindow sets how long Watch waits for changes to settle.
func WithDebounceWindow(d time.Duration) Option {
	return func(a *App) {
		a.debounceWindow = d
	}
}

// New creates a new App instance.
func New(
	loader ports.ConfigLoader,
	log ports.Logger,
	tracer ports.Tracer,
	newStore ports.ContentStoreFactory,
	newWatcher ports.WatcherFactory,
	opts ...Option,
) *App {
	a := &App{
		configLoader:   loader,
		logger:         log,
		tracer:         tracer,
		newStore:       newStore,
		newWatcher:     newWatcher,
		clock:          clockwork.NewRealClock(),
		readInput:      os.ReadFile,
		lookupEnv:      os.LookupEnv,
		newID:          uuid.NewString,
		debounceWindow: watcher.DefaultDebounceWindow,
		workspaces:     make(map[string]*Workspace),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Workspace is the engine wired for one configuration root.
type Workspace struct {
	Config    *domain.Config
	Templates *repository.Repository
	Schemas   *repository.Repository
	Policy    *policy.Policy
}

// Config returns the configuration discovered from cwd.
func (a *App) Config(cwd string) (*domain.Config, error) {
	ws, err := a.workspace(cwd)
	if err != nil {
		return nil, err
	}
	return ws.Config, nil
}

// workspace returns the engine for cwd, building it on first use.
// Repositories, and therefore their caches, live as long as the App.
func (a *App) workspace(cwd string) (*Workspace, error) {
	if cwd == "" {
		cwd = "."
	}
	key, err := filepath.Abs(cwd)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to resolve working directory")
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if ws, ok := a.workspaces[key]; ok {
		return ws, nil
	}

	cfg, err := a.configLoader.Load(key)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to load configuration")
	}

	ws := a.newWorkspace(cfg)
	a.workspaces[key] = ws
	return ws, nil
}

func (a *App) newWorkspace(cfg *domain.Config) *Workspace {
	repoOpts := []repository.Option{
		repository.WithClock(a.clock),
		repository.WithCache(cfg.Cache.Capacity, cfg.Cache.TTL),
		repository.WithManifestFreshness(cfg.Cache.ManifestFreshness),
		repository.WithSaveConcurrency(cfg.Cache.SaveConcurrency),
	}
	templates := repository.New(domain.KindTemplate, a.newStore(cfg.PromptRoot()), a.logger, a.tracer, repoOpts...)
	schemas := repository.New(domain.KindSchema, a.newStore(cfg.SchemaRoot()), a.logger, a.tracer, repoOpts...)

	chain := resolution.Defaults(cfg.Variables, resolution.WithLookup(a.lookupEnv))
	pol := policy.New(
		cfg.Policy,
		selection.Defaults(cfg.Fallback),
		templates,
		chain,
		a.logger,
		a.tracer,
		policy.WithTransform(policy.NewInputTransform(a.readInput, a.logger)),
	)

	return &Workspace{
		Config:    cfg,
		Templates: templates,
		Schemas:   schemas,
		Policy:    pol,
	}
}
