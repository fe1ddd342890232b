package app

import (
	"io"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dshills/clickaway/internal/clickaway"
	"github.com/dshills/clickaway/internal/config"
	"github.com/dshills/clickaway/internal/input/mouse"
	"github.com/dshills/clickaway/internal/logging"
	plua "github.com/dshills/clickaway/internal/plugin/lua"
	"github.com/dshills/clickaway/internal/renderer/backend"
	"github.com/dshills/clickaway/internal/renderer/statusline"
	"github.com/dshills/clickaway/internal/ui"
)

// Application owns the terminal, the event loop and everything that reacts
// to clicks.
//
// All widget, registry and script work happens on the goroutine running
// Run. Other goroutines may only call Shutdown.
type Application struct {
	mu sync.Mutex // guards listeners

	config  *config.Config
	log     *logging.Logger
	logFile io.Closer

	backend backend.Backend
	clicker *mouse.Clicker

	queue     *clickaway.Queue
	registry  *clickaway.Registry
	listeners []clickaway.ClickListener

	theme    ui.Theme
	demo     *demo
	popovers map[int]*ui.Popover // opened by scripts
	nextPop  int
	status   *statusline.StatusLine

	lua    *plua.State
	module *plua.Module

	metrics *Metrics

	running  atomic.Bool
	quit     bool
	done     chan struct{}
	stopOnce sync.Once

	opts Options
}

// Options configures application startup.
type Options struct {
	// ConfigPath is the TOML config file. Empty uses defaults and env only.
	ConfigPath string

	// Config, when set, is used as-is instead of loading ConfigPath.
	Config *config.Config

	// LogLevel overrides the configured log level.
	LogLevel string

	// LogFile overrides the configured log file.
	LogFile string

	// Scripts are run after the configured scripts.
	Scripts []string

	// LogOutput, when set, receives logs instead of a file.
	LogOutput io.Writer
}

// New creates an application. Script failures are logged and shown in the
// status line; they do not fail startup.
func New(opts Options) (*Application, error) {
	app := &Application{
		opts:     opts,
		done:     make(chan struct{}),
		popovers: make(map[int]*ui.Popover),
		metrics:  NewMetrics(),
	}

	if err := app.bootstrap(); err != nil {
		app.closeLog()
		return nil, err
	}
	return app, nil
}

// bootstrap initializes all components in dependency order.
func (app *Application) bootstrap() error {
	cfg := app.opts.Config
	if cfg == nil {
		loaded, err := config.Load(app.opts.ConfigPath)
		if err != nil {
			return &InitError{Component: "config", Err: err}
		}
		cfg = loaded
	}
	if app.opts.LogLevel != "" {
		cfg.Log.Level = app.opts.LogLevel
	}
	if app.opts.LogFile != "" {
		cfg.Log.File = app.opts.LogFile
	}
	cfg.Scripts.Paths = append(cfg.Scripts.Paths, app.opts.Scripts...)
	if err := cfg.Validate(); err != nil {
		return &InitError{Component: "config", Err: err}
	}
	app.config = cfg

	if err := app.openLog(); err != nil {
		return &InitError{Component: "logging", Err: err}
	}

	app.clicker = mouse.NewClicker(mouse.Config{
		DoubleClickTime:     time.Duration(cfg.Mouse.DoubleClickTime),
		DoubleClickDistance: cfg.Mouse.DoubleClickDistance,
		DragThreshold:       cfg.Mouse.DragThreshold,
	})

	app.queue = clickaway.NewQueue()
	app.registry = clickaway.New(app, app.queue, clickaway.WithLogger(app.log))

	app.theme = ui.ThemeFromConfig(cfg.Theme)
	app.status = statusline.New("clickaway", app.theme.Status)
	app.demo = newDemo(app.registry, &app.theme, app.requestQuit)

	app.lua = plua.NewState(plua.WithLogger(app.log))
	app.module = plua.NewModule(app.lua, app, app.log)
	app.module.Install()

	if err := app.loadScripts(); err != nil {
		app.log.Error("scripts: %v", err)
		app.status.SetMessage(err.Error(), statusline.MessageError)
	}

	app.log.Info("started, %d script(s)", len(cfg.Scripts.Paths))
	return nil
}

// openLog directs logs to the configured file, or discards them. The
// terminal belongs to the UI.
func (app *Application) openLog() error {
	out := app.opts.LogOutput
	if out == nil {
		out = io.Discard
		if app.config.Log.File != "" {
			f, err := os.OpenFile(app.config.Log.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
			if err != nil {
				return err
			}
			app.logFile = f
			out = f
		}
	}
	app.log = logging.New(logging.Config{
		Level:  logging.ParseLevel(app.config.Log.Level),
		Output: out,
		Prefix: "clickaway",
	})
	return nil
}

func (app *Application) closeLog() {
	if app.logFile != nil {
		app.logFile.Close()
		app.logFile = nil
	}
}

// loadScripts runs every configured script, collecting failures.
func (app *Application) loadScripts() error {
	var errs ErrorList
	for _, path := range app.config.Scripts.Paths {
		if err := app.turn(func() error { return app.lua.DoFile(path) }); err != nil {
			errs.Add(err)
			continue
		}
		app.log.Info("loaded script %s", path)
	}
	return errs.AsError()
}

// SetBackend sets the terminal backend. It must be called before Run.
func (app *Application) SetBackend(b backend.Backend) error {
	if app.running.Load() {
		return ErrAlreadyRunning
	}
	app.backend = b
	return nil
}

// AddClickListener implements clickaway.Surface.
func (app *Application) AddClickListener(l clickaway.ClickListener) {
	app.mu.Lock()
	defer app.mu.Unlock()
	app.listeners = append(app.listeners, l)
}

// RemoveClickListener implements clickaway.Surface.
func (app *Application) RemoveClickListener(l clickaway.ClickListener) {
	app.mu.Lock()
	defer app.mu.Unlock()
	for i, x := range app.listeners {
		if x == l {
			app.listeners = append(app.listeners[:i], app.listeners[i+1:]...)
			return
		}
	}
}

func (app *Application) clickListeners() []clickaway.ClickListener {
	app.mu.Lock()
	defer app.mu.Unlock()
	out := make([]clickaway.ClickListener, len(app.listeners))
	copy(out, app.listeners)
	return out
}

// Shutdown asks a running event loop to stop. Safe from any goroutine.
func (app *Application) Shutdown() {
	app.stopOnce.Do(func() {
		close(app.done)
	})
}

func (app *Application) requestQuit() {
	app.quit = true
}

// Close releases scripts, watchers and the log file. Call it after Run
// returns.
func (app *Application) Close() error {
	app.Shutdown()

	var errs ErrorList
	errs.Add(app.turn(func() error {
		if app.module != nil {
			app.module.Close()
		}
		for _, p := range app.popovers {
			p.Close()
		}
		if app.demo != nil {
			app.demo.closeAll()
		}
		return nil
	}))
	if app.registry != nil {
		app.registry.Close()
	}

	if app.lua != nil {
		errs.Add(app.lua.Close())
	}

	snap := app.metrics.Snapshot()
	app.log.Info("stopped after %s: %d turns, %d clicks (%.0f%% consumed), %d panics",
		snap.Uptime.Round(time.Millisecond), snap.TurnCount, snap.ClickCount, snap.ConsumedRate(), snap.PanicCount)

	if app.logFile != nil {
		errs.Add(app.logFile.Close())
		app.logFile = nil
	}
	return errs.AsError()
}

// IsRunning reports whether Run is executing.
func (app *Application) IsRunning() bool {
	return app.running.Load()
}

// Config returns the effective configuration.
func (app *Application) Config() *config.Config {
	return app.config
}

// Registry returns the outside-click registry.
func (app *Application) Registry() *clickaway.Registry {
	return app.registry
}

// Metrics returns the application's metrics.
func (app *Application) Metrics() *Metrics {
	return app.metrics
}

// Logger returns the application logger.
func (app *Application) Logger() *logging.Logger {
	return app.log
}
