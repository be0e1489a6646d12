package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"

	"github.com/musegate-dev/musegate/internal/api"
	"github.com/musegate-dev/musegate/internal/authstate"
	"github.com/musegate-dev/musegate/internal/config"
	"github.com/musegate-dev/musegate/internal/guard"
	"github.com/musegate-dev/musegate/internal/logger"
	"github.com/musegate-dev/musegate/internal/session"
)

// App bundles the wired client stack every command runs against: config,
// session store, auth state, the guarded router and the API client. Commands
// navigate through the router before calling the backend so the same access
// rules apply no matter which command the user typed.
type App struct {
	Config   *config.Config
	Log      zerolog.Logger
	Sessions session.Store
	Auth     *authstate.Store
	Router   *guard.Router
	Client   *api.Client
	Out      io.Writer
}

// newApp loads config and wires the full stack. Called at the top of every
// RunE; tests build the App by hand instead.
func newApp() (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	log := logger.Init(cfg.Logging.Level, cfg.Logging.Format)

	var sessions session.Store
	switch cfg.Session.Backend {
	case "keyring":
		sessions = session.NewKeyringStore()
	default:
		fileStore, err := session.NewFileStore(cfg.Session.Path)
		if err != nil {
			return nil, fmt.Errorf("failed to open session store: %w", err)
		}
		sessions = fileStore
	}

	auth := authstate.New(sessions)
	auth.RestoreAuth()

	router := guard.NewRouter(sessions)

	// Transient failure messages go to stderr so piped stdout stays clean
	notifier := api.NotifierFunc(func(message string) {
		fmt.Fprintln(os.Stderr, message)
	})

	policy := api.NewPolicy(sessions, router, notifier, log)
	client := api.New(cfg.API.BaseURL, cfg.API.Timeout, sessions, policy, log)

	return &App{
		Config:   cfg,
		Log:      log,
		Sessions: sessions,
		Auth:     auth,
		Router:   router,
		Client:   client,
		Out:      os.Stdout,
	}, nil
}

// navigateTo moves the router to the page a command operates on. A redirect
// that settles on a login page means the guard denied access; it is turned
// into an actionable error instead of silently running the command anyway.
func (a *App) navigateTo(path string) error {
	decision, err := a.Router.Navigate(path)
	if err != nil {
		return err
	}

	if decision.Action == guard.ActionRedirect {
		switch decision.Target {
		case guard.LoginUserPath:
			return fmt.Errorf("not logged in. Run 'musegate login' first")
		case guard.LoginAdminPath:
			return fmt.Errorf("admin session required. Run 'musegate login --admin' first")
		}
	}

	return nil
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.Out, format, args...)
}

func (a *App) println(args ...any) {
	fmt.Fprintln(a.Out, args...)
}
