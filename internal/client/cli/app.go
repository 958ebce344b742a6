package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/worldcovers/internal/client/client"
	"github.com/dmitrijs2005/worldcovers/internal/client/config"
	"github.com/dmitrijs2005/worldcovers/internal/client/services"
	"github.com/dmitrijs2005/worldcovers/internal/client/session"
	"github.com/dmitrijs2005/worldcovers/internal/client/views"
	"github.com/dmitrijs2005/worldcovers/internal/logging"
	"github.com/dmitrijs2005/worldcovers/internal/refdata"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

type App struct {
	config            *config.Config
	log               logging.Logger
	sessions          *session.Store
	authService       services.AuthService
	catalogService    services.CatalogService
	submissionService services.SubmissionService
	accessService     services.AccessService
	search            *views.SearchView
	dashboard         *views.DashboardView
	downloader        *http.Client
	closers           []io.Closer

	modeMu sync.Mutex
	mode   Mode

	reader *bufio.Reader
	out    io.Writer
}

func NewApp(c *config.Config) (*App, error) {
	log := logging.NewJSON(os.Stderr, c.LogLevel)
	sessions := session.NewStore()

	api := client.NewHTTPClient(c.ServerURL, c.RequestTimeout, sessions)
	health, err := client.NewHealthChecker(c.HealthAddr)
	if err != nil {
		return nil, err
	}
	ref := refdata.NewClient(c.ReferenceURLs(), c.RequestTimeout, log)

	a := &App{
		config:            c,
		log:               log,
		sessions:          sessions,
		authService:       services.NewAuthService(api, sessions, health, log),
		catalogService:    services.NewCatalogService(api, ref, log),
		submissionService: services.NewSubmissionService(api, log),
		accessService:     services.NewAccessService(api),
		downloader:        &http.Client{Timeout: c.RequestTimeout},
		closers:           []io.Closer{health},
		reader:            bufio.NewReader(os.Stdin),
		out:               os.Stdout,
	}
	a.search = views.NewSearchView(a.catalogService.Entries, 0, log)
	a.dashboard = views.NewDashboardView(sessions, a.submissionService.List, log)
	return a, nil
}

func (a *App) Mode() Mode {
	a.modeMu.Lock()
	defer a.modeMu.Unlock()
	return a.mode
}

func (a *App) setMode(mode Mode) {
	a.modeMu.Lock()
	changed := a.mode != mode
	a.mode = mode
	a.modeMu.Unlock()

	if changed {
		a.printf("Switched to %s mode\n", mode)
	}
}

// Run starts the connectivity watcher and the REPL, and releases resources
// when the user exits.
func (a *App) Run(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	defer func() {
		cancel()
		a.dashboard.Unmount()
		for _, c := range a.closers {
			_ = c.Close()
		}
	}()

	a.println("Welcome to WorldCovers CLI (type 'help' for commands)")
	a.checkOnline(ctx)
	go a.StartOnlineStatusWatcher(ctx, a.config.OnlineCheckInterval)

	runREPL(ctx, a, a.getStatus, bufio.NewScanner(a.reader))
}

func (a *App) isLoggedIn() bool {
	return a.sessions.SignedIn()
}

// StartOnlineStatusWatcher pings the server every interval until ctx is
// done and updates the mode.
func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			a.checkOnline(ctx)
		case <-ctx.Done():
			return
		}
	}
}

func (a *App) checkOnline(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	if err := a.authService.Ping(ctx); err != nil {
		a.setMode(ModeOffline)
		return
	}
	a.setMode(ModeOnline)
}

func (a *App) getStatus() string {
	s := ""
	if cur := a.sessions.Get(); cur != nil {
		s = cur.Email + " "
	}
	if m := a.Mode(); m != "" {
		s += string(m)
	}
	s = strings.TrimSpace(s)
	if s != "" {
		s = fmt.Sprintf("(%s)", s)
	}
	return s
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}

func (a *App) println(args ...any) {
	fmt.Fprintln(a.out, args...)
}
