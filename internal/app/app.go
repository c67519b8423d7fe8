package app

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/vancomm/minesweeper-core/internal/config"
	"github.com/vancomm/minesweeper-core/internal/handlers"
	"github.com/vancomm/minesweeper-core/internal/middleware"
)

const shutdownTimeout = 15 * time.Second

type App struct {
	logger *logrus.Logger
	router *http.ServeMux
	store  handlers.SessionStore
	config *config.Config
}

func New(logger *logrus.Logger, cfg *config.Config, store handlers.SessionStore) *App {
	app := &App{
		logger: logger,
		router: http.NewServeMux(),
		store:  store,
		config: cfg,
	}

	app.loadRoutes()

	return app
}

func (a *App) Handler() http.Handler {
	return middleware.Wrap(
		a.router,
		middleware.Logging(a.logger),
		middleware.Cors(a.config.AllowedOrigins),
	)
}

// Start serves until ctx is done or the server fails, then shuts down
// gracefully.
func (a *App) Start(ctx context.Context) error {
	server := &http.Server{
		Addr:        a.config.Addr,
		Handler:     a.Handler(),
		ReadTimeout: time.Second * 15,
		IdleTimeout: time.Second * 60,
		BaseContext: func(net.Listener) context.Context {
			return ctx
		},
	}

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		a.logger.Infof("ready to serve @ %s", a.config.Addr)
		err := server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	})
	g.Go(func() error {
		<-gCtx.Done()
		sCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return server.Shutdown(sCtx)
	})

	return g.Wait()
}
