// Package server wires the resolver, the preference store and the HTTP API.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/hrygo/agendabot/internal/profile"
	"github.com/hrygo/agendabot/plugin/export"
	"github.com/hrygo/agendabot/plugin/ptime"
	"github.com/hrygo/agendabot/server/middleware"
	apiv1 "github.com/hrygo/agendabot/server/router/api/v1"
	"github.com/hrygo/agendabot/server/timezone"
	"github.com/hrygo/agendabot/store"
)

const shutdownTimeout = 10 * time.Second

type Server struct {
	Profile  *profile.Profile
	Store    *store.Store
	Resolver *timezone.Resolver
	Events   *ptime.Service
	API      *apiv1.APIV1Service

	echoServer *echo.Echo
	logger     *slog.Logger
}

// NewServer builds the server and loads stored timezone preferences.
func NewServer(ctx context.Context, profile *profile.Profile, store *store.Store, logger *slog.Logger) (*Server, error) {
	if logger == nil {
		logger = slog.Default()
	}

	resolver := timezone.NewResolver(
		timezone.WithPreferenceStore(store),
		timezone.WithDefaultZone(profile.DefaultTimezone),
		timezone.WithResolverLogger(logger),
	)
	if _, err := resolver.Warm(ctx); err != nil {
		return nil, errors.Wrap(err, "failed to load timezone preferences")
	}

	events := ptime.NewService(resolver,
		ptime.WithDefaultTime(profile.DefaultEventHour, profile.DefaultEventMinute),
		ptime.WithLogger(logger),
	)
	api := apiv1.NewAPIV1Service(events, resolver,
		export.NewExporter(profile.EventDuration),
		middleware.NewRateLimiter(profile.RateLimitPerSecond, profile.RateLimitBurst),
		logger,
	)

	echoServer := echo.New()
	echoServer.Debug = profile.IsDev()
	echoServer.HideBanner = true
	echoServer.HidePort = true
	echoServer.Use(echomiddleware.Recover())
	echoServer.Use(echomiddleware.BodyLimit("64K"))

	s := &Server{
		Profile:    profile,
		Store:      store,
		Resolver:   resolver,
		Events:     events,
		API:        api,
		echoServer: echoServer,
		logger:     logger,
	}

	echoServer.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "Service ready.")
	})
	api.Register(echoServer)

	return s, nil
}

// Handler exposes the HTTP handler, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.echoServer
}

// Run serves HTTP until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	address := fmt.Sprintf("%s:%d", s.Profile.Addr, s.Profile.Port)
	listener, err := net.Listen("tcp", address)
	if err != nil {
		return errors.Wrapf(err, "failed to listen on %s", address)
	}
	s.echoServer.Listener = listener
	s.logger.Info("start HTTP server", slog.String("address", listener.Addr().String()), slog.String("version", s.Profile.Version))

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := s.echoServer.Start(address); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return errors.Wrap(err, "http server")
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		return s.Shutdown()
	})
	return g.Wait()
}

// Shutdown stops the HTTP server and closes the store.
func (s *Server) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	s.logger.Info("server shutting down")
	if err := s.echoServer.Shutdown(ctx); err != nil {
		s.logger.Error("failed to shutdown server", slog.String("error", err.Error()))
	}
	if err := s.Store.Close(); err != nil {
		return errors.Wrap(err, "failed to close store")
	}
	s.logger.Info("server stopped properly")
	return nil
}
