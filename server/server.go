package server

import (
	"context"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/mager/bloom/config"
	"github.com/mager/bloom/middleware"
)

// Route is an http.Handler that knows the mux pattern
// under which it will be registered.
type Route interface {
	http.Handler

	// Pattern reports the path at which this is registered.
	Pattern() string
}

// Public is implemented by routes that skip bearer auth.
type Public interface {
	Public() bool
}

// AsRoute annotates the given constructor to state that
// it provides a route to the "routes" group.
func AsRoute(f any) any {
	return fx.Annotate(
		f,
		fx.As(new(Route)),
		fx.ResultTags(`group:"routes"`),
	)
}

// NewHTTPServer builds the HTTP server and ties it to the fx lifecycle.
func NewHTTPServer(
	lc fx.Lifecycle,
	cfg config.Config,
	logger *zap.SugaredLogger,
	routes []Route,
) *http.Server {
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           NewHandler(cfg, logger, routes),
		ReadHeaderTimeout: 10 * time.Second,
	}
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			ln, err := net.Listen("tcp", srv.Addr)
			if err != nil {
				return err
			}
			logger.Infow("Starting HTTP server", "addr", srv.Addr)
			go srv.Serve(ln)
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return srv.Shutdown(ctx)
		},
	})

	return srv
}

// NewHandler registers routes on a gorilla router behind request ids,
// bearer auth and CORS.
func NewHandler(cfg config.Config, logger *zap.SugaredLogger, routes []Route) http.Handler {
	router := mux.NewRouter().StrictSlash(true)
	router.Use(middleware.RequestID(logger))

	auth := middleware.JWTAuth(cfg.JWTSecret, logger)
	for _, route := range routes {
		var h http.Handler = route
		if p, ok := route.(Public); !ok || !p.Public() {
			h = auth(h)
		}
		router.Handle(route.Pattern(), h).Methods(http.MethodGet)
		logger.Infow("Registered route", "pattern", route.Pattern())
	}

	return middleware.CORS(cfg.AllowedOrigins).Handler(router)
}
