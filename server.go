package railsim

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
	log "github.com/sirupsen/logrus"
)

// Router builds the HTTP API.
func (a *App) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger)
	r.Use(cors.New(cors.Options{
		AllowedOrigins: a.cfg.Server.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "Last-Event-ID"},
		MaxAge:         86400,
	}).Handler)

	r.Get("/api/health", a.handleHealth)

	r.Route("/api/network", func(r chi.Router) {
		r.Get("/routes", a.handleRoutes)
		r.Get("/routes.geojson", a.handleRoutesGeoJSON)
		r.Get("/routes/{routeID}/coordinates", a.handleRouteCoordinates)
		r.Get("/junctions", a.handleJunctions)
	})

	r.Route("/api/trains", func(r chi.Router) {
		r.Get("/", a.handleTrains)
		r.Get("/{trainID}", a.handleTrain)
		r.Get("/{trainID}/journey", a.handleJourney)
	})

	r.Get("/api/congestion", a.handleCongestion)
	r.Get("/api/alerts", a.handleAlerts)
	r.Get("/api/routes/status", a.handleRouteStatus)
	r.Get("/api/gtfsrt/vehicle-positions.pb", a.handleVehiclePositions)

	r.Route("/api/simulation", func(r chi.Router) {
		r.Post("/pause", a.handlePause)
		r.Post("/resume", a.handleResume)
		r.Post("/step", a.handleStep)
	})

	r.Get("/api/stream", a.events.ServeHTTP)
	return r
}

// Serve listens on the configured port until ctx is done, then shuts the
// server down gracefully.
func (a *App) Serve(ctx context.Context) error {
	addr := fmt.Sprintf(":%d", a.cfg.Server.Port)
	server := &http.Server{
		Addr:              addr,
		Handler:           a.Router(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		// no WriteTimeout: SSE responses stay open
		IdleTimeout: 60 * time.Second,
	}
	errc := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
	}()
	log.WithField("addr", addr).Info("server listening")

	select {
	case err := <-errc:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	}

	log.Info("shutdown signal received")
	a.events.Close()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	log.Info("server shut down successfully")
	return nil
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		log.WithFields(log.Fields{
			"method":   r.Method,
			"path":     r.URL.Path,
			"status":   ww.Status(),
			"bytes":    ww.BytesWritten(),
			"duration": time.Since(start),
			"reqID":    middleware.GetReqID(r.Context()),
		}).Debug("request")
	})
}
