// Package server exposes snapshot storage, the dashboard summary and CSV
// exports over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dompet-dev/dompet/internal/report"
	"github.com/dompet-dev/dompet/internal/store"
)

// maxBodyBytes caps an uploaded snapshot.
const maxBodyBytes = 32 << 20

// Options configures a Server.
type Options struct {
	// JWTSecret enables bearer authentication on /api/data when set.
	JWTSecret string
	Logger    *slog.Logger
	// Now is the clock for summary defaults and export file names.
	Now func() time.Time
}

// Server serves one store.
type Server struct {
	store  store.Store
	secret []byte
	logger *slog.Logger
	now    func() time.Time
}

// New creates a Server over st.
func New(st store.Store, opts Options) *Server {
	s := &Server{
		store:  st,
		logger: opts.Logger,
		now:    opts.Now,
	}
	if opts.JWTSecret != "" {
		s.secret = []byte(opts.JWTSecret)
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

// Handler builds the gin router.
func (s *Server) Handler() http.Handler {
	r := gin.New()
	r.UseRawPath = true // keys may contain escaped slashes
	r.Use(gin.Recovery(), s.requestLogger())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	data := r.Group("/api/data/:key")
	if s.secret != nil {
		data.Use(s.jwtAuthMiddleware())
	}
	data.GET("", s.getSnapshot)
	data.POST("", s.saveSnapshot)
	data.GET("/summary", s.getSummary)
	data.GET("/export/:kind", s.exportCSV)
	return r
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr, "auth", s.secret != nil)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return fmt.Errorf("serving on %s: %w", addr, err)
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}
	if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		level := slog.LevelDebug
		if c.Writer.Status() >= http.StatusInternalServerError {
			level = slog.LevelError
		}
		s.logger.Log(c.Request.Context(), level, "request",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"duration", time.Since(start))
	}
}

func (s *Server) getSnapshot(c *gin.Context) {
	snap, err := s.store.Load(c.Request.Context(), c.Param("key"))
	if err != nil {
		s.fail(c, http.StatusInternalServerError, err)
		return
	}
	c.JSON(http.StatusOK, snap)
}

func (s *Server) saveSnapshot(c *gin.Context) {
	body, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, maxBodyBytes))
	if err != nil {
		s.fail(c, http.StatusBadRequest, fmt.Errorf("reading body: %w", err))
		return
	}
	snap, err := store.Decode(body)
	if err != nil {
		s.fail(c, http.StatusBadRequest, err)
		return
	}
	if err := s.store.Save(c.Request.Context(), c.Param("key"), snap); err != nil {
		s.fail(c, http.StatusInternalServerError, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Data saved successfully"})
}

// rangeFromQuery reads start and end, defaulting to the current month.
func (s *Server) rangeFromQuery(c *gin.Context) (report.DateRange, error) {
	start, end := c.Query("start"), c.Query("end")
	if start == "" && end == "" {
		return report.MonthToDate(s.now()), nil
	}
	return report.ParseRange(start, end)
}

func (s *Server) getSummary(c *gin.Context) {
	rng, err := s.rangeFromQuery(c)
	if err != nil {
		s.fail(c, http.StatusBadRequest, err)
		return
	}
	snap, err := s.store.Load(c.Request.Context(), c.Param("key"))
	if err != nil {
		s.fail(c, http.StatusInternalServerError, err)
		return
	}
	c.JSON(http.StatusOK, report.Summarize(snap, rng, s.now()))
}

func (s *Server) exportCSV(c *gin.Context) {
	kind, err := report.ParseKind(c.Param("kind"))
	if err != nil {
		s.fail(c, http.StatusNotFound, err)
		return
	}
	var rng report.DateRange
	if c.Query("start") != "" || c.Query("end") != "" {
		if rng, err = report.ParseRange(c.Query("start"), c.Query("end")); err != nil {
			s.fail(c, http.StatusBadRequest, err)
			return
		}
	}
	snap, err := s.store.Load(c.Request.Context(), c.Param("key"))
	if err != nil {
		s.fail(c, http.StatusInternalServerError, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, report.FileName(kind, s.now())))
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Status(http.StatusOK)
	if err := report.Export(c.Writer, kind, snap, rng); err != nil {
		s.logger.Error("export failed", "kind", kind, "err", err)
	}
}

func (s *Server) fail(c *gin.Context, status int, err error) {
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "key", c.Param("key"), "err", err)
	}
	c.AbortWithStatusJSON(status, gin.H{"error": err.Error()})
}
