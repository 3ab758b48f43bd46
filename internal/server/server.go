package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/agenthands/egograph/internal/errs"
)

// ShutdownTimeout bounds how long in-flight requests may finish after the
// run context is cancelled.
const ShutdownTimeout = 5 * time.Second

// Server exposes the output directory over HTTP, file by file.
type Server struct {
	Dir  string
	Addr string
	Page string
}

func NewServer(dir, addr, page string) *Server {
	return &Server{Dir: dir, Addr: addr, Page: page}
}

// URL is the address the operator opens in a browser.
func (s *Server) URL() string {
	return fmt.Sprintf("http://%s/%s", s.Addr, s.Page)
}

func (s *Server) SetupRouter() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger())

	// StaticFS registers GET and HEAD; directory listings are disabled.
	r.StaticFS("/", gin.Dir(s.Dir, false))

	return r
}

// Listen binds Addr. It is split from Serve so a taken port is reported
// before anything is printed for the operator.
func (s *Server) Listen() (net.Listener, error) {
	ln, err := net.Listen("tcp", s.Addr)
	if err != nil {
		return nil, errs.Server("server.Listen", err)
	}
	return ln, nil
}

// Serve handles requests on ln until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	const op = "server.Serve"

	srv := &http.Server{
		Handler:           s.SetupRouter(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- srv.Serve(ln)
	}()
	log.Info().Str("addr", ln.Addr().String()).Str("dir", s.Dir).Msg("serving output directory")

	select {
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return errs.Server(op, err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return errs.Server(op, fmt.Errorf("failed to shut down: %w", err))
	}
	log.Info().Msg("server stopped")
	return nil
}

func (s *Server) Run(ctx context.Context) error {
	ln, err := s.Listen()
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Debug().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("latency", time.Since(start)).
			Msg("request")
	}
}
