// Package server serves the status page and its websocket.
package server

import (
	"context"
	"io/fs"
	"net"
	"net/http"
	"time"

	"github.com/pkg/errors"

	"github.com/soar/xgamepad/internal/hub"
	"github.com/soar/xgamepad/internal/logger"
)

type Server struct {
	hub         *hub.Hub
	broadcaster *hub.Broadcaster
	loop        hub.Poster
	controls    hub.Controls
	source      hub.SnapshotSource
	frontendFS  fs.FS
	addr        string
	httpServer  *http.Server
}

type Options struct {
	Hub         *hub.Hub
	Broadcaster *hub.Broadcaster
	// Loop runs client commands on the flight loop.
	Loop     hub.Poster
	Controls hub.Controls
	Source   hub.SnapshotSource
	Frontend fs.FS
	Addr     string
}

func New(opts Options) *Server {
	return &Server{
		hub:         opts.Hub,
		broadcaster: opts.Broadcaster,
		loop:        opts.Loop,
		controls:    opts.Controls,
		source:      opts.Source,
		frontendFS:  opts.Frontend,
		addr:        opts.Addr,
	}
}

// Handler builds the routes.
func (s *Server) Handler() (http.Handler, error) {
	files, err := loadAssets(s.frontendFS)
	if err != nil {
		return nil, errors.Wrap(err, "load status page")
	}
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", handleWebSocket(s.hub, s.broadcaster, s.loop, s.controls))
	mux.HandleFunc("GET /api/snapshot", handleSnapshot(s.source))
	mux.Handle("/", files)
	return mux, nil
}

// ListenAndServe serves until ctx is done, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	handler, err := s.Handler()
	if err != nil {
		return err
	}
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return errors.Wrapf(err, "listen %s", s.addr)
	}
	s.httpServer = &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.httpServer.Serve(ln)
	}()
	logger.Infof("status page listening on http://%s", ln.Addr())

	select {
	case err := <-errCh:
		return errors.Wrap(err, "http server")
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	logger.Infof("shutting down http server")
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return errors.Wrap(err, "http server shutdown")
	}
	return nil
}
