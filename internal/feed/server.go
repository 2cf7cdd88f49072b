package feed

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"
)

const shutdownTimeout = 5 * time.Second

// Server exposes the pick feed on /ws and the metrics on /metrics.
type Server struct {
	Addr    string
	Hub     *Hub
	Metrics *Metrics
}

func NewServer(addr string, hub *Hub, metrics *Metrics) *Server {
	return &Server{Addr: addr, Hub: hub, Metrics: metrics}
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.serveHome)
	mux.HandleFunc("/ws", s.Hub.ServeWS)
	mux.Handle("/metrics", s.Metrics.Handler())
	return mux
}

// Run serves until ctx is done.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go s.Hub.Run(ctx)

	errCh := make(chan error, 1)
	go func() {
		log.WithField("addr", s.Addr).Info("Starting pick feed")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("pick feed: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("pick feed shutdown: %w", err)
		}
		return nil
	}
}

func (s *Server) serveHome(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprintf(w, homePage, s.Hub.Clients())
}

const homePage = `<!DOCTYPE html>
<html lang="en">
<head><meta charset="UTF-8"><title>geomap3d pick feed</title></head>
<body>
<p>Clients connected: %d</p>
<p id="picked">-</p>
<script>
const ws = new WebSocket((location.protocol === "https:" ? "wss://" : "ws://") + location.host + "/ws");
ws.onmessage = (msg) => {
  const ev = JSON.parse(msg.data);
  document.getElementById("picked").textContent = ev.picked ? ev.name : "-";
};
</script>
</body>
</html>
`
