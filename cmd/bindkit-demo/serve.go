package main

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/bindkit-dev/bindkit/pkg/debounce"
	"github.com/bindkit-dev/bindkit/pkg/fetch"
	"github.com/bindkit-dev/bindkit/pkg/form"
	"github.com/bindkit-dev/bindkit/pkg/reactive"
	"github.com/bindkit-dev/bindkit/pkg/throttle"
)

func serveCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the demo server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	return cmd
}

// snapshot is the form state pushed to live WebSocket subscribers.
type snapshot struct {
	Values     map[string]string `json:"values"`
	Errors     map[string]string `json:"errors"`
	Submitting bool              `json:"submitting"`
}

// demoServer holds the shared demo state.
type demoServer struct {
	logger *slog.Logger
	form   *form.Form

	// live is the debounced snapshot stream; bursts of form edits collapse
	// into one push.
	live *debounce.Value[snapshot]

	upgrader websocket.Upgrader
	metrics  *fetch.Metrics
}

func serve(addr string) error {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	s := &demoServer{
		logger: logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		metrics: fetch.NewMetrics(),
	}

	s.form = form.New(map[string]string{"username": "", "email": ""}).
		Validates("username", form.Required("Username is required")).
		Validates("email", form.All(form.Required("Email is invalid"), form.Email("Email is invalid"))).
		OnSubmit(func(values map[string]string, reset func()) error {
			logger.Info("signup accepted", "username", values["username"])
			reset()
			return nil
		}).
		WithLogger(logger)

	s.live = debounce.NewValue(s.currentSnapshot(), 50*time.Millisecond)

	// Feed the debounced stream from an effect observing the form; log state
	// changes at most once per second.
	logChange, _ := throttle.Func(time.Second, func() {
		logger.Info("form state changed")
	})
	eff := reactive.NewEffect(func() reactive.Cleanup {
		s.live.Set(snapshot{
			Values:     s.form.Values(),
			Errors:     s.form.Errors(),
			Submitting: s.form.IsSubmitting(),
		})
		logChange()
		return nil
	})
	defer eff.Dispose()

	r := chi.NewRouter()
	r.Use(chimw.Recoverer)

	r.Get("/", s.handleIndex)
	r.Post("/signup", s.handleSignup)
	r.Get("/state", s.handleState)
	r.Get("/live", s.handleLive)
	r.Get("/fetch", s.handleFetch)
	r.Handle("/metrics", promhttp.Handler())

	logger.Info("demo server listening", "addr", addr)
	return http.ListenAndServe(addr, r)
}

func (s *demoServer) currentSnapshot() snapshot {
	return snapshot{
		Values:     s.form.Values(),
		Errors:     s.form.Errors(),
		Submitting: s.form.IsSubmitting(),
	}
}

func (s *demoServer) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(indexHTML))
}

// handleSignup binds the posted fields through the form handlers and submits.
func (s *demoServer) handleSignup(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form data", http.StatusBadRequest)
		return
	}

	for field, values := range r.PostForm {
		if len(values) > 0 {
			s.form.HandleChange(field, values[0])
		}
	}

	err := s.form.HandleSubmit()
	w.Header().Set("Content-Type", "application/json")

	if err == form.ErrValidationFailed {
		w.WriteHeader(http.StatusUnprocessableEntity)
		json.NewEncoder(w).Encode(map[string]any{"errors": s.form.Errors()})
		return
	}
	if err != nil {
		s.logger.Error("signup failed", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]any{"error": err.Error()})
		return
	}

	json.NewEncoder(w).Encode(map[string]any{"ok": true})
}

func (s *demoServer) handleState(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(s.currentSnapshot())
}

// handleLive streams debounced form-state snapshots over a WebSocket.
func (s *demoServer) handleLive(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	updates := make(chan snapshot, 16)
	eff := reactive.NewEffect(func() reactive.Cleanup {
		snap := s.live.Get()
		select {
		case updates <- snap:
		default:
			// Slow subscriber: drop; the next update carries newer state
		}
		return nil
	})
	defer eff.Dispose()

	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case snap := <-updates:
			conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := conn.WriteJSON(snap); err != nil {
				if websocket.IsUnexpectedCloseError(err,
					websocket.CloseGoingAway,
					websocket.CloseNormalClosure) {
					s.logger.Error("websocket write failed", "error", err)
				}
				return
			}
		case <-done:
			return
		}
	}
}

// handleFetch proxies a GET through an instrumented fetcher, demonstrating
// the retry and metrics wiring. The target URL comes from the url query
// parameter.
func (s *demoServer) handleFetch(w http.ResponseWriter, r *http.Request) {
	target := r.URL.Query().Get("url")
	if target == "" {
		http.Error(w, "missing url parameter", http.StatusBadRequest)
		return
	}

	result := make(chan error, 1)
	f := fetch.NewWithRetry(target,
		fetch.WithMetrics(s.metrics),
		fetch.WithTracing("bindkit-demo"),
		fetch.OnSuccess(func([]byte) { result <- nil }),
		fetch.OnError(func(err error) { result <- err }),
	)
	defer f.Stop()

	select {
	case err := <-result:
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadGateway)
			return
		}
		w.Write(f.Data())
	case <-time.After(30 * time.Second):
		http.Error(w, "fetch timed out", http.StatusGatewayTimeout)
	case <-r.Context().Done():
	}
}
