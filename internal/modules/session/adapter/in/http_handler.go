package in

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/hashicorp/go-hclog"

	sessiondto "airtime/internal/modules/session/dto"
	apperrors "airtime/internal/platform/errors"
)

// StatusBoard holds the most recently published snapshot for readers on other
// goroutines. Snapshots are immutable once published.
type StatusBoard struct {
	latest atomic.Pointer[sessiondto.Snapshot]
}

func NewStatusBoard() *StatusBoard {
	return &StatusBoard{}
}

func (b *StatusBoard) Publish(snapshot sessiondto.Snapshot) {
	b.latest.Store(&snapshot)
}

func (b *StatusBoard) Latest() (sessiondto.Snapshot, bool) {
	p := b.latest.Load()
	if p == nil {
		return sessiondto.Snapshot{}, false
	}
	return *p, true
}

func NewStatusRouter(board *StatusBoard) *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)
	r.HandleFunc("/status", func(w http.ResponseWriter, _ *http.Request) {
		snapshot, ok := board.Latest()
		if !ok {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": apperrors.ErrNoSnapshot.Error()})
			return
		}
		writeJSON(w, http.StatusOK, snapshot)
	}).Methods(http.MethodGet)
	r.HandleFunc("/notes", func(w http.ResponseWriter, _ *http.Request) {
		snapshot, ok := board.Latest()
		if !ok {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": apperrors.ErrNoSnapshot.Error()})
			return
		}
		notes := snapshot.Notes
		if notes == nil {
			notes = []sessiondto.NoteOutput{}
		}
		writeJSON(w, http.StatusOK, notes)
	}).Methods(http.MethodGet)
	return r
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// StatusServer serves the board read-only over HTTP.
type StatusServer struct {
	srv  *http.Server
	log  hclog.Logger
	addr string
}

func NewStatusServer(addr string, board *StatusBoard, log hclog.Logger) *StatusServer {
	if log == nil {
		log = hclog.NewNullLogger()
	}
	log = log.Named("status")
	access := log.StandardWriter(&hclog.StandardLoggerOptions{ForceLevel: hclog.Debug})
	return &StatusServer{
		srv: &http.Server{
			Addr:              addr,
			Handler:           handlers.CombinedLoggingHandler(access, NewStatusRouter(board)),
			ReadHeaderTimeout: 5 * time.Second,
		},
		log: log,
	}
}

// Start binds the listener synchronously so address errors surface to the
// caller, then serves in the background.
func (s *StatusServer) Start() error {
	ln, err := net.Listen("tcp", s.srv.Addr)
	if err != nil {
		return fmt.Errorf("listen status endpoint: %w", err)
	}
	s.addr = ln.Addr().String()
	s.log.Info("status endpoint listening", "addr", s.addr)
	go func() {
		if err := s.srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.log.Error("status endpoint stopped", "error", err)
		}
	}()
	return nil
}

// Addr is the bound address once Start has returned.
func (s *StatusServer) Addr() string { return s.addr }

func (s *StatusServer) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}
