package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"trapmouse/gamemaster"
	"trapmouse/meta"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Router exposes health, a JSON view of the rooms and the command protocol
// over WebSocket, one command per text message.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"ok":true}`))
	})
	r.Get("/rooms", s.handleRooms)
	r.Get("/ws", s.handleWebSocket)
	return r
}

// ServeWeb serves Router on ln until ctx is done.
func (s *Server) ServeWeb(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		s.closeAll()
	}()

	log.Info().Msgf("HTTP listening on %s", ln.Addr())
	if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) handleRooms(w http.ResponseWriter, r *http.Request) {
	data, err := s.gm.Snapshot().Encode()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(data)
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error().Err(err).Msg("upgrade websocket")
		return
	}
	if !s.track(conn) {
		conn.Close()
		return
	}
	defer func() {
		s.untrack(conn)
		conn.Close()
	}()

	logger := log.With().Str("conn", uuid.NewString()).Str("transport", "ws").Logger()
	logger.Info().Msg("Connection accepted")
	conn.SetReadLimit(meta.MAX_FRAME_SIZE)

	for {
		kind, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				logger.Warn().Err(err).Msg("Read failed")
			}
			return
		}
		if kind != websocket.TextMessage {
			continue
		}
		line := strings.TrimSpace(string(data))
		if line == "" {
			continue
		}

		reply := s.gm.HandleLine(line)
		if reply == gamemaster.NoReply {
			continue
		}
		if err := conn.WriteMessage(websocket.TextMessage, []byte(reply)); err != nil {
			logger.Warn().Err(err).Msg("Write failed")
			return
		}
	}
}
