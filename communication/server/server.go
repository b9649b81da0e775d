package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"trapmouse/communication"
	"trapmouse/gamemaster"
)

// Server runs the line protocol over TCP, and over WebSocket when Router is
// mounted, against one GameMaster.
type Server struct {
	gm *gamemaster.GameMaster

	mu     sync.Mutex
	conns  map[io.Closer]struct{}
	closed bool
	wg     sync.WaitGroup
}

func NewServer(gm *gamemaster.GameMaster) *Server {
	return &Server{
		gm:    gm,
		conns: make(map[io.Closer]struct{}),
	}
}

// Serve accepts connections on ln until ctx is done. On shutdown it closes
// the listener and every open connection, then waits for the handlers.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	stop := make(chan struct{})
	defer close(stop)
	go func() {
		select {
		case <-ctx.Done():
			ln.Close()
			s.closeAll()
		case <-stop:
		}
	}()

	log.Info().Msgf("Listening on %s", ln.Addr())
	for {
		conn, err := ln.Accept()
		if err != nil {
			if ctx.Err() != nil {
				s.wg.Wait()
				return nil
			}
			return fmt.Errorf("accept: %w", err)
		}
		if !s.track(conn) {
			conn.Close()
			continue
		}
		s.wg.Add(1)
		go s.handle(conn)
	}
}

func (s *Server) handle(conn net.Conn) {
	logger := log.With().
		Str("conn", uuid.NewString()).
		Str("remote", conn.RemoteAddr().String()).
		Logger()
	defer func() {
		if r := recover(); r != nil {
			logger.Error().Msgf("Recovered from panic: %v", r)
		}
		s.untrack(conn)
		conn.Close()
		s.wg.Done()
		logger.Debug().Msg("Connection closed")
	}()
	logger.Info().Msg("Connection accepted")

	frames := communication.NewFrameReader(conn)
	for {
		line, err := frames.ReadFrame()
		if err != nil {
			logReadError(logger, err)
			return
		}

		reply := s.gm.HandleLine(line)
		if reply == gamemaster.NoReply {
			continue
		}
		if err := communication.WriteFrame(conn, string(reply)); err != nil {
			logger.Warn().Err(err).Msg("Write failed")
			return
		}
	}
}

func logReadError(logger zerolog.Logger, err error) {
	switch {
	case errors.Is(err, io.EOF), errors.Is(err, net.ErrClosed):
		logger.Debug().Msg("Peer went away")
	default:
		logger.Warn().Err(err).Msg("Read failed")
	}
}

func (s *Server) track(c io.Closer) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return false
	}
	s.conns[c] = struct{}{}
	return true
}

func (s *Server) untrack(c io.Closer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.conns, c)
}

func (s *Server) closeAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	for c := range s.conns {
		c.Close()
	}
}
