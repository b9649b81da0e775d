package client

import (
	"context"
	"fmt"
	"net"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"

	"trapmouse/communication"
	"trapmouse/game"
)

// Client speaks the line protocol over one TCP connection. Calls are
// serialized so a get_update reply is read by the call that asked for it.
type Client struct {
	mu     sync.Mutex
	conn   net.Conn
	frames *communication.FrameReader
}

func Dial(ctx context.Context, addr string) (*Client, error) {
	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", addr, err)
	}
	return &Client{
		conn:   conn,
		frames: communication.NewFrameReader(conn),
	}, nil
}

// Execute sends cmd. Commands other than get_update get no answer on success.
func (c *Client) Execute(cmd communication.Command) error {
	return c.Send(communication.Format(cmd))
}

// Send writes one raw protocol line.
func (c *Client) Send(line string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return communication.WriteFrame(c.conn, line)
}

// GetUpdate asks for a snapshot. Echoes and ERR lines left over from
// earlier commands are logged and skipped.
func (c *Client) GetUpdate() (game.Snapshot, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := communication.WriteFrame(c.conn, communication.GetUpdate{}.Name()); err != nil {
		return game.Snapshot{}, err
	}
	for {
		line, err := c.frames.ReadFrame()
		if err != nil {
			return game.Snapshot{}, err
		}
		if !strings.HasPrefix(line, "{") {
			log.Debug().Msgf("Skipping reply %q", line)
			continue
		}
		return game.DecodeSnapshot([]byte(line))
	}
}

func (c *Client) Close() error {
	return c.conn.Close()
}
