package player

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"trapmouse/communication"
	"trapmouse/game"
)

var ErrIllegalMove = errors.New("illegal move")

// Communicator is the client side of the protocol.
type Communicator interface {
	Execute(cmd communication.Command) error
	GetUpdate() (game.Snapshot, error)
}

// Handler sees every polled snapshot. Returning stop ends the poll loop.
type Handler func(snap game.Snapshot) (stop bool, err error)

// Poller fetches a snapshot every interval and keeps the latest one for
// local legality checks.
type Poller struct {
	comm     Communicator
	interval time.Duration

	mu     sync.RWMutex
	latest game.Snapshot
}

func NewPoller(comm Communicator, interval time.Duration) *Poller {
	return &Poller{comm: comm, interval: interval}
}

// Run polls until ctx is done, a poll fails or handle asks to stop.
func (p *Poller) Run(ctx context.Context, handle Handler) error {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		snap, err := p.Poll()
		if err != nil {
			return err
		}
		stop, err := handle(snap)
		if err != nil || stop {
			return err
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// Poll fetches one snapshot and caches it.
func (p *Poller) Poll() (game.Snapshot, error) {
	snap, err := p.comm.GetUpdate()
	if err != nil {
		return game.Snapshot{}, err
	}
	p.mu.Lock()
	p.latest = snap
	p.mu.Unlock()
	return snap, nil
}

func (p *Poller) Latest() game.Snapshot {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.latest
}

// MoveMouse sends the move only if the cached snapshot says it is legal.
// The server does not check.
func (p *Poller) MoveMouse(room uint32, to game.Cell) error {
	r, ok := p.Latest().Find(room)
	if !ok || !game.CanMove(r.Mouse, to, r.Walls) {
		log.Debug().Msgf("Refusing mouse move to %v in room %d", to, room)
		return ErrIllegalMove
	}
	return p.comm.Execute(communication.MoveMouse{RoomID: room, To: to})
}

// PlaceTrap sends the trap only if the cell is on the board and free.
func (p *Poller) PlaceTrap(room uint32, at game.Cell) error {
	r, ok := p.Latest().Find(room)
	if !ok || !game.InBounds(at) || at == r.Mouse || r.HasWall(at) {
		log.Debug().Msgf("Refusing trap on %v in room %d", at, room)
		return ErrIllegalMove
	}
	return p.comm.Execute(communication.PlaceTrap{RoomID: room, At: at})
}
