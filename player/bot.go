package player

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"trapmouse/agent"
	"trapmouse/communication"
	"trapmouse/game"
	"trapmouse/meta"
)

var ErrRoomGone = errors.New("room is gone")

type Controller interface {
	Run(ctx context.Context) error
}

// bot plays one role in one room. The trapper walls off a random escape
// route every turn and, in single-player rooms, asks the server to play
// the mouse. The mouse steps to a random legal cell.
type bot struct {
	name   string
	role   game.Turn
	room   uint32
	comm   Communicator
	poller *Poller
	rng    game.Rand
}

func NewTrapperBot(name string, room uint32, comm Communicator, interval time.Duration, rng game.Rand) Controller {
	return newBot(name, game.TrapperPlayer, room, comm, interval, rng)
}

// NewMouseBot plays the mouse in a multiplayer room.
func NewMouseBot(name string, room uint32, comm Communicator, interval time.Duration, rng game.Rand) Controller {
	return newBot(name, game.MousePlayer, room, comm, interval, rng)
}

func newBot(name string, role game.Turn, room uint32, comm Communicator, interval time.Duration, rng game.Rand) *bot {
	if rng == nil {
		rng = game.DefaultRand
	}
	return &bot{
		name:   name,
		role:   role,
		room:   room,
		comm:   comm,
		poller: NewPoller(comm, interval),
		rng:    rng,
	}
}

func (b *bot) Run(ctx context.Context) error {
	if err := b.comm.Execute(communication.Login{Player: b.name}); err != nil {
		return err
	}
	join := communication.JoinRoom{RoomID: b.room, Role: b.role, Player: b.name}
	if err := b.comm.Execute(join); err != nil {
		return err
	}
	log.Info().Msgf("%s joined room %d as %s", b.name, b.room, b.role.Token())

	return b.poller.Run(ctx, b.step)
}

func (b *bot) step(snap game.Snapshot) (bool, error) {
	room, ok := snap.Find(b.room)
	if !ok {
		return true, fmt.Errorf("room %d: %w", b.room, ErrRoomGone)
	}

	switch {
	case room.State == game.GameOver:
		return true, b.leave(room)
	case room.State == game.Waiting && room.Kind == game.MultiPlayer:
		return false, nil
	}

	if winner, over := room.Outcome(); over {
		return false, b.comm.Execute(communication.GameOver{RoomID: b.room, Winner: &winner})
	}

	if room.Turn != b.role {
		if room.Kind == game.SinglePlayer && b.role == game.TrapperPlayer {
			return false, b.comm.Execute(communication.AIMove{RoomID: b.room})
		}
		return false, nil
	}

	var err error
	if b.role == game.TrapperPlayer {
		err = b.poller.PlaceTrap(b.room, b.chooseTrap(room))
	} else {
		err = b.moveMouse(room)
	}
	if errors.Is(err, ErrIllegalMove) {
		return false, nil
	}
	return false, err
}

// leave closes out a finished game. Nobody else is in a single-player
// room, so the bot deletes it.
func (b *bot) leave(room game.Room) error {
	winner := "nobody"
	if room.Winner != nil {
		winner = string(*room.Winner)
	}
	log.Info().Msgf("Room %d is over, winner: %s", b.room, winner)

	if room.Kind == game.SinglePlayer {
		return b.comm.Execute(communication.DeleteRoom{RoomID: b.room})
	}
	return b.comm.Execute(communication.AfterExitRoom{RoomID: b.room, Role: b.role})
}

func (b *bot) moveMouse(room game.Room) error {
	to, err := agent.NewRandomAgent(b.rng).FindMove(room)
	if errors.Is(err, agent.ErrNoMoves) {
		return nil
	}
	if err != nil {
		return err
	}
	return b.poller.MoveMouse(b.room, to)
}

// chooseTrap blocks one of the mouse's moves, or any free cell if it has none.
func (b *bot) chooseTrap(room game.Room) game.Cell {
	if moves := game.LegalMoves(room.Mouse, room.Walls); len(moves) > 0 {
		return moves[b.rng.Intn(len(moves))]
	}
	for {
		c := game.Cell{X: b.rng.Intn(meta.BOARD_SIZE), Y: b.rng.Intn(meta.BOARD_SIZE)}
		if c != room.Mouse && !room.HasWall(c) {
			return c
		}
	}
}

// CreateSingleRoom opens a room against the AI for name at level and
// returns its id. Rooms left over from earlier games under the same name
// are deleted first, since set_difficulty goes to the oldest one.
func CreateSingleRoom(comm Communicator, name string, level game.Difficulty) (uint32, error) {
	roomName := meta.SINGLE_PLAYER_PREFIX + name

	snap, err := comm.GetUpdate()
	if err != nil {
		return 0, err
	}
	for _, r := range snap.Rooms {
		if r.Name == roomName {
			log.Info().Msgf("Deleting stale rooms named %q", roomName)
			if err := comm.Execute(communication.DeleteRoomByName{Room: roomName}); err != nil {
				return 0, err
			}
			break
		}
	}

	if err := comm.Execute(communication.CreateSingleRoom{Room: name}); err != nil {
		return 0, err
	}
	if err := comm.Execute(communication.SetDifficulty{Level: level, RoomName: roomName}); err != nil {
		return 0, err
	}

	snap, err = comm.GetUpdate()
	if err != nil {
		return 0, err
	}
	var id uint32
	for _, r := range snap.Rooms {
		if r.Name == roomName && r.ID > id {
			id = r.ID
		}
	}
	if id == 0 {
		return 0, fmt.Errorf("room %q did not appear", roomName)
	}
	log.Info().Msgf("Created room %d %q at %s", id, roomName, level)
	return id, nil
}
