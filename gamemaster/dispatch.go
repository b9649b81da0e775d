package gamemaster

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"trapmouse/agent"
	"trapmouse/communication"
	"trapmouse/game"
	"trapmouse/meta"
)

var (
	ErrNotSinglePlayer = errors.New("room is not single player")
	ErrNotMouseTurn    = errors.New("not the mouse's turn")
	ErrGameFinished    = errors.New("game is over")
)

// apply runs one command against the registry. gm.mu must be held.
func (gm *GameMaster) apply(cmd communication.Command) (Reply, error) {
	switch c := cmd.(type) {
	case communication.Login:
		log.Info().Msgf("Player %q logged in", c.Player)

	case communication.GetUpdate:
		data, err := gm.registry.Snapshot().Encode()
		if err != nil {
			return NoReply, err
		}
		return Reply(data), nil

	case communication.CreateRoom:
		room := gm.registry.Create(c.Room, game.WithRand(gm.rng))
		gm.metrics.AddRoomCreated()
		log.Info().Msgf("Created room %d %q", room.ID, room.Name)

	case communication.CreateSingleRoom:
		room := gm.registry.Create(meta.SINGLE_PLAYER_PREFIX+c.Room,
			game.WithRand(gm.rng), game.WithKind(game.SinglePlayer))
		gm.metrics.AddRoomCreated()
		log.Info().Msgf("Created single player room %d %q", room.ID, room.Name)

	case communication.SetDifficulty:
		room, err := gm.registry.FindByName(c.RoomName)
		if err != nil {
			return NoReply, err
		}
		level := c.Level
		room.SetDifficulty(&level)

	case communication.JoinRoom:
		room, err := gm.registry.Get(c.RoomID)
		if err != nil {
			return NoReply, err
		}
		if err := room.Join(c.Role, c.Player); err != nil {
			return NoReply, fmt.Errorf("room %d %s: %w", c.RoomID, c.Role, err)
		}

	case communication.MoveMouse:
		room, err := gm.registry.Get(c.RoomID)
		if err != nil {
			return NoReply, err
		}
		room.MoveMouse(c.To)

	case communication.PlaceTrap:
		room, err := gm.registry.Get(c.RoomID)
		if err != nil {
			return NoReply, err
		}
		if err := room.PlaceTrap(c.At); err != nil {
			return NoReply, fmt.Errorf("room %d trap %v: %w", c.RoomID, c.At, err)
		}

	case communication.AIMove:
		return NoReply, gm.aiMove(c.RoomID)

	case communication.GameOver:
		room, err := gm.registry.Get(c.RoomID)
		if err != nil {
			return NoReply, err
		}
		gm.finish(room, c.Winner)

	case communication.ExitRoom:
		room, err := gm.registry.Get(c.RoomID)
		if err != nil {
			return NoReply, err
		}
		if err := room.Leave(c.Player); err != nil {
			return NoReply, fmt.Errorf("room %d %q: %w", c.RoomID, c.Player, err)
		}

	case communication.AfterExitRoom:
		room, err := gm.registry.Get(c.RoomID)
		if err != nil {
			return NoReply, err
		}
		wasOver := room.State == game.GameOver
		bothGone := room.MarkExit(c.Role)
		if !wasOver {
			gm.queueRecord(room)
		}
		if bothGone {
			gm.registry.Remove(room.ID)
			gm.metrics.AddRoomsRemoved(1)
			log.Info().Msgf("Room %d closed after both players left", room.ID)
		}

	case communication.DeleteRoom:
		if !gm.registry.Remove(c.RoomID) {
			return NoReply, fmt.Errorf("room %d: %w", c.RoomID, ErrRoomNotFound)
		}
		gm.metrics.AddRoomsRemoved(1)

	case communication.DeleteRoomByName:
		n := gm.registry.RemoveByName(c.Room)
		if n == 0 {
			return NoReply, fmt.Errorf("room %q: %w", c.Room, ErrRoomNotFound)
		}
		gm.metrics.AddRoomsRemoved(n)

	case communication.Unknown:
		return Reply(c.Line), nil

	default:
		return NoReply, fmt.Errorf("unhandled command %T", cmd)
	}
	return NoReply, nil
}

// aiMove plays the mouse in a single-player room on the mouse's turn. A
// mouse with nowhere to go loses the game.
func (gm *GameMaster) aiMove(id uint32) error {
	room, err := gm.registry.Get(id)
	if err != nil {
		return err
	}
	switch {
	case room.Kind != game.SinglePlayer:
		return fmt.Errorf("room %d: %w", id, ErrNotSinglePlayer)
	case room.State == game.GameOver:
		return fmt.Errorf("room %d: %w", id, ErrGameFinished)
	case room.Turn != game.MousePlayer:
		return fmt.Errorf("room %d: %w", id, ErrNotMouseTurn)
	}

	a, err := agent.ForDifficulty(room.Difficulty, agent.WithRand(gm.rng))
	if err != nil {
		return fmt.Errorf("room %d: %w", id, err)
	}

	move, err := a.FindMove(room.Copy())
	if errors.Is(err, agent.ErrNoMoves) {
		winner := game.TrapperPlayer
		gm.finish(room, &winner)
		log.Info().Msgf("Mouse in room %d is trapped", id)
		return nil
	}
	if err != nil {
		return fmt.Errorf("room %d: %w", id, err)
	}

	room.MoveMouse(move)
	gm.metrics.AddAIMove()
	log.Debug().Msgf("AI moved mouse in room %d to %v", id, move)
	return nil
}
