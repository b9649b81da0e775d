package agent

import "trapmouse/game"

type randomAgent struct {
	rng game.Rand
}

// NewRandomAgent returns an agent that picks uniformly among the legal moves.
func NewRandomAgent(rng game.Rand) Agent {
	return randomAgent{rng: rng}
}

func (a randomAgent) FindMove(room game.Room) (game.Cell, error) {
	moves := game.LegalMoves(room.Mouse, room.Walls)
	if len(moves) == 0 {
		return game.Cell{}, ErrNoMoves
	}
	return pick(a.rng, moves), nil
}
