package agent

import "trapmouse/game"

type cautiousAgent struct {
	fallback randomAgent
}

// NewCautiousAgent returns an agent that prefers cells with no wall next to
// them and plays like the random agent when every move touches a wall.
func NewCautiousAgent(rng game.Rand) Agent {
	return cautiousAgent{fallback: randomAgent{rng: rng}}
}

func (a cautiousAgent) FindMove(room game.Room) (game.Cell, error) {
	var safe []game.Cell
	for _, c := range game.LegalMoves(room.Mouse, room.Walls) {
		if !game.NearWall(c, room.Walls) {
			safe = append(safe, c)
		}
	}
	if len(safe) > 0 {
		return pick(a.fallback.rng, safe), nil
	}
	return a.fallback.FindMove(room)
}
