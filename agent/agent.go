package agent

import (
	"errors"
	"fmt"

	"trapmouse/game"
)

var (
	ErrUnimplemented = errors.New("hard difficulty is not implemented")
	ErrNoDifficulty  = errors.New("room has no difficulty")
	ErrNoMoves       = errors.New("mouse has no legal moves")
)

type Agent interface {
	// FindMove returns the cell the mouse should step to next.
	FindMove(room game.Room) (game.Cell, error)
}

type Option func(*options)

type options struct {
	rng game.Rand
}

// WithRand makes the agent draw from rng instead of game.DefaultRand.
func WithRand(rng game.Rand) Option {
	return func(o *options) {
		if rng != nil {
			o.rng = rng
		}
	}
}

// ForDifficulty returns the agent playing the mouse at difficulty d.
func ForDifficulty(d *game.Difficulty, opts ...Option) (Agent, error) {
	o := options{rng: game.DefaultRand}
	for _, opt := range opts {
		opt(&o)
	}

	if d == nil {
		return nil, ErrNoDifficulty
	}
	switch *d {
	case game.Easy:
		return NewRandomAgent(o.rng), nil
	case game.Medium:
		return NewCautiousAgent(o.rng), nil
	case game.Hard:
		return nil, ErrUnimplemented
	}
	return nil, fmt.Errorf("unknown difficulty %q", *d)
}

func pick(rng game.Rand, cells []game.Cell) game.Cell {
	return cells[rng.Intn(len(cells))]
}
