package game

import (
	"fmt"
	"strings"
)

// Phase is the lifecycle stage of a room.
type Phase string

const (
	Waiting  Phase = "Waiting"  // at least one slot empty
	InGame   Phase = "InGame"   // both slots filled, turns alternate
	GameOver Phase = "GameOver" // terminal
)

// Turn names a role; it doubles as the winner of a finished game.
type Turn string

const (
	MousePlayer   Turn = "MousePlayer"
	TrapperPlayer Turn = "TrapperPlayer"
)

// Kind tells single-player rooms (mouse driven by an agent) from multiplayer ones.
type Kind string

const (
	SinglePlayer Kind = "SinglePlayer"
	MultiPlayer  Kind = "MultiPlayer"
)

type Difficulty string

const (
	Easy   Difficulty = "Easy"
	Medium Difficulty = "Medium"
	Hard   Difficulty = "Hard"
)

// ParseRole maps the protocol's role tokens onto a Turn.
func ParseRole(s string) (Turn, error) {
	switch s {
	case "mouse":
		return MousePlayer, nil
	case "trapper":
		return TrapperPlayer, nil
	}
	return "", fmt.Errorf("unknown role %q", s)
}

// ParseDifficulty maps the protocol's difficulty tokens onto a Difficulty.
func ParseDifficulty(s string) (Difficulty, error) {
	switch s {
	case "easy":
		return Easy, nil
	case "medium":
		return Medium, nil
	case "hard":
		return Hard, nil
	}
	return "", fmt.Errorf("unknown difficulty %q", s)
}

// Opponent returns the other role.
func (t Turn) Opponent() Turn {
	if t == MousePlayer {
		return TrapperPlayer
	}
	return MousePlayer
}

// Token is the protocol spelling of the role, the inverse of ParseRole.
func (t Turn) Token() string {
	if t == MousePlayer {
		return "mouse"
	}
	return "trapper"
}

// Token is the protocol spelling of the level, the inverse of ParseDifficulty.
func (d Difficulty) Token() string {
	return strings.ToLower(string(d))
}
