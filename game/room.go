package game

import (
	"errors"
	"slices"
	"time"

	"golang.org/x/exp/rand"

	"trapmouse/meta"
)

var (
	ErrSlotTaken = errors.New("slot already taken")
	ErrNotInRoom = errors.New("player is not in the room")
	ErrOccupied  = errors.New("cell is occupied")
)

// Rand is the source of randomness used to seed walls and pick moves.
type Rand interface {
	Intn(n int) int
}

type globalRand struct{}

func (globalRand) Intn(n int) int { return rand.Intn(n) }

// DefaultRand draws from the goroutine-safe global source.
var DefaultRand Rand = globalRand{}

type Option func(*options)

type options struct {
	rng  Rand
	kind Kind
}

// WithRand seeds walls from rng instead of DefaultRand.
func WithRand(rng Rand) Option {
	return func(o *options) {
		if rng != nil {
			o.rng = rng
		}
	}
}

// WithKind sets the room kind; rooms are MultiPlayer otherwise.
func WithKind(kind Kind) Option {
	return func(o *options) {
		o.kind = kind
	}
}

// Room is one game session. It does no locking of its own; the registry
// that owns it serializes every access.
type Room struct {
	ID            uint32      `json:"room_id"`
	Name          string      `json:"room_name"`
	MousePlayer   *string     `json:"mouse_player"`
	TrapperPlayer *string     `json:"trapper_player"`
	State         Phase       `json:"game_state"`
	Mouse         Cell        `json:"mouse_position"`
	Walls         []Cell      `json:"walls"`
	Turn          Turn        `json:"turn"`
	Winner        *Turn       `json:"winner"`
	Kind          Kind        `json:"room_type"`
	Difficulty    *Difficulty `json:"game_difficulty"`
	MouseExited   bool        `json:"mouse_player_exited"`
	TrapperExited bool        `json:"trapper_player_exited"`

	// Server-side bookkeeping for game records, not sent to clients.
	CreatedAt time.Time `json:"-"`
	Moves     int       `json:"-"`
}

// NewRoom builds a waiting room with the mouse at the center, the trapper
// to play, and INITIAL_WALLS distinct random walls off the center.
func NewRoom(id uint32, name string, opts ...Option) *Room {
	o := options{rng: DefaultRand, kind: MultiPlayer}
	for _, opt := range opts {
		opt(&o)
	}

	return &Room{
		ID:        id,
		Name:      name,
		State:     Waiting,
		Mouse:     Center,
		Walls:     seedWalls(o.rng),
		Turn:      TrapperPlayer,
		Kind:      o.kind,
		CreatedAt: time.Now().UTC(),
	}
}

// seedWalls samples cells uniformly, rejecting the center and repeats.
func seedWalls(rng Rand) []Cell {
	walls := make([]Cell, 0, meta.INITIAL_WALLS)
	for len(walls) < meta.INITIAL_WALLS {
		c := Cell{X: rng.Intn(meta.BOARD_SIZE), Y: rng.Intn(meta.BOARD_SIZE)}
		if c != Center && !slices.Contains(walls, c) {
			walls = append(walls, c)
		}
	}
	return walls
}

// MoveMouse puts the mouse on c and hands the turn to the trapper.
// Legality is the caller's concern.
func (r *Room) MoveMouse(c Cell) {
	r.Mouse = c
	r.Turn = TrapperPlayer
	r.Moves++
}

// PlaceTrap adds a wall on c and hands the turn to the mouse. A wall on the
// mouse or on an existing wall is refused and nothing changes.
func (r *Room) PlaceTrap(c Cell) error {
	if c == r.Mouse || r.HasWall(c) {
		return ErrOccupied
	}
	r.Walls = append(r.Walls, c)
	r.Turn = MousePlayer
	r.Moves++
	return nil
}

func (r *Room) HasWall(c Cell) bool {
	return slices.Contains(r.Walls, c)
}

// MarkGameOver ends the game. A nil winner records an abandoned game.
func (r *Room) MarkGameOver(winner *Turn) {
	r.State = GameOver
	r.Winner = winner
}

// MarkExit records that role has left a finished game and reports whether
// both players are now gone.
func (r *Room) MarkExit(role Turn) bool {
	switch role {
	case MousePlayer:
		r.MouseExited = true
	case TrapperPlayer:
		r.TrapperExited = true
	}
	r.State = GameOver
	return r.MouseExited && r.TrapperExited
}

// Join seats name in role's slot. The game starts once both slots are filled.
func (r *Room) Join(role Turn, name string) error {
	slot := r.slot(role)
	if *slot != nil {
		return ErrSlotTaken
	}
	*slot = &name

	if r.MousePlayer != nil && r.TrapperPlayer != nil && r.State == Waiting {
		r.State = InGame
	}
	return nil
}

// Leave frees the slot held by name before the game is over.
func (r *Room) Leave(name string) error {
	switch {
	case r.MousePlayer != nil && *r.MousePlayer == name:
		r.MousePlayer = nil
	case r.TrapperPlayer != nil && *r.TrapperPlayer == name:
		r.TrapperPlayer = nil
	default:
		return ErrNotInRoom
	}

	if r.State == InGame {
		r.State = Waiting
	}
	return nil
}

func (r *Room) slot(role Turn) **string {
	if role == MousePlayer {
		return &r.MousePlayer
	}
	return &r.TrapperPlayer
}

func (r *Room) SetDifficulty(d *Difficulty) {
	r.Difficulty = d
}

// Outcome evaluates the terminal predicates: an escaped mouse wins, a
// captured one loses.
func (r *Room) Outcome() (winner Turn, over bool) {
	if Escaped(r.Mouse) {
		return MousePlayer, true
	}
	if Captured(r.Mouse, r.Walls) {
		return TrapperPlayer, true
	}
	return "", false
}

// Copy returns a deep copy that shares nothing with r.
func (r *Room) Copy() Room {
	c := *r
	c.Walls = slices.Clone(r.Walls)
	c.MousePlayer = clonePtr(r.MousePlayer)
	c.TrapperPlayer = clonePtr(r.TrapperPlayer)
	c.Winner = clonePtr(r.Winner)
	c.Difficulty = clonePtr(r.Difficulty)
	return c
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
