package communication

import "trapmouse/game"

// Command is one parsed protocol line. The set of implementations is closed.
type Command interface {
	Name() string
}

type Login struct {
	Player string
}

type GetUpdate struct{}

type CreateRoom struct {
	Room string
}

// CreateSingleRoom asks for a room against the AI mouse. The server adds
// meta.SINGLE_PLAYER_PREFIX to Room.
type CreateSingleRoom struct {
	Room string
}

type SetDifficulty struct {
	Level    game.Difficulty
	RoomName string
}

type JoinRoom struct {
	RoomID uint32
	Role   game.Turn
	Player string
}

type MoveMouse struct {
	RoomID uint32
	To     game.Cell
}

type PlaceTrap struct {
	RoomID uint32
	At     game.Cell
}

type AIMove struct {
	RoomID uint32
}

// GameOver ends a game. A nil Winner records an abandoned game.
type GameOver struct {
	RoomID uint32
	Winner *game.Turn
}

// ExitRoom frees a slot before the game is over.
type ExitRoom struct {
	RoomID uint32
	Player string
}

// AfterExitRoom records that a role has left a finished game.
type AfterExitRoom struct {
	RoomID uint32
	Role   game.Turn
}

type DeleteRoom struct {
	RoomID uint32
}

type DeleteRoomByName struct {
	Room string
}

// Unknown is any line whose first token is not a command. It is echoed back.
type Unknown struct {
	Line string
}

func (Login) Name() string            { return "login" }
func (GetUpdate) Name() string        { return "get_update" }
func (CreateRoom) Name() string       { return "create_room" }
func (CreateSingleRoom) Name() string { return "create_single_room" }
func (SetDifficulty) Name() string    { return "set_difficulty" }
func (JoinRoom) Name() string         { return "join_room" }
func (MoveMouse) Name() string        { return "move_mouse" }
func (PlaceTrap) Name() string        { return "place_trap" }
func (AIMove) Name() string           { return "AI_Move" }
func (GameOver) Name() string         { return "game_over" }
func (ExitRoom) Name() string         { return "exit_room" }
func (AfterExitRoom) Name() string    { return "after_exit_room" }
func (DeleteRoom) Name() string       { return "delete_room" }
func (DeleteRoomByName) Name() string { return "delete_room_by_name" }
func (Unknown) Name() string          { return "" }
