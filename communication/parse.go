package communication

import (
	"fmt"
	"strconv"
	"strings"

	"trapmouse/game"
	"trapmouse/meta"
)

// ParseError reports a line that names a command but cannot be parsed.
type ParseError struct {
	Command string
	Reason  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: %s", e.Command, e.Reason)
}

// Parse turns one protocol line into a Command. Tokens are separated by
// whitespace; tokens past the ones a command reads are ignored.
func Parse(line string) (Command, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return Unknown{Line: line}, nil
	}
	p := parser{name: fields[0], args: fields[1:]}

	switch p.name {
	case "login":
		return p.login()
	case "get_update":
		return GetUpdate{}, nil
	case "create_room":
		name, err := p.str(0, "room name")
		return CreateRoom{Room: name}, err
	case "create_single_room":
		name, err := p.str(0, "room name")
		return CreateSingleRoom{Room: name}, err
	case "set_difficulty":
		return p.setDifficulty()
	case "join_room":
		return p.joinRoom()
	case "move_mouse":
		id, c, err := p.cellCommand()
		return MoveMouse{RoomID: id, To: c}, err
	case "place_trap":
		id, c, err := p.cellCommand()
		return PlaceTrap{RoomID: id, At: c}, err
	case "AI_Move":
		id, err := p.roomID(0)
		return AIMove{RoomID: id}, err
	case "game_over":
		return p.gameOver()
	case "exit_room":
		return p.exitRoom()
	case "after_exit_room":
		return p.afterExitRoom()
	case "delete_room":
		id, err := p.roomID(0)
		return DeleteRoom{RoomID: id}, err
	case "delete_room_by_name":
		name, err := p.str(0, "room name")
		return DeleteRoomByName{Room: name}, err
	}
	return Unknown{Line: line}, nil
}

type parser struct {
	name string
	args []string
}

func (p parser) fail(format string, args ...any) error {
	return &ParseError{Command: p.name, Reason: fmt.Sprintf(format, args...)}
}

func (p parser) str(i int, what string) (string, error) {
	if i >= len(p.args) {
		return "", p.fail("missing %s", what)
	}
	return p.args[i], nil
}

func (p parser) roomID(i int) (uint32, error) {
	s, err := p.str(i, "room id")
	if err != nil {
		return 0, err
	}
	id, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, p.fail("bad room id %q", s)
	}
	return uint32(id), nil
}

func (p parser) coord(i int, axis string) (int, error) {
	s, err := p.str(i, axis)
	if err != nil {
		return 0, err
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, p.fail("bad %s %q", axis, s)
	}
	if v < 0 || v >= meta.BOARD_SIZE {
		return 0, p.fail("%s %d is off the board", axis, v)
	}
	return v, nil
}

func (p parser) role(i int) (game.Turn, error) {
	s, err := p.str(i, "role")
	if err != nil {
		return "", err
	}
	role, err := game.ParseRole(s)
	if err != nil {
		return "", p.fail("%v", err)
	}
	return role, nil
}

func (p parser) login() (Command, error) {
	// An empty name is accepted; login only announces the player.
	name, _ := p.str(0, "player")
	return Login{Player: name}, nil
}

func (p parser) setDifficulty() (Command, error) {
	s, err := p.str(0, "difficulty")
	if err != nil {
		return nil, err
	}
	level, err := game.ParseDifficulty(s)
	if err != nil {
		return nil, p.fail("%v", err)
	}
	name, err := p.str(1, "room name")
	if err != nil {
		return nil, err
	}
	return SetDifficulty{Level: level, RoomName: name}, nil
}

func (p parser) joinRoom() (Command, error) {
	id, err := p.roomID(0)
	if err != nil {
		return nil, err
	}
	role, err := p.role(1)
	if err != nil {
		return nil, err
	}
	player, err := p.str(2, "player")
	if err != nil {
		return nil, err
	}
	return JoinRoom{RoomID: id, Role: role, Player: player}, nil
}

func (p parser) cellCommand() (uint32, game.Cell, error) {
	id, err := p.roomID(0)
	if err != nil {
		return 0, game.Cell{}, err
	}
	x, err := p.coord(1, "x")
	if err != nil {
		return 0, game.Cell{}, err
	}
	y, err := p.coord(2, "y")
	if err != nil {
		return 0, game.Cell{}, err
	}
	return id, game.Cell{X: x, Y: y}, nil
}

func (p parser) gameOver() (Command, error) {
	id, err := p.roomID(0)
	if err != nil {
		return nil, err
	}
	s, err := p.str(1, "winner")
	if err != nil {
		return nil, err
	}
	if s == "none" {
		return GameOver{RoomID: id}, nil
	}
	winner, err := game.ParseRole(s)
	if err != nil {
		return nil, p.fail("%v", err)
	}
	return GameOver{RoomID: id, Winner: &winner}, nil
}

func (p parser) exitRoom() (Command, error) {
	id, err := p.roomID(0)
	if err != nil {
		return nil, err
	}
	player, err := p.str(1, "player")
	if err != nil {
		return nil, err
	}
	return ExitRoom{RoomID: id, Player: player}, nil
}

func (p parser) afterExitRoom() (Command, error) {
	id, err := p.roomID(0)
	if err != nil {
		return nil, err
	}
	role, err := p.role(1)
	if err != nil {
		return nil, err
	}
	return AfterExitRoom{RoomID: id, Role: role}, nil
}
