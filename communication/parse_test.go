package communication

import (
	"testing"

	"github.com/stretchr/testify/require"

	"trapmouse/game"
)

func turn(t game.Turn) *game.Turn {
	return &t
}

func TestParse(t *testing.T) {
	tests := []struct {
		line string
		want Command
	}{
		{"login alice ", Login{Player: "alice"}},
		{"login", Login{}},
		{"get_update", GetUpdate{}},
		{"create_room lobby ", CreateRoom{Room: "lobby"}},
		{"create_single_room alice", CreateSingleRoom{Room: "alice"}},
		{"set_difficulty medium !alice ", SetDifficulty{Level: game.Medium, RoomName: "!alice"}},
		{"join_room 3 trapper bob", JoinRoom{RoomID: 3, Role: game.TrapperPlayer, Player: "bob"}},
		{"move_mouse 3 5 4", MoveMouse{RoomID: 3, To: game.Cell{X: 5, Y: 4}}},
		{"place_trap 3 10 0 ", PlaceTrap{RoomID: 3, At: game.Cell{X: 10, Y: 0}}},
		{"AI_Move 7 ", AIMove{RoomID: 7}},
		{"game_over 2 mouse", GameOver{RoomID: 2, Winner: turn(game.MousePlayer)}},
		{"game_over 2 trapper", GameOver{RoomID: 2, Winner: turn(game.TrapperPlayer)}},
		{"game_over 2 none", GameOver{RoomID: 2}},
		{"exit_room 4 bob", ExitRoom{RoomID: 4, Player: "bob"}},
		{"after_exit_room 4 mouse", AfterExitRoom{RoomID: 4, Role: game.MousePlayer}},
		{"delete_room 9", DeleteRoom{RoomID: 9}},
		{"delete_room_by_name !alice", DeleteRoomByName{Room: "!alice"}},
		{"hello there", Unknown{Line: "hello there"}},
		{"started_game 1", Unknown{Line: "started_game 1"}},
		{"  ", Unknown{Line: "  "}},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			got, err := Parse(tt.line)

			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestParseRejects(t *testing.T) {
	lines := []string{
		"create_room",
		"create_single_room",
		"set_difficulty",
		"set_difficulty impossible lobby",
		"set_difficulty easy",
		"join_room",
		"join_room x mouse alice",
		"join_room 1 cat alice",
		"join_room 1 mouse",
		"move_mouse 1 5",
		"move_mouse 1 a 5",
		"move_mouse 1 5 11",
		"place_trap 1 -1 3",
		"place_trap 99999999999 1 1",
		"place_trap -3 1 1",
		"AI_Move",
		"AI_Move seven",
		"game_over 1",
		"game_over 1 draw",
		"exit_room 1",
		"after_exit_room 1 nobody",
		"delete_room",
		"delete_room 1.5",
		"delete_room_by_name",
	}

	for _, line := range lines {
		t.Run(line, func(t *testing.T) {
			var err error
			require.NotPanics(t, func() {
				_, err = Parse(line)
			})

			var perr *ParseError
			require.ErrorAs(t, err, &perr, "Malformed line should give a ParseError")
			require.NotEmpty(t, perr.Reason)
		})
	}
}

func TestParseErrorMessage(t *testing.T) {
	_, err := Parse("move_mouse 1 5 eleven")

	require.EqualError(t, err, `move_mouse: bad y "eleven"`)
}

func TestCommandNames(t *testing.T) {
	for _, line := range []string{"login a", "get_update", "create_room a", "AI_Move 1", "delete_room_by_name a"} {
		cmd, err := Parse(line)
		require.NoError(t, err)
		require.Equal(t, line[:len(cmd.Name())], cmd.Name(), "Name should match the command token")
	}
}

func TestFormat(t *testing.T) {
	cmds := []Command{
		Login{Player: "alice"},
		Login{},
		GetUpdate{},
		CreateSingleRoom{Room: "alice"},
		SetDifficulty{Level: game.Hard, RoomName: "!alice"},
		JoinRoom{RoomID: 2, Role: game.MousePlayer, Player: "bob"},
		PlaceTrap{RoomID: 2, At: game.Cell{X: 0, Y: 10}},
		GameOver{RoomID: 2},
		GameOver{RoomID: 2, Winner: turn(game.TrapperPlayer)},
		AfterExitRoom{RoomID: 2, Role: game.TrapperPlayer},
		DeleteRoomByName{Room: "!alice"},
	}

	for _, cmd := range cmds {
		line := Format(cmd)
		t.Run(line, func(t *testing.T) {
			got, err := Parse(line)

			require.NoError(t, err)
			require.Equal(t, cmd, got, "Format should produce a line Parse understands")
		})
	}

	require.Equal(t, "move_mouse 3 5 4", Format(MoveMouse{RoomID: 3, To: game.Cell{X: 5, Y: 4}}))
	require.Equal(t, "game_over 3 none", Format(GameOver{RoomID: 3}))
}
