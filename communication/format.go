package communication

import (
	"fmt"
	"strings"
)

// Format renders cmd as a protocol line without the trailing newline.
// Parse(Format(cmd)) yields cmd back.
func Format(cmd Command) string {
	switch c := cmd.(type) {
	case Login:
		return strings.TrimSpace("login " + c.Player)
	case GetUpdate:
		return c.Name()
	case CreateRoom:
		return fmt.Sprintf("%s %s", c.Name(), c.Room)
	case CreateSingleRoom:
		return fmt.Sprintf("%s %s", c.Name(), c.Room)
	case SetDifficulty:
		return fmt.Sprintf("%s %s %s", c.Name(), c.Level.Token(), c.RoomName)
	case JoinRoom:
		return fmt.Sprintf("%s %d %s %s", c.Name(), c.RoomID, c.Role.Token(), c.Player)
	case MoveMouse:
		return fmt.Sprintf("%s %d %d %d", c.Name(), c.RoomID, c.To.X, c.To.Y)
	case PlaceTrap:
		return fmt.Sprintf("%s %d %d %d", c.Name(), c.RoomID, c.At.X, c.At.Y)
	case AIMove:
		return fmt.Sprintf("%s %d", c.Name(), c.RoomID)
	case GameOver:
		winner := "none"
		if c.Winner != nil {
			winner = c.Winner.Token()
		}
		return fmt.Sprintf("%s %d %s", c.Name(), c.RoomID, winner)
	case ExitRoom:
		return fmt.Sprintf("%s %d %s", c.Name(), c.RoomID, c.Player)
	case AfterExitRoom:
		return fmt.Sprintf("%s %d %s", c.Name(), c.RoomID, c.Role.Token())
	case DeleteRoom:
		return fmt.Sprintf("%s %d", c.Name(), c.RoomID)
	case DeleteRoomByName:
		return fmt.Sprintf("%s %s", c.Name(), c.Room)
	case Unknown:
		return c.Line
	}
	return ""
}
