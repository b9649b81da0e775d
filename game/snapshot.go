package game

import (
	"encoding/json"
	"fmt"
)

// Snapshot is the registry as seen by get_update.
type Snapshot struct {
	Rooms []Room `json:"rooms"`
}

// Find returns the room with the given id.
func (s Snapshot) Find(id uint32) (Room, bool) {
	for _, r := range s.Rooms {
		if r.ID == id {
			return r, true
		}
	}
	return Room{}, false
}

func (s Snapshot) Encode() ([]byte, error) {
	if s.Rooms == nil {
		s.Rooms = []Room{}
	}
	return json.Marshal(s)
}

func DecodeSnapshot(data []byte) (Snapshot, error) {
	var s Snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return Snapshot{}, fmt.Errorf("decode snapshot: %w", err)
	}
	return s, nil
}
