package gamemaster

import (
	"errors"
	"fmt"
	"slices"

	"trapmouse/game"
)

var ErrRoomNotFound = errors.New("room not found")

// Registry holds the live rooms in creation order. It does no locking;
// GameMaster serializes every call.
type Registry struct {
	rooms  []*game.Room
	nextID uint32
}

func NewRegistry() *Registry {
	return &Registry{}
}

// Create appends a new room. Ids come from a counter and are never reused.
func (r *Registry) Create(name string, opts ...game.Option) *game.Room {
	r.nextID++
	room := game.NewRoom(r.nextID, name, opts...)
	r.rooms = append(r.rooms, room)
	return room
}

func (r *Registry) Get(id uint32) (*game.Room, error) {
	for _, room := range r.rooms {
		if room.ID == id {
			return room, nil
		}
	}
	return nil, fmt.Errorf("room %d: %w", id, ErrRoomNotFound)
}

// FindByName returns the oldest room called name.
func (r *Registry) FindByName(name string) (*game.Room, error) {
	for _, room := range r.rooms {
		if room.Name == name {
			return room, nil
		}
	}
	return nil, fmt.Errorf("room %q: %w", name, ErrRoomNotFound)
}

// Remove deletes the room with the given id and reports whether it existed.
func (r *Registry) Remove(id uint32) bool {
	n := len(r.rooms)
	r.rooms = slices.DeleteFunc(r.rooms, func(room *game.Room) bool {
		return room.ID == id
	})
	return len(r.rooms) < n
}

// RemoveByName deletes every room called name and returns how many went.
func (r *Registry) RemoveByName(name string) int {
	n := len(r.rooms)
	r.rooms = slices.DeleteFunc(r.rooms, func(room *game.Room) bool {
		return room.Name == name
	})
	return n - len(r.rooms)
}

func (r *Registry) Len() int {
	return len(r.rooms)
}

// Snapshot deep-copies every room.
func (r *Registry) Snapshot() game.Snapshot {
	rooms := make([]game.Room, 0, len(r.rooms))
	for _, room := range r.rooms {
		rooms = append(rooms, room.Copy())
	}
	return game.Snapshot{Rooms: rooms}
}
