/*
Copyright © 2025 Seednode <seednode@seedno.de>
*/

package main

import (
	"sync"
)

// RoomStore owns every active room, keyed by code. It hands out codes,
// routes operations to the right room, and tears rooms down when their
// host leaves. Host-authority checks live in the Router, not here; the
// store is a plain state container.
type RoomStore struct {
	mu       sync.RWMutex
	rooms    map[string]*Room
	registry *connRegistry
	maxRooms int
}

func newRoomStore(maxRooms int, registry *connRegistry) *RoomStore {
	return &RoomStore{
		rooms:    make(map[string]*Room),
		registry: registry,
		maxRooms: maxRooms,
	}
}

// create makes an empty room with c as host and subscribes c to it.
// Codes are regenerated until they miss every active room, so a freshly
// freed code can be handed out again immediately.
func (s *RoomStore) create(cfg *Config, c *Client) (string, error) {
	if _, ok := s.registry.lookup(c.id); ok {
		return "", errAlreadyInRoom
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.maxRooms > 0 && len(s.rooms) >= s.maxRooms {
		return "", errCapacityExceeded
	}

	var code string
	for {
		var err error
		code, err = generateCode()
		if err != nil {
			return "", err
		}
		if _, exists := s.rooms[code]; !exists {
			break
		}
	}

	room := newRoom(code, c.id)
	room.subscribers[c] = ""
	s.rooms[code] = room
	s.registry.bind(c.id, code, "")

	logf(cfg, "ROOMS: Created %s (host %s)", code, c.id)

	return code, nil
}

func (s *RoomStore) lookup(code string) (*Room, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	room, ok := s.rooms[code]
	return room, ok
}

func (s *RoomStore) count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.rooms)
}

// join subscribes c to the room under name. A connection already bound
// to a different room is refused; rebinding to the same room is the
// idempotent re-entry path.
func (s *RoomStore) join(cfg *Config, code, name string, c *Client) ([]Participant, error) {
	if m, ok := s.registry.lookup(c.id); ok && m.code != code {
		return nil, errAlreadyInRoom
	}

	room, ok := s.lookup(code)
	if !ok {
		return nil, errRoomNotFound
	}

	players, err := room.join(cfg, c, name)
	if err != nil {
		return nil, err
	}

	s.registry.bind(c.id, code, name)

	return players, nil
}

// leave removes name from the room's roster, or destroys the room
// outright when the departing connection is its host. Both paths are
// no-ops when the room does not exist.
func (s *RoomStore) leave(cfg *Config, code, name string, c *Client) {
	s.mu.Lock()
	room, ok := s.rooms[code]
	if !ok {
		s.mu.Unlock()
		s.unbindFrom(code, c)
		return
	}

	host := c != nil && c.id == room.hostID
	if host {
		delete(s.rooms, code)
	}
	s.mu.Unlock()

	if host {
		for _, evicted := range room.close(cfg) {
			s.registry.unbind(evicted.id)
		}
		s.registry.unbind(c.id)
		logf(cfg, "ROOMS: Closed %s (host left)", code)
		return
	}

	room.dropPlayer(cfg, name, c)
	s.unbindFrom(code, c)
}

// unbindFrom clears c's registry entry only when it actually points at
// code, so a stray leave for some other room cannot orphan a live
// membership.
func (s *RoomStore) unbindFrom(code string, c *Client) {
	if c == nil {
		return
	}
	if m, ok := s.registry.lookup(c.id); ok && m.code == code {
		s.registry.unbind(c.id)
	}
}

func (s *RoomStore) start(cfg *Config, code string) {
	if room, ok := s.lookup(code); ok {
		room.start(cfg)
	}
}

func (s *RoomStore) setRound(cfg *Config, code, question, answer, cheater string) {
	if room, ok := s.lookup(code); ok {
		room.setRound(cfg, question, answer, cheater)
	}
}

func (s *RoomStore) clearRound(cfg *Config, code string) {
	s.setRound(cfg, code, "", "", "")
}

func (s *RoomStore) awardPoints(cfg *Config, code, name string, delta int) {
	if room, ok := s.lookup(code); ok {
		room.awardPoints(cfg, name, delta)
	}
}
