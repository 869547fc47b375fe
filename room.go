/*
Copyright © 2025 Seednode <seednode@seedno.de>
*/

package main

import (
	"sync"
)

type phase int

const (
	phaseLobby phase = iota
	phaseInProgress
)

// Participant is one scored player. The host is never a Participant
// unless it also joins its own room by name.
type Participant struct {
	Name   string `json:"name"`
	Points int    `json:"points"`
}

type round struct {
	question string
	answer   string
	cheater  string
}

// Room is one game session. All state behind mu; every mutation of a
// room happens under its own lock, so operations addressing the same
// code execute one at a time while different rooms proceed in parallel.
// Broadcasts are enqueued while the lock is held, which keeps the order
// of snapshots seen by each subscriber equal to the order mutations were
// applied.
type Room struct {
	code   string
	hostID string // immutable after newRoom

	mu          sync.Mutex
	phase       phase
	roster      []*Participant
	round       round
	subscribers map[*Client]string // client -> roster name ("" for the host)
	closed      bool
}

func newRoom(code, hostID string) *Room {
	return &Room{
		code:        code,
		hostID:      hostID,
		phase:       phaseLobby,
		subscribers: make(map[*Client]string),
	}
}

// join appends name to the roster unless it is already present, in which
// case the call is a harmless re-entry (client retries and reconnects
// land here). Either way the connection is subscribed and everyone gets
// the fresh roster.
func (r *Room) join(cfg *Config, c *Client, name string) ([]Participant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return nil, errRoomNotFound
	}

	exists := false
	for _, p := range r.roster {
		if p.Name == name {
			exists = true
			break
		}
	}
	if !exists {
		r.roster = append(r.roster, &Participant{Name: name})
		logf(cfg, "ROOMS: %q joined %s", name, r.code)
	}

	r.subscribers[c] = name
	r.broadcastPlayersLocked()

	return r.snapshotLocked(), nil
}

// dropPlayer removes name from the roster and the client from the
// subscriber set. Missing room members are a no-op, not an error.
func (r *Room) dropPlayer(cfg *Config, name string, c *Client) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return
	}

	if c != nil {
		delete(r.subscribers, c)
	}

	dst := r.roster[:0]
	changed := false
	for _, p := range r.roster {
		if p.Name == name {
			changed = true
			continue
		}
		dst = append(dst, p)
	}
	r.roster = dst

	if changed {
		logf(cfg, "ROOMS: %q left %s", name, r.code)
	}

	r.broadcastPlayersLocked()
}

// start moves the room out of the lobby. Repeated starts are ignored;
// there is no way back to the lobby.
func (r *Room) start(cfg *Config) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed || r.phase == phaseInProgress {
		return
	}
	r.phase = phaseInProgress
	logf(cfg, "ROOMS: Started %s", r.code)

	r.broadcastLocked(EventMessage{Event: eventGameStarted})
}

// setRound replaces the whole round payload in one step. Clearing a
// round is just setting all three fields to empty.
func (r *Room) setRound(cfg *Config, question, answer, cheater string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return
	}
	r.round = round{question: question, answer: answer, cheater: cheater}

	r.broadcastQuestionLocked()
}

// awardPoints adjusts a player's score by delta, which may be negative.
// An award for a name no longer on the roster (the player left while the
// host was deciding) is dropped and logged, never an error.
func (r *Room) awardPoints(cfg *Config, name string, delta int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return
	}

	for _, p := range r.roster {
		if p.Name == name {
			p.Points += delta
			logf(cfg, "ROOMS: %d points to %q in %s", delta, name, r.code)
			r.broadcastPlayersLocked()
			return
		}
	}

	logf(cfg, "ROOMS: Dropped points for unknown player %q in %s", name, r.code)
}

// close marks the room dead, tells every subscriber except the departing
// host, and empties the subscriber set. Returns the evicted clients so
// the caller can release their registry entries.
func (r *Room) close(cfg *Config) []*Client {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.closed = true

	evicted := make([]*Client, 0, len(r.subscribers))
	for c := range r.subscribers {
		if c.id != r.hostID {
			c.enqueue(EventMessage{Event: eventGameClosed})
		}
		evicted = append(evicted, c)
		delete(r.subscribers, c)
	}

	return evicted
}

func (r *Room) snapshotLocked() []Participant {
	players := make([]Participant, 0, len(r.roster))
	for _, p := range r.roster {
		players = append(players, *p)
	}
	return players
}

func (r *Room) broadcastPlayersLocked() {
	r.broadcastLocked(PlayersUpdateMessage{
		Event:   eventPlayersUpdate,
		Players: r.snapshotLocked(),
	})
}

// broadcastQuestionLocked fans the round out with per-recipient
// redaction: only the host and the cheater get the real answer. The
// cheater's name stays visible to everyone.
func (r *Room) broadcastQuestionLocked() {
	for c, name := range r.subscribers {
		msg := QuestionUpdateMessage{
			Event:    eventQuestionUpdate,
			Question: r.round.question,
			Answer:   r.round.answer,
			Cheater:  r.round.cheater,
		}
		if c.id != r.hostID && name != r.round.cheater {
			msg.Answer = ""
		}

		if !c.enqueue(msg) {
			delete(r.subscribers, c)
			c.shutdown()
		}
	}
}

func (r *Room) broadcastLocked(msg any) {
	for c := range r.subscribers {
		if !c.enqueue(msg) {
			delete(r.subscribers, c)
			c.shutdown()
		}
	}
}
