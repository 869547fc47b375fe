/*
Copyright © 2025 Seednode <seednode@seedno.de>
*/

package main

import (
	"strings"
)

// Router turns inbound client events into store calls. Host-only events
// are checked against the target room's host connection here, before the
// store ever sees them; a mismatch means a stale or tampering client, so
// the event is dropped and logged rather than answered.
type Router struct {
	cfg   *Config
	store *RoomStore
}

func newRouter(cfg *Config, store *RoomStore) *Router {
	return &Router{
		cfg:   cfg,
		store: store,
	}
}

func (rt *Router) dispatch(c *Client, msg ClientMessage) {
	switch msg.Event {
	case eventCreateGame:
		rt.handleCreate(c)
	case eventJoinGame:
		rt.handleJoin(c, msg)
	case eventLeaveGame:
		rt.store.leave(rt.cfg, msg.Code, msg.PlayerName, c)
	case eventStartGame:
		if rt.fromHost(c, msg) {
			rt.store.start(rt.cfg, msg.Code)
		}
	case eventAskQuestion:
		if rt.fromHost(c, msg) {
			rt.store.setRound(rt.cfg, msg.Code, msg.Question, msg.Answer, msg.Cheater)
		}
	case eventClearQuestion:
		if rt.fromHost(c, msg) {
			rt.store.clearRound(rt.cfg, msg.Code)
		}
	case eventGivePoints:
		if rt.fromHost(c, msg) {
			rt.store.awardPoints(rt.cfg, msg.Code, msg.PlayerName, msg.Points)
		}
	default:
		// ignore unknown events
	}
}

func (rt *Router) handleCreate(c *Client) {
	code, err := rt.store.create(rt.cfg, c)
	if err != nil {
		rt.ack(c, AckMessage{
			Event:   eventAck,
			For:     eventCreateGame,
			Success: false,
			Message: err.Error(),
		})
		return
	}

	rt.ack(c, AckMessage{
		Event:   eventAck,
		For:     eventCreateGame,
		Success: true,
		Code:    code,
	})
}

func (rt *Router) handleJoin(c *Client, msg ClientMessage) {
	code := strings.ToUpper(strings.TrimSpace(msg.Code))
	name := strings.TrimSpace(msg.PlayerName)

	if code == "" || name == "" {
		rt.ack(c, AckMessage{
			Event:   eventAck,
			For:     eventJoinGame,
			Success: false,
			Message: "a game code and player name are required",
		})
		return
	}

	players, err := rt.store.join(rt.cfg, code, name, c)
	if err != nil {
		logf(rt.cfg, "ROUTE: Join %s as %q failed: %v", code, name, err)
		rt.ack(c, AckMessage{
			Event:   eventAck,
			For:     eventJoinGame,
			Success: false,
			Message: err.Error(),
		})
		return
	}

	rt.ack(c, AckMessage{
		Event:   eventAck,
		For:     eventJoinGame,
		Success: true,
		Players: players,
	})
}

// disconnect is the transport telling us a connection died. It becomes
// the same leave the client would have sent, so a vanished host still
// closes its room and a vanished player still drops off the roster.
func (rt *Router) disconnect(c *Client) {
	m, ok := rt.store.registry.lookup(c.id)
	if !ok {
		return
	}

	logf(rt.cfg, "ROUTE: %s disconnected from %s", c.id, m.code)
	rt.store.leave(rt.cfg, m.code, m.name, c)
}

// fromHost reports whether the event came from the target room's host.
// Unknown rooms and non-host senders are both silent drops.
func (rt *Router) fromHost(c *Client, msg ClientMessage) bool {
	room, ok := rt.store.lookup(msg.Code)
	if !ok {
		logf(rt.cfg, "ROUTE: Dropped %s for unknown room %q", msg.Event, msg.Code)
		return false
	}
	if room.hostID != c.id {
		logf(rt.cfg, "ROUTE: Dropped %s for %s from non-host %s", msg.Event, msg.Code, c.id)
		return false
	}
	return true
}

func (rt *Router) ack(c *Client, msg AckMessage) {
	if !c.enqueue(msg) {
		c.shutdown()
	}
}
