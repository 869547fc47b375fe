/*
Copyright © 2025 Seednode <seednode@seedno.de>
*/

package main

import (
	"testing"
)

func newTestRouter(maxRooms int) *Router {
	cfg := &Config{maxRooms: maxRooms}
	return newRouter(cfg, newRoomStore(maxRooms, newConnRegistry()))
}

// createRoom runs a createGame event and returns the acked code.
func createRoom(t *testing.T, rt *Router, host *Client) string {
	t.Helper()

	rt.dispatch(host, ClientMessage{Event: eventCreateGame})

	ack := lastAck(t, drain(host))
	if !ack.Success || ack.For != eventCreateGame || ack.Code == "" {
		t.Fatalf("createGame ack = %+v", ack)
	}
	return ack.Code
}

func TestRouter_CreateGame(t *testing.T) {
	rt := newTestRouter(0)
	host := newTestClient()

	code := createRoom(t, rt, host)

	if _, ok := rt.store.lookup(code); !ok {
		t.Errorf("acked code %q does not name an active room", code)
	}
}

func TestRouter_CreateGameAtCapacity(t *testing.T) {
	rt := newTestRouter(1)

	createRoom(t, rt, newTestClient())

	second := newTestClient()
	rt.dispatch(second, ClientMessage{Event: eventCreateGame})

	ack := lastAck(t, drain(second))
	if ack.Success {
		t.Errorf("create over cap acked success: %+v", ack)
	}
	if ack.Message == "" {
		t.Error("capacity failure carries no message")
	}
}

func TestRouter_JoinValidation(t *testing.T) {
	rt := newTestRouter(0)
	host := newTestClient()
	code := createRoom(t, rt, host)

	tests := []struct {
		desc string
		msg  ClientMessage
	}{
		{"empty name", ClientMessage{Event: eventJoinGame, Code: code}},
		{"empty code", ClientMessage{Event: eventJoinGame, PlayerName: "Alice"}},
		{"blank name", ClientMessage{Event: eventJoinGame, Code: code, PlayerName: "   "}},
		{"unknown room", ClientMessage{Event: eventJoinGame, Code: "ZZZZZZ", PlayerName: "Alice"}},
	}

	for _, tt := range tests {
		c := newTestClient()
		rt.dispatch(c, tt.msg)

		ack := lastAck(t, drain(c))
		if ack.Success {
			t.Errorf("%s: join acked success", tt.desc)
		}
		if ack.Message == "" {
			t.Errorf("%s: join failure carries no message", tt.desc)
		}
	}
}

func TestRouter_JoinAck(t *testing.T) {
	rt := newTestRouter(0)
	host := newTestClient()
	code := createRoom(t, rt, host)

	alice := newTestClient()
	rt.dispatch(alice, ClientMessage{Event: eventJoinGame, Code: code, PlayerName: "Alice"})

	ack := lastAck(t, drain(alice))
	if !ack.Success || ack.For != eventJoinGame {
		t.Fatalf("joinGame ack = %+v", ack)
	}
	if len(ack.Players) != 1 || ack.Players[0].Name != "Alice" || ack.Players[0].Points != 0 {
		t.Errorf("ack players = %+v, want [{Alice 0}]", ack.Players)
	}

	// The host sees the roster change too.
	pu := lastPlayersUpdate(t, drain(host))
	if len(pu.Players) != 1 || pu.Players[0].Name != "Alice" {
		t.Errorf("host roster = %+v, want [{Alice 0}]", pu.Players)
	}
}

func TestRouter_HostOnlyEventsDroppedForNonHost(t *testing.T) {
	rt := newTestRouter(0)
	host := newTestClient()
	code := createRoom(t, rt, host)

	alice := newTestClient()
	rt.dispatch(alice, ClientMessage{Event: eventJoinGame, Code: code, PlayerName: "Alice"})
	drain(alice)
	drain(host)

	intrusions := []ClientMessage{
		{Event: eventStartGame, Code: code},
		{Event: eventAskQuestion, Code: code, Question: "q", Answer: "a", Cheater: "Alice"},
		{Event: eventClearQuestion, Code: code},
		{Event: eventGivePoints, Code: code, PlayerName: "Alice", Points: 99},
	}

	for _, msg := range intrusions {
		rt.dispatch(alice, msg)
	}

	// Nothing was applied and nothing was broadcast, not even an error to
	// the offender.
	if msgs := drain(host); len(msgs) != 0 {
		t.Errorf("host received %d messages after non-host mutations, want 0", len(msgs))
	}
	if msgs := drain(alice); len(msgs) != 0 {
		t.Errorf("alice received %d messages after her own dropped mutations, want 0", len(msgs))
	}

	room, _ := rt.store.lookup(code)
	if room.phase != phaseLobby {
		t.Error("non-host startGame changed the phase")
	}
	if room.roster[0].Points != 0 {
		t.Errorf("non-host givePoints changed a score to %d", room.roster[0].Points)
	}
}

func TestRouter_UnknownEventIgnored(t *testing.T) {
	rt := newTestRouter(0)
	c := newTestClient()

	rt.dispatch(c, ClientMessage{Event: "mystery"})

	if msgs := drain(c); len(msgs) != 0 {
		t.Errorf("unknown event produced %d messages", len(msgs))
	}
}

// The full scripted exchange: create, join, ask with redaction, score.
func TestRouter_GameScenario(t *testing.T) {
	rt := newTestRouter(0)
	host := newTestClient()
	code := createRoom(t, rt, host)

	alice := newTestClient()
	bob := newTestClient()
	rt.dispatch(alice, ClientMessage{Event: eventJoinGame, Code: code, PlayerName: "Alice"})
	rt.dispatch(bob, ClientMessage{Event: eventJoinGame, Code: code, PlayerName: "Bob"})

	rt.dispatch(host, ClientMessage{Event: eventStartGame, Code: code})

	if got := countEvent(drain(alice), eventGameStarted); got != 1 {
		t.Errorf("alice received %d gameStarted events, want 1", got)
	}

	rt.dispatch(host, ClientMessage{
		Event:    eventAskQuestion,
		Code:     code,
		Question: "Capital of France?",
		Answer:   "Paris",
		Cheater:  "Alice",
	})

	aliceView := lastQuestionUpdate(t, drain(alice))
	if aliceView.Answer != "Paris" || aliceView.Cheater != "Alice" {
		t.Errorf("cheater view = %+v, want real answer and own name", aliceView)
	}

	bobView := lastQuestionUpdate(t, drain(bob))
	if bobView.Question != "Capital of France?" || bobView.Answer != "" || bobView.Cheater != "Alice" {
		t.Errorf("bystander view = %+v, want question and cheater visible, answer blank", bobView)
	}

	hostView := lastQuestionUpdate(t, drain(host))
	if hostView.Answer != "Paris" {
		t.Errorf("host view answer = %q, want %q", hostView.Answer, "Paris")
	}

	rt.dispatch(host, ClientMessage{Event: eventGivePoints, Code: code, PlayerName: "Alice", Points: 3})
	rt.dispatch(host, ClientMessage{Event: eventGivePoints, Code: code, PlayerName: "Alice", Points: -1})

	pu := lastPlayersUpdate(t, drain(bob))
	if len(pu.Players) != 2 {
		t.Fatalf("roster = %+v, want 2 players", pu.Players)
	}
	if pu.Players[0].Name != "Alice" || pu.Players[0].Points != 2 {
		t.Errorf("Alice = %+v, want 2 points", pu.Players[0])
	}
	if pu.Players[1].Name != "Bob" || pu.Players[1].Points != 0 {
		t.Errorf("Bob = %+v, want 0 points", pu.Players[1])
	}
}

func TestRouter_LeaveGame(t *testing.T) {
	rt := newTestRouter(0)
	host := newTestClient()
	code := createRoom(t, rt, host)

	alice := newTestClient()
	rt.dispatch(alice, ClientMessage{Event: eventJoinGame, Code: code, PlayerName: "Alice"})
	drain(host)

	rt.dispatch(alice, ClientMessage{Event: eventLeaveGame, Code: code, PlayerName: "Alice"})

	pu := lastPlayersUpdate(t, drain(host))
	if len(pu.Players) != 0 {
		t.Errorf("roster after leave = %+v, want empty", pu.Players)
	}
	if _, ok := rt.store.lookup(code); !ok {
		t.Error("member leave destroyed the room")
	}
}

func TestRouter_MemberDisconnect(t *testing.T) {
	rt := newTestRouter(0)
	host := newTestClient()
	code := createRoom(t, rt, host)

	alice := newTestClient()
	rt.dispatch(alice, ClientMessage{Event: eventJoinGame, Code: code, PlayerName: "Alice"})
	drain(host)

	rt.disconnect(alice)

	pu := lastPlayersUpdate(t, drain(host))
	if len(pu.Players) != 0 {
		t.Errorf("roster after disconnect = %+v, want empty", pu.Players)
	}
	if _, ok := rt.store.registry.lookup(alice.id); ok {
		t.Error("alice still registered after disconnect")
	}
}

func TestRouter_HostDisconnectClosesRoom(t *testing.T) {
	rt := newTestRouter(0)
	host := newTestClient()
	code := createRoom(t, rt, host)

	alice := newTestClient()
	bob := newTestClient()
	rt.dispatch(alice, ClientMessage{Event: eventJoinGame, Code: code, PlayerName: "Alice"})
	rt.dispatch(bob, ClientMessage{Event: eventJoinGame, Code: code, PlayerName: "Bob"})
	drain(alice)
	drain(bob)

	rt.disconnect(host)

	if _, ok := rt.store.lookup(code); ok {
		t.Error("room still active after host disconnect")
	}
	if got := countEvent(drain(alice), eventGameClosed); got != 1 {
		t.Errorf("alice received %d gameClosed events, want 1", got)
	}
	if got := countEvent(drain(bob), eventGameClosed); got != 1 {
		t.Errorf("bob received %d gameClosed events, want 1", got)
	}

	// Disconnecting an unregistered connection is a no-op.
	rt.disconnect(host)
	rt.disconnect(newTestClient())
}
