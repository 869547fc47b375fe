/*
Copyright © 2025 Seednode <seednode@seedno.de>
*/

package main

import (
	"testing"

	"github.com/google/uuid"
)

// newTestClient builds a Client with no underlying connection; tests read
// broadcasts straight off the send channel instead of running the pumps.
func newTestClient() *Client {
	return &Client{
		id:   uuid.NewString(),
		send: make(chan any, 32),
		done: make(chan struct{}),
	}
}

// drain returns every message currently queued for c. All coordinator
// operations are synchronous, so there is never anything to wait for.
func drain(c *Client) []any {
	var msgs []any
	for {
		select {
		case m := <-c.send:
			msgs = append(msgs, m)
		default:
			return msgs
		}
	}
}

func lastPlayersUpdate(t *testing.T, msgs []any) PlayersUpdateMessage {
	t.Helper()
	var found *PlayersUpdateMessage
	for _, m := range msgs {
		if pu, ok := m.(PlayersUpdateMessage); ok {
			found = &pu
		}
	}
	if found == nil {
		t.Fatalf("no playersUpdate in %d messages", len(msgs))
	}
	return *found
}

func lastAck(t *testing.T, msgs []any) AckMessage {
	t.Helper()
	var found *AckMessage
	for _, m := range msgs {
		if ack, ok := m.(AckMessage); ok {
			found = &ack
		}
	}
	if found == nil {
		t.Fatalf("no ack in %d messages", len(msgs))
	}
	return *found
}

func lastQuestionUpdate(t *testing.T, msgs []any) QuestionUpdateMessage {
	t.Helper()
	var found *QuestionUpdateMessage
	for _, m := range msgs {
		if qu, ok := m.(QuestionUpdateMessage); ok {
			found = &qu
		}
	}
	if found == nil {
		t.Fatalf("no questionUpdate in %d messages", len(msgs))
	}
	return *found
}

func countEvent(msgs []any, event string) int {
	n := 0
	for _, m := range msgs {
		if ev, ok := m.(EventMessage); ok && ev.Event == event {
			n++
		}
	}
	return n
}
