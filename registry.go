/*
Copyright © 2025 Seednode <seednode@seedno.de>
*/

package main

import (
	"sync"
)

// membership records which room a connection currently belongs to.
// name is empty for a room's host until the host also joins as a player.
type membership struct {
	code string
	name string
}

// connRegistry maps connection IDs to their current room, so transport
// disconnects can be turned into leave calls. It is touched concurrently
// by join/leave handling and disconnect handling across rooms.
type connRegistry struct {
	mu     sync.RWMutex
	byConn map[string]membership
}

func newConnRegistry() *connRegistry {
	return &connRegistry{
		byConn: make(map[string]membership),
	}
}

func (r *connRegistry) bind(connID, code, name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byConn[connID] = membership{code: code, name: name}
}

func (r *connRegistry) lookup(connID string) (membership, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	m, ok := r.byConn[connID]
	return m, ok
}

func (r *connRegistry) unbind(connID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.byConn, connID)
}
