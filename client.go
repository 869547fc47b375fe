/*
Copyright © 2025 Seednode <seednode@seedno.de>
*/

package main

import (
	"log"
	"net/http"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Client is one live connection. The id doubles as the connection's
// identity everywhere else: in the registry and as a room's host ID.
type Client struct {
	id   string
	conn *websocket.Conn
	send chan any
	done chan struct{}
	once sync.Once
}

func newClient(conn *websocket.Conn) *Client {
	return &Client{
		id:   uuid.NewString(),
		conn: conn,
		send: make(chan any, 8),
		done: make(chan struct{}),
	}
}

// enqueue hands a message to the write pump without blocking. Returns
// false when the client is gone or its buffer is full, in which case the
// caller should treat the client as dead.
func (c *Client) enqueue(msg any) bool {
	select {
	case <-c.done:
		return false
	default:
	}

	select {
	case c.send <- msg:
		return true
	default:
		return false
	}
}

// shutdown stops the write pump and closes the underlying connection.
// Safe to call from any goroutine, any number of times.
func (c *Client) shutdown() {
	c.once.Do(func() {
		close(c.done)
		if c.conn != nil {
			_ = c.conn.Close()
		}
	})
}

func (c *Client) writePump() {
	defer c.shutdown()

	for {
		select {
		case <-c.done:
			return
		case msg := <-c.send:
			if err := c.conn.WriteJSON(msg); err != nil {
				return
			}
		}
	}
}

func (c *Client) readPump(rt *Router) {
	defer func() {
		rt.disconnect(c)
		c.shutdown()
	}()

	for {
		var msg ClientMessage
		if err := c.conn.ReadJSON(&msg); err != nil {
			return
		}
		rt.dispatch(c, msg)
	}
}

func serveWS(cfg *Config, rt *Router) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Println("upgrade error:", err)
			return
		}

		client := newClient(conn)
		logf(cfg, "CONNECT: %s from %s", client.id, realIP(r))

		go client.writePump()
		client.readPump(rt)
	}
}
