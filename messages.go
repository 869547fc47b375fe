/*
Copyright © 2025 Seednode <seednode@seedno.de>
*/

package main

// Inbound event names
const (
	eventCreateGame    = "createGame"
	eventJoinGame      = "joinGame"
	eventLeaveGame     = "leaveGame"
	eventStartGame     = "startGame"
	eventAskQuestion   = "askQuestion"
	eventClearQuestion = "clearQuestion"
	eventGivePoints    = "givePoints"
)

// Outbound event names
const (
	eventAck            = "ack"
	eventPlayersUpdate  = "playersUpdate"
	eventGameStarted    = "gameStarted"
	eventQuestionUpdate = "questionUpdate"
	eventGameClosed     = "gameClosed"
)

// ClientMessage is the single envelope for everything clients send.
// Fields irrelevant to a given event are left empty.
type ClientMessage struct {
	Event      string `json:"event"`
	Code       string `json:"code,omitempty"`
	PlayerName string `json:"playerName,omitempty"`
	Question   string `json:"question,omitempty"`
	Answer     string `json:"answer,omitempty"`
	Cheater    string `json:"cheater,omitempty"`
	Points     int    `json:"points,omitempty"`
}

// AckMessage answers createGame and joinGame requests on the issuing
// connection only.
type AckMessage struct {
	Event   string        `json:"event"` // "ack"
	For     string        `json:"for"`   // the inbound event being answered
	Success bool          `json:"success"`
	Code    string        `json:"code,omitempty"`
	Players []Participant `json:"players,omitempty"`
	Message string        `json:"message,omitempty"`
}

// PlayersUpdateMessage carries the roster, in join order, to every
// subscriber of a room.
type PlayersUpdateMessage struct {
	Event   string        `json:"event"` // "playersUpdate"
	Players []Participant `json:"players"`
}

// QuestionUpdateMessage carries the current round. The answer is blanked
// for everyone except the host and the named cheater; the cheater's name
// itself is deliberately visible to all.
type QuestionUpdateMessage struct {
	Event    string `json:"event"` // "questionUpdate"
	Question string `json:"question"`
	Answer   string `json:"answer"`
	Cheater  string `json:"cheater"`
}

// EventMessage is for payload-free notifications ("gameStarted", "gameClosed").
type EventMessage struct {
	Event string `json:"event"`
}
