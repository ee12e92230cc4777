package room

import (
	"time"

	"dourado/internal/game/deck"
	"dourado/internal/game/match"
)

// JoinRequest is what a client submits to be seated. The player name
// comes from the auth token, not the body.
type JoinRequest struct {
	Singleplayer bool   `json:"singleplayer"`
	Variant      string `json:"variant"` // "reduced" or "full"
}

// JoinResponse reports the assigned room and seat. Waiting is true while
// the room is still filling up.
type JoinResponse struct {
	RoomID  string   `json:"roomId"`
	Seat    int      `json:"seat"`
	Waiting bool     `json:"waiting"`
	Variant string   `json:"variant"`
	Players []string `json:"players"`
}

// LeaveRequest abandons the player's current seat.
type LeaveRequest struct{}

// Room pairs an id with the match being played in it. When a match
// finishes and a new one starts in the same room, Match is replaced by a
// fresh instance; the old one is discarded.
type Room struct {
	ID           string
	Variant      deck.Variant
	Singleplayer bool
	Match        *match.Match
	CreatedAt    time.Time
}
