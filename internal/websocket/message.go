package websocket

// OutgoingMessage is what the server pushes to a seat.
type OutgoingMessage struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// IncomingMessage is what a seat sends. From is filled in server-side
// from the authenticated connection, never trusted from the payload.
type IncomingMessage struct {
	From  string      `json:"from"`
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}
