package websocket

import (
	"dourado/internal/utils"
)

type HubInterface interface {
	BroadcastToPlayers(names []string, msg OutgoingMessage)
	SendToPlayer(name string, msg OutgoingMessage)
	Close()
}

// Hub routes messages between connected seats and the game layer. One
// client per player name; a reconnect replaces the old client.
type Hub struct {
	clients    map[string]*Client // player name -> client
	register   chan *Client
	unregister chan *Client
	broadcast  chan broadcastReq
	sendOne    chan sendReq
	incoming   chan IncomingMessage
	OnIncoming func(IncomingMessage)
	quit       chan struct{}
}

type broadcastReq struct {
	Names   []string
	Message OutgoingMessage
}

type sendReq struct {
	Name    string
	Message OutgoingMessage
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[string]*Client),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan broadcastReq),
		sendOne:    make(chan sendReq),
		incoming:   make(chan IncomingMessage),
		quit:       make(chan struct{}),
	}
}

func (h *Hub) Run() {
	utils.Print.Info("hub started")

	for {
		select {
		case c := <-h.register:
			// the clients map is only ever touched on this loop
			h.clients[c.Name] = c
			utils.Print.Info("hub register", "player", c.Name, "connected", len(h.clients))

		case c := <-h.unregister:
			if cur, ok := h.clients[c.Name]; ok && cur == c {
				delete(h.clients, c.Name)
				utils.Print.Info("hub unregister", "player", c.Name, "connected", len(h.clients))
				close(c.Send)
			}

		case req := <-h.broadcast:
			for _, name := range req.Names {
				if client, ok := h.clients[name]; ok {
					select {
					case client.Send <- req.Message:
					default:
						// slow client, drop the message
					}
				}
			}

		case req := <-h.sendOne:
			if client, ok := h.clients[req.Name]; ok {
				select {
				case client.Send <- req.Message:
				default:
				}
			}

		case req := <-h.incoming:
			// forward seat input to the game layer; handlers reply
			// through the hub, so they must not run on this loop
			if h.OnIncoming != nil {
				go h.OnIncoming(req)
			}

		case <-h.quit:
			for _, c := range h.clients {
				close(c.Send)
			}
			return
		}
	}
}

func (h *Hub) BroadcastToPlayers(names []string, msg OutgoingMessage) {
	h.broadcast <- broadcastReq{Names: names, Message: msg}
}

func (h *Hub) SendToPlayer(name string, msg OutgoingMessage) {
	h.sendOne <- sendReq{Name: name, Message: msg}
}

func (h *Hub) Close() {
	close(h.quit)
}
