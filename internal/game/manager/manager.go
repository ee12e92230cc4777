package manager

import (
	"context"
	"fmt"
	"sync"
	"time"

	"dourado/internal/game/bot"
	"dourado/internal/game/deck"
	"dourado/internal/game/match"
	"dourado/internal/persist"
	"dourado/internal/ranking"
	"dourado/internal/room"
	"dourado/internal/utils"
	"dourado/internal/websocket"
)

// GameManager owns all running matches: it starts rooms handed over by
// the registry, dispatches websocket events to the right match, runs
// the automated seats and finalizes finished matches into the ledger
// and the persistence sink.
type GameManager struct {
	mu         sync.RWMutex
	rooms      map[string]*room.Room // roomID -> room
	playerRoom map[string]string     // player name -> roomID
	playerSeat map[string]int        // player name -> seat index

	hub      websocket.HubInterface
	registry *room.Registry
	ledger   *ranking.Ledger
	sink     persist.Sink
	factory  *deck.Factory
	botDelay time.Duration
}

func NewGameManager(hub websocket.HubInterface, reg *room.Registry, ledger *ranking.Ledger, sink persist.Sink, factory *deck.Factory, botDelay time.Duration) *GameManager {
	return &GameManager{
		rooms:      make(map[string]*room.Room),
		playerRoom: make(map[string]string),
		playerSeat: make(map[string]int),
		hub:        hub,
		registry:   reg,
		ledger:     ledger,
		sink:       sink,
		factory:    factory,
		botDelay:   botDelay,
	}
}

// StartRoom deals the match in a filled room and spins up its automated
// seats.
func (m *GameManager) StartRoom(rm *room.Room) error {
	m.mu.Lock()
	if _, ok := m.rooms[rm.ID]; ok {
		m.mu.Unlock()
		return fmt.Errorf("room %s already running", rm.ID)
	}
	m.rooms[rm.ID] = rm

	seats := rm.Match.Seats()
	for i, s := range seats {
		if !s.Automated {
			m.playerRoom[s.Name] = rm.ID
			m.playerSeat[s.Name] = i
		}
	}
	m.mu.Unlock()

	rm.Match.OnFinished = func(res match.Result) { m.finalize(rm, res) }

	if err := rm.Match.Start(m.factory); err != nil {
		return err
	}

	m.broadcastDeal(rm)

	for i, s := range seats {
		if s.Automated {
			go bot.Run(rm.Match, i, bot.AutoSource{}, m.botDelay)
		}
	}

	utils.Print.Info("match started", "room", rm.ID, "variant", rm.Variant, "players", rm.Match.SeatNames())
	return nil
}

// broadcastDeal sends each human seat its private hand plus the public
// trump info. The original showed everyone's hand to everyone; here only
// the trump card is public.
func (m *GameManager) broadcastDeal(rm *room.Room) {
	names := rm.Match.SeatNames()
	humans := make([]string, 0, len(names))

	for i, s := range rm.Match.Seats() {
		if s.Automated {
			continue
		}
		humans = append(humans, s.Name)
		hand, _ := rm.Match.Hand(i)
		m.hub.SendToPlayer(s.Name, websocket.OutgoingMessage{
			Event: "deal_hand",
			Data: map[string]any{
				"room":    rm.ID,
				"seat":    i,
				"hand":    hand,
				"players": names,
			},
		})
	}

	m.hub.BroadcastToPlayers(humans, websocket.OutgoingMessage{
		Event: "match_started",
		Data: map[string]any{
			"room":      rm.ID,
			"variant":   rm.Variant,
			"players":   names,
			"trumpCard": rm.Match.TrumpCard().String(),
			"trumpSuit": rm.Match.TrumpSuit().String(),
		},
	})
}

// HandlePlayerMessage is the single entry point for Hub.OnIncoming.
func (m *GameManager) HandlePlayerMessage(msg websocket.IncomingMessage) {
	switch msg.Event {
	case "play_card":
		token, _ := msg.Data.(string)
		// AwaitAndSubmit blocks until it is this seat's turn, so the
		// hub loop must not run it inline.
		go m.playCard(msg.From, token)

	case "hand":
		m.sendHand(msg.From)

	case "history":
		m.sendHistory(msg.From)

	case "ranking":
		m.sendRanking(msg.From)

	case "chat":
		m.relayChat(msg.From, msg.Data)

	case "leave":
		m.leave(msg.From)
	}
}

func (m *GameManager) lookup(name string) (*room.Room, int, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	roomID, ok := m.playerRoom[name]
	if !ok {
		return nil, 0, false
	}
	rm, ok := m.rooms[roomID]
	if !ok {
		return nil, 0, false
	}
	return rm, m.playerSeat[name], true
}

func (m *GameManager) playCard(name, token string) {
	rm, seat, ok := m.lookup(name)
	if !ok {
		m.hub.SendToPlayer(name, errMsg("no active match"))
		return
	}

	out, err := rm.Match.AwaitAndSubmit(seat, token)
	if err != nil {
		// recoverable: state untouched, the seat keeps its turn
		m.hub.SendToPlayer(name, errMsg(err.Error()))
		return
	}

	humans := m.humanNames(rm)
	m.hub.BroadcastToPlayers(humans, websocket.OutgoingMessage{
		Event: "card_played",
		Data: map[string]any{
			"room": rm.ID,
			"seat": seat,
			"card": out.Played.String(),
		},
	})

	if out.TrickDone {
		m.hub.BroadcastToPlayers(humans, websocket.OutgoingMessage{
			Event: "trick_result",
			Data: map[string]any{
				"room":    rm.ID,
				"winner":  out.Resolution.Winner,
				"team":    out.Resolution.Team + 1,
				"summary": out.Resolution.Summary,
				"reason":  out.Resolution.Reason,
				"scores":  out.Scores,
			},
		})
	}
}

func (m *GameManager) sendHand(name string) {
	rm, seat, ok := m.lookup(name)
	if !ok {
		m.hub.SendToPlayer(name, errMsg("no active match"))
		return
	}
	hand, err := rm.Match.Hand(seat)
	if err != nil {
		m.hub.SendToPlayer(name, errMsg(err.Error()))
		return
	}
	m.hub.SendToPlayer(name, websocket.OutgoingMessage{
		Event: "hand",
		Data:  map[string]any{"room": rm.ID, "seat": seat, "hand": hand},
	})
}

func (m *GameManager) sendHistory(name string) {
	rm, _, ok := m.lookup(name)
	if !ok {
		m.hub.SendToPlayer(name, errMsg("no active match"))
		return
	}
	m.hub.SendToPlayer(name, websocket.OutgoingMessage{
		Event: "history",
		Data:  map[string]any{"room": rm.ID, "history": rm.Match.History(0)},
	})
}

func (m *GameManager) sendRanking(name string) {
	entries, err := m.ledger.Top(context.Background(), 20)
	if err != nil {
		m.hub.SendToPlayer(name, errMsg(err.Error()))
		return
	}
	m.hub.SendToPlayer(name, websocket.OutgoingMessage{
		Event: "ranking",
		Data:  map[string]any{"ranking": entries},
	})
}

func (m *GameManager) relayChat(name string, text any) {
	rm, _, ok := m.lookup(name)
	if !ok {
		return
	}
	m.hub.BroadcastToPlayers(m.humanNames(rm), websocket.OutgoingMessage{
		Event: "chat",
		Data:  map[string]any{"from": name, "text": text},
	})
}

// leave hands the seat's remaining turns to the automated move source so
// the other three seats are not stalled forever.
func (m *GameManager) leave(name string) {
	rm, seat, ok := m.lookup(name)
	if !ok {
		return
	}
	if err := rm.Match.Leave(seat); err != nil {
		return
	}
	m.TakeOverSeat(rm, seat)

	m.mu.Lock()
	delete(m.playerRoom, name)
	delete(m.playerSeat, name)
	m.mu.Unlock()
	m.registry.Release(name)

	m.hub.BroadcastToPlayers(m.humanNames(rm), websocket.OutgoingMessage{
		Event: "player_left",
		Data:  map[string]any{"room": rm.ID, "seat": seat, "name": name},
	})
}

// TakeOverSeat runs an automated source for a seat whose player is gone.
// It also backs Registry.OnSeatAbandoned for leaves over HTTP.
func (m *GameManager) TakeOverSeat(rm *room.Room, seat int) {
	m.mu.Lock()
	for name, id := range m.playerRoom {
		if id == rm.ID && m.playerSeat[name] == seat {
			delete(m.playerRoom, name)
			delete(m.playerSeat, name)
			break
		}
	}
	m.mu.Unlock()

	go bot.Run(rm.Match, seat, bot.AutoSource{}, m.botDelay)
}

// finalize runs once per match, triggered by the engine when all hands
// are empty.
func (m *GameManager) finalize(rm *room.Room, res match.Result) {
	ctx := context.Background()

	if err := m.ledger.RecordWin(ctx, res.WinnerNames); err != nil {
		utils.Print.Error("ledger update failed", "room", rm.ID, "err", err)
	}
	if m.sink != nil {
		if err := m.sink.Append(ctx, res); err != nil {
			utils.Print.Error("persist failed", "room", rm.ID, "err", err)
		}
	}

	m.hub.BroadcastToPlayers(m.humanNames(rm), websocket.OutgoingMessage{
		Event: "match_finished",
		Data: map[string]any{
			"room":    rm.ID,
			"winner":  res.WinnerTeam,
			"scores":  res.Scores,
			"history": res.History,
		},
	})

	m.mu.Lock()
	delete(m.rooms, rm.ID)
	for _, p := range res.Players {
		if m.playerRoom[p] == rm.ID {
			delete(m.playerRoom, p)
			delete(m.playerSeat, p)
		}
	}
	m.mu.Unlock()

	for _, p := range res.Players {
		m.registry.Release(p)
	}
	m.registry.Reset(rm)

	utils.Print.Info("match finished", "room", rm.ID, "winnerTeam", res.WinnerTeam, "scores", res.Scores)
}

func (m *GameManager) humanNames(rm *room.Room) []string {
	seats := rm.Match.Seats()
	out := make([]string, 0, len(seats))
	for _, s := range seats {
		if !s.Automated && !s.Gone {
			out = append(out, s.Name)
		}
	}
	return out
}

func errMsg(text string) websocket.OutgoingMessage {
	return websocket.OutgoingMessage{
		Event: "error",
		Data:  map[string]any{"error": text},
	}
}
