package room

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"dourado/internal/game/bot"
	"dourado/internal/game/deck"
	"dourado/internal/game/match"
)

var ErrAlreadySeated = errors.New("player already seated in a room")

// Registry assigns incoming players to rooms. Multiplayer assignment is
// first-fit: open rooms are scanned in creation order and the player
// takes the first free seat; a new room opens only when none qualifies.
// Singleplayer always opens a fresh room with three automated seats.
type Registry struct {
	mu      sync.Mutex
	rooms   []*Room          // creation order
	players map[string]*Room // name -> current room

	// OnRoomReady fires (on its own goroutine) once a room has all four
	// seats filled and can be started.
	OnRoomReady func(*Room)

	// OnSeatAbandoned fires when a player walks out of a running match,
	// so the game layer can hand the seat to an automated source.
	OnSeatAbandoned func(rm *Room, seat int)
}

func NewRegistry() *Registry {
	return &Registry{players: make(map[string]*Room)}
}

// Assign seats a player and returns the room and seat index.
func (r *Registry) Assign(name string, singleplayer bool, variant deck.Variant) (*Room, int, error) {
	if _, err := variant.HandSize(); err != nil {
		return nil, 0, err // unsupported variant is fatal to room setup
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if rm, ok := r.players[name]; ok && !rm.Match.Finished() {
		return nil, 0, fmt.Errorf("%w: %s", ErrAlreadySeated, rm.ID)
	}

	if singleplayer {
		rm := r.openRoomLocked(variant, true)
		seat, err := rm.Match.AddSeat(name, false)
		if err != nil {
			return nil, 0, err
		}
		for _, b := range bot.Names {
			if _, err := rm.Match.AddSeat(b, true); err != nil {
				return nil, 0, err
			}
		}
		r.players[name] = rm
		r.ready(rm)
		return rm, seat, nil
	}

	for _, rm := range r.rooms {
		if rm.Singleplayer || rm.Match.Phase() != match.PhaseForming {
			continue
		}
		seat, err := rm.Match.AddSeat(name, false)
		if errors.Is(err, match.ErrSeatsFull) || errors.Is(err, match.ErrMatchStarted) {
			continue
		}
		if err != nil {
			return nil, 0, err
		}
		r.players[name] = rm
		if seat == match.SeatCount-1 {
			r.ready(rm)
		}
		return rm, seat, nil
	}

	rm := r.openRoomLocked(variant, false)
	seat, err := rm.Match.AddSeat(name, false)
	if err != nil {
		return nil, 0, err
	}
	r.players[name] = rm
	return rm, seat, nil
}

func (r *Registry) openRoomLocked(variant deck.Variant, singleplayer bool) *Room {
	id := uuid.NewString()
	rm := &Room{
		ID:           id,
		Variant:      variant,
		Singleplayer: singleplayer,
		Match:        match.New(id, variant, singleplayer),
		CreatedAt:    time.Now(),
	}
	r.rooms = append(r.rooms, rm)
	return rm
}

func (r *Registry) ready(rm *Room) {
	if r.OnRoomReady != nil {
		go r.OnRoomReady(rm)
	}
}

// RoomOf returns the room a player is currently seated in.
func (r *Registry) RoomOf(name string) (*Room, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rm, ok := r.players[name]
	return rm, ok
}

// Release frees a player's seat bookkeeping once their match is over (or
// they abandoned it), so they can join again.
func (r *Registry) Release(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.players, name)
}

// Reset replaces a finished room's match with a fresh instance so the
// next group can play there. The old match is never reused.
func (r *Registry) Reset(rm *Room) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if rm.Match.Finished() {
		rm.Match = match.New(rm.ID, rm.Variant, rm.Singleplayer)
	}
}
