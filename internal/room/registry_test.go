package room

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"dourado/internal/game/deck"
	"dourado/internal/game/match"
)

func TestAssignSingleplayer(t *testing.T) {
	reg := NewRegistry()

	ready := make(chan *Room, 1)
	reg.OnRoomReady = func(rm *Room) { ready <- rm }

	rm, seat, err := reg.Assign("ana", true, deck.VariantReduced)
	assert.NoError(t, err)
	assert.Equal(t, 0, seat)
	assert.True(t, rm.Singleplayer)

	seats := rm.Match.Seats()
	assert.Len(t, seats, 4)
	assert.False(t, seats[0].Automated)
	for i := 1; i < 4; i++ {
		assert.True(t, seats[i].Automated, "seat %d should be a bot", i)
	}

	select {
	case got := <-ready:
		assert.Equal(t, rm.ID, got.ID)
	case <-time.After(time.Second):
		t.Fatal("OnRoomReady never fired for singleplayer room")
	}
}

func TestAssignFirstFit(t *testing.T) {
	reg := NewRegistry()

	ready := make(chan *Room, 1)
	reg.OnRoomReady = func(rm *Room) { ready <- rm }

	rm1, seat, err := reg.Assign("ana", false, deck.VariantReduced)
	assert.NoError(t, err)
	assert.Equal(t, 0, seat)

	// the next joins land in the same room, in seat order
	for i, name := range []string{"bia", "caio"} {
		rm, seat, err := reg.Assign(name, false, deck.VariantFull) // variant of joiners is ignored
		assert.NoError(t, err)
		assert.Equal(t, rm1.ID, rm.ID)
		assert.Equal(t, i+1, seat)
	}

	select {
	case <-ready:
		t.Fatal("room fired ready before the fourth seat")
	default:
	}

	rm, seat, err := reg.Assign("duda", false, deck.VariantReduced)
	assert.NoError(t, err)
	assert.Equal(t, rm1.ID, rm.ID)
	assert.Equal(t, 3, seat)

	select {
	case got := <-ready:
		assert.Equal(t, rm1.ID, got.ID)
	case <-time.After(time.Second):
		t.Fatal("OnRoomReady never fired at four seats")
	}

	// room is full now: a fifth player opens a new one
	rm2, seat, err := reg.Assign("eva", false, deck.VariantReduced)
	assert.NoError(t, err)
	assert.NotEqual(t, rm1.ID, rm2.ID)
	assert.Equal(t, 0, seat)
}

func TestAssignInvalidVariant(t *testing.T) {
	reg := NewRegistry()
	_, _, err := reg.Assign("ana", true, deck.Variant("canasta"))
	assert.ErrorIs(t, err, deck.ErrInvalidVariant)
}

func TestAssignAlreadySeated(t *testing.T) {
	reg := NewRegistry()

	_, _, err := reg.Assign("ana", false, deck.VariantReduced)
	assert.NoError(t, err)

	_, _, err = reg.Assign("ana", false, deck.VariantReduced)
	assert.ErrorIs(t, err, ErrAlreadySeated)

	reg.Release("ana")
	_, _, err = reg.Assign("ana", false, deck.VariantReduced)
	assert.NoError(t, err)
}

func TestSingleplayerNeverShared(t *testing.T) {
	reg := NewRegistry()

	rm1, _, err := reg.Assign("ana", true, deck.VariantReduced)
	assert.NoError(t, err)

	rm2, _, err := reg.Assign("bia", false, deck.VariantReduced)
	assert.NoError(t, err)
	assert.NotEqual(t, rm1.ID, rm2.ID, "multiplayer join must not land in a singleplayer room")
}

func TestResetReplacesFinishedMatch(t *testing.T) {
	reg := NewRegistry()
	rm, _, err := reg.Assign("ana", true, deck.VariantReduced)
	assert.NoError(t, err)

	assert.NoError(t, rm.Match.Start(deck.NewFactory(1)))
	old := rm.Match
	for !old.Finished() {
		_, err := old.AwaitAndSubmit(old.CurrentTurn(), match.AutoToken)
		assert.NoError(t, err)
	}

	reg.Reset(rm)
	assert.NotSame(t, old, rm.Match, "finished match must be replaced, not reused")
	assert.Equal(t, match.PhaseForming, rm.Match.Phase())
}
