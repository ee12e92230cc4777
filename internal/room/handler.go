package room

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"dourado/internal/game/deck"
	"dourado/internal/game/match"
)

type Handler struct {
	reg *Registry
}

func NewHandler(reg *Registry) *Handler {
	return &Handler{reg: reg}
}

// POST /room/join  body: {singleplayer, variant}
func (h *Handler) Join(c *gin.Context) {
	var req JoinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	name := c.GetString("name") // injected by the JWT middleware

	rm, seat, err := h.reg.Assign(name, req.Singleplayer, deck.Variant(req.Variant))
	switch {
	case errors.Is(err, deck.ErrInvalidVariant):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	case errors.Is(err, ErrAlreadySeated):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, JoinResponse{
		RoomID:  rm.ID,
		Seat:    seat,
		Waiting: len(rm.Match.Seats()) < 4,
		Variant: string(rm.Variant),
		Players: rm.Match.SeatNames(),
	})
}

// POST /room/leave
func (h *Handler) Leave(c *gin.Context) {
	name := c.GetString("name")

	rm, ok := h.reg.RoomOf(name)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "not seated"})
		return
	}
	for i, s := range rm.Match.Seats() {
		if s.Name == name {
			_ = rm.Match.Leave(i)
			if h.reg.OnSeatAbandoned != nil && rm.Match.Phase() == match.PhaseInProgress {
				go h.reg.OnSeatAbandoned(rm, i)
			}
			break
		}
	}
	h.reg.Release(name)
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
