package auth

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"dourado/config"
)

type LoginRequest struct {
	Name string `json:"name" binding:"required"`
}

type Handler struct{}

func NewHandler() *Handler {
	return &Handler{}
}

// Login issues a JWT for a display name. There are no accounts: the name
// is the identity for seat assignment and the ranking ledger.
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": "bad request"})
		return
	}

	name := strings.TrimSpace(req.Name)
	if name == "" || len(name) > 32 {
		c.JSON(400, gin.H{"error": "invalid name"})
		return
	}

	claims := jwt.MapClaims{
		"sub": name,
		"iat": time.Now().Unix(),
		"exp": time.Now().Add(time.Hour * 24).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	jwtStr, err := token.SignedString([]byte(config.C.JWT.Secret))
	if err != nil {
		c.JSON(500, gin.H{"error": "jwt generation failed"})
		return
	}

	c.JSON(200, gin.H{"jwt": jwtStr})
}
