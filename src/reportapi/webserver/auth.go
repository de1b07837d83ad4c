package webserver

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type Auth struct {
	jwtSecret []byte
	tokenHash string
}

func NewAuth(secret []byte, tokenHash string) Auth {
	return Auth{jwtSecret: secret, tokenHash: tokenHash}
}

// Login exchanges the operator token for a short-lived bearer token.
func (a Auth) Login(c *gin.Context) {
	var req struct {
		Token string `json:"token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"err": err.Error()})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(a.tokenHash), []byte(req.Token)); err != nil {
		log.Printf("failed operator login from %s", c.ClientIP())
		c.JSON(http.StatusUnauthorized, gin.H{"err": "invalid operator token"})
		return
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "operator",
		"jti": uuid.NewString(),
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	signed, err := tok.SignedString(a.jwtSecret)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"err": "failed to issue token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": signed})
}
