package middleware

import (
	"crypto/ed25519"
	"net/http"

	"github.com/bwmarrin/discordgo"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"osrs-bingo.backend/pkg/logger"
)

// SignatureMiddleware authenticates interaction requests with the
// platform's ed25519 scheme. discordgo.VerifyInteraction checks the
// signature and timestamp headers against the raw body and restores
// the body for the handler.
func SignatureMiddleware(pubKey ed25519.PublicKey) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !discordgo.VerifyInteraction(c.Request, pubKey) {
			logger.Warn(c.Request.Context(), "interaction signature rejected",
				zap.String("client_ip", c.ClientIP()))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "invalid request signature"})
			return
		}

		c.Next()
	}
}
