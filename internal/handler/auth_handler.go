package handler

import (
	"crypto/subtle"

	"github.com/gin-gonic/gin"

	jwtpkg "codehunt/giveaway/pkg/jwt"
	"codehunt/giveaway/pkg/response"
)

type AuthHandler struct {
	jwtManager     *jwtpkg.Manager
	operatorSecret string
}

func NewAuthHandler(jwtManager *jwtpkg.Manager, operatorSecret string) *AuthHandler {
	return &AuthHandler{
		jwtManager:     jwtManager,
		operatorSecret: operatorSecret,
	}
}

type TokenRequest struct {
	OperatorID string `json:"operator_id" binding:"required"`
	Secret     string `json:"secret" binding:"required"`
}

// Token exchanges the shared operator secret for a short-lived access token.
func (h *AuthHandler) Token(c *gin.Context) {
	var req TokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}

	if subtle.ConstantTimeCompare([]byte(req.Secret), []byte(h.operatorSecret)) != 1 {
		response.Unauthorized(c, "invalid operator secret")
		return
	}

	token, err := h.jwtManager.GenerateAccessToken(req.OperatorID)
	if err != nil {
		response.InternalError(c, "failed to issue token")
		return
	}

	response.Success(c, gin.H{"access_token": token})
}
