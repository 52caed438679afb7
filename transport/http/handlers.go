package http

import (
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/layer-3/keyring/core"
	"github.com/layer-3/keyring/service"
)

// AuthHandlers contains HTTP handlers for the credential lifecycle endpoints
type AuthHandlers struct {
	manager *service.Manager
}

// NewAuthHandlers creates new auth handlers
func NewAuthHandlers(manager *service.Manager) *AuthHandlers {
	return &AuthHandlers{
		manager: manager,
	}
}

// CredentialResponse represents a credential response
type CredentialResponse struct {
	AccessToken  string     `json:"access_token"`
	RefreshToken string     `json:"refresh_token,omitempty"`
	TokenType    string     `json:"token_type"`
	ExpiresAt    *time.Time `json:"expires_at,omitempty"`
}

func credentialResponse(credential *core.Credential) CredentialResponse {
	return CredentialResponse{
		AccessToken:  credential.AccessToken,
		RefreshToken: credential.RefreshToken,
		TokenType:    "Bearer",
		ExpiresAt:    credential.ExpiresAt,
	}
}

// Login runs the login flow
func (h *AuthHandlers) Login(c *gin.Context) {
	credential := h.manager.Login(c.Request.Context())
	if credential == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Login failed"})
		return
	}

	c.JSON(http.StatusOK, credentialResponse(credential))
}

// Refresh exchanges the refresh token for a renewed credential
func (h *AuthHandlers) Refresh(c *gin.Context) {
	credential := h.manager.RefreshTokens(c.Request.Context())
	if credential == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Failed to refresh tokens"})
		return
	}

	c.JSON(http.StatusOK, credentialResponse(credential))
}

// Logout discards the credential
func (h *AuthHandlers) Logout(c *gin.Context) {
	h.manager.Logout(c.Request.Context())

	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

// Credential returns the current credential, if any
func (h *AuthHandlers) Credential(c *gin.Context) {
	credential := h.manager.GetCredential(c.Request.Context())
	if credential == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No credential"})
		return
	}

	c.JSON(http.StatusOK, credentialResponse(credential))
}

// Status returns the current authentication status
func (h *AuthHandlers) Status(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": h.manager.Status()})
}

// StatusStream streams authentication status changes as server-sent events.
// The subscriber receives the current status immediately, then every change
// until the client disconnects.
func (h *AuthHandlers) StatusStream(c *gin.Context) {
	statuses := h.manager.ObserveStatus(c.Request.Context())

	c.Stream(func(w io.Writer) bool {
		status, ok := <-statuses
		if !ok {
			return false
		}
		c.SSEvent("status", string(status))
		return true
	})
}

// Token echoes the access token injected by the auth middleware, for
// callers that build their own outbound requests
func (h *AuthHandlers) Token(c *gin.Context) {
	token, exists := c.Get("accessToken")
	if !exists {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Token not found in context"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"access_token": token})
}
