package httpserver

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"luzeouro/internal/domain"
	"luzeouro/internal/service/session"
)

type signUpResponse struct {
	User    *domain.User        `json:"user"`
	Profile *domain.UserProfile `json:"profile"`
}

// tokenRequest accepts either the password grant or the refresh grant.
type tokenRequest struct {
	GrantType    string `json:"grantType"`
	Email        string `json:"email"`
	Password     string `json:"password"`
	RefreshToken string `json:"refreshToken"`
}

type tokenResponse struct {
	User *domain.User `json:"user,omitempty"`
	session.Tokens
}

type passwordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

func (h *handlers) signUp(c *gin.Context) {
	var req session.SignUpInput
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid json body")
		return
	}
	user, profile, err := h.deps.Session.SignUp(c.Request.Context(), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, signUpResponse{User: user, Profile: profile})
}

func (h *handlers) token(c *gin.Context) {
	var req tokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid json body")
		return
	}
	switch strings.TrimSpace(req.GrantType) {
	case "", "password":
		user, tokens, err := h.deps.Session.SignIn(c.Request.Context(), req.Email, req.Password)
		if err != nil {
			h.fail(c, err)
			return
		}
		c.JSON(http.StatusOK, tokenResponse{User: user, Tokens: tokens})
	case "refresh_token":
		tokens, err := h.deps.Session.Refresh(c.Request.Context(), req.RefreshToken)
		if err != nil {
			h.fail(c, err)
			return
		}
		c.JSON(http.StatusOK, tokenResponse{Tokens: tokens})
	default:
		badRequest(c, "unsupported grant type")
	}
}

func (h *handlers) logout(c *gin.Context) {
	token := bearerToken(c)
	if token == "" {
		abortUnauthenticated(c)
		return
	}
	if err := h.deps.Session.SignOut(c.Request.Context(), token); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *handlers) me(c *gin.Context) {
	c.JSON(http.StatusOK, currentUser(c))
}

func (h *handlers) changePassword(c *gin.Context) {
	var req passwordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid json body")
		return
	}
	if err := h.deps.Session.ChangePassword(c.Request.Context(), userID(c), req.CurrentPassword, req.NewPassword); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
