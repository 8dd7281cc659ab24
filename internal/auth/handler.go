package auth

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/AleksL04/SmartKitBud/internal/session"
)

type Handler struct {
	gateway      Gateway
	registrar    *Service // nil when registration lives upstream
	codec        *session.Codec
	secureCookie bool
}

func NewHandler(gateway Gateway, registrar *Service, codec *session.Codec, secureCookie bool) *Handler {
	return &Handler{
		gateway:      gateway,
		registrar:    registrar,
		codec:        codec,
		secureCookie: secureCookie,
	}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// --------------------------------------------------
// POST /login
// --------------------------------------------------
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	if req.Email == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email and password are required"})
		return
	}

	user, upstreamToken, err := h.gateway.Login(c.Request.Context(), req.Email, req.Password)
	if errors.Is(err, ErrInvalidCredentials) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials."})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Login failed due to a server error."})
		return
	}

	token, err := h.codec.Issue(session.Payload{
		UserID:        user.ID,
		Email:         user.Email,
		UpstreamToken: upstreamToken,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Login failed due to a server error."})
		return
	}

	c.SetCookie(
		session.CookieName,
		token,
		int(h.codec.TTL().Seconds()),
		"/",
		"",
		h.secureCookie,
		true, // HttpOnly
	)

	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
		"user":    user,
		"token":   token,
	})
}

// --------------------------------------------------
// POST /register (local backend only)
// --------------------------------------------------
func (h *Handler) Register(c *gin.Context) {
	if h.registrar == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "registration is handled by the upstream store"})
		return
	}

	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	user, err := h.registrar.Register(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, user)
}

// --------------------------------------------------
// GET|POST /logout
// --------------------------------------------------
func (h *Handler) Logout(c *gin.Context) {
	// Expire the cookie immediately; tokens themselves stay valid until
	// natural expiry since there is no revocation list.
	c.SetCookie(session.CookieName, "", -1, "/", "", h.secureCookie, true)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}
