package handler

import (
	"net/http"

	"github.com/Josesitobb/adcu-client/config"
	"github.com/Josesitobb/adcu-client/middleware"
	"github.com/Josesitobb/adcu-client/model"
	"github.com/Josesitobb/adcu-client/service"
	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	cfg   *config.StubConfig
	store *service.Store
}

func NewAuthHandler(cfg *config.StubConfig, store *service.Store) *AuthHandler {
	return &AuthHandler{cfg: cfg, store: store}
}

type signInRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type registerRequest struct {
	Name     string `json:"name" binding:"required"`
	IDCard   string `json:"idCard"`
	Email    string `json:"email" binding:"required"`
	Phone    string `json:"phone"`
	Post     string `json:"post"`
	Role     string `json:"role"`
	Password string `json:"password" binding:"required"`
}

// SignIn authenticates a user and issues a token.
func (h *AuthHandler) SignIn(c *gin.Context) {
	var req signInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid data")
		return
	}

	user, err := h.store.Authenticate(req.Email, req.Password)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "invalid credentials")
		return
	}

	token, _, err := middleware.GenerateToken(user.Email, user.Role, h.cfg)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to generate token")
		return
	}

	respondOK(c, gin.H{"token": token, "user": user})
}

// Logout ends the session. Tokens are stateless, so the work happens on the
// client; the endpoint exists for the contract.
func (h *AuthHandler) Logout(c *gin.Context) {
	respondOK(c, nil)
}

// Register creates a new platform account. Admin only.
func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid data")
		return
	}

	role := req.Role
	if role == "" {
		role = model.RoleFuncionario
	}

	user, err := h.store.CreateUser(model.User{
		Name:   req.Name,
		IDCard: req.IDCard,
		Email:  req.Email,
		Phone:  req.Phone,
		Post:   req.Post,
		Role:   role,
		State:  true,
	}, req.Password)
	if err != nil {
		if err == service.ErrEmailTaken {
			respondError(c, http.StatusBadRequest, "email already registered")
			return
		}
		respondError(c, http.StatusInternalServerError, "internal server error")
		return
	}

	respondCreated(c, user)
}

// Verify resolves the current token to its profile. This endpoint predates
// the envelope cleanup and still answers under the legacy "date" key.
func (h *AuthHandler) Verify(c *gin.Context) {
	user, err := h.store.GetUserByEmail(middleware.GetUser(c))
	if err != nil {
		respondError(c, http.StatusNotFound, "not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "date": user})
}

// Refresh issues a fresh token for the current session.
func (h *AuthHandler) Refresh(c *gin.Context) {
	token, _, err := middleware.GenerateToken(middleware.GetUser(c), middleware.GetRole(c), h.cfg)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to generate token")
		return
	}
	respondOK(c, gin.H{"token": token})
}
