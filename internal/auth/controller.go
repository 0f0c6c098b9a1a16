package auth

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"seatly/internal/shared/config"
	"seatly/internal/shared/utils/response"
	"seatly/pkg/logger"
)

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=1"`
}

type LoginResponse struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresAt   time.Time `json:"expires_at"`
}

type Controller struct {
	cfg *config.Config
	log *logger.Logger
}

func NewController(cfg *config.Config, log *logger.Logger) *Controller {
	return &Controller{cfg: cfg, log: log}
}

// Login checks the configured admin credential pair and issues a JWT.
func (c *Controller) Login(ctx *gin.Context) {
	var req LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request data", nil, err.Error())
		return
	}

	// Same rejection for wrong email and wrong password.
	if req.Email != c.cfg.Admin.Email {
		c.log.LogAuthFailure(ctx.Request.Context(), "unknown admin email", ctx.ClientIP())
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "Invalid credentials", nil, nil)
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(c.cfg.Admin.PasswordHash), []byte(req.Password)); err != nil {
		c.log.LogAuthFailure(ctx.Request.Context(), "password mismatch", ctx.ClientIP())
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "Invalid credentials", nil, nil)
		return
	}

	token, expiresAt, err := GenerateToken(c.cfg, req.Email)
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to issue token", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Login successful", LoginResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresAt:   expiresAt,
	}, nil)
}
