package http

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/mrlokans/authkeeper/internal/entities"
	"github.com/mrlokans/authkeeper/internal/services"
)

// AccountManager is the account orchestration the HTTP layer drives.
type AccountManager interface {
	Register(ctx context.Context, req services.RegisterRequest) (*services.AuthResult, error)
	Login(ctx context.Context, req services.LoginRequest) (*services.AuthResult, error)
	GetAccount(ctx context.Context, id string) (*entities.UserView, error)
}

// AccountController handles registration and login.
type AccountController struct {
	accounts AccountManager
	log      zerolog.Logger
}

func NewAccountController(accounts AccountManager, log zerolog.Logger) *AccountController {
	return &AccountController{accounts: accounts, log: log}
}

// Register handles POST /api/register.
func (ac *AccountController) Register(c *gin.Context) {
	var req services.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, MessageInvalidBody)
		return
	}

	result, err := ac.accounts.Register(c.Request.Context(), req)
	if err != nil {
		respondAccountError(c, ac.log, err)
		return
	}
	respondSuccess(c, result)
}

// Login handles POST /api/login.
func (ac *AccountController) Login(c *gin.Context) {
	var req services.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, MessageInvalidBody)
		return
	}

	result, err := ac.accounts.Login(c.Request.Context(), req)
	if err != nil {
		respondAccountError(c, ac.log, err)
		return
	}
	respondSuccess(c, result)
}

// respondAccountError maps account error kinds to a 400 envelope carrying
// their message; anything else is an internal error.
func respondAccountError(c *gin.Context, log zerolog.Logger, err error) {
	if services.IsClientError(err) {
		respondBadRequest(c, err.Error())
		return
	}
	log.Error().Err(err).Str("path", c.Request.URL.Path).Msg("account request failed")
	respondInternalError(c)
}
