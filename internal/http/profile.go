package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/mrlokans/authkeeper/internal/auth"
)

// ProfileController serves the authenticated caller's own account.
type ProfileController struct {
	accounts AccountManager
	log      zerolog.Logger
}

func NewProfileController(accounts AccountManager, log zerolog.Logger) *ProfileController {
	return &ProfileController{accounts: accounts, log: log}
}

// Profile handles GET /api/profile.
func (pc *ProfileController) Profile(c *gin.Context) {
	subject := auth.GetSubject(c)
	if subject == "" {
		respondError(c, http.StatusUnauthorized, MessageMissingSubject)
		return
	}

	view, err := pc.accounts.GetAccount(c.Request.Context(), subject)
	if err != nil {
		respondAccountError(c, pc.log, err)
		return
	}
	respondSuccess(c, view)
}

type whoamiResponse struct {
	Subject  string `json:"sub"`
	Username string `json:"username"`
}

// Whoami handles GET /api/protected/whoami. It answers from the verified
// token alone, without touching the store.
func (pc *ProfileController) Whoami(c *gin.Context) {
	identity, ok := auth.IdentityFromContext(c.Request.Context())
	if !ok {
		respondError(c, http.StatusUnauthorized, MessageMissingSubject)
		return
	}
	respondSuccess(c, whoamiResponse{Subject: identity.Subject, Username: identity.Username})
}
