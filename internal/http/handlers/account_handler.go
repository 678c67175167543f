// README: Account handlers (sign up, user login, admin login, logout).
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"taxi/internal/http/middleware"
)

type AccountHandler struct {
	accounts AccountService
	sessions SessionStore
}

func NewAccountHandler(accounts AccountService, sessions SessionStore) *AccountHandler {
	return &AccountHandler{accounts: accounts, sessions: sessions}
}

type credentialsReq struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type sessionResp struct {
	Token    string `json:"token"`
	Username string `json:"username"`
	Admin    bool   `json:"admin"`
}

func (h *AccountHandler) SignUp(c *gin.Context) {
	var req credentialsReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	if err := h.accounts.Create(c.Request.Context(), req.Username, req.Password); err != nil {
		writeServiceError(c, err)
		return
	}
	writeJSON(c, http.StatusCreated, gin.H{"username": req.Username, "message": "Account created. Please login."})
}

func (h *AccountHandler) Login(c *gin.Context) {
	var req credentialsReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	sess, err := h.accounts.Authenticate(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	token, err := h.sessions.Create(c.Request.Context(), sess)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, sessionResp{Token: token, Username: sess.Username})
}

func (h *AccountHandler) AdminLogin(c *gin.Context) {
	var req credentialsReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	sess, err := h.accounts.AuthenticateAdmin(req.Username, req.Password)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	token, err := h.sessions.Create(c.Request.Context(), sess)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, sessionResp{Token: token, Username: sess.Username, Admin: true})
}

func (h *AccountHandler) Logout(c *gin.Context) {
	if err := h.sessions.Delete(c.Request.Context(), middleware.CallerToken(c)); err != nil {
		writeServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
