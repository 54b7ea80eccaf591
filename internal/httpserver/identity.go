package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
	identitysvc "jerseyshop/internal/service/identity"
)

type adminLoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (h *handler) register(c *gin.Context) {
	var req identitysvc.RegisterInput
	if err := bindJSON(c, "http.register", &req); err != nil {
		writeError(c, h.logger, err)
		return
	}
	sess, created, err := h.IdentitySvc.Register(c.Request.Context(), req)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	if created {
		respond(c, http.StatusCreated, sess, "User registered successfully")
		return
	}
	respond(c, http.StatusOK, sess, "User found")
}

func (h *handler) adminLogin(c *gin.Context) {
	var req adminLoginRequest
	if err := bindJSON(c, "http.admin_login", &req); err != nil {
		writeError(c, h.logger, err)
		return
	}
	sess, err := h.IdentitySvc.AdminLogin(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	respond(c, http.StatusOK, sess, "Login successful")
}

func (h *handler) me(c *gin.Context) {
	u, err := h.IdentitySvc.Me(c.Request.Context(), caller(c))
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	respond(c, http.StatusOK, u, "")
}

func (h *handler) getUser(c *gin.Context) {
	u, err := h.IdentitySvc.GetUser(c.Request.Context(), caller(c), c.Param("id"))
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	respond(c, http.StatusOK, u, "")
}
