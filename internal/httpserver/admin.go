package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h *handler) dashboard(c *gin.Context) {
	d, err := h.AdminSvc.Dashboard(c.Request.Context())
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	respond(c, http.StatusOK, d, "")
}

func (h *handler) adminOrders(c *gin.Context) {
	page, err := h.AdminSvc.Orders(c.Request.Context(), c.Query("status"), pageQuery(c))
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	respondPage(c, page)
}

func (h *handler) adminPayments(c *gin.Context) {
	page, err := h.AdminSvc.Payments(c.Request.Context(), c.Query("status"), pageQuery(c))
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	respondPage(c, page)
}

func (h *handler) adminUsers(c *gin.Context) {
	page, err := h.AdminSvc.Users(c.Request.Context(), pageQuery(c))
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	respondPage(c, page)
}
