package httpserver

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"jerseyshop/internal/domain"
	categorysvc "jerseyshop/internal/service/category"
	jerseysvc "jerseyshop/internal/service/jersey"
)

func (h *handler) listCategories(c *gin.Context) {
	cats, err := h.CategorySvc.List(c.Request.Context())
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	respond(c, http.StatusOK, cats, "")
}

func (h *handler) getCategory(c *gin.Context) {
	cat, err := h.CategorySvc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	respond(c, http.StatusOK, cat, "")
}

func (h *handler) createCategory(c *gin.Context) {
	var req categorysvc.CreateInput
	if err := bindJSON(c, "http.create_category", &req); err != nil {
		writeError(c, h.logger, err)
		return
	}
	cat, err := h.CategorySvc.Create(c.Request.Context(), req)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	respond(c, http.StatusCreated, cat, "Category created")
}

func (h *handler) listJerseys(c *gin.Context) {
	const op = "http.list_jerseys"
	minPrice, err := centsQuery(c, op, "minPrice")
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	maxPrice, err := centsQuery(c, op, "maxPrice")
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	page, err := h.JerseySvc.List(c.Request.Context(), domain.JerseyFilter{
		CategoryID: strings.TrimSpace(c.Query("categoryId")),
		MinPrice:   minPrice,
		MaxPrice:   maxPrice,
		Search:     c.Query("search"),
		Page:       pageQuery(c),
	})
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	respondPage(c, page)
}

func (h *handler) getJersey(c *gin.Context) {
	id, err := jerseyIDParam(c, "http.get_jersey")
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	j, err := h.JerseySvc.Get(c.Request.Context(), id)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	respond(c, http.StatusOK, j, "")
}

func (h *handler) createJersey(c *gin.Context) {
	var req jerseysvc.Input
	if err := bindJSON(c, "http.create_jersey", &req); err != nil {
		writeError(c, h.logger, err)
		return
	}
	j, err := h.JerseySvc.Create(c.Request.Context(), req)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	respond(c, http.StatusCreated, j, "Jersey created")
}

func (h *handler) updateJersey(c *gin.Context) {
	const op = "http.update_jersey"
	id, err := jerseyIDParam(c, op)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	var req jerseysvc.PatchInput
	if err := bindJSON(c, op, &req); err != nil {
		writeError(c, h.logger, err)
		return
	}
	j, err := h.JerseySvc.Update(c.Request.Context(), id, req)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	respond(c, http.StatusOK, j, "Jersey updated")
}

func (h *handler) deleteJersey(c *gin.Context) {
	id, err := jerseyIDParam(c, "http.delete_jersey")
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	if err := h.JerseySvc.Delete(c.Request.Context(), id); err != nil {
		writeError(c, h.logger, err)
		return
	}
	respond(c, http.StatusOK, nil, "Jersey deleted")
}
