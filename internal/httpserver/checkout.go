package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
	cartsvc "jerseyshop/internal/service/cart"
	ordersvc "jerseyshop/internal/service/order"
	paymentsvc "jerseyshop/internal/service/payment"
)

func (h *handler) getCart(c *gin.Context) {
	summary, err := h.CartSvc.Get(c.Request.Context(), caller(c).UserID)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	respond(c, http.StatusOK, summary, "")
}

func (h *handler) addCartItem(c *gin.Context) {
	var req cartsvc.AddInput
	if err := bindJSON(c, "http.add_cart_item", &req); err != nil {
		writeError(c, h.logger, err)
		return
	}
	item, err := h.CartSvc.AddItem(c.Request.Context(), caller(c).UserID, req)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	respond(c, http.StatusCreated, item, "Item added to cart")
}

func (h *handler) updateCartItem(c *gin.Context) {
	var req cartsvc.UpdateInput
	if err := bindJSON(c, "http.update_cart_item", &req); err != nil {
		writeError(c, h.logger, err)
		return
	}
	item, err := h.CartSvc.UpdateItem(c.Request.Context(), caller(c).UserID, c.Param("id"), req)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	if item == nil {
		respond(c, http.StatusOK, nil, "Item removed from cart")
		return
	}
	respond(c, http.StatusOK, item, "")
}

func (h *handler) removeCartItem(c *gin.Context) {
	if err := h.CartSvc.RemoveItem(c.Request.Context(), caller(c).UserID, c.Param("id")); err != nil {
		writeError(c, h.logger, err)
		return
	}
	respond(c, http.StatusOK, nil, "Item removed from cart")
}

func (h *handler) clearCart(c *gin.Context) {
	if err := h.CartSvc.Clear(c.Request.Context(), caller(c).UserID); err != nil {
		writeError(c, h.logger, err)
		return
	}
	respond(c, http.StatusOK, nil, "Cart cleared")
}

func (h *handler) createOrder(c *gin.Context) {
	var req ordersvc.CreateInput
	if err := bindJSON(c, "http.create_order", &req); err != nil {
		writeError(c, h.logger, err)
		return
	}
	o, err := h.OrderSvc.Create(c.Request.Context(), req)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	respond(c, http.StatusCreated, o, "Order created successfully")
}

func (h *handler) getOrder(c *gin.Context) {
	o, err := h.OrderSvc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	respond(c, http.StatusOK, o, "")
}

func (h *handler) listMyOrders(c *gin.Context) {
	orders, err := h.OrderSvc.ListByUser(c.Request.Context(), caller(c).UserID)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	respond(c, http.StatusOK, orders, "")
}

func (h *handler) processPayment(c *gin.Context) {
	var req paymentsvc.ProcessInput
	if err := bindJSON(c, "http.process_payment", &req); err != nil {
		writeError(c, h.logger, err)
		return
	}
	res, err := h.PaymentSvc.Process(c.Request.Context(), req)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	respond(c, http.StatusCreated, res, "Payment successful! Download links are now available.")
}

func (h *handler) getPayment(c *gin.Context) {
	p, err := h.PaymentSvc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	respond(c, http.StatusOK, p, "")
}
