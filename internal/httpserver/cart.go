package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"luzeouro/internal/domain"
	cartsvc "luzeouro/internal/service/cart"
)

type addItemRequest struct {
	ProductID string `json:"productId"`
}

type quantityRequest struct {
	Quantity *int `json:"quantity"`
}

type shippingRequest struct {
	PostalCode string `json:"postalCode"`
}

func (h *handlers) viewCart(c *gin.Context) {
	view, err := h.deps.Carts.View(c.Request.Context(), userID(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, h.cartView(view))
}

// cartCount serves the header badge. Storage errors yield a zero count.
func (h *handlers) cartCount(c *gin.Context) {
	count := 0
	for _, line := range h.deps.Carts.LoadCart(c.Request.Context(), userID(c)) {
		count += line.Quantity
	}
	c.JSON(http.StatusOK, gin.H{"itemCount": count})
}

func (h *handlers) addCartItem(c *gin.Context) {
	var req addItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid json body")
		return
	}
	view, err := h.deps.Carts.AddProduct(c.Request.Context(), userID(c), req.ProductID)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, h.cartView(view))
}

func (h *handlers) setCartQuantity(c *gin.Context) {
	var req quantityRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Quantity == nil {
		badRequest(c, "quantity required")
		return
	}
	view, err := h.deps.Carts.SetQuantity(c.Request.Context(), userID(c), c.Param("lineId"), *req.Quantity)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, h.cartView(view))
}

func (h *handlers) removeCartItem(c *gin.Context) {
	view, err := h.deps.Carts.RemoveLine(c.Request.Context(), userID(c), c.Param("lineId"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, h.cartView(view))
}

func (h *handlers) resolveShipping(c *gin.Context) {
	var req shippingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid json body")
		return
	}
	view, err := h.deps.Carts.ResolveShipping(c.Request.Context(), userID(c), req.PostalCode)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, h.cartView(view))
}

// checkout accepts the payment method either as a key or as its label.
func (h *handlers) checkout(c *gin.Context) {
	var form cartsvc.CheckoutForm
	if err := c.ShouldBindJSON(&form); err != nil {
		badRequest(c, "invalid json body")
		return
	}
	form.Payment.Method = domain.ParsePaymentMethod(string(form.Payment.Method))
	order, err := h.deps.Carts.SubmitOrder(c.Request.Context(), userID(c), form)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, order)
}
