package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"luzeouro/internal/domain"
	profilesvc "luzeouro/internal/service/profile"
)

func (h *handlers) getProfile(c *gin.Context) {
	p, err := h.deps.Profiles.Get(c.Request.Context(), userID(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *handlers) updateProfile(c *gin.Context) {
	var req profilesvc.UpdateInput
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid json body")
		return
	}
	p, err := h.deps.Profiles.Update(c.Request.Context(), userID(c), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *handlers) getTheme(c *gin.Context) {
	t, err := h.deps.Profiles.Theme(c.Request.Context(), userID(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, t)
}

func (h *handlers) toggleTheme(c *gin.Context) {
	t, err := h.deps.Profiles.ToggleTheme(c.Request.Context(), userID(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, t)
}

func (h *handlers) orderHistory(c *gin.Context) {
	orders, err := h.deps.Orders.History(c.Request.Context(), userID(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	if orders == nil {
		orders = []domain.Order{}
	}
	c.JSON(http.StatusOK, gin.H{"results": orders})
}
