package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h *handlers) listFavorites(c *gin.Context) {
	products, err := h.deps.Favorites.List(c.Request.Context(), userID(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"results": h.products(products)})
}

func (h *handlers) toggleFavorite(c *gin.Context) {
	productID := c.Param("productId")
	favorite, err := h.deps.Favorites.Toggle(c.Request.Context(), userID(c), productID)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"productId": productID, "favorite": favorite})
}

func (h *handlers) removeFavorite(c *gin.Context) {
	if err := h.deps.Favorites.Remove(c.Request.Context(), userID(c), c.Param("productId")); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *handlers) clearFavorites(c *gin.Context) {
	if err := h.deps.Favorites.Clear(c.Request.Context(), userID(c)); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
