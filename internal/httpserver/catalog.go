package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"luzeouro/internal/domain"
)

func (h *handlers) listCategories(c *gin.Context) {
	cats, err := h.deps.Categories.List(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	if cats == nil {
		cats = []domain.Category{}
	}
	c.JSON(http.StatusOK, gin.H{"results": cats})
}

// listProducts filters by the optional category, material and price query
// parameters. Empty parameters mean "all".
func (h *handlers) listProducts(c *gin.Context) {
	filter := domain.ProductFilter{
		CategoryKey: c.Query("category"),
		Material:    c.Query("material"),
		Band:        domain.PriceBand(c.Query("price")),
	}
	products, err := h.deps.Products.List(c.Request.Context(), filter)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"results": h.products(products)})
}

func (h *handlers) getProduct(c *gin.Context) {
	p, err := h.deps.Products.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, h.product(*p))
}

func (h *handlers) catalogFilters(c *gin.Context) {
	facets, err := h.deps.Products.Filters(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, facets)
}
