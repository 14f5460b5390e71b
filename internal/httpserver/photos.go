package httpserver

import (
	"strings"

	"luzeouro/internal/domain"
)

// photoResolver returns a func that turns stored photo references into
// absolute URLs. References that are already absolute are left alone.
func photoResolver(baseURL string) func(string) string {
	base := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	return func(ref string) string {
		ref = strings.TrimSpace(ref)
		if ref == "" || base == "" {
			return ref
		}
		if strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
			return ref
		}
		return base + "/" + strings.TrimLeft(ref, "/")
	}
}

func (h *handlers) product(p domain.Product) domain.Product {
	p.PhotoURL = h.photos(p.PhotoURL)
	return p
}

func (h *handlers) products(in []domain.Product) []domain.Product {
	out := make([]domain.Product, 0, len(in))
	for _, p := range in {
		out = append(out, h.product(p))
	}
	return out
}

func (h *handlers) cartView(v domain.CartView) domain.CartView {
	lines := make([]domain.CartLineView, 0, len(v.Lines))
	for _, l := range v.Lines {
		l.Product = h.product(l.Product)
		lines = append(lines, l)
	}
	v.Lines = lines
	return v
}
