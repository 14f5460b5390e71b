package domain

import "time"

type Product struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Price       Money     `json:"price"`
	Material    string    `json:"material"`
	CategoryKey string    `json:"category"`
	PhotoURL    string    `json:"photoUrl"`
	CreatedAt   time.Time `json:"createdAt"`
}

// PriceBand is one of the fixed price ranges offered by the catalog filter.
type PriceBand string

const (
	PriceUpTo500      PriceBand = "up_to_500"
	Price500To1000    PriceBand = "500_to_1000"
	Price1000To1500   PriceBand = "1000_to_1500"
	PriceAbove1500    PriceBand = "above_1500"
	priceBandBoundary           = Money(50000)
)

// PriceBands lists the bands in display order.
var PriceBands = []PriceBand{PriceUpTo500, Price500To1000, Price1000To1500, PriceAbove1500}

// Bounds returns the exclusive lower and inclusive upper limit of the band.
// A zero upper limit means unbounded.
func (b PriceBand) Bounds() (lower, upper Money, ok bool) {
	switch b {
	case PriceUpTo500:
		return -1, priceBandBoundary, true
	case Price500To1000:
		return priceBandBoundary, 2 * priceBandBoundary, true
	case Price1000To1500:
		return 2 * priceBandBoundary, 3 * priceBandBoundary, true
	case PriceAbove1500:
		return 3 * priceBandBoundary, 0, true
	}
	return 0, 0, false
}

func (b PriceBand) Valid() bool {
	_, _, ok := b.Bounds()
	return ok
}

// Contains reports whether price falls inside the band.
func (b PriceBand) Contains(price Money) bool {
	lower, upper, ok := b.Bounds()
	if !ok {
		return false
	}
	if price <= lower {
		return false
	}
	return upper == 0 || price <= upper
}

// ProductFilter narrows a catalog listing. Empty fields do not filter.
type ProductFilter struct {
	CategoryKey string
	Material    string
	Band        PriceBand
}
