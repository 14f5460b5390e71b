// Package postal resolves Brazilian postal codes (CEP) into street addresses.
package postal

import (
	"context"
	"errors"
	"strings"
)

var (
	// ErrNotFound means the lookup service answered but knows no such code.
	ErrNotFound = errors.New("postal code not found")
	// ErrCacheMiss is returned by caches for absent keys.
	ErrCacheMiss = errors.New("cache miss")
)

// Address is a resolved postal code.
type Address struct {
	PostalCode string `json:"postalCode"`
	Street     string `json:"street"`
	District   string `json:"district"`
	City       string `json:"city"`
	State      string `json:"state"`
}

// Line renders "street, district, city - state", skipping empty parts.
func (a Address) Line() string {
	var parts []string
	for _, p := range []string{a.Street, a.District, a.City} {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	line := strings.Join(parts, ", ")
	if st := strings.TrimSpace(a.State); st != "" {
		if line == "" {
			return st
		}
		line += " - " + st
	}
	return line
}

// Lookuper resolves an already normalized 8 digit postal code.
type Lookuper interface {
	Lookup(ctx context.Context, postalCode string) (Address, error)
}

type Cache interface {
	Get(ctx context.Context, postalCode string) (Address, error)
	Set(ctx context.Context, postalCode string, addr Address) error
}
