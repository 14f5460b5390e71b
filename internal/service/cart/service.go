// Package cart is the cart aggregation engine: it loads a user's cart
// lines, keeps derived totals consistent, quotes shipping and turns a
// valid cart into an order.
package cart

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"go.uber.org/zap"

	"luzeouro/internal/domain"
	"luzeouro/internal/events"
	"luzeouro/internal/postal"
	"luzeouro/internal/service/checkout"
)

var (
	ErrInvalidPostalCode  = errors.New("invalid postal code")
	ErrPostalCodeNotFound = errors.New("postal code not found")
	ErrPostalLookupFailed = errors.New("could not fetch postal code")
	ErrOrderFailed        = errors.New("could not place order")
)

type cartRepo interface {
	ListByUser(ctx context.Context, userID string) ([]domain.CartLineView, error)
	AddOrIncrement(ctx context.Context, userID, productID string) error
	UpdateQuantity(ctx context.Context, userID, lineID string, quantity int) error
	Delete(ctx context.Context, userID, lineID string) error
}

type orderRepo interface {
	Place(ctx context.Context, o domain.Order) (*domain.Order, error)
}

type validator interface {
	Validate(in checkout.Input) error
}

// Draft is the per-user checkout state between quoting shipping and
// submitting the order.
type Draft struct {
	PostalCode string
	Quote      *domain.ShippingQuote
}

type Deps struct {
	Carts     cartRepo
	Orders    orderRepo
	Lookup    postal.Lookuper
	Validator validator
	Publisher events.OrderPublisher
	Policy    domain.ShippingPolicy
	Logger    *zap.Logger
	DraftSize int
	DraftTTL  time.Duration
}

type Service struct {
	carts     cartRepo
	orders    orderRepo
	lookup    postal.Lookuper
	validator validator
	publisher events.OrderPublisher
	policy    domain.ShippingPolicy
	logger    *zap.Logger
	drafts    *expirable.LRU[string, Draft]
}

func New(d Deps) *Service {
	if d.Logger == nil {
		d.Logger = zap.NewNop()
	}
	if d.Publisher == nil {
		d.Publisher = events.Nop{}
	}
	if d.Validator == nil {
		d.Validator = checkout.NewValidator(checkout.DefaultRules())
	}
	if d.DraftSize <= 0 {
		d.DraftSize = 10000
	}
	if d.DraftTTL <= 0 {
		d.DraftTTL = 2 * time.Hour
	}
	return &Service{
		carts:     d.Carts,
		orders:    d.Orders,
		lookup:    d.Lookup,
		validator: d.Validator,
		publisher: d.Publisher,
		policy:    d.Policy,
		logger:    d.Logger.Named("cart"),
		drafts:    expirable.NewLRU[string, Draft](d.DraftSize, nil, d.DraftTTL),
	}
}

// CheckoutForm is what the shopper submits. Empty postal code or address
// fall back to the values resolved by ResolveShipping.
type CheckoutForm struct {
	PostalCode string                  `json:"postalCode"`
	Address    string                  `json:"address"`
	Number     string                  `json:"number"`
	Payment    domain.PaymentSelection `json:"payment"`
}

func requireUser(userID string) error {
	if strings.TrimSpace(userID) == "" {
		return domain.ErrUnauthenticated
	}
	return nil
}

// LoadCart never fails: a missing user or a repository error yields an
// empty cart and the error is logged.
func (s *Service) LoadCart(ctx context.Context, userID string) []domain.CartLineView {
	if requireUser(userID) != nil {
		return []domain.CartLineView{}
	}
	lines, err := s.carts.ListByUser(ctx, userID)
	if err != nil {
		s.logger.Warn("load cart", zap.String("user_id", userID), zap.Error(err))
		return []domain.CartLineView{}
	}
	return lines
}

// View loads the cart and recomputes subtotal, shipping and total.
func (s *Service) View(ctx context.Context, userID string) (domain.CartView, error) {
	if err := requireUser(userID); err != nil {
		return domain.CartView{}, err
	}
	lines, err := s.carts.ListByUser(ctx, userID)
	if err != nil {
		return domain.CartView{}, fmt.Errorf("load cart: %w", err)
	}
	draft, _ := s.drafts.Get(userID)
	return domain.NewCartView(lines, draft.Quote, s.policy), nil
}

// Draft returns the stored checkout draft for userID.
func (s *Service) Draft(userID string) (Draft, bool) {
	return s.drafts.Get(userID)
}

func (s *Service) AddProduct(ctx context.Context, userID, productID string) (domain.CartView, error) {
	if err := requireUser(userID); err != nil {
		return domain.CartView{}, err
	}
	if strings.TrimSpace(productID) == "" {
		return domain.CartView{}, domain.Invalid("product id required")
	}
	if _, err := uuid.Parse(productID); err != nil || len(productID) != 36 {
		return domain.CartView{}, domain.ErrNotFound
	}
	if err := s.carts.AddOrIncrement(ctx, userID, productID); err != nil {
		return domain.CartView{}, err
	}
	return s.View(ctx, userID)
}

// SetQuantity changes a line's quantity. Values below 1 are ignored and
// the current cart is returned without any write.
func (s *Service) SetQuantity(ctx context.Context, userID, lineID string, quantity int) (domain.CartView, error) {
	if err := requireUser(userID); err != nil {
		return domain.CartView{}, err
	}
	if quantity < 1 {
		return s.View(ctx, userID)
	}
	if err := s.carts.UpdateQuantity(ctx, userID, lineID, quantity); err != nil {
		return domain.CartView{}, err
	}
	return s.View(ctx, userID)
}

func (s *Service) RemoveLine(ctx context.Context, userID, lineID string) (domain.CartView, error) {
	if err := requireUser(userID); err != nil {
		return domain.CartView{}, err
	}
	if err := s.carts.Delete(ctx, userID, lineID); err != nil {
		return domain.CartView{}, err
	}
	return s.View(ctx, userID)
}

// QuoteShipping validates and resolves postalCode, then prices shipping
// for subtotal. Invalid codes never reach the lookup service.
func (s *Service) QuoteShipping(ctx context.Context, postalCode string, subtotal domain.Money) (domain.ShippingQuote, error) {
	code := domain.NormalizePostalCode(postalCode)
	if len(code) != domain.PostalCodeLength {
		return domain.ShippingQuote{}, ErrInvalidPostalCode
	}
	addr, err := s.lookup.Lookup(ctx, code)
	if err != nil {
		if errors.Is(err, postal.ErrNotFound) {
			return domain.ShippingQuote{}, ErrPostalCodeNotFound
		}
		s.logger.Warn("postal lookup", zap.String("postal_code", code), zap.Error(err))
		return domain.ShippingQuote{}, fmt.Errorf("%w: %v", ErrPostalLookupFailed, err)
	}
	return s.policy.Quote(code, addr.Line(), subtotal), nil
}

// ResolveShipping quotes against the current cart and stores the result
// in the user's draft. A failed quote clears any previous one.
func (s *Service) ResolveShipping(ctx context.Context, userID, postalCode string) (domain.CartView, error) {
	if err := requireUser(userID); err != nil {
		return domain.CartView{}, err
	}
	lines, err := s.carts.ListByUser(ctx, userID)
	if err != nil {
		return domain.CartView{}, fmt.Errorf("load cart: %w", err)
	}

	code := domain.NormalizePostalCode(postalCode)
	quote, err := s.QuoteShipping(ctx, code, domain.Subtotal(lines))
	if err != nil {
		s.drafts.Add(userID, Draft{PostalCode: code})
		return domain.CartView{}, err
	}
	s.drafts.Add(userID, Draft{PostalCode: code, Quote: &quote})
	return domain.NewCartView(lines, &quote, s.policy), nil
}

// SubmitOrder validates the cart and form, then inserts the order and
// empties the cart in one transaction. On any failure the cart and the
// draft are left as they were.
func (s *Service) SubmitOrder(ctx context.Context, userID string, form CheckoutForm) (*domain.Order, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	lines, err := s.carts.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load cart: %w", err)
	}

	draft, _ := s.drafts.Get(userID)
	addr := domain.ShippingAddress{
		PostalCode: firstNonEmpty(form.PostalCode, draft.PostalCode),
		Number:     form.Number,
	}
	addr.Address = strings.TrimSpace(form.Address)
	if addr.Address == "" && draft.Quote != nil {
		addr.Address = draft.Quote.Address
	}

	view := domain.NewCartView(lines, draft.Quote, s.policy)
	if err := s.validator.Validate(checkout.Input{
		Lines:   view.Lines,
		Address: addr,
		Quote:   view.Quote,
		Payment: form.Payment,
	}); err != nil {
		return nil, err
	}

	placed, err := s.orders.Place(ctx, domain.Order{
		UserID:        userID,
		PostalCode:    domain.NormalizePostalCode(addr.PostalCode),
		Address:       addr.Line(),
		PaymentMethod: form.Payment.Method.Label(),
		Subtotal:      view.Subtotal,
		Shipping:      view.Shipping,
		Total:         view.Total,
		Status:        domain.OrderStatusPending,
	})
	if err != nil {
		s.logger.Error("place order", zap.String("user_id", userID), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrOrderFailed, err)
	}

	s.drafts.Remove(userID)
	if err := s.publisher.PublishOrderPlaced(ctx, *placed); err != nil {
		s.logger.Warn("publish order placed", zap.String("order_id", placed.ID), zap.Error(err))
	}
	s.logger.Info("order submitted",
		zap.String("order_id", placed.ID),
		zap.String("user_id", userID),
		zap.Stringer("total", placed.Total),
	)
	return placed, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
