package cart

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/cucumber/godog"

	"luzeouro/internal/domain"
	"luzeouro/internal/postal"
	"luzeouro/internal/service/checkout"
)

type checkoutTestContext struct {
	f      *fixture
	policy domain.ShippingPolicy
	view   domain.CartView
	order  *domain.Order
	err    error
}

func (c *checkoutTestContext) reset() {
	*c = checkoutTestContext{f: newFixture()}
}

func (c *checkoutTestContext) thresholdAndFee(threshold, fee string) error {
	t, err := domain.ParseMoney(threshold)
	if err != nil {
		return err
	}
	f, err := domain.ParseMoney(fee)
	if err != nil {
		return err
	}
	c.policy = domain.ShippingPolicy{FreeThreshold: t, FlatFee: f}
	c.f.svc.policy = c.policy
	return nil
}

func (c *checkoutTestContext) postalCodeResolvesTo(_, street, district, city, state string) error {
	c.f.lookup.addr = postal.Address{Street: street, District: district, City: city, State: state}
	return nil
}

func (c *checkoutTestContext) cartHas(qty int, price string) error {
	p, err := domain.ParseMoney(price)
	if err != nil {
		return err
	}
	c.f.carts.lines = []domain.CartLineView{{ID: "l1", Quantity: qty, Product: domain.Product{ID: "p1", Price: p}}}
	return nil
}

func (c *checkoutTestContext) requestShipping(code string) error {
	c.view, c.err = c.f.svc.ResolveShipping(context.Background(), "u1", code)
	return nil
}

func (c *checkoutTestContext) requestedShipping(code string) error {
	_, err := c.f.svc.ResolveShipping(context.Background(), "u1", code)
	return err
}

func (c *checkoutTestContext) setQuantity(q int) error {
	c.view, c.err = c.f.svc.SetQuantity(context.Background(), "u1", "l1", q)
	return c.err
}

func (c *checkoutTestContext) checkOut(address, number, payment string) error {
	c.order, c.err = c.f.svc.SubmitOrder(context.Background(), "u1", CheckoutForm{
		Address: address,
		Number:  number,
		Payment: domain.PaymentSelection{Method: domain.ParsePaymentMethod(payment)},
	})
	return nil
}

func moneyEquals(label string, got domain.Money, want string) error {
	if got.String() != want {
		return fmt.Errorf("expected %s %s, got %s", label, want, got)
	}
	return nil
}

func (c *checkoutTestContext) subtotalIs(want string) error {
	return moneyEquals("subtotal", c.view.Subtotal, want)
}

func (c *checkoutTestContext) shippingIs(want string) error {
	return moneyEquals("shipping", c.view.Shipping, want)
}

func (c *checkoutTestContext) totalIs(want string) error {
	return moneyEquals("total", c.view.Total, want)
}

func (c *checkoutTestContext) cartHasLines(n, qty int) error {
	if len(c.view.Lines) != n {
		return fmt.Errorf("expected %d lines, got %d", n, len(c.view.Lines))
	}
	for _, l := range c.view.Lines {
		if l.Quantity != qty {
			return fmt.Errorf("expected quantity %d, got %d", qty, l.Quantity)
		}
	}
	if c.f.carts.updateCalls != 0 {
		return fmt.Errorf("expected no quantity write, got %d", c.f.carts.updateCalls)
	}
	return nil
}

func (c *checkoutTestContext) requestFailsWith(msg string) error {
	if c.err == nil || c.err.Error() != msg {
		return fmt.Errorf("expected error %q, got %v", msg, c.err)
	}
	return nil
}

func (c *checkoutTestContext) lookupCalled(n int) error {
	if c.f.lookup.calls != n {
		return fmt.Errorf("expected %d lookups, got %d", n, c.f.lookup.calls)
	}
	return nil
}

func (c *checkoutTestContext) checkoutFailsWith(msg string) error {
	var ve *checkout.ValidationError
	if !errors.As(c.err, &ve) {
		return fmt.Errorf("expected validation error, got %v", c.err)
	}
	if ve.Message != msg {
		return fmt.Errorf("expected %q, got %q", msg, ve.Message)
	}
	return nil
}

func (c *checkoutTestContext) noOrderPlaced() error {
	if c.f.orders.calls != 0 {
		return fmt.Errorf("expected no order insert, got %d", c.f.orders.calls)
	}
	return nil
}

func (c *checkoutTestContext) orderPlaced(total string) error {
	if c.err != nil {
		return c.err
	}
	return moneyEquals("order total", c.order.Total, total)
}

func (c *checkoutTestContext) cartIsEmpty() error {
	if lines := c.f.svc.LoadCart(context.Background(), "u1"); len(lines) != 0 {
		return fmt.Errorf("expected empty cart, got %d lines", len(lines))
	}
	return nil
}

func InitializeScenario(ctx *godog.ScenarioContext) {
	tc := &checkoutTestContext{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		tc.reset()
		return ctx, nil
	})

	ctx.Step(`^the free shipping threshold is "([^"]*)" and the flat fee is "([^"]*)"$`, tc.thresholdAndFee)
	ctx.Step(`^postal code "([^"]*)" resolves to "([^"]*)", "([^"]*)", "([^"]*)", "([^"]*)"$`, tc.postalCodeResolvesTo)
	ctx.Step(`^my cart has (\d+) of a product priced "([^"]*)"$`, tc.cartHas)
	ctx.Step(`^I requested shipping for postal code "([^"]*)"$`, tc.requestedShipping)

	ctx.Step(`^I request shipping for postal code "([^"]*)"$`, tc.requestShipping)
	ctx.Step(`^I set the quantity to (-?\d+)$`, tc.setQuantity)
	ctx.Step(`^I check out with address "([^"]*)", number "([^"]*)" and payment "([^"]*)"$`, tc.checkOut)

	ctx.Step(`^the subtotal is "([^"]*)"$`, tc.subtotalIs)
	ctx.Step(`^the shipping is "([^"]*)"$`, tc.shippingIs)
	ctx.Step(`^the total is "([^"]*)"$`, tc.totalIs)
	ctx.Step(`^the cart has (\d+) lines? with quantity (\d+)$`, tc.cartHasLines)
	ctx.Step(`^the request fails with "([^"]*)"$`, tc.requestFailsWith)
	ctx.Step(`^the postal lookup was called (\d+) times$`, tc.lookupCalled)
	ctx.Step(`^checkout fails with "([^"]*)"$`, tc.checkoutFailsWith)
	ctx.Step(`^no order was placed$`, tc.noOrderPlaced)
	ctx.Step(`^an order totalling "([^"]*)" is placed$`, tc.orderPlaced)
	ctx.Step(`^my cart is empty$`, tc.cartIsEmpty)
}

func TestFeatures(t *testing.T) {
	suite := godog.TestSuite{
		ScenarioInitializer: InitializeScenario,
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"features/checkout.feature"},
			TestingT: t,
		},
	}

	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run feature tests")
	}
}
