package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func newTestOrder(status Status) *Order {
	order := NewOrder("PO-1001", 1, 2, "12 Dock Road", time.Now())
	order.Status = status
	return order
}

func TestLifecycleHappyPath(t *testing.T) {
	order := newTestOrder(StatusPending)

	steps := []struct {
		name string
		fn   func() error
		want Status
	}{
		{"confirm", order.Confirm, StatusConfirmed},
		{"process", order.MarkProcessing, StatusProcessing},
		{"ship", order.Ship, StatusShipped},
		{"deliver", order.Deliver, StatusDelivered},
	}

	for _, step := range steps {
		if err := step.fn(); err != nil {
			t.Fatalf("%s: unexpected error: %v", step.name, err)
		}
		if order.Status != step.want {
			t.Fatalf("%s: status = %s, want %s", step.name, order.Status, step.want)
		}
	}

	if order.DeliveryDate == nil {
		t.Error("deliver should stamp the delivery date")
	}
}

func TestIllegalTransitionsRejected(t *testing.T) {
	cases := []struct {
		name string
		from Status
		fn   func(*Order) error
	}{
		{"confirm from confirmed", StatusConfirmed, (*Order).Confirm},
		{"confirm from shipped", StatusShipped, (*Order).Confirm},
		{"confirm from cancelled", StatusCancelled, (*Order).Confirm},
		{"process from pending", StatusPending, (*Order).MarkProcessing},
		{"process from delivered", StatusDelivered, (*Order).MarkProcessing},
		{"ship from pending", StatusPending, (*Order).Ship},
		{"ship from confirmed", StatusConfirmed, (*Order).Ship},
		{"deliver from processing", StatusProcessing, (*Order).Deliver},
		{"deliver from cancelled", StatusCancelled, (*Order).Deliver},
		{"cancel from processing", StatusProcessing, (*Order).Cancel},
		{"cancel from shipped", StatusShipped, (*Order).Cancel},
		{"cancel from delivered", StatusDelivered, (*Order).Cancel},
		{"cancel from cancelled", StatusCancelled, (*Order).Cancel},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			order := newTestOrder(tc.from)
			err := tc.fn(order)

			var invalid *InvalidTransitionError
			if !errors.As(err, &invalid) {
				t.Fatalf("expected InvalidTransitionError, got %v", err)
			}
			if invalid.From != tc.from {
				t.Errorf("error reports from=%s, want %s", invalid.From, tc.from)
			}
			if order.Status != tc.from {
				t.Errorf("failed transition changed status to %s", order.Status)
			}
		})
	}
}

func TestCancelFromPendingAndConfirmed(t *testing.T) {
	for _, from := range []Status{StatusPending, StatusConfirmed} {
		order := newTestOrder(from)
		if !order.CanCancel() {
			t.Errorf("%s order should be cancellable", from)
		}
		if err := order.Cancel(); err != nil {
			t.Errorf("%s: unexpected error: %v", from, err)
		}
		if order.Status != StatusCancelled {
			t.Errorf("%s: status = %s, want CANCELLED", from, order.Status)
		}
	}
}

func TestTerminalStates(t *testing.T) {
	if !StatusDelivered.IsTerminal() || !StatusCancelled.IsTerminal() {
		t.Error("DELIVERED and CANCELLED must be terminal")
	}
	for _, s := range []Status{StatusPending, StatusConfirmed, StatusProcessing, StatusShipped} {
		if s.IsTerminal() {
			t.Errorf("%s must not be terminal", s)
		}
	}
}

func TestAddItemRecomputesTotal(t *testing.T) {
	order := newTestOrder(StatusPending)

	order.AddItem(OrderItem{Quantity: 3, UnitPrice: dec("10.00"), LineTotal: dec("30.00"), ProductName: "Bolt M8"})
	order.AddItem(OrderItem{Quantity: 2, UnitPrice: dec("5.25"), LineTotal: dec("10.50"), ProductName: "Washer"})

	if !order.TotalAmount.Equal(dec("40.50")) {
		t.Errorf("total = %s, want 40.50", order.TotalAmount)
	}
	if len(order.Items) != 2 {
		t.Errorf("items = %d, want 2", len(order.Items))
	}
}

func TestApplyDiscount(t *testing.T) {
	order := newTestOrder(StatusPending)
	order.AddItem(OrderItem{Quantity: 1, UnitPrice: dec("100.00"), LineTotal: dec("100.00"), ProductName: "Crate"})

	if err := order.ApplyDiscount(dec("15.00")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !order.TotalAmount.Equal(dec("85.00")) {
		t.Errorf("total = %s, want 85.00", order.TotalAmount)
	}

	if err := order.ApplyDiscount(dec("-1")); !errors.Is(err, ErrInvalidDiscount) {
		t.Errorf("negative discount: expected ErrInvalidDiscount, got %v", err)
	}
	if err := order.ApplyDiscount(dec("90.00")); !errors.Is(err, ErrInvalidDiscount) {
		t.Errorf("oversized discount: expected ErrInvalidDiscount, got %v", err)
	}
	if !order.TotalAmount.Equal(dec("85.00")) {
		t.Errorf("failed discount mutated total: %s", order.TotalAmount)
	}
}
