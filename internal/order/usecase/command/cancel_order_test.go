package command

import (
	"context"
	"testing"

	"github.com/tradehub/b2b-marketplace/internal/order/domain"
)

// placeForCancel places a 3-unit order against the fixture's seeded
// variant and returns its id
func placeForCancel(t *testing.T, f *fixture) uint {
	t.Helper()
	result := f.place.Handle(context.Background(), placeCmd(
		PlaceOrderItem{VariantID: 100, Quantity: 3, UnitPrice: dec("10.00")},
	))
	if !result.Success {
		t.Fatalf("setup placement failed: %s: %s", result.ErrorCode, result.Message)
	}
	return result.Order.ID
}

func TestCancelOrder_ReleasesReservation(t *testing.T) {
	f := newFixture()
	orderID := placeForCancel(t, f)

	result := f.cancel.Handle(context.Background(), CancelOrderCommand{OrderID: orderID})
	if !result.Success {
		t.Fatalf("expected success, got %s: %s", result.ErrorCode, result.Message)
	}

	inv := f.store.inventories[1]
	if inv.AvailableQuantity != 100 || inv.ReservedQuantity != 0 {
		t.Errorf("counters after cancel = (%d, %d), want (100, 0)", inv.AvailableQuantity, inv.ReservedQuantity)
	}

	order := f.store.orders[orderID]
	if order.Status != domain.StatusCancelled {
		t.Errorf("status = %s, want CANCELLED", order.Status)
	}
	if len(f.events.cancelled) != 1 {
		t.Errorf("cancelled events = %d, want 1", len(f.events.cancelled))
	}
}

func TestCancelOrder_FromConfirmed(t *testing.T) {
	f := newFixture()
	orderID := placeForCancel(t, f)

	if result := f.advance.Handle(context.Background(), TransitionOrderCommand{OrderID: orderID, Action: ActionConfirm}); !result.Success {
		t.Fatalf("confirm failed: %s", result.ErrorCode)
	}

	result := f.cancel.Handle(context.Background(), CancelOrderCommand{OrderID: orderID})
	if !result.Success {
		t.Fatalf("expected CONFIRMED order to be cancellable, got %s", result.ErrorCode)
	}

	inv := f.store.inventories[1]
	if inv.AvailableQuantity != 100 || inv.ReservedQuantity != 0 {
		t.Errorf("counters after cancel = (%d, %d), want (100, 0)", inv.AvailableQuantity, inv.ReservedQuantity)
	}
}

func TestCancelOrder_ShippedCannotCancel(t *testing.T) {
	f := newFixture()
	orderID := placeForCancel(t, f)

	for _, action := range []TransitionAction{ActionConfirm, ActionProcess, ActionShip} {
		if result := f.advance.Handle(context.Background(), TransitionOrderCommand{OrderID: orderID, Action: action}); !result.Success {
			t.Fatalf("%s failed: %s", action, result.ErrorCode)
		}
	}

	result := f.cancel.Handle(context.Background(), CancelOrderCommand{OrderID: orderID})
	if result.Success || result.ErrorCode != domain.ErrCodeCannotCancel {
		t.Errorf("code = %s, want CannotCancel", result.ErrorCode)
	}

	// The reservation stays held for the shipped order
	inv := f.store.inventories[1]
	if inv.AvailableQuantity != 97 || inv.ReservedQuantity != 3 {
		t.Errorf("counters = (%d, %d), want (97, 3)", inv.AvailableQuantity, inv.ReservedQuantity)
	}
	if f.store.orders[orderID].Status != domain.StatusShipped {
		t.Errorf("status = %s, want SHIPPED", f.store.orders[orderID].Status)
	}
}

func TestCancelOrder_NotFound(t *testing.T) {
	f := newFixture()

	result := f.cancel.Handle(context.Background(), CancelOrderCommand{OrderID: 42})
	if result.Success || result.ErrorCode != domain.ErrCodeOrderNotFound {
		t.Errorf("code = %s, want OrderNotFound", result.ErrorCode)
	}

	result = f.cancel.Handle(context.Background(), CancelOrderCommand{})
	if result.Success || result.ErrorCode != domain.ErrCodeOrderNotFound {
		t.Errorf("code for zero id = %s, want OrderNotFound", result.ErrorCode)
	}
}

func TestCancelOrder_AlreadyCancelled(t *testing.T) {
	f := newFixture()
	orderID := placeForCancel(t, f)

	if result := f.cancel.Handle(context.Background(), CancelOrderCommand{OrderID: orderID}); !result.Success {
		t.Fatalf("first cancel failed: %s", result.ErrorCode)
	}

	result := f.cancel.Handle(context.Background(), CancelOrderCommand{OrderID: orderID})
	if result.Success || result.ErrorCode != domain.ErrCodeCannotCancel {
		t.Errorf("code = %s, want CannotCancel", result.ErrorCode)
	}

	// The second attempt must not release anything twice
	inv := f.store.inventories[1]
	if inv.AvailableQuantity != 100 || inv.ReservedQuantity != 0 {
		t.Errorf("counters = (%d, %d), want (100, 0)", inv.AvailableQuantity, inv.ReservedQuantity)
	}
}

func TestCancelOrder_RollsBackWhenReleaseFails(t *testing.T) {
	f := newFixture()
	orderID := placeForCancel(t, f)

	// Simulate a ledger row drifting out of sync with the order: the
	// reservation the cancel wants to give back is no longer held.
	f.store.inventories[1].ReservedQuantity = 0
	f.store.inventories[1].AvailableQuantity = 100

	result := f.cancel.Handle(context.Background(), CancelOrderCommand{OrderID: orderID})
	if result.Success {
		t.Fatal("expected failure")
	}
	if result.ErrorCode != domain.ErrCodeInternal {
		t.Errorf("code = %s, want InternalError", result.ErrorCode)
	}

	// Rollback keeps the order in its pre-cancel status
	if f.store.orders[orderID].Status != domain.StatusPending {
		t.Errorf("status = %s, want PENDING after rollback", f.store.orders[orderID].Status)
	}
	if len(f.events.cancelled) != 0 {
		t.Error("cancelled event published despite rollback")
	}
}
