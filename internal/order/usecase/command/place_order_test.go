package command

import (
	"context"
	"sync"
	"testing"

	"github.com/shopspring/decimal"

	catalogdomain "github.com/tradehub/b2b-marketplace/internal/catalog/domain"
	inventorydomain "github.com/tradehub/b2b-marketplace/internal/inventory/domain"
	"github.com/tradehub/b2b-marketplace/internal/order/domain"
	partnerdomain "github.com/tradehub/b2b-marketplace/internal/partner/domain"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

type fixture struct {
	store     *fakeStore
	orders    *fakeOrderRepo
	inventory *fakeInventoryRepo
	events    *fakePublisher
	place     *PlaceOrderHandler
	cancel    *CancelOrderHandler
	advance   *TransitionOrderHandler
}

// newFixture seeds retailer 1 and supplier 2 with product 10 (base price
// 10.00, no tiers) sold as variant 100 with 100 units available.
func newFixture() *fixture {
	store := newFakeStore()
	store.retailers[1] = &partnerdomain.Retailer{ID: 1, Name: "North Retail", IsActive: true}
	store.suppliers[2] = &partnerdomain.Supplier{ID: 2, Name: "Acme Supply", IsActive: true}
	store.products[10] = &catalogdomain.Product{
		ID: 10, SupplierID: 2, Name: "Steel Bracket", BasePrice: dec("10.00"), MinOrderQuantity: 1,
	}
	store.variants[100] = &catalogdomain.ProductVariant{
		ID: 100, ProductID: 10, Name: "Steel Bracket / zinc", PriceAdjustment: decimal.Zero,
	}
	store.inventories[1] = &inventorydomain.Inventory{
		ID: 1, SupplierID: 2, ProductID: 10, VariantID: 100,
		AvailableQuantity: 100, ReorderLevel: 10, Status: inventorydomain.StatusAvailable,
	}

	orders := &fakeOrderRepo{store: store}
	inventory := &fakeInventoryRepo{store: store}
	events := &fakePublisher{}
	transactor := &fakeTransactor{store: store}

	return &fixture{
		store:     store,
		orders:    orders,
		inventory: inventory,
		events:    events,
		place: NewPlaceOrderHandler(
			orders,
			&fakeRetailerRepo{store: store},
			&fakeSupplierRepo{store: store},
			&fakeProductRepo{store: store},
			&fakeVariantRepo{store: store},
			inventory,
			transactor,
			events,
		),
		cancel:  NewCancelOrderHandler(orders, inventory, transactor, events),
		advance: NewTransitionOrderHandler(orders, inventory, transactor),
	}
}

func placeCmd(items ...PlaceOrderItem) PlaceOrderCommand {
	return PlaceOrderCommand{
		OrderNumber:     "PO-2001",
		RetailerID:      1,
		SupplierID:      2,
		ShippingAddress: "5 Harbour Way",
		Items:           items,
	}
}

func TestPlaceOrder_Success(t *testing.T) {
	f := newFixture()

	result := f.place.Handle(context.Background(), placeCmd(
		PlaceOrderItem{VariantID: 100, Quantity: 3, UnitPrice: dec("10.00")},
	))

	if !result.Success {
		t.Fatalf("expected success, got %s: %s", result.ErrorCode, result.Message)
	}
	if !result.Order.TotalAmount.Equal(dec("30.00")) {
		t.Errorf("total = %s, want 30.00", result.Order.TotalAmount)
	}
	if result.Order.Status != domain.StatusPending {
		t.Errorf("status = %s, want PENDING", result.Order.Status)
	}
	if result.Order.Items[0].ProductName != "Steel Bracket" {
		t.Errorf("product name not snapshotted from catalog: %q", result.Order.Items[0].ProductName)
	}

	inv := f.store.inventories[1]
	if inv.AvailableQuantity != 97 || inv.ReservedQuantity != 3 {
		t.Errorf("inventory counters = (%d, %d), want (97, 3)", inv.AvailableQuantity, inv.ReservedQuantity)
	}

	if _, ok := f.store.orders[result.Order.ID]; !ok {
		t.Error("order not persisted")
	}
	if len(f.events.placed) != 1 {
		t.Errorf("placed events = %d, want 1", len(f.events.placed))
	}
}

func TestPlaceOrder_TierPricing(t *testing.T) {
	f := newFixture()
	f.store.products[10].BasePrice = dec("100")
	f.store.products[10].PriceTiers = []catalogdomain.PriceTier{
		{MinQuantity: 10, DiscountPercent: dec("10")},
	}

	result := f.place.Handle(context.Background(), placeCmd(
		PlaceOrderItem{VariantID: 100, Quantity: 12, UnitPrice: dec("100")},
	))

	if !result.Success {
		t.Fatalf("expected success, got %s: %s", result.ErrorCode, result.Message)
	}
	if !result.Order.TotalAmount.Equal(dec("1080.00")) {
		t.Errorf("total = %s, want 1080.00", result.Order.TotalAmount)
	}
}

func TestPlaceOrder_InsufficientStock(t *testing.T) {
	f := newFixture()

	result := f.place.Handle(context.Background(), placeCmd(
		PlaceOrderItem{VariantID: 100, Quantity: 150, UnitPrice: dec("10.00")},
	))

	if result.Success {
		t.Fatal("expected failure")
	}
	if result.ErrorCode != domain.ErrCodeInsufficientStock {
		t.Errorf("code = %s, want InsufficientStock", result.ErrorCode)
	}

	inv := f.store.inventories[1]
	if inv.AvailableQuantity != 100 || inv.ReservedQuantity != 0 {
		t.Errorf("failed placement mutated inventory: (%d, %d)", inv.AvailableQuantity, inv.ReservedQuantity)
	}
	if len(f.store.orders) != 0 {
		t.Error("order persisted despite failure")
	}
}

func TestPlaceOrder_AllOrNothingRollback(t *testing.T) {
	f := newFixture()
	// A second variant with only 5 units
	f.store.variants[101] = &catalogdomain.ProductVariant{ID: 101, ProductID: 10}
	f.store.inventories[2] = &inventorydomain.Inventory{
		ID: 2, SupplierID: 2, ProductID: 10, VariantID: 101,
		AvailableQuantity: 5, Status: inventorydomain.StatusAvailable,
	}

	result := f.place.Handle(context.Background(), placeCmd(
		PlaceOrderItem{VariantID: 100, Quantity: 3, UnitPrice: dec("10.00")},
		PlaceOrderItem{VariantID: 101, Quantity: 6, UnitPrice: dec("10.00")},
	))

	if result.Success {
		t.Fatal("expected failure on the second line")
	}
	if result.ErrorCode != domain.ErrCodeInsufficientStock {
		t.Errorf("code = %s, want InsufficientStock", result.ErrorCode)
	}

	// The first line's reservation must be fully rolled back
	first := f.store.inventories[1]
	if first.AvailableQuantity != 100 || first.ReservedQuantity != 0 {
		t.Errorf("first line reservation not rolled back: (%d, %d)",
			first.AvailableQuantity, first.ReservedQuantity)
	}
	second := f.store.inventories[2]
	if second.AvailableQuantity != 5 || second.ReservedQuantity != 0 {
		t.Errorf("second line inventory mutated: (%d, %d)",
			second.AvailableQuantity, second.ReservedQuantity)
	}
	if len(f.store.orders) != 0 {
		t.Error("order persisted despite failure")
	}
	if len(f.events.placed) != 0 {
		t.Error("event published despite failure")
	}
}

func TestPlaceOrder_Validation(t *testing.T) {
	cases := []struct {
		name     string
		mutate   func(*PlaceOrderCommand)
		wantCode string
	}{
		{
			"empty item list",
			func(cmd *PlaceOrderCommand) { cmd.Items = nil },
			domain.ErrCodeEmptyOrder,
		},
		{
			"zero quantity",
			func(cmd *PlaceOrderCommand) { cmd.Items[0].Quantity = 0 },
			domain.ErrCodeInvalidQuantity,
		},
		{
			"negative quantity",
			func(cmd *PlaceOrderCommand) { cmd.Items[0].Quantity = -2 },
			domain.ErrCodeInvalidQuantity,
		},
		{
			"negative price",
			func(cmd *PlaceOrderCommand) { cmd.Items[0].UnitPrice = dec("-1") },
			domain.ErrCodeInvalidPrice,
		},
		{
			"missing variant id",
			func(cmd *PlaceOrderCommand) { cmd.Items[0].VariantID = 0 },
			domain.ErrCodeInvalidProductID,
		},
		{
			"unknown retailer",
			func(cmd *PlaceOrderCommand) { cmd.RetailerID = 99 },
			domain.ErrCodeRetailerNotFound,
		},
		{
			"unknown supplier",
			func(cmd *PlaceOrderCommand) { cmd.SupplierID = 99 },
			domain.ErrCodeSupplierNotFound,
		},
		{
			"unknown variant",
			func(cmd *PlaceOrderCommand) { cmd.Items[0].VariantID = 999 },
			domain.ErrCodeVariantNotFound,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture()
			cmd := placeCmd(PlaceOrderItem{VariantID: 100, Quantity: 1, UnitPrice: dec("10.00")})
			tc.mutate(&cmd)

			result := f.place.Handle(context.Background(), cmd)
			if result.Success {
				t.Fatal("expected failure")
			}
			if result.ErrorCode != tc.wantCode {
				t.Errorf("code = %s, want %s", result.ErrorCode, tc.wantCode)
			}
			if len(f.store.orders) != 0 {
				t.Error("order persisted despite validation failure")
			}
		})
	}
}

func TestPlaceOrder_OrderNumberConflict(t *testing.T) {
	f := newFixture()

	first := f.place.Handle(context.Background(), placeCmd(
		PlaceOrderItem{VariantID: 100, Quantity: 1, UnitPrice: dec("10.00")},
	))
	if !first.Success {
		t.Fatalf("setup placement failed: %s", first.ErrorCode)
	}

	second := f.place.Handle(context.Background(), placeCmd(
		PlaceOrderItem{VariantID: 100, Quantity: 1, UnitPrice: dec("10.00")},
	))
	if second.Success || second.ErrorCode != domain.ErrCodeOrderNumberConflict {
		t.Errorf("code = %s, want OrderNumberConflict", second.ErrorCode)
	}
}

// staleExistsOrderRepo simulates the read a concurrent placement can see:
// the uniqueness pre-check misses an order another transaction is about to
// commit, leaving the unique index as the only arbiter.
type staleExistsOrderRepo struct{ *fakeOrderRepo }

func (r *staleExistsOrderRepo) ExistsByOrderNumber(ctx context.Context, orderNumber string) (bool, error) {
	return false, nil
}

func TestPlaceOrder_DuplicateNumberLostRace(t *testing.T) {
	f := newFixture()

	first := f.place.Handle(context.Background(), placeCmd(
		PlaceOrderItem{VariantID: 100, Quantity: 1, UnitPrice: dec("10.00")},
	))
	if !first.Success {
		t.Fatalf("setup placement failed: %s", first.ErrorCode)
	}

	racing := NewPlaceOrderHandler(
		&staleExistsOrderRepo{f.orders},
		&fakeRetailerRepo{store: f.store},
		&fakeSupplierRepo{store: f.store},
		&fakeProductRepo{store: f.store},
		&fakeVariantRepo{store: f.store},
		f.inventory,
		&fakeTransactor{store: f.store},
		f.events,
	)

	second := racing.Handle(context.Background(), placeCmd(
		PlaceOrderItem{VariantID: 100, Quantity: 1, UnitPrice: dec("10.00")},
	))
	if second.Success || second.ErrorCode != domain.ErrCodeOrderNumberConflict {
		t.Errorf("code = %s, want OrderNumberConflict", second.ErrorCode)
	}

	// The loser's reservation must roll back with its transaction
	inv := f.store.inventories[1]
	if inv.AvailableQuantity != 99 || inv.ReservedQuantity != 1 {
		t.Errorf("loser's reservation not rolled back: (%d, %d)", inv.AvailableQuantity, inv.ReservedQuantity)
	}
	if len(f.store.orders) != 1 {
		t.Errorf("orders persisted = %d, want 1", len(f.store.orders))
	}
}

func TestPlaceOrder_GeneratesOrderNumber(t *testing.T) {
	f := newFixture()
	cmd := placeCmd(PlaceOrderItem{VariantID: 100, Quantity: 1, UnitPrice: dec("10.00")})
	cmd.OrderNumber = ""

	result := f.place.Handle(context.Background(), cmd)
	if !result.Success {
		t.Fatalf("expected success, got %s", result.ErrorCode)
	}
	if result.Order.OrderNumber == "" {
		t.Error("expected a generated order number")
	}
}

func TestPlaceOrder_VariantNotStocked(t *testing.T) {
	f := newFixture()
	// Variant exists in the catalog but no ledger row anywhere
	f.store.variants[102] = &catalogdomain.ProductVariant{ID: 102, ProductID: 10}

	result := f.place.Handle(context.Background(), placeCmd(
		PlaceOrderItem{VariantID: 102, Quantity: 1, UnitPrice: dec("10.00")},
	))
	if result.Success || result.ErrorCode != domain.ErrCodeVariantNotStocked {
		t.Errorf("code = %s, want VariantNotStocked", result.ErrorCode)
	}
}

func TestPlaceOrder_ProductLevelFallback(t *testing.T) {
	f := newFixture()
	// Variant without its own ledger row; supplier stocks product 11 as a whole
	f.store.products[11] = &catalogdomain.Product{
		ID: 11, SupplierID: 2, Name: "Hex Nut", BasePrice: dec("2.00"), MinOrderQuantity: 1,
	}
	f.store.variants[110] = &catalogdomain.ProductVariant{ID: 110, ProductID: 11}
	f.store.inventories[3] = &inventorydomain.Inventory{
		ID: 3, SupplierID: 2, ProductID: 11, VariantID: 0,
		AvailableQuantity: 40, Status: inventorydomain.StatusAvailable,
	}

	result := f.place.Handle(context.Background(), placeCmd(
		PlaceOrderItem{VariantID: 110, Quantity: 10, UnitPrice: dec("2.00")},
	))
	if !result.Success {
		t.Fatalf("expected success, got %s: %s", result.ErrorCode, result.Message)
	}

	inv := f.store.inventories[3]
	if inv.AvailableQuantity != 30 || inv.ReservedQuantity != 10 {
		t.Errorf("fallback row counters = (%d, %d), want (30, 10)", inv.AvailableQuantity, inv.ReservedQuantity)
	}
}

func TestPlaceOrder_FallbackIgnoresSiblingVariantRows(t *testing.T) {
	f := newFixture()
	// Product 11 has two variants: 110 stocked with its own ledger row,
	// 111 not stocked at all. There is no product-level row (variant_id 0),
	// so ordering 111 must not fall back onto 110's row.
	f.store.products[11] = &catalogdomain.Product{
		ID: 11, SupplierID: 2, Name: "Hex Nut", BasePrice: dec("2.00"), MinOrderQuantity: 1,
	}
	f.store.variants[110] = &catalogdomain.ProductVariant{ID: 110, ProductID: 11}
	f.store.variants[111] = &catalogdomain.ProductVariant{ID: 111, ProductID: 11}
	f.store.inventories[3] = &inventorydomain.Inventory{
		ID: 3, SupplierID: 2, ProductID: 11, VariantID: 110,
		AvailableQuantity: 40, Status: inventorydomain.StatusAvailable,
	}

	result := f.place.Handle(context.Background(), placeCmd(
		PlaceOrderItem{VariantID: 111, Quantity: 10, UnitPrice: dec("2.00")},
	))
	if result.Success || result.ErrorCode != domain.ErrCodeVariantNotStocked {
		t.Errorf("code = %s, want VariantNotStocked", result.ErrorCode)
	}

	sibling := f.store.inventories[3]
	if sibling.AvailableQuantity != 40 || sibling.ReservedQuantity != 0 {
		t.Errorf("sibling variant row mutated: (%d, %d)", sibling.AvailableQuantity, sibling.ReservedQuantity)
	}
}

func TestPlaceOrder_BelowMinOrderQuantity(t *testing.T) {
	f := newFixture()
	f.store.products[10].MinOrderQuantity = 5

	result := f.place.Handle(context.Background(), placeCmd(
		PlaceOrderItem{VariantID: 100, Quantity: 3, UnitPrice: dec("10.00")},
	))
	if result.Success || result.ErrorCode != domain.ErrCodeBelowMinOrderQuantity {
		t.Errorf("code = %s, want BelowMinOrderQuantity", result.ErrorCode)
	}
}

func TestPlaceOrder_DiscontinuedVariant(t *testing.T) {
	f := newFixture()
	f.store.inventories[1].Discontinue()

	result := f.place.Handle(context.Background(), placeCmd(
		PlaceOrderItem{VariantID: 100, Quantity: 1, UnitPrice: dec("10.00")},
	))
	if result.Success || result.ErrorCode != domain.ErrCodeNotAvailable {
		t.Errorf("code = %s, want NotAvailable", result.ErrorCode)
	}

	inv := f.store.inventories[1]
	if inv.AvailableQuantity != 100 || inv.ReservedQuantity != 0 {
		t.Errorf("blocked placement mutated inventory: (%d, %d)", inv.AvailableQuantity, inv.ReservedQuantity)
	}
}

func TestPlaceOrder_NegativeUnitPriceFromCatalog(t *testing.T) {
	f := newFixture()
	f.store.variants[100].PriceAdjustment = dec("-15.00")

	result := f.place.Handle(context.Background(), placeCmd(
		PlaceOrderItem{VariantID: 100, Quantity: 1, UnitPrice: dec("0.00")},
	))
	if result.Success || result.ErrorCode != domain.ErrCodeInvalidPrice {
		t.Errorf("code = %s, want InvalidPrice", result.ErrorCode)
	}
}

func TestPlaceOrder_LowStockEventAfterReservation(t *testing.T) {
	f := newFixture()
	// 100 available, reorder level 10: reserving 95 leaves the row LOW_STOCK
	result := f.place.Handle(context.Background(), placeCmd(
		PlaceOrderItem{VariantID: 100, Quantity: 95, UnitPrice: dec("10.00")},
	))
	if !result.Success {
		t.Fatalf("expected success, got %s", result.ErrorCode)
	}
	if len(f.events.lowStock) != 1 {
		t.Fatalf("low stock events = %d, want 1", len(f.events.lowStock))
	}
	if f.events.lowStock[0].AvailableQuantity != 5 {
		t.Errorf("event reports available = %d, want 5", f.events.lowStock[0].AvailableQuantity)
	}
}

func TestPlaceOrder_ConcurrentLastUnit(t *testing.T) {
	f := newFixture()
	f.store.inventories[1].AvailableQuantity = 1
	f.store.inventories[1].ReorderLevel = 0
	f.store.inventories[1].Status = inventorydomain.StatusAvailable

	results := make([]PlaceOrderResult, 2)
	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			cmd := placeCmd(PlaceOrderItem{VariantID: 100, Quantity: 1, UnitPrice: dec("10.00")})
			cmd.OrderNumber = ""
			results[i] = f.place.Handle(context.Background(), cmd)
		}(i)
	}
	wg.Wait()

	successes, conflicts := 0, 0
	for _, result := range results {
		switch {
		case result.Success:
			successes++
		case result.ErrorCode == domain.ErrCodeInsufficientStock:
			conflicts++
		default:
			t.Errorf("unexpected failure code %s: %s", result.ErrorCode, result.Message)
		}
	}

	if successes != 1 || conflicts != 1 {
		t.Errorf("got %d successes and %d stock conflicts, want exactly one of each", successes, conflicts)
	}

	inv := f.store.inventories[1]
	if inv.AvailableQuantity != 0 || inv.ReservedQuantity != 1 {
		t.Errorf("final counters = (%d, %d), want (0, 1)", inv.AvailableQuantity, inv.ReservedQuantity)
	}
	if len(f.store.orders) != 1 {
		t.Errorf("orders persisted = %d, want 1", len(f.store.orders))
	}
}
