package command

import (
	"context"
	"sync"

	"gorm.io/gorm"

	catalogdomain "github.com/tradehub/b2b-marketplace/internal/catalog/domain"
	inventorydomain "github.com/tradehub/b2b-marketplace/internal/inventory/domain"
	"github.com/tradehub/b2b-marketplace/internal/order/domain"
	partnerdomain "github.com/tradehub/b2b-marketplace/internal/partner/domain"
	"github.com/tradehub/b2b-marketplace/kafka"
)

// fakeStore is a shared in-memory backing store for all fake repositories.
// The fake transactor holds the store mutex for a whole transaction and
// restores a snapshot on failure, which mirrors what the database gives
// the production code: serialized row access and all-or-nothing commits.
type fakeStore struct {
	mu sync.Mutex

	retailers   map[uint]*partnerdomain.Retailer
	suppliers   map[uint]*partnerdomain.Supplier
	products    map[uint]*catalogdomain.Product
	variants    map[uint]*catalogdomain.ProductVariant
	inventories map[uint]*inventorydomain.Inventory
	orders      map[uint]*domain.Order
	nextOrderID uint
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		retailers:   make(map[uint]*partnerdomain.Retailer),
		suppliers:   make(map[uint]*partnerdomain.Supplier),
		products:    make(map[uint]*catalogdomain.Product),
		variants:    make(map[uint]*catalogdomain.ProductVariant),
		inventories: make(map[uint]*inventorydomain.Inventory),
		orders:      make(map[uint]*domain.Order),
		nextOrderID: 1,
	}
}

type inTxKey struct{}

// lock takes the store mutex unless the context is already inside a fake
// transaction, which holds it for the transaction's whole extent
func (s *fakeStore) lock(ctx context.Context) func() {
	if ctx.Value(inTxKey{}) != nil {
		return func() {}
	}
	s.mu.Lock()
	return s.mu.Unlock
}

type storeSnapshot struct {
	inventories map[uint]inventorydomain.Inventory
	orders      map[uint]domain.Order
	nextOrderID uint
}

func (s *fakeStore) snapshot() storeSnapshot {
	snap := storeSnapshot{
		inventories: make(map[uint]inventorydomain.Inventory, len(s.inventories)),
		orders:      make(map[uint]domain.Order, len(s.orders)),
		nextOrderID: s.nextOrderID,
	}
	for id, inv := range s.inventories {
		snap.inventories[id] = *inv
	}
	for id, order := range s.orders {
		copied := *order
		copied.Items = append([]domain.OrderItem(nil), order.Items...)
		snap.orders[id] = copied
	}
	return snap
}

func (s *fakeStore) restore(snap storeSnapshot) {
	s.inventories = make(map[uint]*inventorydomain.Inventory, len(snap.inventories))
	for id, inv := range snap.inventories {
		copied := inv
		s.inventories[id] = &copied
	}
	s.orders = make(map[uint]*domain.Order, len(snap.orders))
	for id, order := range snap.orders {
		copied := order
		s.orders[id] = &copied
	}
	s.nextOrderID = snap.nextOrderID
}

// fakeTransactor serializes transactions on the store mutex and rolls the
// store back to its pre-transaction snapshot when fn fails
type fakeTransactor struct {
	store *fakeStore
}

func (t *fakeTransactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	t.store.mu.Lock()
	defer t.store.mu.Unlock()

	snap := t.store.snapshot()
	if err := fn(context.WithValue(ctx, inTxKey{}, true)); err != nil {
		t.store.restore(snap)
		return err
	}
	return nil
}

type fakeRetailerRepo struct{ store *fakeStore }

func (r *fakeRetailerRepo) Create(ctx context.Context, retailer *partnerdomain.Retailer) error {
	defer r.store.lock(ctx)()
	r.store.retailers[retailer.ID] = retailer
	return nil
}

func (r *fakeRetailerRepo) FindByID(ctx context.Context, id uint) (*partnerdomain.Retailer, error) {
	defer r.store.lock(ctx)()
	if retailer, ok := r.store.retailers[id]; ok {
		return retailer, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeRetailerRepo) FindByEmail(ctx context.Context, email string) (*partnerdomain.Retailer, error) {
	defer r.store.lock(ctx)()
	for _, retailer := range r.store.retailers {
		if retailer.Email == email {
			return retailer, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeRetailerRepo) ExistsByID(ctx context.Context, id uint) (bool, error) {
	defer r.store.lock(ctx)()
	_, ok := r.store.retailers[id]
	return ok, nil
}

type fakeSupplierRepo struct{ store *fakeStore }

func (r *fakeSupplierRepo) Create(ctx context.Context, supplier *partnerdomain.Supplier) error {
	defer r.store.lock(ctx)()
	r.store.suppliers[supplier.ID] = supplier
	return nil
}

func (r *fakeSupplierRepo) FindByID(ctx context.Context, id uint) (*partnerdomain.Supplier, error) {
	defer r.store.lock(ctx)()
	if supplier, ok := r.store.suppliers[id]; ok {
		return supplier, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeSupplierRepo) FindByEmail(ctx context.Context, email string) (*partnerdomain.Supplier, error) {
	defer r.store.lock(ctx)()
	for _, supplier := range r.store.suppliers {
		if supplier.Email == email {
			return supplier, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeSupplierRepo) ExistsByID(ctx context.Context, id uint) (bool, error) {
	defer r.store.lock(ctx)()
	_, ok := r.store.suppliers[id]
	return ok, nil
}

type fakeProductRepo struct{ store *fakeStore }

func (r *fakeProductRepo) Create(ctx context.Context, product *catalogdomain.Product) error {
	defer r.store.lock(ctx)()
	r.store.products[product.ID] = product
	return nil
}

func (r *fakeProductRepo) FindByID(ctx context.Context, id uint) (*catalogdomain.Product, error) {
	defer r.store.lock(ctx)()
	if product, ok := r.store.products[id]; ok {
		return product, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeProductRepo) FindBySKU(ctx context.Context, sku string) (*catalogdomain.Product, error) {
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeProductRepo) FindBySupplierID(ctx context.Context, supplierID uint, limit, offset int) ([]catalogdomain.Product, error) {
	return nil, nil
}

func (r *fakeProductRepo) FindAll(ctx context.Context, limit, offset int) ([]catalogdomain.Product, error) {
	return nil, nil
}

func (r *fakeProductRepo) Update(ctx context.Context, product *catalogdomain.Product) error {
	return nil
}

func (r *fakeProductRepo) ReplaceTiers(ctx context.Context, productID uint, tiers []catalogdomain.PriceTier) error {
	return nil
}

type fakeVariantRepo struct{ store *fakeStore }

func (r *fakeVariantRepo) Create(ctx context.Context, variant *catalogdomain.ProductVariant) error {
	defer r.store.lock(ctx)()
	r.store.variants[variant.ID] = variant
	return nil
}

func (r *fakeVariantRepo) FindByID(ctx context.Context, id uint) (*catalogdomain.ProductVariant, error) {
	defer r.store.lock(ctx)()
	if variant, ok := r.store.variants[id]; ok {
		return variant, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeVariantRepo) FindBySKU(ctx context.Context, sku string) (*catalogdomain.ProductVariant, error) {
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeVariantRepo) FindByProductID(ctx context.Context, productID uint) ([]catalogdomain.ProductVariant, error) {
	return nil, nil
}

type fakeInventoryRepo struct{ store *fakeStore }

func (r *fakeInventoryRepo) Create(ctx context.Context, inventory *inventorydomain.Inventory) error {
	defer r.store.lock(ctx)()
	r.store.inventories[inventory.ID] = inventory
	return nil
}

func (r *fakeInventoryRepo) FindByID(ctx context.Context, id uint) (*inventorydomain.Inventory, error) {
	defer r.store.lock(ctx)()
	if inv, ok := r.store.inventories[id]; ok {
		copied := *inv
		return &copied, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeInventoryRepo) FindByVariantID(ctx context.Context, variantID uint) (*inventorydomain.Inventory, error) {
	return r.FindByVariantIDForUpdate(ctx, variantID)
}

func (r *fakeInventoryRepo) FindByVariantIDForUpdate(ctx context.Context, variantID uint) (*inventorydomain.Inventory, error) {
	defer r.store.lock(ctx)()
	for _, inv := range r.store.inventories {
		if inv.VariantID == variantID {
			copied := *inv
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeInventoryRepo) FindBySupplierAndProductForUpdate(ctx context.Context, supplierID, productID uint) (*inventorydomain.Inventory, error) {
	defer r.store.lock(ctx)()
	for _, inv := range r.store.inventories {
		if inv.SupplierID == supplierID && inv.ProductID == productID && inv.VariantID == 0 {
			copied := *inv
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeInventoryRepo) FindAll(ctx context.Context, limit, offset int) ([]inventorydomain.Inventory, error) {
	return nil, nil
}

func (r *fakeInventoryRepo) FindBelowReorderLevel(ctx context.Context) ([]inventorydomain.Inventory, error) {
	return nil, nil
}

func (r *fakeInventoryRepo) Save(ctx context.Context, inventory *inventorydomain.Inventory) error {
	defer r.store.lock(ctx)()
	copied := *inventory
	r.store.inventories[inventory.ID] = &copied
	return nil
}

type fakeOrderRepo struct{ store *fakeStore }

func (r *fakeOrderRepo) Create(ctx context.Context, order *domain.Order) error {
	defer r.store.lock(ctx)()
	// order_number carries a unique index
	for _, existing := range r.store.orders {
		if existing.OrderNumber == order.OrderNumber {
			return gorm.ErrDuplicatedKey
		}
	}
	order.ID = r.store.nextOrderID
	r.store.nextOrderID++
	copied := *order
	copied.Items = append([]domain.OrderItem(nil), order.Items...)
	r.store.orders[order.ID] = &copied
	return nil
}

func (r *fakeOrderRepo) Save(ctx context.Context, order *domain.Order) error {
	defer r.store.lock(ctx)()
	copied := *order
	copied.Items = append([]domain.OrderItem(nil), order.Items...)
	r.store.orders[order.ID] = &copied
	return nil
}

func (r *fakeOrderRepo) FindByID(ctx context.Context, id uint) (*domain.Order, error) {
	defer r.store.lock(ctx)()
	if order, ok := r.store.orders[id]; ok {
		copied := *order
		copied.Items = append([]domain.OrderItem(nil), order.Items...)
		return &copied, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeOrderRepo) FindByOrderNumber(ctx context.Context, orderNumber string) (*domain.Order, error) {
	defer r.store.lock(ctx)()
	for _, order := range r.store.orders {
		if order.OrderNumber == orderNumber {
			copied := *order
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeOrderRepo) ExistsByOrderNumber(ctx context.Context, orderNumber string) (bool, error) {
	defer r.store.lock(ctx)()
	for _, order := range r.store.orders {
		if order.OrderNumber == orderNumber {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeOrderRepo) FindByRetailerID(ctx context.Context, retailerID uint, limit, offset int) ([]domain.Order, error) {
	return nil, nil
}

func (r *fakeOrderRepo) FindAll(ctx context.Context, limit, offset int) ([]domain.Order, error) {
	return nil, nil
}

// fakePublisher records published events
type fakePublisher struct {
	mu        sync.Mutex
	placed    []kafka.OrderPlacedEvent
	cancelled []kafka.OrderCancelledEvent
	lowStock  []kafka.LowStockEvent
}

func (p *fakePublisher) PublishOrderPlaced(ctx context.Context, event kafka.OrderPlacedEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.placed = append(p.placed, event)
	return nil
}

func (p *fakePublisher) PublishOrderCancelled(ctx context.Context, event kafka.OrderCancelledEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.cancelled = append(p.cancelled, event)
	return nil
}

func (p *fakePublisher) PublishLowStock(ctx context.Context, event kafka.LowStockEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.lowStock = append(p.lowStock, event)
	return nil
}
