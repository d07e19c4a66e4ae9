package store

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	pkgerrors "github.com/achrafamalou77/ephedia-store/pkg/errors"
)

// MockStore provides a simple in-memory RemoteStore implementation for testing.
// It supports failure injection so callers can exercise their error paths.
//
// MockStore 提供一个简单的内存RemoteStore实现，用于测试。
// 它支持故障注入，以便调用方测试其错误路径。
type MockStore struct {
	mu       sync.RWMutex
	products map[string]Product
	orders   map[string]Order

	// FailNext, when set, causes the next operation to fail with the given error
	// and is then cleared. Fail, when set, makes every operation fail.
	// FailNext 设置后使下一次操作以给定错误失败，然后被清除。Fail 设置后使每次操作都失败。
	failNext error
	fail     error

	// createOrderCalls counts CreateOrder invocations, including failed ones.
	// createOrderCalls 统计CreateOrder的调用次数，包括失败的调用。
	createOrderCalls int

	// listOrdersCalls counts ListOrders invocations.
	// listOrdersCalls 统计ListOrders的调用次数。
	listOrdersCalls int
}

// NewMockStore creates a new empty mock store.
//
// NewMockStore 创建一个新的空模拟存储。
//
// Returns:
//   - *MockStore: A new mock store instance
func NewMockStore() *MockStore {
	return &MockStore{
		products: make(map[string]Product),
		orders:   make(map[string]Order),
	}
}

// FailWith makes every subsequent operation fail with err.
// Pass nil to restore normal behavior.
//
// FailWith 使后续每次操作都以err失败。传入nil以恢复正常行为。
func (m *MockStore) FailWith(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fail = err
}

// FailNextWith makes only the next operation fail with err.
//
// FailNextWith 仅使下一次操作以err失败。
func (m *MockStore) FailNextWith(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failNext = err
}

// CreateOrderCalls returns how many times CreateOrder has been invoked.
//
// CreateOrderCalls 返回CreateOrder被调用的次数。
func (m *MockStore) CreateOrderCalls() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.createOrderCalls
}

// ListOrdersCalls returns how many times ListOrders has been invoked.
//
// ListOrdersCalls 返回ListOrders被调用的次数。
func (m *MockStore) ListOrdersCalls() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.listOrdersCalls
}

// SeedProduct inserts a product directly, bypassing validation. Test helper.
//
// SeedProduct 直接插入产品，绕过验证。测试辅助方法。
func (m *MockStore) SeedProduct(p Product) Product {
	m.mu.Lock()
	defer m.mu.Unlock()
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now()
	}
	m.products[p.ID] = p
	return p
}

// checkFail consumes any injected failure. Caller must hold the lock.
// checkFail 消费任何注入的故障。调用方必须持有锁。
func (m *MockStore) checkFail() error {
	if m.fail != nil {
		return m.fail
	}
	if m.failNext != nil {
		err := m.failNext
		m.failNext = nil
		return err
	}
	return nil
}

// ListProducts returns all products sorted by creation time.
func (m *MockStore) ListProducts(ctx context.Context, orderBy OrderBy) ([]Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.checkFail(); err != nil {
		return nil, err
	}

	out := make([]Product, 0, len(m.products))
	for _, p := range m.products {
		out = append(out, p)
	}
	sortByCreated(out, orderBy, func(p Product) time.Time { return p.CreatedAt })
	return out, nil
}

// GetProduct returns a product by id, or ErrNotFound.
func (m *MockStore) GetProduct(ctx context.Context, id string) (Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.checkFail(); err != nil {
		return Product{}, err
	}

	p, ok := m.products[id]
	if !ok {
		return Product{}, pkgerrors.NewOpError("mock.GetProduct", pkgerrors.ErrNotFound)
	}
	return p, nil
}

// SearchProducts returns products whose title contains the fragment, case-insensitively.
func (m *MockStore) SearchProducts(ctx context.Context, titleContains string, limit int) ([]Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.checkFail(); err != nil {
		return nil, err
	}

	needle := strings.ToLower(titleContains)
	out := make([]Product, 0)
	for _, p := range m.products {
		if strings.Contains(strings.ToLower(p.Title), needle) {
			out = append(out, p)
		}
	}
	sortByCreated(out, OrderByNewest, func(p Product) time.Time { return p.CreatedAt })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// CreateProduct inserts a new product with a generated id.
func (m *MockStore) CreateProduct(ctx context.Context, fields ProductFields) (Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.checkFail(); err != nil {
		return Product{}, err
	}

	p := Product{
		ID:          uuid.New().String(),
		Title:       fields.Title,
		Price:       fields.Price,
		Category:    fields.Category,
		ImageURL:    fields.ImageURL,
		GalleryURLs: fields.GalleryURLs,
		CreatedAt:   time.Now(),
	}
	m.products[p.ID] = p
	return p, nil
}

// DeleteProduct removes a product by id.
func (m *MockStore) DeleteProduct(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.checkFail(); err != nil {
		return err
	}

	if _, ok := m.products[id]; !ok {
		return pkgerrors.NewOpError("mock.DeleteProduct", pkgerrors.ErrNotFound)
	}
	delete(m.products, id)
	return nil
}

// ListOrders returns all orders sorted by creation time.
func (m *MockStore) ListOrders(ctx context.Context, orderBy OrderBy) ([]Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listOrdersCalls++
	if err := m.checkFail(); err != nil {
		return nil, err
	}

	out := make([]Order, 0, len(m.orders))
	for _, o := range m.orders {
		out = append(out, o)
	}
	sortByCreated(out, orderBy, func(o Order) time.Time { return o.CreatedAt })
	return out, nil
}

// GetOrder returns an order by id, or ErrNotFound.
func (m *MockStore) GetOrder(ctx context.Context, id string) (Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.checkFail(); err != nil {
		return Order{}, err
	}

	o, ok := m.orders[id]
	if !ok {
		return Order{}, pkgerrors.NewOpError("mock.GetOrder", pkgerrors.ErrNotFound)
	}
	return o, nil
}

// CreateOrder inserts a new order snapshot with a generated id.
func (m *MockStore) CreateOrder(ctx context.Context, order Order) (Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.createOrderCalls++
	if err := m.checkFail(); err != nil {
		return Order{}, err
	}

	order.ID = uuid.New().String()
	if order.CreatedAt.IsZero() {
		order.CreatedAt = time.Now()
	}
	m.orders[order.ID] = order
	return order, nil
}

// UpdateOrderStatus sets the status of an existing order.
func (m *MockStore) UpdateOrderStatus(ctx context.Context, id string, status Status) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.checkFail(); err != nil {
		return err
	}

	o, ok := m.orders[id]
	if !ok {
		return pkgerrors.NewOpError("mock.UpdateOrderStatus", pkgerrors.ErrNotFound)
	}
	o.Status = status
	m.orders[id] = o
	return nil
}

// DeleteOrder removes an order by id.
func (m *MockStore) DeleteOrder(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.checkFail(); err != nil {
		return err
	}

	if _, ok := m.orders[id]; !ok {
		return pkgerrors.NewOpError("mock.DeleteOrder", pkgerrors.ErrNotFound)
	}
	delete(m.orders, id)
	return nil
}

// sortByCreated sorts records in place by creation time according to orderBy.
// The zero OrderBy sorts newest first.
//
// sortByCreated 根据orderBy按创建时间对记录原地排序。零值OrderBy按最新优先排序。
func sortByCreated[T any](items []T, orderBy OrderBy, createdAt func(T) time.Time) {
	asc := orderBy == OrderByOldest
	sort.SliceStable(items, func(i, j int) bool {
		if asc {
			return createdAt(items[i]).Before(createdAt(items[j]))
		}
		return createdAt(items[i]).After(createdAt(items[j]))
	})
}
