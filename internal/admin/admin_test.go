// Package admin implements the password-gated admin side of the storefront.
// This file contains tests for the shared-secret gate and the product and
// order management service, including the status transition rules.
//
// Package admin 实现店面的密码门禁管理端。
// 本文件包含共享密钥门禁以及产品和订单管理服务的测试，包括状态转换规则。
package admin

import (
	"context"
	"errors"
	"testing"

	pkgerrors "github.com/achrafamalou77/ephedia-store/pkg/errors"
	"github.com/achrafamalou77/ephedia-store/pkg/store"
)

// memFlags is an in-memory FlagStore for tests.
//
// memFlags 是用于测试的内存FlagStore。
type memFlags struct {
	authed bool
	err    error
}

func (m *memFlags) SetAdminAuthenticated(v bool) error {
	if m.err != nil {
		return m.err
	}
	m.authed = v
	return nil
}

func (m *memFlags) IsAdminAuthenticated() (bool, error) {
	if m.err != nil {
		return false, m.err
	}
	return m.authed, nil
}

// setupService opens a gate with the test secret and an authenticated session.
//
// setupService 使用测试密钥打开门禁并建立已认证会话。
func setupService(t *testing.T) (*Service, *Gate, *store.MockStore) {
	t.Helper()
	flags := &memFlags{}
	gate := NewGate("ephedia2026", flags)
	mock := store.NewMockStore()
	if err := gate.Login("ephedia2026"); err != nil {
		t.Fatalf("login failed: %v", err)
	}
	return NewService(gate, mock), gate, mock
}

// TestGateLogin verifies the correct-code and incorrect-code paths: the flag
// becomes true only on a match, and a mismatch yields the incorrect-code signal.
//
// TestGateLogin 验证代码正确与错误的路径：只有匹配时标志才变为true，
// 不匹配时产生代码错误信号。
func TestGateLogin(t *testing.T) {
	flags := &memFlags{}
	gate := NewGate("ephedia2026", flags)

	if gate.IsAuthenticated() {
		t.Fatal("fresh gate should not be authenticated")
	}

	if err := gate.Login("wrong-code"); !errors.Is(err, pkgerrors.ErrIncorrectCode) {
		t.Fatalf("wrong code error = %v, want ErrIncorrectCode", err)
	}
	if gate.IsAuthenticated() {
		t.Error("flag must stay false after a wrong code")
	}

	if err := gate.Login("ephedia2026"); err != nil {
		t.Fatalf("correct code error = %v", err)
	}
	if !gate.IsAuthenticated() {
		t.Error("flag should be true after the correct code")
	}

	if err := gate.Logout(); err != nil {
		t.Fatal(err)
	}
	if gate.IsAuthenticated() {
		t.Error("flag should clear on logout")
	}
}

// TestGateFailsClosed verifies that a broken flag store reads as unauthenticated.
//
// TestGateFailsClosed 验证标志存储故障时读取为未认证。
func TestGateFailsClosed(t *testing.T) {
	flags := &memFlags{authed: true, err: errors.New("db gone")}
	gate := NewGate("s", flags)
	if gate.IsAuthenticated() {
		t.Error("a failing flag store must read as not authenticated")
	}
}

// TestServiceRequiresGate verifies that every management operation is refused
// before the gate opens, with no call reaching the store.
//
// TestServiceRequiresGate 验证门禁打开前每个管理操作都被拒绝，没有调用到达存储。
func TestServiceRequiresGate(t *testing.T) {
	gate := NewGate("secret", &memFlags{})
	mock := store.NewMockStore()
	svc := NewService(gate, mock)
	ctx := context.Background()

	if _, err := svc.ListProducts(ctx); !pkgerrors.IsUnauthorized(err) {
		t.Errorf("ListProducts error = %v, want ErrUnauthorized", err)
	}
	if _, err := svc.CreateProduct(ctx, ProductInput{Title: "X", Price: 1}); !pkgerrors.IsUnauthorized(err) {
		t.Errorf("CreateProduct error = %v, want ErrUnauthorized", err)
	}
	if err := svc.DeleteProduct(ctx, "id"); !pkgerrors.IsUnauthorized(err) {
		t.Errorf("DeleteProduct error = %v, want ErrUnauthorized", err)
	}
	if err := svc.UpdateOrderStatus(ctx, "id", store.StatusConfirmed); !pkgerrors.IsUnauthorized(err) {
		t.Errorf("UpdateOrderStatus error = %v, want ErrUnauthorized", err)
	}
}

// TestCreateProduct verifies validation and gallery splitting on create.
//
// TestCreateProduct 验证创建时的验证和图库拆分。
func TestCreateProduct(t *testing.T) {
	svc, _, _ := setupService(t)
	ctx := context.Background()

	if _, err := svc.CreateProduct(ctx, ProductInput{Title: " ", Price: 100}); err == nil {
		t.Error("expected a blank title to be rejected")
	}
	if _, err := svc.CreateProduct(ctx, ProductInput{Title: "Ring", Price: 0}); err == nil {
		t.Error("expected a non-positive price to be rejected")
	}

	created, err := svc.CreateProduct(ctx, ProductInput{
		Title:    "Vintage Gold Ring",
		Price:    1200,
		Category: "Rings",
		ImageURL: "https://img/main",
		Gallery:  " https://img/1 , https://img/2 ,, ",
	})
	if err != nil {
		t.Fatalf("CreateProduct() error = %v", err)
	}
	if created.ID == "" {
		t.Error("created product has no id")
	}
	if len(created.GalleryURLs) != 2 {
		t.Errorf("gallery = %v, want 2 trimmed URLs", created.GalleryURLs)
	}
}

// TestSplitGallery covers the comma-splitting edge cases.
//
// TestSplitGallery 覆盖逗号拆分的边界情况。
func TestSplitGallery(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want int
	}{
		{"empty", "", 0},
		{"whitespace only", "   ", 0},
		{"single", "https://a", 1},
		{"trailing commas", "https://a, https://b,,", 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SplitGallery(tt.in); len(got) != tt.want {
				t.Errorf("SplitGallery(%q) = %v, want %d entries", tt.in, got, tt.want)
			}
		})
	}
}

// TestOrderStatusTransitions verifies the one-directional lifecycle: pending
// orders confirm or cancel, settled orders refuse further transitions, and a
// legacy "new" status acts as pending.
//
// TestOrderStatusTransitions 验证单向生命周期：待处理订单可确认或取消，
// 已定案订单拒绝进一步转换，历史"new"状态等同于待处理。
func TestOrderStatusTransitions(t *testing.T) {
	svc, _, mock := setupService(t)
	ctx := context.Background()

	pending, err := mock.CreateOrder(ctx, store.Order{ProductName: "Ring", Status: store.StatusPending, TotalPrice: 1700})
	if err != nil {
		t.Fatal(err)
	}
	legacy, err := mock.CreateOrder(ctx, store.Order{ProductName: "Chain", Status: store.Status("new"), TotalPrice: 900})
	if err != nil {
		t.Fatal(err)
	}

	// Legacy "new" shows as pending in listings.
	// 历史"new"在列表中显示为待处理。
	orders, err := svc.ListOrders(ctx)
	if err != nil {
		t.Fatal(err)
	}
	for _, o := range orders {
		if o.Status != store.StatusPending {
			t.Errorf("order %s status = %s, want pending", o.ID, o.Status)
		}
	}

	if err := svc.UpdateOrderStatus(ctx, pending.ID, store.StatusConfirmed); err != nil {
		t.Fatalf("confirm error = %v", err)
	}
	if err := svc.UpdateOrderStatus(ctx, legacy.ID, store.StatusCancelled); err != nil {
		t.Fatalf("cancel legacy error = %v", err)
	}

	// Settled orders cannot transition again, in any direction.
	// 已定案的订单不能再向任何方向转换。
	if err := svc.UpdateOrderStatus(ctx, pending.ID, store.StatusCancelled); !errors.Is(err, pkgerrors.ErrInvalidStatus) {
		t.Errorf("re-transition error = %v, want ErrInvalidStatus", err)
	}

	// Pending is never a valid target.
	// 待处理绝不是有效的目标状态。
	if err := svc.UpdateOrderStatus(ctx, pending.ID, store.StatusPending); !errors.Is(err, pkgerrors.ErrInvalidStatus) {
		t.Errorf("to-pending error = %v, want ErrInvalidStatus", err)
	}

	// Unknown order ids surface not-found.
	// 未知的订单id返回未找到。
	if err := svc.UpdateOrderStatus(ctx, "ghost", store.StatusConfirmed); !pkgerrors.IsNotFound(err) {
		t.Errorf("unknown id error = %v, want ErrNotFound", err)
	}
}

// TestUpdateOrderStatusReadsSingleOrder verifies a status change looks up only
// the targeted order instead of pulling the whole order listing.
//
// TestUpdateOrderStatusReadsSingleOrder 验证状态变更只查询目标订单，
// 而不是拉取整个订单列表。
func TestUpdateOrderStatusReadsSingleOrder(t *testing.T) {
	svc, _, mock := setupService(t)
	ctx := context.Background()

	order, err := mock.CreateOrder(ctx, store.Order{ProductName: "Ring", Status: store.StatusPending})
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 20; i++ {
		if _, err := mock.CreateOrder(ctx, store.Order{ProductName: "Filler", Status: store.StatusPending}); err != nil {
			t.Fatal(err)
		}
	}

	if err := svc.UpdateOrderStatus(ctx, order.ID, store.StatusConfirmed); err != nil {
		t.Fatalf("confirm error = %v", err)
	}
	if got := mock.ListOrdersCalls(); got != 0 {
		t.Errorf("ListOrders calls during a status update = %d, want 0", got)
	}

	updated, err := mock.GetOrder(ctx, order.ID)
	if err != nil {
		t.Fatal(err)
	}
	if updated.Status != store.StatusConfirmed {
		t.Errorf("status = %s, want confirmed", updated.Status)
	}
}

// TestDeleteOrder verifies deletion and the error surface on a failing store.
//
// TestDeleteOrder 验证删除以及存储故障时的错误表现。
func TestDeleteOrder(t *testing.T) {
	svc, _, mock := setupService(t)
	ctx := context.Background()

	order, err := mock.CreateOrder(ctx, store.Order{ProductName: "Ring", Status: store.StatusPending})
	if err != nil {
		t.Fatal(err)
	}
	if err := svc.DeleteOrder(ctx, order.ID); err != nil {
		t.Fatalf("DeleteOrder() error = %v", err)
	}

	mock.FailNextWith(pkgerrors.ErrStoreUnavailable)
	if err := svc.DeleteOrder(ctx, order.ID); !pkgerrors.IsUnavailable(err) {
		t.Errorf("error = %v, want ErrStoreUnavailable", err)
	}
}
