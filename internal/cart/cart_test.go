// Package cart implements the shopper's cart aggregate.
// This file contains tests for the cart invariants: line uniqueness, quantity
// clamping, fresh recomputation of derived values, idempotent clearing and the
// persistence side effect of every mutation.
//
// Package cart 实现购物者的购物车聚合。
// 本文件包含购物车不变式的测试：商品行唯一性、数量钳制、派生值的即时重算、
// 幂等清空以及每次修改的持久化副作用。
package cart

import (
	"errors"
	"testing"

	"github.com/achrafamalou77/ephedia-store/pkg/store"
)

// recordingPersister captures every persisted snapshot so tests can assert the
// side-effect contract. It can also fail on demand.
//
// recordingPersister 捕获每次持久化的快照，以便测试断言副作用契约。它也可以按需失败。
type recordingPersister struct {
	saves   [][]Line
	lastKey string
	err     error
}

func (p *recordingPersister) SaveCart(sessionID string, lines []Line) error {
	if p.err != nil {
		return p.err
	}
	p.lastKey = sessionID
	snapshot := make([]Line, len(lines))
	copy(snapshot, lines)
	p.saves = append(p.saves, snapshot)
	return nil
}

// testProduct builds a product fixture.
// testProduct 构建产品测试夹具。
func testProduct(id, title string, price float64) store.Product {
	return store.Product{ID: id, Title: title, Price: price, Category: "Rings", ImageURL: "https://img/" + id}
}

// TestAddIncrementsExistingLine verifies that adding an already-present product
// increments its quantity instead of duplicating the line.
//
// TestAddIncrementsExistingLine 验证添加已存在的产品会增加其数量而不是复制商品行。
func TestAddIncrementsExistingLine(t *testing.T) {
	c := New("s1", nil)
	a := testProduct("a", "Gold Ring", 1000)

	for i := 0; i < 3; i++ {
		if err := c.Add(a); err != nil {
			t.Fatalf("Add() error = %v", err)
		}
	}

	if c.Len() != 1 {
		t.Fatalf("expected 1 line, got %d", c.Len())
	}
	lines := c.Lines()
	if lines[0].Quantity != 3 {
		t.Errorf("expected quantity 3, got %d", lines[0].Quantity)
	}
	if c.Count() != 3 {
		t.Errorf("Count() = %d, want 3", c.Count())
	}
}

// TestNoDuplicateLines verifies that arbitrary operation sequences never
// produce two lines with the same product id.
//
// TestNoDuplicateLines 验证任意操作序列都不会产生两个具有相同产品id的商品行。
func TestNoDuplicateLines(t *testing.T) {
	c := New("s1", nil)
	a := testProduct("a", "Gold Ring", 1000)
	b := testProduct("b", "Silver Chain", 500)

	ops := []func() error{
		func() error { return c.Add(a) },
		func() error { return c.Add(b) },
		func() error { return c.Add(a) },
		func() error { return c.UpdateQuantity("a", -5) },
		func() error { return c.Remove("b") },
		func() error { return c.Add(b) },
		func() error { return c.Add(b) },
		func() error { return c.UpdateQuantity("b", 2) },
		func() error { return c.Add(a) },
	}
	for i, op := range ops {
		if err := op(); err != nil {
			t.Fatalf("op %d error = %v", i, err)
		}
		seen := make(map[string]bool)
		for _, line := range c.Lines() {
			if seen[line.ProductID] {
				t.Fatalf("after op %d: duplicate line for product %s", i, line.ProductID)
			}
			seen[line.ProductID] = true
		}
	}
}

// TestUpdateQuantityClampsAtOne verifies that decrementing at quantity 1
// leaves the quantity at 1 and never removes the line.
//
// TestUpdateQuantityClampsAtOne 验证数量为1时递减使数量保持为1，绝不移除商品行。
func TestUpdateQuantityClampsAtOne(t *testing.T) {
	c := New("s1", nil)
	if err := c.Add(testProduct("a", "Gold Ring", 1000)); err != nil {
		t.Fatal(err)
	}

	if err := c.UpdateQuantity("a", -1); err != nil {
		t.Fatalf("UpdateQuantity() error = %v", err)
	}
	lines := c.Lines()
	if len(lines) != 1 {
		t.Fatalf("line was removed by decrement; got %d lines", len(lines))
	}
	if lines[0].Quantity != 1 {
		t.Errorf("quantity = %d, want 1", lines[0].Quantity)
	}

	// A large negative delta clamps the same way.
	// 大的负增量以同样方式钳制。
	if err := c.UpdateQuantity("a", -100); err != nil {
		t.Fatal(err)
	}
	if got := c.Lines()[0].Quantity; got != 1 {
		t.Errorf("quantity after big decrement = %d, want 1", got)
	}

	// Unknown ids are ignored without error.
	// 未知的id被忽略且不报错。
	if err := c.UpdateQuantity("ghost", 1); err != nil {
		t.Errorf("UpdateQuantity(ghost) error = %v", err)
	}
}

// TestTotalRecomputed verifies that Total always reflects the current lines
// with no separate recalculation step.
//
// TestTotalRecomputed 验证Total始终反映当前商品行，无需单独的重算步骤。
func TestTotalRecomputed(t *testing.T) {
	c := New("s1", nil)
	a := testProduct("a", "Gold Ring", 1000)
	b := testProduct("b", "Silver Chain", 500)

	if err := c.Add(a); err != nil {
		t.Fatal(err)
	}
	if err := c.Add(a); err != nil {
		t.Fatal(err)
	}
	if err := c.Add(b); err != nil {
		t.Fatal(err)
	}
	// Product A ×2 at 1000 plus Product B ×1 at 500.
	if got := c.Total(); got != 2500 {
		t.Fatalf("Total() = %v, want 2500", got)
	}

	if err := c.UpdateQuantity("b", 2); err != nil {
		t.Fatal(err)
	}
	if got := c.Total(); got != 3500 {
		t.Errorf("Total() after quantity change = %v, want 3500", got)
	}

	if err := c.Remove("a"); err != nil {
		t.Fatal(err)
	}
	if got := c.Total(); got != 1500 {
		t.Errorf("Total() after removal = %v, want 1500", got)
	}
}

// TestClearIdempotent verifies that clearing twice in a row leaves the cart
// empty both times without error.
//
// TestClearIdempotent 验证连续两次清空都使购物车为空且不报错。
func TestClearIdempotent(t *testing.T) {
	c := New("s1", nil)
	if err := c.Add(testProduct("a", "Gold Ring", 1000)); err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 2; i++ {
		if err := c.Clear(); err != nil {
			t.Fatalf("Clear() #%d error = %v", i+1, err)
		}
		if c.Len() != 0 || c.Count() != 0 || c.Total() != 0 {
			t.Fatalf("cart not empty after Clear() #%d", i+1)
		}
	}
}

// TestEveryMutationPersists verifies the persistence side effect: each mutating
// operation writes the resulting state, keyed by the session id.
//
// TestEveryMutationPersists 验证持久化副作用：每个修改操作都写入结果状态，以会话id为键。
func TestEveryMutationPersists(t *testing.T) {
	p := &recordingPersister{}
	c := New("session-42", p)
	a := testProduct("a", "Gold Ring", 1000)

	if err := c.Add(a); err != nil {
		t.Fatal(err)
	}
	if err := c.UpdateQuantity("a", 1); err != nil {
		t.Fatal(err)
	}
	if err := c.Remove("a"); err != nil {
		t.Fatal(err)
	}
	if err := c.Clear(); err != nil {
		t.Fatal(err)
	}

	if len(p.saves) != 4 {
		t.Fatalf("expected 4 persisted snapshots, got %d", len(p.saves))
	}
	if p.lastKey != "session-42" {
		t.Errorf("persisted under key %q, want session-42", p.lastKey)
	}
	if len(p.saves[1]) != 1 || p.saves[1][0].Quantity != 2 {
		t.Errorf("second snapshot = %+v, want single line with quantity 2", p.saves[1])
	}
	if len(p.saves[3]) != 0 {
		t.Errorf("final snapshot should be empty, got %+v", p.saves[3])
	}

	// Persistence failures surface to the caller.
	// 持久化失败会反馈给调用方。
	p.err = errors.New("disk full")
	if err := c.Add(a); err == nil {
		t.Error("expected Add to surface the persistence error")
	}
}

// TestRestore verifies that restoring persisted lines rebuilds the cart,
// clamping bad quantities and collapsing duplicate ids.
//
// TestRestore 验证恢复已持久化的商品行会重建购物车，钳制非法数量并合并重复id。
func TestRestore(t *testing.T) {
	c := New("s1", nil)
	c.Restore([]Line{
		{ProductID: "a", Title: "Gold Ring", Price: 1000, Quantity: 2},
		{ProductID: "b", Title: "Silver Chain", Price: 500, Quantity: 0},
		{ProductID: "a", Title: "Gold Ring", Price: 1000, Quantity: 1},
		{ProductID: "", Title: "orphan", Price: 1, Quantity: 1},
	})

	if c.Len() != 2 {
		t.Fatalf("expected 2 lines after restore, got %d", c.Len())
	}
	lines := c.Lines()
	if lines[0].ProductID != "a" || lines[0].Quantity != 3 {
		t.Errorf("line a = %+v, want quantity 3", lines[0])
	}
	if lines[1].ProductID != "b" || lines[1].Quantity != 1 {
		t.Errorf("line b = %+v, want clamped quantity 1", lines[1])
	}
	if got := c.Total(); got != 3500 {
		t.Errorf("Total() after restore = %v, want 3500", got)
	}
}
