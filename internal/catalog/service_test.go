// Package catalog implements the read side of the storefront.
// This file contains tests for detail lookup with history recording, related
// product selection and the degraded search paths.
//
// Package catalog 实现店面的读取端。
// 本文件包含带历史记录的详情查询、推荐产品选择以及搜索降级路径的测试。
package catalog

import (
	"context"
	"fmt"
	"testing"

	pkgerrors "github.com/achrafamalou77/ephedia-store/pkg/errors"
	"github.com/achrafamalou77/ephedia-store/pkg/store"
)

// memHistory is an in-memory History for tests.
//
// memHistory 是用于测试的内存History。
type memHistory struct {
	views map[string][]store.Product
}

func newMemHistory() *memHistory {
	return &memHistory{views: make(map[string][]store.Product)}
}

func (h *memHistory) RecordView(sessionID string, p store.Product) error {
	h.views[sessionID] = append([]store.Product{p}, h.views[sessionID]...)
	return nil
}

func (h *memHistory) RecentlyViewed(sessionID string) ([]store.Product, error) {
	return h.views[sessionID], nil
}

// seedCatalog fills the mock store with n products.
//
// seedCatalog 向模拟存储填充n个产品。
func seedCatalog(t *testing.T, mock *store.MockStore, n int) []store.Product {
	t.Helper()
	out := make([]store.Product, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, mock.SeedProduct(store.Product{
			Title: fmt.Sprintf("Ring %d", i),
			Price: float64(100 * (i + 1)),
		}))
	}
	return out
}

// TestGetRecordsHistory verifies the view-history side effect of Get and the
// not-found path.
//
// TestGetRecordsHistory 验证Get的浏览历史副作用以及未找到路径。
func TestGetRecordsHistory(t *testing.T) {
	mock := store.NewMockStore()
	history := newMemHistory()
	svc := NewService(mock, history)
	ctx := context.Background()

	seeded := seedCatalog(t, mock, 3)

	got, err := svc.Get(ctx, "s1", seeded[0].ID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.ID != seeded[0].ID {
		t.Errorf("got product %s, want %s", got.ID, seeded[0].ID)
	}

	viewed := svc.RecentlyViewed("s1")
	if len(viewed) != 1 || viewed[0].ID != seeded[0].ID {
		t.Errorf("history = %+v, want the viewed product", viewed)
	}

	// Missing products surface the dedicated not-found error.
	// 缺失的产品返回专门的未找到错误。
	_, err = svc.Get(ctx, "s1", "ghost")
	if !IsNotFound(err) {
		t.Errorf("error = %v, want not-found", err)
	}
	if len(svc.RecentlyViewed("s1")) != 1 {
		t.Error("a failed Get must not touch the history")
	}
}

// TestRelatedExcludesCurrent verifies the exclusion and size bound of the
// related selection, and its degradation on store failure.
//
// TestRelatedExcludesCurrent 验证推荐选择的排除和数量上限，以及存储故障时的降级。
func TestRelatedExcludesCurrent(t *testing.T) {
	mock := store.NewMockStore()
	svc := NewService(mock, nil)
	ctx := context.Background()

	seeded := seedCatalog(t, mock, 8)
	current := seeded[2]

	related := svc.Related(ctx, current.ID, 4)
	if len(related) != 4 {
		t.Fatalf("related count = %d, want 4", len(related))
	}
	for _, p := range related {
		if p.ID == current.ID {
			t.Error("related selection contains the current product")
		}
	}

	// Fewer candidates than requested is fine.
	// 候选少于请求数量也没问题。
	few := store.NewMockStore()
	few.SeedProduct(store.Product{Title: "Only"})
	if got := NewService(few, nil).Related(ctx, "none", 4); len(got) != 1 {
		t.Errorf("related from tiny catalog = %d, want 1", len(got))
	}

	// Failure degrades to an empty strip, never an error.
	// 故障降级为空栏，绝不报错。
	mock.FailNextWith(pkgerrors.ErrStoreUnavailable)
	if got := svc.Related(ctx, current.ID, 4); got != nil {
		t.Errorf("related on failure = %v, want nil", got)
	}
}

// TestSearch verifies matching, the empty query shortcut and error surfacing.
//
// TestSearch 验证匹配、空查询捷径和错误反馈。
func TestSearch(t *testing.T) {
	mock := store.NewMockStore()
	svc := NewService(mock, nil)
	ctx := context.Background()

	mock.SeedProduct(store.Product{Title: "Vintage Gold Ring"})
	mock.SeedProduct(store.Product{Title: "Silver Chain"})

	results, err := svc.Search(ctx, "gold")
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(results) != 1 || results[0].Title != "Vintage Gold Ring" {
		t.Errorf("results = %+v, want the gold ring", results)
	}

	if results, err := svc.Search(ctx, ""); err != nil || results != nil {
		t.Errorf("empty query = (%v, %v), want (nil, nil)", results, err)
	}

	mock.FailNextWith(pkgerrors.ErrStoreUnavailable)
	if _, err := svc.Search(ctx, "gold"); !pkgerrors.IsUnavailable(err) {
		t.Errorf("error = %v, want ErrStoreUnavailable", err)
	}
}
