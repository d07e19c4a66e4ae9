// Package shipping provides the region shipping-rate table.
// This file contains tests for rate lookup, delivery-method normalization
// and rate-file loading.
//
// Package shipping 提供地区运费表。
// 本文件包含费率查询、配送方式归一化和费率文件加载的测试。
package shipping

import (
	"os"
	"path/filepath"
	"testing"
)

// testTable builds a small table used across the tests: one region with both
// methods, one home-only region.
//
// testTable 构建测试通用的小表：一个支持两种方式的地区，一个仅送货上门的地区。
func testTable(t *testing.T) *Table {
	t.Helper()
	return NewTable([]Rate{
		{ID: 1, Name: "R1", Home: 400, Office: office(300)},
		{ID: 2, Name: "R2", Home: 900, Office: nil},
	})
}

// TestTableRate verifies plain lookups and the not-found case.
//
// TestTableRate 验证普通查询和未找到的情况。
func TestTableRate(t *testing.T) {
	table := testTable(t)

	r, ok := table.Rate(1)
	if !ok {
		t.Fatal("expected region 1 to exist")
	}
	if r.Name != "R1" || r.Home != 400 || !r.HasOffice() {
		t.Errorf("unexpected rate for region 1: %+v", r)
	}

	if _, ok := table.Rate(99); ok {
		t.Error("expected region 99 to be unknown")
	}
}

// TestTablePrice verifies the shipping cost for every selection combination,
// including "no selection" and regions without office pickup.
//
// TestTablePrice 验证每种选择组合的运费，包括"未选择"和没有站点自提的地区。
func TestTablePrice(t *testing.T) {
	table := testTable(t)

	tests := []struct {
		name   string
		id     int
		method Method
		want   float64
	}{
		{"home price", 1, MethodHome, 400},
		{"office price", 1, MethodOffice, 300},
		{"home only region", 2, MethodHome, 900},
		{"office where absent", 2, MethodOffice, 0},
		{"no selection", 0, MethodHome, 0},
		{"unknown region", 42, MethodOffice, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := table.Price(tt.id, tt.method); got != tt.want {
				t.Errorf("Price(%d, %s) = %v, want %v", tt.id, tt.method, got, tt.want)
			}
		})
	}
}

// TestTableNormalize verifies that switching to a region without office
// pickup forces the method back to home, and that the forced selection prices
// at the home rate, never a stale office rate.
//
// TestTableNormalize 验证切换到没有站点自提的地区时配送方式被强制改回送货上门，
// 且被强制的选择按上门价格计费，绝不是过期的自提价格。
func TestTableNormalize(t *testing.T) {
	table := testTable(t)

	tests := []struct {
		name   string
		id     int
		method Method
		want   Method
	}{
		{"office kept where available", 1, MethodOffice, MethodOffice},
		{"office forced to home", 2, MethodOffice, MethodHome},
		{"home untouched", 2, MethodHome, MethodHome},
		{"unknown region forces home", 42, MethodOffice, MethodHome},
		{"invalid method forces home", 1, Method("pigeon"), MethodHome},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := table.Normalize(tt.id, tt.method)
			if got != tt.want {
				t.Fatalf("Normalize(%d, %s) = %s, want %s", tt.id, tt.method, got, tt.want)
			}
			// The normalized selection must always carry the price of what the
			// shopper actually gets.
			// 归一化后的选择必须始终对应购物者实际获得的价格。
			if r, ok := table.Rate(tt.id); ok && got == MethodHome {
				if price := table.Price(tt.id, got); price != r.Home {
					t.Errorf("normalized price = %v, want home price %v", price, r.Home)
				}
			}
		})
	}
}

// TestDefaultTable sanity-checks the built-in table: every entry resolvable,
// non-negative prices, and at least one region without office pickup.
//
// TestDefaultTable 对内置表进行健全性检查：每个条目可解析、价格非负、至少一个地区没有站点自提。
func TestDefaultTable(t *testing.T) {
	table := DefaultTable()
	rates := table.Rates()
	if len(rates) != 58 {
		t.Fatalf("expected 58 wilayas, got %d", len(rates))
	}

	homeOnly := 0
	for _, r := range rates {
		got, ok := table.Rate(r.ID)
		if !ok || got.Name != r.Name {
			t.Errorf("region %d not resolvable through the table", r.ID)
		}
		if r.Home <= 0 {
			t.Errorf("region %d has non-positive home price %v", r.ID, r.Home)
		}
		if r.Office != nil && *r.Office <= 0 {
			t.Errorf("region %d has non-positive office price %v", r.ID, *r.Office)
		}
		if r.Office == nil {
			homeOnly++
		}
	}
	if homeOnly == 0 {
		t.Error("expected at least one home-only region in the default table")
	}
}

// TestLoadAndSaveTable tests the YAML round trip through a rate file,
// including rejection of invalid entries.
//
// TestLoadAndSaveTable 测试通过费率文件的YAML往返，包括拒绝无效条目。
func TestLoadAndSaveTable(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rates.yaml")

	if err := SaveTable(testTable(t), path); err != nil {
		t.Fatalf("SaveTable() error = %v", err)
	}

	loaded, err := LoadTable(path)
	if err != nil {
		t.Fatalf("LoadTable() error = %v", err)
	}
	if got := loaded.Price(1, MethodOffice); got != 300 {
		t.Errorf("loaded office price = %v, want 300", got)
	}
	if got := loaded.Normalize(2, MethodOffice); got != MethodHome {
		t.Errorf("loaded table lost the home-only region")
	}

	// Invalid file: negative home price must be rejected.
	// 无效文件：负的上门价格必须被拒绝。
	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("rates:\n  - id: 1\n    name: X\n    home: -5\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadTable(bad); err == nil {
		t.Error("expected LoadTable to reject a negative home price")
	}

	if _, err := LoadTable(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("expected LoadTable to fail on a missing file")
	}
}
