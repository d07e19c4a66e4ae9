// Package shipping provides the region shipping-rate table for cash-on-delivery orders.
// Each wilaya maps to a home-delivery price and an optional office (stop-desk) pickup
// price; regions without a stop desk have no office price at all. The table is static
// reference data: lookups never mutate it and an unknown region is never fatal.
//
// Package shipping 提供货到付款订单的地区运费表。
// 每个省对应一个送货上门价格和一个可选的站点（stop-desk）自提价格；
// 没有站点的地区完全没有自提价格。该表是静态参考数据：查询绝不修改它，未知地区也绝不致命。
package shipping

// Method identifies how an order is delivered.
//
// Method 标识订单的配送方式。
type Method string

const (
	// MethodHome delivers the order to the customer's address.
	// MethodHome 将订单送到客户地址。
	MethodHome Method = "home"

	// MethodOffice has the customer collect the order from a fixed stop desk.
	// MethodOffice 由客户从固定站点自提订单。
	MethodOffice Method = "office"
)

// Valid reports whether m is one of the known delivery methods.
//
// Valid 报告m是否为已知配送方式之一。
func (m Method) Valid() bool {
	return m == MethodHome || m == MethodOffice
}

// Rate holds the delivery prices for one wilaya. Office is nil when the region
// has no stop-desk option.
//
// Rate 保存一个省的配送价格。该地区没有站点选项时Office为nil。
type Rate struct {
	ID     int      `yaml:"id" json:"id"`
	Name   string   `yaml:"name" json:"name"`
	Home   float64  `yaml:"home" json:"home"`
	Office *float64 `yaml:"office,omitempty" json:"office,omitempty"`
}

// HasOffice reports whether office pickup is available in this region.
//
// HasOffice 报告该地区是否提供站点自提。
func (r Rate) HasOffice() bool {
	return r.Office != nil
}

// Table is an immutable lookup from wilaya id to its shipping rate.
//
// Table 是从省id到其运费的不可变查询表。
type Table struct {
	byID  map[int]Rate
	rates []Rate
}

// NewTable builds a table from a rate list. Later duplicates of the same id win.
//
// NewTable 从费率列表构建查询表。相同id的后出现项覆盖先出现项。
//
// Parameters:
//   - rates: The rate entries, one per region
//
// Returns:
//   - *Table: A new lookup table
func NewTable(rates []Rate) *Table {
	t := &Table{
		byID:  make(map[int]Rate, len(rates)),
		rates: make([]Rate, len(rates)),
	}
	copy(t.rates, rates)
	for _, r := range rates {
		t.byID[r.ID] = r
	}
	return t
}

// Rate returns the rate for a region id and whether the region is known.
//
// Rate 返回地区id的费率以及该地区是否已知。
//
// Parameters:
//   - id: The wilaya identifier
//
// Returns:
//   - Rate: The rate entry, zero when not found
//   - bool: True if the region exists in the table
func (t *Table) Rate(id int) (Rate, bool) {
	r, ok := t.byID[id]
	return r, ok
}

// Rates returns all entries in table order. The slice is a copy.
//
// Rates 按表顺序返回所有条目。返回的切片是副本。
func (t *Table) Rates() []Rate {
	out := make([]Rate, len(t.rates))
	copy(out, t.rates)
	return out
}

// Price returns the shipping cost for a region and delivery method.
// An unknown region, an id of zero ("no selection") or a missing office price cost
// nothing: no selection is never an error, it is simply uncosted.
//
// Price 返回地区和配送方式的运费。
// 未知地区、id为零（"未选择"）或缺少自提价格都不产生费用：未选择绝不是错误，只是无费用。
//
// Parameters:
//   - id: The wilaya identifier, zero when nothing is selected
//   - method: The delivery method
//
// Returns:
//   - float64: The shipping price, 0 when uncosted
func (t *Table) Price(id int, method Method) float64 {
	r, ok := t.byID[id]
	if !ok {
		return 0
	}
	if method == MethodOffice {
		if r.Office == nil {
			return 0
		}
		return *r.Office
	}
	return r.Home
}

// Normalize forces the delivery method back to home when the selected region has
// no office pickup. It must be applied on every region change, not only at
// submission, so a shopper never holds a valid-looking but uncosted selection.
// Unknown methods also normalize to home.
//
// Normalize 在所选地区没有站点自提时将配送方式强制改回送货上门。
// 它必须在每次地区变更时应用，而不仅仅在提交时，这样购物者永远不会持有看似有效但无费用的选择。
// 未知的配送方式也归一化为送货上门。
//
// Parameters:
//   - id: The wilaya identifier
//   - method: The currently selected delivery method
//
// Returns:
//   - Method: The method actually usable for this region
func (t *Table) Normalize(id int, method Method) Method {
	if !method.Valid() {
		return MethodHome
	}
	if method == MethodOffice {
		r, ok := t.byID[id]
		if !ok || r.Office == nil {
			return MethodHome
		}
	}
	return method
}

// office is a small helper for building the default table.
// office 是构建默认表的小辅助函数。
func office(p float64) *float64 { return &p }

// DefaultTable returns the built-in wilaya rate table.
// Prices are in dinars. Remote southern wilayas have no stop desk.
//
// DefaultTable 返回内置的省运费表。价格以第纳尔计。偏远的南部省份没有站点。
func DefaultTable() *Table {
	return NewTable([]Rate{
		{ID: 1, Name: "Adrar", Home: 1400, Office: nil},
		{ID: 2, Name: "Chlef", Home: 750, Office: office(450)},
		{ID: 3, Name: "Laghouat", Home: 950, Office: office(600)},
		{ID: 4, Name: "Oum El Bouaghi", Home: 800, Office: office(450)},
		{ID: 5, Name: "Batna", Home: 800, Office: office(450)},
		{ID: 6, Name: "Béjaïa", Home: 750, Office: office(450)},
		{ID: 7, Name: "Biskra", Home: 950, Office: office(600)},
		{ID: 8, Name: "Béchar", Home: 1100, Office: office(650)},
		{ID: 9, Name: "Blida", Home: 600, Office: office(400)},
		{ID: 10, Name: "Bouira", Home: 700, Office: office(450)},
		{ID: 11, Name: "Tamanrasset", Home: 1600, Office: nil},
		{ID: 12, Name: "Tébessa", Home: 900, Office: office(600)},
		{ID: 13, Name: "Tlemcen", Home: 800, Office: office(450)},
		{ID: 14, Name: "Tiaret", Home: 800, Office: office(450)},
		{ID: 15, Name: "Tizi Ouzou", Home: 700, Office: office(450)},
		{ID: 16, Name: "Alger", Home: 500, Office: office(300)},
		{ID: 17, Name: "Djelfa", Home: 950, Office: office(600)},
		{ID: 18, Name: "Jijel", Home: 800, Office: office(450)},
		{ID: 19, Name: "Sétif", Home: 750, Office: office(450)},
		{ID: 20, Name: "Saïda", Home: 850, Office: office(500)},
		{ID: 21, Name: "Skikda", Home: 800, Office: office(450)},
		{ID: 22, Name: "Sidi Bel Abbès", Home: 800, Office: office(450)},
		{ID: 23, Name: "Annaba", Home: 800, Office: office(450)},
		{ID: 24, Name: "Guelma", Home: 800, Office: office(450)},
		{ID: 25, Name: "Constantine", Home: 750, Office: office(450)},
		{ID: 26, Name: "Médéa", Home: 700, Office: office(450)},
		{ID: 27, Name: "Mostaganem", Home: 750, Office: office(450)},
		{ID: 28, Name: "M'Sila", Home: 850, Office: office(500)},
		{ID: 29, Name: "Mascara", Home: 800, Office: office(450)},
		{ID: 30, Name: "Ouargla", Home: 1000, Office: office(650)},
		{ID: 31, Name: "Oran", Home: 700, Office: office(400)},
		{ID: 32, Name: "El Bayadh", Home: 1050, Office: nil},
		{ID: 33, Name: "Illizi", Home: 1700, Office: nil},
		{ID: 34, Name: "Bordj Bou Arréridj", Home: 750, Office: office(450)},
		{ID: 35, Name: "Boumerdès", Home: 600, Office: office(400)},
		{ID: 36, Name: "El Tarf", Home: 850, Office: office(500)},
		{ID: 37, Name: "Tindouf", Home: 1600, Office: nil},
		{ID: 38, Name: "Tissemsilt", Home: 850, Office: office(500)},
		{ID: 39, Name: "El Oued", Home: 1000, Office: office(650)},
		{ID: 40, Name: "Khenchela", Home: 900, Office: nil},
		{ID: 41, Name: "Souk Ahras", Home: 850, Office: office(500)},
		{ID: 42, Name: "Tipaza", Home: 600, Office: office(400)},
		{ID: 43, Name: "Mila", Home: 800, Office: office(450)},
		{ID: 44, Name: "Aïn Defla", Home: 750, Office: office(450)},
		{ID: 45, Name: "Naâma", Home: 1100, Office: nil},
		{ID: 46, Name: "Aïn Témouchent", Home: 800, Office: office(450)},
		{ID: 47, Name: "Ghardaïa", Home: 1000, Office: office(650)},
		{ID: 48, Name: "Relizane", Home: 800, Office: office(450)},
		{ID: 49, Name: "Timimoun", Home: 1400, Office: nil},
		{ID: 50, Name: "Bordj Badji Mokhtar", Home: 1700, Office: nil},
		{ID: 51, Name: "Ouled Djellal", Home: 1000, Office: nil},
		{ID: 52, Name: "Béni Abbès", Home: 1300, Office: nil},
		{ID: 53, Name: "In Salah", Home: 1600, Office: nil},
		{ID: 54, Name: "In Guezzam", Home: 1700, Office: nil},
		{ID: 55, Name: "Touggourt", Home: 1000, Office: office(650)},
		{ID: 56, Name: "Djanet", Home: 1700, Office: nil},
		{ID: 57, Name: "El M'Ghair", Home: 1000, Office: nil},
		{ID: 58, Name: "El Meniaa", Home: 1100, Office: nil},
	})
}
