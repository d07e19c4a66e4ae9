// Package checkout assembles cash-on-delivery orders from cart or single-product
// selections and submits them to the remote store. Pricing is a pure recomputation
// over its inputs (product prices, selected region, delivery method); nothing is
// cached, so totals can never go stale. Validation happens here, at the assembler
// boundary, before any network call: an order missing name, phone or region never
// reaches the gateway. The cart is cleared only after the store confirms the
// create; a failed submission leaves cart and form intact.
//
// Package checkout 从购物车或单品选择装配货到付款订单并提交到远程存储。
// 定价是对其输入（产品价格、所选地区、配送方式）的纯重计算；没有任何缓存，因此总额绝不会过期。
// 验证在装配器边界、任何网络调用之前进行：缺少姓名、电话或地区的订单绝不会到达网关。
// 只有在存储确认创建后才清空购物车；提交失败会保持购物车和表单不变。
package checkout

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"

	"github.com/achrafamalou77/ephedia-store/internal/cart"
	"github.com/achrafamalou77/ephedia-store/internal/shipping"
	pkgerrors "github.com/achrafamalou77/ephedia-store/pkg/errors"
	"github.com/achrafamalou77/ephedia-store/pkg/store"
)

// CustomerForm is the structured checkout form. Fields are named and typed;
// the HTTP layer converts raw string inputs before anything reaches this type,
// so no string-typed price or id is ever persisted.
//
// CustomerForm 是结构化的结账表单。字段具名且有类型；
// HTTP层在任何内容到达此类型之前转换原始字符串输入，因此绝不会持久化字符串类型的价格或id。
type CustomerForm struct {
	FullName  string          `json:"full_name"`
	Phone     string          `json:"phone"`
	Instagram string          `json:"instagram,omitempty"`
	WilayaID  int             `json:"wilaya_id"`
	Commune   string          `json:"commune"`
	Delivery  shipping.Method `json:"delivery_type"`
}

// Quote is the derived pricing for one checkout selection. Method is the
// normalized delivery method actually in effect, which may differ from the
// form's when the region has no office pickup.
//
// Quote 是一次结账选择的派生定价。Method是实际生效的归一化配送方式，
// 当地区没有站点自提时它可能与表单不同。
type Quote struct {
	Method        shipping.Method `json:"delivery_type"`
	ShippingPrice float64         `json:"shipping_price"`
	ProductPrice  float64         `json:"product_price"`
	TotalPrice    float64         `json:"total_price"`
}

// RateSource yields the current shipping rate table. The live table can change
// under a rate-file watcher, so the assembler reads it through this indirection
// on every computation.
//
// RateSource 提供当前的运费表。费率文件监视器可能更换活动表，
// 因此装配器在每次计算时通过此间接层读取它。
type RateSource interface {
	// Table returns the rate table to price against.
	// Table 返回用于计价的费率表。
	Table() *shipping.Table
}

// StaticRates adapts a fixed table to the RateSource interface.
//
// StaticRates 将固定的表适配为RateSource接口。
type StaticRates struct {
	T *shipping.Table
}

// Table returns the fixed table.
func (s StaticRates) Table() *shipping.Table { return s.T }

// Assembler combines cart or product selections with shipping and customer
// information into persistable order snapshots, and submits them. A per-session
// in-flight guard refuses a second submission while one is outstanding, so a
// double click cannot create duplicate orders. Safe for concurrent use.
//
// Assembler 将购物车或产品选择与运费和客户信息组合为可持久化的订单快照并提交。
// 每会话的进行中防护在一次提交未完成时拒绝第二次提交，因此双击不会创建重复订单。
// 可安全并发使用。
type Assembler struct {
	gateway store.RemoteStore
	rates   RateSource

	mu       sync.Mutex
	inFlight map[string]bool
}

// NewAssembler creates an order assembler.
//
// NewAssembler 创建订单装配器。
//
// Parameters:
//   - gateway: The remote store to persist orders to
//   - rates: The shipping rate source
//
// Returns:
//   - *Assembler: A new assembler instance
func NewAssembler(gateway store.RemoteStore, rates RateSource) *Assembler {
	return &Assembler{
		gateway:  gateway,
		rates:    rates,
		inFlight: make(map[string]bool),
	}
}

// PriceQuote computes the derived pricing for a product subtotal and the
// current form selection. It is a pure function of its inputs: call it on
// every region or method change and whenever the cart mutates. With no region
// selected the shipping price defaults to 0 and the total is the subtotal.
//
// PriceQuote 计算产品小计和当前表单选择的派生定价。它是其输入的纯函数：
// 在每次地区或方式变更以及购物车变动时调用。未选择地区时运费默认为0，总额即小计。
//
// Parameters:
//   - subtotal: The product price or cart subtotal
//   - form: The current checkout selection
//
// Returns:
//   - Quote: The normalized method and computed prices
func (a *Assembler) PriceQuote(subtotal float64, form CustomerForm) Quote {
	table := a.rates.Table()
	method := table.Normalize(form.WilayaID, form.Delivery)
	ship := table.Price(form.WilayaID, method)
	return Quote{
		Method:        method,
		ShippingPrice: ship,
		ProductPrice:  subtotal,
		TotalPrice:    subtotal + ship,
	}
}

// validate blocks submission until region, phone and name are all non-empty.
// It reports every missing field at once.
//
// validate 在地区、电话和姓名全部非空之前阻止提交。它一次性报告所有缺失字段。
func validate(form CustomerForm) error {
	var missing []string
	if strings.TrimSpace(form.FullName) == "" {
		missing = append(missing, "name")
	}
	if strings.TrimSpace(form.Phone) == "" {
		missing = append(missing, "phone")
	}
	if form.WilayaID == 0 {
		missing = append(missing, "region")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing %s", pkgerrors.ErrInvalidOrder, strings.Join(missing, ", "))
	}
	return nil
}

// AssembleSingle builds the order snapshot for a single-product checkout.
// Total = product price + shipping price for the normalized method.
//
// AssembleSingle 为单品结账构建订单快照。总额 = 产品价格 + 归一化方式的运费。
//
// Parameters:
//   - p: The product being ordered
//   - form: The customer's checkout form
//
// Returns:
//   - store.Order: The assembled snapshot, status pending
//   - error: ErrInvalidOrder when required fields are missing
func (a *Assembler) AssembleSingle(p store.Product, form CustomerForm) (store.Order, error) {
	if err := validate(form); err != nil {
		return store.Order{}, err
	}
	quote := a.PriceQuote(p.Price, form)
	return a.snapshot(p.Title, quote, form), nil
}

// AssembleCart builds the order snapshot for a whole-cart checkout. The line
// items collapse into one concatenated description, "Title (xN), ...", and the
// product price is the cart subtotal.
//
// AssembleCart 为整车结账构建订单快照。商品行折叠为一个拼接描述"标题 (x数量), ..."，
// 产品价格为购物车小计。
//
// Parameters:
//   - lines: The current cart lines
//   - form: The customer's checkout form
//
// Returns:
//   - store.Order: The assembled snapshot, status pending
//   - error: ErrEmptyCart with no lines, ErrInvalidOrder on missing fields
func (a *Assembler) AssembleCart(lines []cart.Line, form CustomerForm) (store.Order, error) {
	if len(lines) == 0 {
		return store.Order{}, pkgerrors.ErrEmptyCart
	}
	if err := validate(form); err != nil {
		return store.Order{}, err
	}

	var subtotal float64
	names := make([]string, 0, len(lines))
	for _, l := range lines {
		subtotal += l.Price * float64(l.Quantity)
		names = append(names, fmt.Sprintf("%s (x%d)", l.Title, l.Quantity))
	}

	quote := a.PriceQuote(subtotal, form)
	return a.snapshot(strings.Join(names, ", "), quote, form), nil
}

// snapshot assembles the final order record. The region is resolved to its
// display name at this moment; the order never stores a live rate reference.
//
// snapshot 装配最终订单记录。地区在此刻解析为其显示名称；订单绝不存储活动的费率引用。
func (a *Assembler) snapshot(productName string, quote Quote, form CustomerForm) store.Order {
	wilayaName := ""
	if r, ok := a.rates.Table().Rate(form.WilayaID); ok {
		wilayaName = r.Name
	}

	return store.Order{
		ProductName:    productName,
		ProductPrice:   quote.ProductPrice,
		ShippingPrice:  quote.ShippingPrice,
		TotalPrice:     quote.TotalPrice,
		CustomerName:   strings.TrimSpace(form.FullName),
		Phone:          strings.TrimSpace(form.Phone),
		Instagram:      strings.TrimSpace(form.Instagram),
		Wilaya:         wilayaName,
		Commune:        strings.TrimSpace(form.Commune),
		DeliveryMethod: string(quote.Method),
		Status:         store.StatusPending,
	}
}

// begin marks a session's submission in flight, or refuses if one already is.
// begin 标记会话的提交为进行中，或在已有提交时拒绝。
func (a *Assembler) begin(sessionID string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.inFlight[sessionID] {
		return pkgerrors.ErrSubmissionInFlight
	}
	a.inFlight[sessionID] = true
	return nil
}

// end releases a session's in-flight mark.
// end 释放会话的进行中标记。
func (a *Assembler) end(sessionID string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	delete(a.inFlight, sessionID)
}

// SubmitSingle validates, assembles and persists a single-product order.
// On failure nothing changes and the error is returned for display.
//
// SubmitSingle 验证、装配并持久化单品订单。失败时什么都不改变，错误返回用于显示。
//
// Parameters:
//   - ctx: Context for the remote call
//   - sessionID: The submitting session, for the in-flight guard
//   - p: The product being ordered
//   - form: The customer's checkout form
//
// Returns:
//   - store.Order: The stored order on success
//   - error: Validation, duplicate-submission or remote-store error
func (a *Assembler) SubmitSingle(ctx context.Context, sessionID string, p store.Product, form CustomerForm) (store.Order, error) {
	order, err := a.AssembleSingle(p, form)
	if err != nil {
		return store.Order{}, err
	}

	if err := a.begin(sessionID); err != nil {
		return store.Order{}, err
	}
	defer a.end(sessionID)

	created, err := a.gateway.CreateOrder(ctx, order)
	if err != nil {
		log.Printf("[CHECKOUT] Order submission failed: %v", err)
		return store.Order{}, fmt.Errorf("failed to submit order: %w", err)
	}
	log.Printf("[CHECKOUT] Order %s created, total %.2f", created.ID, created.TotalPrice)
	return created, nil
}

// SubmitCart validates, assembles and persists a cart order, then clears the
// cart — and only then. A remote-store failure leaves the cart intact so the
// shopper can retry the same submission.
//
// SubmitCart 验证、装配并持久化购物车订单，然后才清空购物车。
// 远程存储失败会保持购物车不变，购物者可以重试同一提交。
//
// Parameters:
//   - ctx: Context for the remote call
//   - c: The cart being checked out; cleared only on confirmed success
//   - form: The customer's checkout form
//
// Returns:
//   - store.Order: The stored order on success
//   - error: Validation, duplicate-submission or remote-store error
func (a *Assembler) SubmitCart(ctx context.Context, c *cart.Cart, form CustomerForm) (store.Order, error) {
	order, err := a.AssembleCart(c.Lines(), form)
	if err != nil {
		return store.Order{}, err
	}

	if err := a.begin(c.SessionID()); err != nil {
		return store.Order{}, err
	}
	defer a.end(c.SessionID())

	created, err := a.gateway.CreateOrder(ctx, order)
	if err != nil {
		log.Printf("[CHECKOUT] Cart submission failed: %v", err)
		return store.Order{}, fmt.Errorf("failed to submit order: %w", err)
	}

	// The order is committed remotely; a failure to clear the local cart must
	// not be reported as a failed checkout.
	// 订单已在远端提交；清空本地购物车失败不得报告为结账失败。
	if err := c.Clear(); err != nil {
		log.Printf("[CHECKOUT] Order %s created but cart clear failed: %v", created.ID, err)
	}

	log.Printf("[CHECKOUT] Order %s created from cart, total %.2f", created.ID, created.TotalPrice)
	return created, nil
}
