// Package cart implements the shopper's cart aggregate.
// A cart holds at most one line per product, each line a denormalized snapshot of
// the product at the time it was added. Every mutation persists the resulting
// state through a Persister as a side effect, so the cart survives page reloads
// without callers having to remember a separate save step. Derived values
// (subtotal, item count) are recomputed from the live lines on every call.
//
// Package cart 实现购物者的购物车聚合。
// 购物车对每个产品最多持有一个商品行，每行都是添加时产品的反规范化快照。
// 每次修改都会通过Persister将结果状态持久化作为副作用，因此购物车在页面重新加载后仍然存在，
// 调用方无需记住单独的保存步骤。派生值（小计、商品数量）在每次调用时从当前商品行重新计算。
package cart

import (
	"sync"

	"github.com/achrafamalou77/ephedia-store/pkg/store"
)

// Line is one cart entry: a product snapshot plus a quantity.
// Quantity never drops below 1 through decrements; removal is explicit.
//
// Line 是一个购物车条目：产品快照加数量。
// 数量通过递减绝不会低于1；移除是显式操作。
type Line struct {
	ProductID string  `json:"product_id"`
	Title     string  `json:"title"`
	Price     float64 `json:"price"`
	ImageURL  string  `json:"image_url"`
	Category  string  `json:"category"`
	Quantity  int     `json:"quantity"`
}

// Persister saves cart state to client-local storage.
// Implementations must treat the call as replacing the whole cart for the session.
//
// Persister 将购物车状态保存到客户端本地存储。
// 实现必须将调用视为替换该会话的整个购物车。
type Persister interface {
	// SaveCart persists the full line set for a session.
	// SaveCart 持久化会话的完整商品行集合。
	SaveCart(sessionID string, lines []Line) error
}

// Cart is the cart aggregate for one shopper session.
// All reads derive from the single line collection and all writes go through
// the operations below; no caller may mutate line internals directly.
// Safe for concurrent use.
//
// Cart 是一个购物者会话的购物车聚合。
// 所有读取都来自单一的商品行集合，所有写入都通过下面的操作进行；
// 调用方不得直接修改商品行内部。可安全并发使用。
type Cart struct {
	mu        sync.RWMutex
	sessionID string
	lines     map[string]*Line
	order     []string // insertion order of product ids / 产品id的插入顺序
	persister Persister
}

// New creates an empty cart for a session.
//
// New 为会话创建一个空购物车。
//
// Parameters:
//   - sessionID: The stable client/session identifier the cart is keyed by
//   - persister: Destination for the persistence side effect, may be nil in tests
//
// Returns:
//   - *Cart: A new empty cart
func New(sessionID string, persister Persister) *Cart {
	return &Cart{
		sessionID: sessionID,
		lines:     make(map[string]*Line),
		persister: persister,
	}
}

// Restore replaces the cart contents with previously persisted lines,
// used when reopening a session. Lines with a non-positive quantity are
// clamped to 1; duplicate product ids collapse onto the first occurrence.
// Restore itself does not persist.
//
// Restore 用之前持久化的商品行替换购物车内容，在重新打开会话时使用。
// 数量非正的商品行被钳制为1；重复的产品id合并到首次出现的行上。Restore本身不持久化。
//
// Parameters:
//   - lines: The lines to restore
func (c *Cart) Restore(lines []Line) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.lines = make(map[string]*Line, len(lines))
	c.order = c.order[:0]
	for _, l := range lines {
		if l.ProductID == "" {
			continue
		}
		if l.Quantity < 1 {
			l.Quantity = 1
		}
		if existing, ok := c.lines[l.ProductID]; ok {
			existing.Quantity += l.Quantity
			continue
		}
		line := l
		c.lines[l.ProductID] = &line
		c.order = append(c.order, l.ProductID)
	}
}

// Add puts a product in the cart. If the product is already present its
// quantity goes up by one instead of a duplicate line appearing. There is no
// upper bound on quantity.
//
// Add 将产品放入购物车。如果产品已存在，其数量加一，而不是出现重复的商品行。数量没有上限。
//
// Parameters:
//   - p: The product to add; title, price, image and category are snapshotted
//
// Returns:
//   - error: The persistence error, if any
func (c *Cart) Add(p store.Product) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if line, ok := c.lines[p.ID]; ok {
		line.Quantity++
	} else {
		c.lines[p.ID] = &Line{
			ProductID: p.ID,
			Title:     p.Title,
			Price:     p.Price,
			ImageURL:  p.ImageURL,
			Category:  p.Category,
			Quantity:  1,
		}
		c.order = append(c.order, p.ID)
	}
	return c.persistLocked()
}

// Remove deletes a line entirely, regardless of its quantity.
// Removing an absent product is a no-op that still persists.
//
// Remove 完全删除一个商品行，无论其数量多少。移除不存在的产品是无操作，但仍会持久化。
//
// Parameters:
//   - productID: The product id of the line to remove
//
// Returns:
//   - error: The persistence error, if any
func (c *Cart) Remove(productID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.lines[productID]; ok {
		delete(c.lines, productID)
		for i, id := range c.order {
			if id == productID {
				c.order = append(c.order[:i], c.order[i+1:]...)
				break
			}
		}
	}
	return c.persistLocked()
}

// UpdateQuantity adjusts a line's quantity by delta, clamping the result to a
// minimum of 1. Decrementing at quantity 1 is a no-op, never a removal.
// Unknown product ids are ignored.
//
// UpdateQuantity 按delta调整商品行数量，结果最小钳制为1。
// 数量为1时递减是无操作，绝不是移除。未知的产品id被忽略。
//
// Parameters:
//   - productID: The product id of the line to adjust
//   - delta: The signed quantity change
//
// Returns:
//   - error: The persistence error, if any
func (c *Cart) UpdateQuantity(productID string, delta int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if line, ok := c.lines[productID]; ok {
		line.Quantity += delta
		if line.Quantity < 1 {
			line.Quantity = 1
		}
	}
	return c.persistLocked()
}

// Clear empties the cart. Clearing an already-empty cart is fine; the call is
// idempotent. Called exactly once per successful checkout, by the assembler.
//
// Clear 清空购物车。清空已空的购物车也没问题；该调用是幂等的。
// 每次成功结账由装配器调用恰好一次。
//
// Returns:
//   - error: The persistence error, if any
func (c *Cart) Clear() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.lines = make(map[string]*Line)
	c.order = c.order[:0]
	return c.persistLocked()
}

// Total returns the subtotal: the sum of price × quantity over all current
// lines, recomputed fresh on every call. There is no cached total to go stale.
//
// Total 返回小计：所有当前商品行的价格×数量之和，每次调用都重新计算。没有会过期的缓存总额。
//
// Returns:
//   - float64: The cart subtotal
func (c *Cart) Total() float64 {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var total float64
	for _, line := range c.lines {
		total += line.Price * float64(line.Quantity)
	}
	return total
}

// Count returns the sum of all line quantities, the number shown on the
// navbar badge. It is not the number of distinct lines.
//
// Count 返回所有商品行数量之和，即导航栏徽章上显示的数字。它不是不同商品行的数量。
//
// Returns:
//   - int: The total item count
func (c *Cart) Count() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var n int
	for _, line := range c.lines {
		n += line.Quantity
	}
	return n
}

// Len returns the number of distinct lines.
//
// Len 返回不同商品行的数量。
func (c *Cart) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.lines)
}

// Lines returns the cart lines in insertion order. The returned slice holds
// copies; mutating it does not touch the cart.
//
// Lines 按插入顺序返回购物车商品行。返回的切片是副本；修改它不会影响购物车。
//
// Returns:
//   - []Line: A copy of the current lines
func (c *Cart) Lines() []Line {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]Line, 0, len(c.order))
	for _, id := range c.order {
		if line, ok := c.lines[id]; ok {
			out = append(out, *line)
		}
	}
	return out
}

// SessionID returns the session the cart belongs to.
//
// SessionID 返回购物车所属的会话。
func (c *Cart) SessionID() string {
	return c.sessionID
}

// persistLocked writes the current lines through the persister.
// Caller must hold the write lock.
//
// persistLocked 通过persister写入当前商品行。调用方必须持有写锁。
func (c *Cart) persistLocked() error {
	if c.persister == nil {
		return nil
	}
	lines := make([]Line, 0, len(c.order))
	for _, id := range c.order {
		if line, ok := c.lines[id]; ok {
			lines = append(lines, *line)
		}
	}
	return c.persister.SaveCart(c.sessionID, lines)
}
