// Package store defines the remote collection-store gateway consumed by the storefront.
// The concrete backend is out of scope for the core: this package specifies the shape of
// the product and order collections and the operations the storefront performs on them,
// together with an in-memory implementation used in tests.
//
// Package store 定义店面所消费的远程集合存储网关。
// 具体后端不在核心范围内：本包规定产品和订单集合的形状以及店面对它们执行的操作，
// 并提供用于测试的内存实现。
package store

import (
	"context"
	"time"
)

// Status is the lifecycle label of an order. Transitions are admin-initiated only
// and one-directional: pending orders become confirmed or cancelled, nothing moves back.
//
// Status 是订单的生命周期标签。状态转换仅由管理员发起且是单向的：
// 待处理订单变为已确认或已取消，不会回退。
type Status string

const (
	// StatusPending is the canonical initial status of every order.
	// StatusPending 是每个订单的规范初始状态。
	StatusPending Status = "pending"

	// StatusConfirmed marks an order accepted by the shop.
	// StatusConfirmed 标记被店铺接受的订单。
	StatusConfirmed Status = "confirmed"

	// StatusCancelled marks an order rejected by the shop.
	// StatusCancelled 标记被店铺拒绝的订单。
	StatusCancelled Status = "cancelled"

	// statusLegacyNew is an initial-status synonym produced by old records.
	// It is normalized to StatusPending on read, never written.
	// statusLegacyNew 是旧记录产生的初始状态同义词。读取时归一化为StatusPending，绝不写入。
	statusLegacyNew Status = "new"
)

// NormalizeStatus maps legacy status labels onto the canonical set.
// Unknown labels pass through unchanged so the admin view can still display them.
//
// NormalizeStatus 将历史状态标签映射到规范集合上。
// 未知标签原样通过，以便管理员视图仍可显示它们。
func NormalizeStatus(s Status) Status {
	if s == statusLegacyNew {
		return StatusPending
	}
	return s
}

// IsActionable reports whether an order in this status can still be
// confirmed or cancelled by an admin.
//
// IsActionable 报告处于此状态的订单是否仍可由管理员确认或取消。
func (s Status) IsActionable() bool {
	return NormalizeStatus(s) == StatusPending
}

// OrderBy selects the sort order for collection listings.
//
// OrderBy 选择集合列表的排序方式。
type OrderBy string

const (
	// OrderByNewest sorts by creation time, newest first. The zero value also
	// resolves to this ordering.
	// OrderByNewest 按创建时间排序，最新优先。零值也解析为此排序。
	OrderByNewest OrderBy = "created_at.desc"

	// OrderByOldest sorts by creation time, oldest first.
	// OrderByOldest 按创建时间排序，最早优先。
	OrderByOldest OrderBy = "created_at.asc"
)

// Product is a catalog record as held by the remote store.
// Shoppers only ever read products; mutation happens through the admin operations.
//
// Product 是远程存储中保存的目录记录。
// 购物者只读取产品；修改通过管理员操作进行。
type Product struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Price       float64   `json:"price"`
	Category    string    `json:"category"`
	ImageURL    string    `json:"image_url"`
	GalleryURLs []string  `json:"gallery_urls"`
	CreatedAt   time.Time `json:"created_at"`
}

// ProductFields carries the writable fields of a product create request.
//
// ProductFields 承载产品创建请求的可写字段。
type ProductFields struct {
	Title       string   `json:"title"`
	Price       float64  `json:"price"`
	Category    string   `json:"category"`
	ImageURL    string   `json:"image_url"`
	GalleryURLs []string `json:"gallery_urls"`
}

// Order is an order snapshot: it denormalizes everything needed to fulfil a
// cash-on-delivery order at the moment of submission and holds no live references.
// ProductName is a single title for single-product checkouts and a concatenated
// "Title (xN), ..." description for cart checkouts.
//
// Order 是订单快照：它在提交时反规范化履行货到付款订单所需的一切，不持有任何活动引用。
// 对单品结账，ProductName是单个标题；对购物车结账，它是拼接的"标题 (x数量), ..."描述。
type Order struct {
	ID             string    `json:"id"`
	ProductName    string    `json:"product_name"`
	ProductPrice   float64   `json:"product_price"`
	ShippingPrice  float64   `json:"shipping_price"`
	TotalPrice     float64   `json:"total_price"`
	CustomerName   string    `json:"customer_name"`
	Phone          string    `json:"phone"`
	Instagram      string    `json:"instagram,omitempty"`
	Wilaya         string    `json:"wilaya"`
	Commune        string    `json:"commune"`
	DeliveryMethod string    `json:"delivery_type"`
	Status         Status    `json:"status"`
	CreatedAt      time.Time `json:"created_at"`
}

// RemoteStore is the gateway to the hosted collection store.
// All operations may fail with a transport or validation error; the storefront's
// contract is to surface the failure and leave local state unchanged.
// Implementations must be safe for concurrent use.
//
// RemoteStore 是托管集合存储的网关。
// 所有操作都可能因传输或验证错误而失败；店面的契约是显示失败并保持本地状态不变。
// 实现必须可安全并发使用。
type RemoteStore interface {
	// ListProducts returns all products in the requested order.
	// ListProducts 按请求的顺序返回所有产品。
	ListProducts(ctx context.Context, orderBy OrderBy) ([]Product, error)

	// GetProduct returns a single product by id.
	// Returns an error wrapping errors.ErrNotFound when no record matches.
	// GetProduct 按id返回单个产品。没有匹配记录时返回包装errors.ErrNotFound的错误。
	GetProduct(ctx context.Context, id string) (Product, error)

	// SearchProducts returns up to limit products whose title contains the
	// given fragment, case-insensitively. A limit <= 0 means no limit.
	// SearchProducts 返回标题包含给定片段（不区分大小写）的最多limit个产品。limit <= 0表示不限制。
	SearchProducts(ctx context.Context, titleContains string, limit int) ([]Product, error)

	// CreateProduct inserts a new product and returns the stored record.
	// CreateProduct 插入新产品并返回存储的记录。
	CreateProduct(ctx context.Context, fields ProductFields) (Product, error)

	// DeleteProduct removes a product by id.
	// DeleteProduct 按id删除产品。
	DeleteProduct(ctx context.Context, id string) error

	// ListOrders returns all orders in the requested order.
	// ListOrders 按请求的顺序返回所有订单。
	ListOrders(ctx context.Context, orderBy OrderBy) ([]Order, error)

	// GetOrder returns a single order by id.
	// Returns an error wrapping errors.ErrNotFound when no record matches.
	// GetOrder 按id返回单个订单。没有匹配记录时返回包装errors.ErrNotFound的错误。
	GetOrder(ctx context.Context, id string) (Order, error)

	// CreateOrder inserts a new order snapshot and returns the stored record.
	// CreateOrder 插入新的订单快照并返回存储的记录。
	CreateOrder(ctx context.Context, order Order) (Order, error)

	// UpdateOrderStatus sets the status label of an existing order.
	// UpdateOrderStatus 设置现有订单的状态标签。
	UpdateOrderStatus(ctx context.Context, id string, status Status) error

	// DeleteOrder removes an order by id.
	// DeleteOrder 按id删除订单。
	DeleteOrder(ctx context.Context, id string) error
}
