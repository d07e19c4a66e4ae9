// Package admin implements the password-gated admin side of the storefront.
// This file contains the product and order management service backing the
// admin dashboard's two tabs.
//
// Package admin 实现店面的密码门禁管理端。
// 本文件包含支撑管理面板两个标签页的产品和订单管理服务。
package admin

import (
	"context"
	"fmt"
	"log"
	"strings"

	pkgerrors "github.com/achrafamalou77/ephedia-store/pkg/errors"
	"github.com/achrafamalou77/ephedia-store/pkg/store"
)

// ProductInput carries the admin "add product" form. Gallery is the raw
// comma-separated URL field exactly as the form submits it.
//
// ProductInput 承载管理员"添加产品"表单。Gallery是表单提交的原始逗号分隔URL字段。
type ProductInput struct {
	Title    string  `json:"title"`
	Price    float64 `json:"price"`
	Category string  `json:"category"`
	ImageURL string  `json:"image_url"`
	Gallery  string  `json:"gallery"`
}

// Service performs admin mutations against the remote store. Every operation
// requires the gate to be open; a closed gate fails before any network call.
//
// Service 对远程存储执行管理员修改。每个操作都要求门禁打开；门禁关闭时在任何网络调用之前失败。
type Service struct {
	gate    *Gate
	gateway store.RemoteStore
}

// NewService creates the admin management service.
//
// NewService 创建管理员管理服务。
//
// Parameters:
//   - gate: The admin gate guarding every operation
//   - gateway: The remote store to mutate
//
// Returns:
//   - *Service: A new service instance
func NewService(gate *Gate, gateway store.RemoteStore) *Service {
	return &Service{gate: gate, gateway: gateway}
}

// authorize fails closed when the admin flag is unset.
// authorize 在管理员标志未设置时直接失败。
func (s *Service) authorize() error {
	if !s.gate.IsAuthenticated() {
		return pkgerrors.ErrUnauthorized
	}
	return nil
}

// SplitGallery turns the comma-separated gallery field into trimmed,
// non-empty URLs, the way the admin form expects.
//
// SplitGallery 将逗号分隔的图库字段转换为去除空白的非空URL，与管理表单的预期一致。
//
// Parameters:
//   - gallery: The raw comma-separated field
//
// Returns:
//   - []string: The cleaned URL list, possibly empty
func SplitGallery(gallery string) []string {
	if strings.TrimSpace(gallery) == "" {
		return nil
	}
	parts := strings.Split(gallery, ",")
	urls := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			urls = append(urls, trimmed)
		}
	}
	return urls
}

// ListProducts returns the catalog for the inventory tab, newest first.
//
// ListProducts 返回库存标签页的目录，最新的在前。
func (s *Service) ListProducts(ctx context.Context) ([]store.Product, error) {
	if err := s.authorize(); err != nil {
		return nil, err
	}
	return s.gateway.ListProducts(ctx, store.OrderByNewest)
}

// CreateProduct validates and inserts a new product. Title must be non-empty
// and price positive; the gallery field is split before submission.
//
// CreateProduct 验证并插入新产品。标题必须非空且价格为正；图库字段在提交前被拆分。
//
// Parameters:
//   - ctx: Context for the remote call
//   - input: The admin form input
//
// Returns:
//   - store.Product: The stored product on success
//   - error: ErrInvalidProduct, ErrUnauthorized or a remote-store error
func (s *Service) CreateProduct(ctx context.Context, input ProductInput) (store.Product, error) {
	if err := s.authorize(); err != nil {
		return store.Product{}, err
	}

	if strings.TrimSpace(input.Title) == "" {
		return store.Product{}, fmt.Errorf("%w: title is required", pkgerrors.ErrInvalidProduct)
	}
	if input.Price <= 0 {
		return store.Product{}, fmt.Errorf("%w: price must be positive", pkgerrors.ErrInvalidProduct)
	}

	created, err := s.gateway.CreateProduct(ctx, store.ProductFields{
		Title:       strings.TrimSpace(input.Title),
		Price:       input.Price,
		Category:    strings.TrimSpace(input.Category),
		ImageURL:    strings.TrimSpace(input.ImageURL),
		GalleryURLs: SplitGallery(input.Gallery),
	})
	if err != nil {
		return store.Product{}, fmt.Errorf("failed to create product: %w", err)
	}
	log.Printf("[ADMIN] Product %s created: %s", created.ID, created.Title)
	return created, nil
}

// DeleteProduct removes a product from the catalog.
//
// DeleteProduct 从目录中删除产品。
func (s *Service) DeleteProduct(ctx context.Context, id string) error {
	if err := s.authorize(); err != nil {
		return err
	}
	if err := s.gateway.DeleteProduct(ctx, id); err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	log.Printf("[ADMIN] Product %s deleted", id)
	return nil
}

// ListOrders returns all orders for the orders tab, newest first, with legacy
// status labels normalized so the view treats "new" and "pending" alike.
//
// ListOrders 返回订单标签页的所有订单，最新的在前，并归一化历史状态标签，
// 使视图对"new"和"pending"一视同仁。
func (s *Service) ListOrders(ctx context.Context) ([]store.Order, error) {
	if err := s.authorize(); err != nil {
		return nil, err
	}
	orders, err := s.gateway.ListOrders(ctx, store.OrderByNewest)
	if err != nil {
		return nil, err
	}
	for i := range orders {
		orders[i].Status = store.NormalizeStatus(orders[i].Status)
	}
	return orders, nil
}

// UpdateOrderStatus confirms or cancels a pending order. Only the
// pending→confirmed and pending→cancelled transitions exist; settled orders
// stay settled and nothing moves back to pending.
//
// UpdateOrderStatus 确认或取消待处理订单。只存在待处理→已确认和待处理→已取消的转换；
// 已定案的订单保持定案，任何状态都不会回到待处理。
//
// Parameters:
//   - ctx: Context for the remote call
//   - id: The order to transition
//   - status: The target status
//
// Returns:
//   - error: ErrInvalidStatus on a bad transition, or a remote-store error
func (s *Service) UpdateOrderStatus(ctx context.Context, id string, status store.Status) error {
	if err := s.authorize(); err != nil {
		return err
	}

	if status != store.StatusConfirmed && status != store.StatusCancelled {
		return fmt.Errorf("%w: cannot move order to %q", pkgerrors.ErrInvalidStatus, status)
	}

	order, err := s.gateway.GetOrder(ctx, id)
	if err != nil {
		if pkgerrors.IsNotFound(err) {
			return err
		}
		return fmt.Errorf("failed to look up order: %w", err)
	}
	if !order.Status.IsActionable() {
		return fmt.Errorf("%w: order is already %s", pkgerrors.ErrInvalidStatus, store.NormalizeStatus(order.Status))
	}
	if err := s.gateway.UpdateOrderStatus(ctx, id, status); err != nil {
		return fmt.Errorf("failed to update order status: %w", err)
	}
	log.Printf("[ADMIN] Order %s marked %s", id, status)
	return nil
}

// DeleteOrder removes an order record entirely.
//
// DeleteOrder 彻底删除订单记录。
func (s *Service) DeleteOrder(ctx context.Context, id string) error {
	if err := s.authorize(); err != nil {
		return err
	}
	if err := s.gateway.DeleteOrder(ctx, id); err != nil {
		return fmt.Errorf("failed to delete order: %w", err)
	}
	log.Printf("[ADMIN] Order %s deleted", id)
	return nil
}
