// Package catalog implements the read side of the storefront: product listing,
// detail lookup, title search, the "You May Also Like" selection and the
// recently-viewed history. Products are owned by the remote store; this service
// only ever holds read-only copies for the duration of a request.
//
// Package catalog 实现店面的读取端：产品列表、详情查询、标题搜索、
// "猜你喜欢"推荐以及最近浏览历史。产品归远程存储所有；本服务在请求期间只持有只读副本。
package catalog

import (
	"context"
	"fmt"
	"log"
	"math/rand"

	pkgerrors "github.com/achrafamalou77/ephedia-store/pkg/errors"
	"github.com/achrafamalou77/ephedia-store/pkg/store"
)

// relatedFetchLimit caps how many candidates are fetched before sampling the
// related-products selection, matching what a product page actually shows from.
//
// relatedFetchLimit 限制在抽样推荐产品之前获取的候选数量，与产品页实际展示的来源一致。
const relatedFetchLimit = 10

// History records and serves the recently-viewed product list.
//
// History 记录并提供最近浏览的产品列表。
type History interface {
	// RecordView notes that a session viewed a product.
	// RecordView 记录会话浏览了某产品。
	RecordView(sessionID string, p store.Product) error

	// RecentlyViewed returns the session's bounded history, newest first.
	// RecentlyViewed 返回会话的有界历史，最新的在前。
	RecentlyViewed(sessionID string) ([]store.Product, error)
}

// Service is the catalog read service.
//
// Service 是目录读取服务。
type Service struct {
	gateway store.RemoteStore
	history History
}

// NewService creates a catalog service.
//
// NewService 创建目录服务。
//
// Parameters:
//   - gateway: The remote store to read from
//   - history: The recently-viewed recorder, may be nil to disable history
//
// Returns:
//   - *Service: A new catalog service
func NewService(gateway store.RemoteStore, history History) *Service {
	return &Service{gateway: gateway, history: history}
}

// List returns the whole catalog, newest first.
//
// List 返回完整目录，最新的在前。
func (s *Service) List(ctx context.Context) ([]store.Product, error) {
	products, err := s.gateway.ListProducts(ctx, store.OrderByNewest)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return products, nil
}

// Get returns a single product and records it in the session's viewing
// history as a side effect. A history write failure is logged, never fatal:
// the shopper still gets their product page.
//
// Get 返回单个产品，并作为副作用将其记录到会话的浏览历史中。
// 历史写入失败只记录日志，绝不致命：购物者仍能看到产品页。
//
// Parameters:
//   - ctx: Context for the remote call
//   - sessionID: The viewing session, empty to skip history
//   - id: The product id
//
// Returns:
//   - store.Product: The product
//   - error: An error wrapping ErrNotFound when no record matches
func (s *Service) Get(ctx context.Context, sessionID, id string) (store.Product, error) {
	product, err := s.gateway.GetProduct(ctx, id)
	if err != nil {
		return store.Product{}, err
	}

	if s.history != nil && sessionID != "" {
		if err := s.history.RecordView(sessionID, product); err != nil {
			log.Printf("[CATALOG] Failed to record view of %s: %v", product.ID, err)
		}
	}
	return product, nil
}

// Related returns up to n random products excluding the one being viewed, the
// product page's "You May Also Like" strip. A read failure degrades to an
// empty selection; the strip simply does not render.
//
// Related 返回最多n个随机产品，排除正在浏览的那个，即产品页的"猜你喜欢"栏。
// 读取失败降级为空选择；该栏不渲染而已。
//
// Parameters:
//   - ctx: Context for the remote call
//   - excludeID: The product to leave out
//   - n: How many products to return
//
// Returns:
//   - []store.Product: A random selection, possibly shorter than n
func (s *Service) Related(ctx context.Context, excludeID string, n int) []store.Product {
	products, err := s.gateway.ListProducts(ctx, store.OrderByNewest)
	if err != nil {
		log.Printf("[CATALOG] Related products unavailable: %v", err)
		return nil
	}

	candidates := make([]store.Product, 0, len(products))
	for _, p := range products {
		if p.ID != excludeID {
			candidates = append(candidates, p)
		}
		if len(candidates) == relatedFetchLimit {
			break
		}
	}

	rand.Shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})
	if len(candidates) > n {
		candidates = candidates[:n]
	}
	return candidates
}

// Search returns products whose title contains the query, case-insensitively.
// An empty query returns an empty result without a remote call.
//
// Search 返回标题包含查询词（不区分大小写）的产品。空查询不发远程调用，直接返回空结果。
//
// Parameters:
//   - ctx: Context for the remote call
//   - query: The free-text title fragment
//
// Returns:
//   - []store.Product: The matching products
//   - error: A remote-store error, for the degraded empty-result display
func (s *Service) Search(ctx context.Context, query string) ([]store.Product, error) {
	if query == "" {
		return nil, nil
	}
	products, err := s.gateway.SearchProducts(ctx, query, 0)
	if err != nil {
		return nil, fmt.Errorf("search failed: %w", err)
	}
	return products, nil
}

// RecentlyViewed returns the session's viewing history for display.
//
// RecentlyViewed 返回会话的浏览历史用于展示。
func (s *Service) RecentlyViewed(sessionID string) []store.Product {
	if s.history == nil || sessionID == "" {
		return nil
	}
	viewed, err := s.history.RecentlyViewed(sessionID)
	if err != nil {
		log.Printf("[CATALOG] Failed to load recently viewed: %v", err)
		return nil
	}
	return viewed
}

// IsNotFound reports whether a Get failure was a missing product, for the
// dedicated not-found page.
//
// IsNotFound 报告Get失败是否因产品不存在，用于专门的未找到页面。
func IsNotFound(err error) bool {
	return pkgerrors.IsNotFound(err)
}
