package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/achrafamalou77/ephedia-store/pkg/store"
)

const relatedCount = 4

// listProducts handles GET requests for the storefront catalog.
// A gateway failure degrades to an empty list with a message so the
// shop keeps rendering.
//
// listProducts 处理店面目录的GET请求。
// 网关失败降级为带有消息的空列表，使商店保持渲染。
func (s *Server) listProducts(c *gin.Context) {
	products, err := s.catalog.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusOK, gin.H{
			"products": []store.Product{},
			"message":  "products are unavailable right now, please retry",
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"products": products})
}

// getProduct handles GET requests for a single product page.
// It records the view for the session and attaches a handful of
// related products from other listings.
//
// getProduct 处理单个产品页面的GET请求。
// 它为会话记录浏览，并附加少量来自其他列表的相关产品。
func (s *Server) getProduct(c *gin.Context) {
	id := c.Param("id")

	product, err := s.catalog.Get(c.Request.Context(), sessionID(c), id)
	if err != nil {
		renderError(c, err)
		return
	}

	related := s.catalog.Related(c.Request.Context(), product.ID, relatedCount)
	c.JSON(http.StatusOK, gin.H{
		"product": product,
		"related": related,
	})
}

// searchProducts handles direct (non-debounced) title search.
// searchProducts 处理直接（非防抖）标题搜索。
func (s *Server) searchProducts(c *gin.Context) {
	query := c.Query("q")
	products, err := s.catalog.Search(c.Request.Context(), query)
	if err != nil {
		renderError(c, err)
		return
	}
	if products == nil {
		products = []store.Product{}
	}
	c.JSON(http.StatusOK, gin.H{"products": products})
}

// liveSearchType feeds one keystroke's worth of query text into the
// debounced search. The response returns immediately; results arrive
// on the results endpoint once the debounce window has passed.
//
// liveSearchType 将一次按键的查询文本送入防抖搜索。
// 响应立即返回；防抖窗口过后结果到达结果端点。
func (s *Server) liveSearchType(c *gin.Context) {
	var req struct {
		Query string `json:"query"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	s.search.Get(sessionID(c)).Type(req.Query)
	c.JSON(http.StatusAccepted, gin.H{"status": "typing"})
}

// liveSearchResults returns the session's last settled live search results.
// liveSearchResults 返回会话最近一次完成的实时搜索结果。
func (s *Server) liveSearchResults(c *gin.Context) {
	products, err := s.search.Get(sessionID(c)).Results()
	if err != nil {
		c.JSON(http.StatusOK, gin.H{
			"products": []store.Product{},
			"message":  "search is unavailable right now, please retry",
		})
		return
	}
	if products == nil {
		products = []store.Product{}
	}
	c.JSON(http.StatusOK, gin.H{"products": products})
}

// recentlyViewed returns the session's recently viewed products, newest first.
// recentlyViewed 返回会话最近浏览的产品，最新的在前。
func (s *Server) recentlyViewed(c *gin.Context) {
	products := s.catalog.RecentlyViewed(sessionID(c))
	if products == nil {
		products = []store.Product{}
	}
	c.JSON(http.StatusOK, gin.H{"products": products})
}

// shippingRates returns the delivery rate table for the region picker.
// shippingRates 返回供地区选择器使用的配送运费表。
func (s *Server) shippingRates(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"rates": s.rates.Table().Rates()})
}
