package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/achrafamalou77/ephedia-store/internal/admin"
	"github.com/achrafamalou77/ephedia-store/internal/cart"
	"github.com/achrafamalou77/ephedia-store/internal/catalog"
	"github.com/achrafamalou77/ephedia-store/internal/checkout"
	"github.com/achrafamalou77/ephedia-store/internal/search"
	pkgerrors "github.com/achrafamalou77/ephedia-store/pkg/errors"
)

// Server bundles the storefront services behind a Gin router.
//
// Server 将店面服务捆绑在Gin路由器后面。
type Server struct {
	catalog  *catalog.Service
	carts    *cart.Manager
	checkout *checkout.Assembler
	rates    checkout.RateSource
	gate     *admin.Gate
	admin    *admin.Service
	search   *search.Manager
}

// NewServer creates a Server wiring together the storefront services.
//
// NewServer 创建一个将店面服务连接在一起的Server。
//
// Parameters:
//   - catalogSvc: Product browsing, detail and history
//   - carts: Per-session cart registry
//   - assembler: Order validation, pricing and submission
//   - rates: The delivery rate table source
//   - gate: The admin access gate
//   - adminSvc: Management operations behind the gate
//   - searches: Per-session debounced product search registry
//
// Returns:
//   - *Server: A new server instance
func NewServer(
	catalogSvc *catalog.Service,
	carts *cart.Manager,
	assembler *checkout.Assembler,
	rates checkout.RateSource,
	gate *admin.Gate,
	adminSvc *admin.Service,
	searches *search.Manager,
) *Server {
	return &Server{
		catalog:  catalogSvc,
		carts:    carts,
		checkout: assembler,
		rates:    rates,
		gate:     gate,
		admin:    adminSvc,
		search:   searches,
	}
}

// Router builds the Gin engine with all storefront and admin routes.
//
// Router 构建包含所有店面和管理员路由的Gin引擎。
func (s *Server) Router() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(RequestLogger())
	router.Use(Session())

	api := router.Group("/api")
	{
		// Shopper-facing catalog and search
		// 面向购物者的目录和搜索
		api.GET("/products", s.listProducts)
		api.GET("/products/:id", s.getProduct)
		api.GET("/search", s.searchProducts)
		api.POST("/search/live", s.liveSearchType)
		api.GET("/search/live", s.liveSearchResults)
		api.GET("/recent", s.recentlyViewed)
		api.GET("/shipping/rates", s.shippingRates)

		// Cart operations
		// 购物车操作
		api.GET("/cart", s.getCart)
		api.POST("/cart/items", s.addCartItem)
		api.PATCH("/cart/items/:id", s.updateCartItem)
		api.DELETE("/cart/items/:id", s.removeCartItem)
		api.DELETE("/cart", s.clearCart)

		// Checkout
		// 结账
		api.POST("/checkout/quote", s.quote)
		api.POST("/checkout/cart", s.submitCart)
		api.POST("/checkout/product/:id", s.submitSingle)

		// Admin gate
		// 管理员门禁
		api.POST("/admin/login", s.adminLogin)
		api.POST("/admin/logout", s.adminLogout)

		authorized := api.Group("/admin", AdminRequired(s.gate))
		{
			authorized.GET("/products", s.adminListProducts)
			authorized.POST("/products", s.adminCreateProduct)
			authorized.DELETE("/products/:id", s.adminDeleteProduct)
			authorized.GET("/orders", s.adminListOrders)
			authorized.PATCH("/orders/:id/status", s.adminUpdateOrderStatus)
			authorized.DELETE("/orders/:id", s.adminDeleteOrder)
		}
	}

	return router
}

// renderError maps a service error onto an HTTP status and JSON body.
// No storefront failure is fatal; every error comes back as a message the
// shopper or admin can act on.
//
// renderError 将服务错误映射到HTTP状态和JSON正文。
// 店面的任何失败都不是致命的；每个错误都以购物者或管理员可处理的消息返回。
func renderError(c *gin.Context, err error) {
	switch {
	case pkgerrors.IsNotFound(err):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case pkgerrors.IsInvalidOrder(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, pkgerrors.ErrInvalidProduct), errors.Is(err, pkgerrors.ErrInvalidStatus):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case pkgerrors.IsSubmissionInFlight(err):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, pkgerrors.ErrIncorrectCode), pkgerrors.IsUnauthorized(err):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case pkgerrors.IsUnavailable(err):
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
