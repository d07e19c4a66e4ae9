package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/achrafamalou77/ephedia-store/internal/cart"
)

// cartView is the JSON shape of a session's cart.
// cartView 是会话购物车的JSON形状。
type cartView struct {
	Lines []cart.Line `json:"lines"`
	Total float64     `json:"total"`
	Count int         `json:"count"`
}

func viewOf(c *cart.Cart) cartView {
	lines := c.Lines()
	if lines == nil {
		lines = []cart.Line{}
	}
	return cartView{
		Lines: lines,
		Total: c.Total(),
		Count: c.Count(),
	}
}

// getCart handles GET requests for the session's cart.
// getCart 处理会话购物车的GET请求。
func (s *Server) getCart(c *gin.Context) {
	c.JSON(http.StatusOK, viewOf(s.carts.Get(sessionID(c))))
}

// addCartItem handles POST requests to put a product in the cart.
// Adding a product already in the cart bumps its quantity instead of
// creating a second line.
//
// addCartItem 处理将产品放入购物车的POST请求。
// 添加已在购物车中的产品会增加其数量，而不是创建第二行。
func (s *Server) addCartItem(c *gin.Context) {
	var req struct {
		ProductID string `json:"product_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// The snapshot comes from the catalog so the line carries title,
	// price and image as they were at add time.
	// 快照来自目录，因此购物车行携带添加时的标题、价格和图片。
	product, err := s.catalog.Get(c.Request.Context(), "", req.ProductID)
	if err != nil {
		renderError(c, err)
		return
	}

	shoppingCart := s.carts.Get(sessionID(c))
	if err := shoppingCart.Add(product); err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, viewOf(shoppingCart))
}

// updateCartItem handles PATCH requests to adjust a line's quantity.
// The delta may be negative; quantity never drops below one.
//
// updateCartItem 处理调整行数量的PATCH请求。
// 增量可以为负；数量永远不会低于一。
func (s *Server) updateCartItem(c *gin.Context) {
	var req struct {
		Delta int `json:"delta" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	shoppingCart := s.carts.Get(sessionID(c))
	if err := shoppingCart.UpdateQuantity(c.Param("id"), req.Delta); err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, viewOf(shoppingCart))
}

// removeCartItem handles DELETE requests for a single cart line.
// removeCartItem 处理单个购物车行的DELETE请求。
func (s *Server) removeCartItem(c *gin.Context) {
	shoppingCart := s.carts.Get(sessionID(c))
	if err := shoppingCart.Remove(c.Param("id")); err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, viewOf(shoppingCart))
}

// clearCart handles DELETE requests emptying the whole cart.
// clearCart 处理清空整个购物车的DELETE请求。
func (s *Server) clearCart(c *gin.Context) {
	shoppingCart := s.carts.Get(sessionID(c))
	if err := shoppingCart.Clear(); err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, viewOf(shoppingCart))
}
