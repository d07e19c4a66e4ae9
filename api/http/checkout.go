package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/achrafamalou77/ephedia-store/internal/checkout"
	"github.com/achrafamalou77/ephedia-store/internal/shipping"
)

// customerRequest is the JSON shape of the checkout form.
// customerRequest 是结账表单的JSON形状。
type customerRequest struct {
	FullName     string `json:"full_name"`
	Phone        string `json:"phone"`
	Instagram    string `json:"instagram"`
	WilayaID     int    `json:"wilaya_id"`
	Commune      string `json:"commune"`
	DeliveryType string `json:"delivery_type"`
}

func (r customerRequest) form() checkout.CustomerForm {
	return checkout.CustomerForm{
		FullName:  r.FullName,
		Phone:     r.Phone,
		Instagram: r.Instagram,
		WilayaID:  r.WilayaID,
		Commune:   r.Commune,
		Delivery:  shipping.Method(r.DeliveryType),
	}
}

// quote handles POST requests pricing an order before submission.
// With a product_id it prices a buy-now order for that product; without
// one it prices the session's cart. The response carries the normalized
// delivery method so the form can snap office back to home where office
// delivery is not offered.
//
// quote 处理在提交前为订单定价的POST请求。
// 带product_id时为该产品的立即购买订单定价；不带时为会话的购物车定价。
// 响应携带归一化后的配送方式，以便在不提供到点配送的地区将表单从office弹回home。
func (s *Server) quote(c *gin.Context) {
	var req struct {
		customerRequest
		ProductID string `json:"product_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var subtotal float64
	if req.ProductID != "" {
		product, err := s.catalog.Get(c.Request.Context(), "", req.ProductID)
		if err != nil {
			renderError(c, err)
			return
		}
		subtotal = product.Price
	} else {
		subtotal = s.carts.Get(sessionID(c)).Total()
	}

	c.JSON(http.StatusOK, s.checkout.PriceQuote(subtotal, req.form()))
}

// submitSingle handles POST requests for the buy-now checkout of one product.
// submitSingle 处理单个产品立即购买结账的POST请求。
func (s *Server) submitSingle(c *gin.Context) {
	var req customerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	product, err := s.catalog.Get(c.Request.Context(), "", c.Param("id"))
	if err != nil {
		renderError(c, err)
		return
	}

	order, err := s.checkout.SubmitSingle(c.Request.Context(), sessionID(c), product, req.form())
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"order": order})
}

// submitCart handles POST requests turning the session's cart into an order.
// The cart empties only when the store confirms the order; on failure the
// cart is untouched and the shopper can retry.
//
// submitCart 处理将会话购物车转为订单的POST请求。
// 只有在存储确认订单后购物车才会清空；失败时购物车保持不变，购物者可以重试。
func (s *Server) submitCart(c *gin.Context) {
	var req customerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	shoppingCart := s.carts.Get(sessionID(c))
	order, err := s.checkout.SubmitCart(c.Request.Context(), shoppingCart, req.form())
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"order": order})
}
