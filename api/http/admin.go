package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/achrafamalou77/ephedia-store/internal/admin"
	"github.com/achrafamalou77/ephedia-store/pkg/store"
)

// adminLogin handles POST requests presenting the shared access code.
// A correct code opens the gate for the whole deployment until logout.
//
// adminLogin 处理出示共享访问码的POST请求。
// 正确的访问码为整个部署打开门禁，直到登出。
func (s *Server) adminLogin(c *gin.Context) {
	var req struct {
		Code string `json:"code" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := s.gate.Login(req.Code); err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "authenticated"})
}

// adminLogout handles POST requests closing the gate.
// adminLogout 处理关闭门禁的POST请求。
func (s *Server) adminLogout(c *gin.Context) {
	if err := s.gate.Logout(); err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "logged out"})
}

// adminListProducts handles GET requests for the management product list.
// adminListProducts 处理管理产品列表的GET请求。
func (s *Server) adminListProducts(c *gin.Context) {
	products, err := s.admin.ListProducts(c.Request.Context())
	if err != nil {
		renderError(c, err)
		return
	}
	if products == nil {
		products = []store.Product{}
	}
	c.JSON(http.StatusOK, gin.H{"products": products})
}

// adminCreateProduct handles POST requests adding a product to the catalog.
// adminCreateProduct 处理向目录添加产品的POST请求。
func (s *Server) adminCreateProduct(c *gin.Context) {
	var input admin.ProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	product, err := s.admin.CreateProduct(c.Request.Context(), input)
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"product": product})
}

// adminDeleteProduct handles DELETE requests removing a product.
// adminDeleteProduct 处理删除产品的DELETE请求。
func (s *Server) adminDeleteProduct(c *gin.Context) {
	if err := s.admin.DeleteProduct(c.Request.Context(), c.Param("id")); err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

// adminListOrders handles GET requests for the order management list.
// Legacy status labels come back normalized.
//
// adminListOrders 处理订单管理列表的GET请求。历史状态标签返回时已归一化。
func (s *Server) adminListOrders(c *gin.Context) {
	orders, err := s.admin.ListOrders(c.Request.Context())
	if err != nil {
		renderError(c, err)
		return
	}
	if orders == nil {
		orders = []store.Order{}
	}
	c.JSON(http.StatusOK, gin.H{"orders": orders})
}

// adminUpdateOrderStatus handles PATCH requests settling an order.
// Only pending orders move, and only to confirmed or cancelled.
//
// adminUpdateOrderStatus 处理结算订单的PATCH请求。
// 只有待处理订单会变化，且只能变为已确认或已取消。
func (s *Server) adminUpdateOrderStatus(c *gin.Context) {
	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := s.admin.UpdateOrderStatus(c.Request.Context(), c.Param("id"), store.Status(req.Status)); err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": req.Status})
}

// adminDeleteOrder handles DELETE requests removing an order record.
// adminDeleteOrder 处理删除订单记录的DELETE请求。
func (s *Server) adminDeleteOrder(c *gin.Context) {
	if err := s.admin.DeleteOrder(c.Request.Context(), c.Param("id")); err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
