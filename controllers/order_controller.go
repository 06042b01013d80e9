package controllers

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/dekii2275/oilandenegry-website-sub000/config"
	"github.com/dekii2275/oilandenegry-website-sub000/middleware"
	"github.com/dekii2275/oilandenegry-website-sub000/models"
	"github.com/dekii2275/oilandenegry-website-sub000/services"
	"github.com/dekii2275/oilandenegry-website-sub000/utils"
)

// maxPageSize caps the page window a client may request in one call.
const maxPageSize = 200

// CreateOrderItemRequest is one product line in an order creation request.
type CreateOrderItemRequest struct {
	ProductName string `json:"product_name" binding:"required"`
	Quantity    int    `json:"quantity" binding:"required,gt=0"`
	UnitPrice   int64  `json:"unit_price" binding:"required,gte=0"`
}

// CreateOrderRequest represents the request body for creating an order
type CreateOrderRequest struct {
	Items           []CreateOrderItemRequest `json:"items" binding:"required,min=1,dive"`
	PaymentMethod   string                   `json:"payment_method" binding:"required"`
	ShippingAddress string                   `json:"shipping_address" binding:"required,min=5"`
}

// currentUser resolves the authenticated user from the JWT context. On
// failure it has already written the error response and returns false.
func currentUser(c *gin.Context) (*models.User, bool) {
	auth0ID, err := middleware.GetUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "UNAUTHORIZED",
				"message": "Could not extract user information",
			},
		})
		return nil, false
	}

	db := config.GetDB()
	var user models.User
	if err := db.Where("auth0_id = ?", auth0ID).First(&user).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "USER_NOT_FOUND",
				"message": "User profile not found. Please create a profile first.",
			},
		})
		return nil, false
	}

	return &user, true
}

// applyOrderFilters translates a QuerySpec into gorm conditions. The
// semantics mirror services.MatchesSpec exactly: each absent or malformed
// filter field adds no condition.
func applyOrderFilters(q *gorm.DB, customerID uint, spec models.QuerySpec) *gorm.DB {
	q = q.Where("customer_id = ?", customerID)

	if spec.Tab != models.TabAll {
		q = q.Where("status = ?", spec.Tab)
	}
	// search_blob is Go-folded by the model's BeforeSave hook; folding the
	// needle with strings.ToLower too keeps non-ASCII search terms matching
	// the way the in-memory predicate does, regardless of the database's
	// LOWER() collation.
	if needle := strings.ToLower(strings.TrimSpace(spec.SearchText)); needle != "" {
		q = q.Where("search_blob LIKE ?", "%"+needle+"%")
	}
	if from, ok := services.ParseOrderDate(spec.DateStart); ok {
		q = q.Where("created_at >= ?", from)
	}
	if to, ok := services.ParseOrderDate(spec.DateEnd); ok {
		// Inclusive day boundary: anything before the next midnight counts.
		q = q.Where("created_at < ?", to.AddDate(0, 0, 1))
	}
	if min, ok := services.ParseAmount(spec.MinAmount); ok {
		q = q.Where("total_amount >= ?", min)
	}
	if max, ok := services.ParseAmount(spec.MaxAmount); ok {
		q = q.Where("total_amount <= ?", max)
	}
	if spec.PaymentStatus != models.PaymentAll {
		q = q.Where("payment_status = ?", spec.PaymentStatus)
	}

	return q
}

// orderSortClause maps a sort key to its ORDER BY clause. The order-number
// tie-break keeps pagination reproducible, matching the local comparator.
func orderSortClause(sortBy string) string {
	switch sortBy {
	case models.SortOldest:
		return "created_at ASC, order_number ASC"
	case models.SortHighest:
		return "total_amount DESC, order_number ASC"
	case models.SortLowest:
		return "total_amount ASC, order_number ASC"
	default:
		return "created_at DESC, order_number ASC"
	}
}

// ListOrders handles GET /api/v1/orders - one filtered, sorted page of the
// caller's orders. This is the server-side twin of the client's local view
// derivation; both apply the same filters, the same sorts and the same
// zero-match convention (total_pages = 0, empty page).
func ListOrders(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var spec models.QuerySpec
	// Malformed query input degrades to defaults, it never rejects.
	_ = c.ShouldBindQuery(&spec)
	spec = spec.Normalized()
	if spec.PageSize > maxPageSize {
		spec.PageSize = maxPageSize
	}

	db := config.GetDB()

	var total int64
	if err := applyOrderFilters(db.Model(&models.Order{}), user.ID, spec).Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to count orders",
			},
		})
		return
	}

	if total == 0 {
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"data":    []models.Order{},
			"pagination": models.Pagination{
				Page:       0,
				Limit:      spec.PageSize,
				Total:      0,
				TotalPages: 0,
			},
		})
		return
	}

	totalPages := (int(total) + spec.PageSize - 1) / spec.PageSize
	page := spec.Page
	if page > totalPages {
		page = totalPages
	}

	var orders []models.Order
	err := applyOrderFilters(db.Model(&models.Order{}), user.ID, spec).
		Order(orderSortClause(spec.SortBy)).
		Offset((page - 1) * spec.PageSize).
		Limit(spec.PageSize).
		Find(&orders).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to query orders",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    orders,
		"pagination": models.Pagination{
			Page:       page,
			Limit:      spec.PageSize,
			Total:      int(total),
			TotalPages: totalPages,
		},
	})
}

// findScopedOrder loads one of the caller's orders by public id. On
// failure it has already written the 404 response and returns false.
func findScopedOrder(c *gin.Context, customerID uint, publicID string) (*models.Order, bool) {
	db := config.GetDB()
	var order models.Order
	err := db.Where("public_id = ? AND customer_id = ?", publicID, customerID).First(&order).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "DATABASE_ERROR",
					"message": "Failed to load order",
				},
			})
			return nil, false
		}
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "ORDER_NOT_FOUND",
				"message": "Order not found",
			},
		})
		return nil, false
	}
	return &order, true
}

// loadOrderDetail builds the full detail for an order: line items plus the
// amount breakdown. Orders without structured line items (seeded data)
// carry the summary string and their total as the subtotal.
func loadOrderDetail(order *models.Order) (*models.OrderDetail, error) {
	db := config.GetDB()
	var items []models.OrderLineItem
	if err := db.Where("order_id = ?", order.ID).Find(&items).Error; err != nil {
		return nil, err
	}

	detail := &models.OrderDetail{Order: *order, LineItems: items}
	if len(items) == 0 {
		detail.Subtotal = order.TotalAmount
		return detail, nil
	}

	var subtotal int64
	for _, it := range items {
		subtotal += it.LineTotal
	}
	detail.Subtotal = subtotal
	detail.ShippingFee, detail.Tax, _ = models.ComputeTotals(subtotal)
	return detail, nil
}

// GetOrder handles GET /api/v1/orders/:id - full order detail
func GetOrder(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	order, ok := findScopedOrder(c, user.ID, c.Param("id"))
	if !ok {
		return
	}

	detail, err := loadOrderDetail(order)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to load order details",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    detail,
	})
}

// CancelOrder handles POST /api/v1/orders/:id/cancel - customer-initiated
// cancellation. Terminal orders answer 409 and stay untouched; the status
// machine allows cancelling from pending, confirmed and shipping only.
// Payment state is left alone, refunds belong to the payments service.
func CancelOrder(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	order, ok := findScopedOrder(c, user.ID, c.Param("id"))
	if !ok {
		return
	}

	if !order.CanCancel() {
		c.JSON(http.StatusConflict, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_TRANSITION",
				"message": fmt.Sprintf("Order in status %q can no longer be cancelled", order.Status),
			},
		})
		return
	}

	order.Status = models.StatusCancelled
	if err := config.GetDB().Save(order).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to cancel order",
			},
		})
		return
	}

	// A stored invoice copy renders the pre-cancellation status; drop it
	// so the next download re-persists a current one.
	if invoiceService := services.GetInvoiceService(); invoiceService != nil {
		key := utils.InvoiceStorageKey(order.OrderNumber)
		if err := invoiceService.DeleteInvoice(key); err != nil {
			log.Printf("Failed to delete stored invoice %s: %v", key, err)
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    order,
	})
}

// CreateOrder handles POST /api/v1/orders - creates a new order (customers only)
func CreateOrder(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	// Only customers place orders
	if user.Role != "customer" {
		c.JSON(http.StatusForbidden, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "FORBIDDEN",
				"message": "Only customers can create orders",
			},
		})
		return
	}

	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid request data",
				"details": err.Error(),
			},
		})
		return
	}

	lineItems := make([]models.OrderLineItem, 0, len(req.Items))
	var subtotal int64
	for _, it := range req.Items {
		lineTotal := it.UnitPrice * int64(it.Quantity)
		subtotal += lineTotal
		lineItems = append(lineItems, models.OrderLineItem{
			ProductName: it.ProductName,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			LineTotal:   lineTotal,
		})
	}
	_, _, total := models.ComputeTotals(subtotal)

	// QR payments wait for the transfer before confirmation; everything
	// else confirms immediately.
	status := models.StatusConfirmed
	payment := models.PaymentPaid
	if strings.EqualFold(req.PaymentMethod, "QR") {
		status = models.StatusPending
		payment = models.PaymentPending
	}

	db := config.GetDB()

	var sequence int64
	if err := db.Model(&models.Order{}).Unscoped().Count(&sequence).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to create order",
			},
		})
		return
	}

	order := models.Order{
		PublicID:        uuid.NewString(),
		OrderNumber:     fmt.Sprintf("#ORD-%d-%03d", time.Now().Year(), sequence+1),
		Status:          status,
		TotalAmount:     total,
		Items:           models.SummarizeItems(lineItems),
		PaymentStatus:   payment,
		PaymentMethod:   strings.ToUpper(req.PaymentMethod),
		ShippingAddress: strings.TrimSpace(req.ShippingAddress),
		CustomerID:      user.ID,
	}

	if err := db.Create(&order).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to create order",
			},
		})
		return
	}

	for i := range lineItems {
		lineItems[i].OrderID = order.ID
	}
	if err := db.Create(&lineItems).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to save order items",
			},
		})
		return
	}

	detail := &models.OrderDetail{Order: order, LineItems: lineItems, Subtotal: subtotal}
	detail.ShippingFee, detail.Tax, _ = models.ComputeTotals(subtotal)

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    detail,
	})
}
