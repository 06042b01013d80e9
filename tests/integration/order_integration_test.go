package integration

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/dekii2275/oilandenegry-website-sub000/config"
	"github.com/dekii2275/oilandenegry-website-sub000/controllers"
	"github.com/dekii2275/oilandenegry-website-sub000/models"
	"github.com/dekii2275/oilandenegry-website-sub000/services"
	"github.com/dekii2275/oilandenegry-website-sub000/tests/testutil"
)

// OrderIntegrationTestSuite defines the test suite for order integration tests
type OrderIntegrationTestSuite struct {
	suite.Suite
	router   *gin.Engine
	db       *gorm.DB
	cfg      *config.Config
	customer *models.User
}

// SetupSuite runs once before all tests
func (suite *OrderIntegrationTestSuite) SetupSuite() {
	gin.SetMode(gin.TestMode)

	os.Setenv("GO_ENV", "test")
	os.Setenv("AUTH0_DOMAIN", "test.auth0.com")
	os.Setenv("AUTH0_AUDIENCE", "https://api.test.com")
	os.Setenv("PORT", "8080")
	os.Setenv("AWS_REGION", "us-east-1")
	os.Setenv("AWS_S3_BUCKET", "test-bucket")
	os.Setenv("AWS_ACCESS_KEY_ID", "test-key")
	os.Setenv("AWS_SECRET_ACCESS_KEY", "test-secret")

	cfg, err := config.Load()
	suite.NoError(err)
	suite.cfg = cfg
}

// SetupTest runs before each test
func (suite *OrderIntegrationTestSuite) SetupTest() {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	suite.NoError(err)
	suite.db = db

	err = db.AutoMigrate(&models.User{}, &models.Order{}, &models.OrderLineItem{})
	suite.NoError(err)

	config.SetDB(db)

	mockS3 := services.NewMockS3Service()
	mockS3.SetAsMockForTesting()
	services.InitInvoiceService(mockS3)

	suite.customer = &models.User{
		Auth0ID: "auth0|customer",
		Name:    "Test Customer",
		Email:   "customer@test.com",
		Role:    "customer",
	}
	suite.NoError(db.Create(suite.customer).Error)

	suite.router = gin.New()
	v1 := suite.router.Group("/api/v1")
	{
		auth := testutil.MockAuthMiddleware("auth0|customer", "customer")
		v1.GET("/orders", auth, controllers.ListOrders)
		v1.POST("/orders", auth, controllers.CreateOrder)
		v1.GET("/orders/:id", auth, controllers.GetOrder)
		v1.POST("/orders/:id/cancel", auth, controllers.CancelOrder)
		v1.GET("/orders/:id/invoice", auth, controllers.GetOrderInvoice)
	}
}

// TearDownTest runs after each test
func (suite *OrderIntegrationTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	if err == nil {
		sqlDB.Close()
	}
}

func (suite *OrderIntegrationTestSuite) seedOrder(number string, status models.OrderStatus, amount int64, day int, items string, payment models.PaymentStatus) {
	order := models.Order{
		PublicID:      number,
		OrderNumber:   number,
		Status:        status,
		TotalAmount:   amount,
		Items:         items,
		PaymentStatus: payment,
		CustomerID:    suite.customer.ID,
		CreatedAt:     time.Date(2024, time.December, day, 9, 0, 0, 0, time.UTC),
	}
	suite.NoError(suite.db.Create(&order).Error)
}

func (suite *OrderIntegrationTestSuite) doJSON(method, path string, body []byte) (int, map[string]interface{}) {
	var reader *bytes.Buffer
	if body != nil {
		reader = bytes.NewBuffer(body)
	} else {
		reader = bytes.NewBuffer(nil)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	suite.router.ServeHTTP(w, req)

	var response map[string]interface{}
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &response))
	return w.Code, response
}

// TestOrderWorkflow_CreateListGetCancel exercises the full order lifecycle
// through the HTTP surface.
func (suite *OrderIntegrationTestSuite) TestOrderWorkflow_CreateListGetCancel() {
	// Step 1: Create an order paid by QR
	createBody, _ := json.Marshal(map[string]interface{}{
		"items": []map[string]interface{}{
			{"product_name": "Xăng RON 95", "quantity": 100, "unit_price": 10000},
			{"product_name": "Dầu nhớt Total 5W-30", "quantity": 2, "unit_price": 125000},
		},
		"payment_method":   "QR",
		"shipping_address": "123 Lê Lợi, Quận 1, TP.HCM",
	})
	code, response := suite.doJSON(http.MethodPost, "/api/v1/orders", createBody)
	assert.Equal(suite.T(), http.StatusCreated, code)
	assert.True(suite.T(), response["success"].(bool))

	created := response["data"].(map[string]interface{})
	orderID := created["id"].(string)
	assert.Equal(suite.T(), "pending", created["status"])
	assert.Equal(suite.T(), "pending", created["payment_status"])
	// 1,250,000 subtotal + 50,000 shipping + 125,000 VAT
	assert.Equal(suite.T(), float64(1425000), created["total_amount"])

	// Step 2: The new order shows up in the listing
	code, response = suite.doJSON(http.MethodGet, "/api/v1/orders", nil)
	assert.Equal(suite.T(), http.StatusOK, code)
	orders := response["data"].([]interface{})
	assert.Len(suite.T(), orders, 1)

	// Step 3: The detail carries the line items and the breakdown
	code, response = suite.doJSON(http.MethodGet, "/api/v1/orders/"+orderID, nil)
	assert.Equal(suite.T(), http.StatusOK, code)
	detail := response["data"].(map[string]interface{})
	assert.Equal(suite.T(), float64(1250000), detail["subtotal"])
	assert.Equal(suite.T(), float64(50000), detail["shipping_fee"])
	assert.Equal(suite.T(), float64(125000), detail["tax"])
	assert.Len(suite.T(), detail["line_items"].([]interface{}), 2)

	// Step 4: Download the invoice
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/orders/"+orderID+"/invoice", nil)
	suite.router.ServeHTTP(w, req)
	assert.Equal(suite.T(), http.StatusOK, w.Code)
	assert.Contains(suite.T(), w.Body.String(), created["order_number"].(string))
	assert.NotEmpty(suite.T(), w.Header().Get("X-Invoice-Key"))

	// Step 5: Cancel while still pending
	code, response = suite.doJSON(http.MethodPost, "/api/v1/orders/"+orderID+"/cancel", nil)
	assert.Equal(suite.T(), http.StatusOK, code)
	assert.Equal(suite.T(), "cancelled", response["data"].(map[string]interface{})["status"])

	// Step 6: A second cancel answers conflict
	code, response = suite.doJSON(http.MethodPost, "/api/v1/orders/"+orderID+"/cancel", nil)
	assert.Equal(suite.T(), http.StatusConflict, code)
	assert.Equal(suite.T(), "INVALID_TRANSITION", response["error"].(map[string]interface{})["code"])
}

// TestListOrders_FiltersAndPagination exercises the query surface end to end.
func (suite *OrderIntegrationTestSuite) TestListOrders_FiltersAndPagination() {
	suite.seedOrder("#ORD-2024-001", models.StatusCompleted, 1250000, 20, "Xăng RON 95 (100 lít)", models.PaymentPaid)
	suite.seedOrder("#ORD-2024-002", models.StatusShipping, 850000, 21, "Dầu Diesel (50 lít)", models.PaymentPaid)
	suite.seedOrder("#ORD-2024-003", models.StatusPending, 500000, 22, "Pin Lithium 48V-100Ah", models.PaymentPending)
	suite.seedOrder("#ORD-2024-004", models.StatusConfirmed, 3200000, 23, "Inverter 5KW", models.PaymentPaid)
	suite.seedOrder("#ORD-2024-005", models.StatusCancelled, 750000, 24, "Bình gas công nghiệp 45kg", models.PaymentRefunded)

	// Combined tab + amount filter
	code, response := suite.doJSON(http.MethodGet, "/api/v1/orders?tab=shipping&min_amount=500000", nil)
	assert.Equal(suite.T(), http.StatusOK, code)
	orders := response["data"].([]interface{})
	assert.Len(suite.T(), orders, 1)
	assert.Equal(suite.T(), "#ORD-2024-002", orders[0].(map[string]interface{})["order_number"])

	// Pagination with the sort applied before slicing
	code, response = suite.doJSON(http.MethodGet, "/api/v1/orders?sort_by=lowest&page=2&limit=2", nil)
	assert.Equal(suite.T(), http.StatusOK, code)
	orders = response["data"].([]interface{})
	assert.Len(suite.T(), orders, 2)
	assert.Equal(suite.T(), "#ORD-2024-002", orders[0].(map[string]interface{})["order_number"])
	assert.Equal(suite.T(), "#ORD-2024-001", orders[1].(map[string]interface{})["order_number"])

	pagination := response["pagination"].(map[string]interface{})
	assert.Equal(suite.T(), float64(5), pagination["total"])
	assert.Equal(suite.T(), float64(3), pagination["total_pages"])
	assert.Equal(suite.T(), float64(2), pagination["page"])

	// The zero-match convention: no pages at all
	code, response = suite.doJSON(http.MethodGet, "/api/v1/orders?q=nonexistent", nil)
	assert.Equal(suite.T(), http.StatusOK, code)
	assert.Empty(suite.T(), response["data"].([]interface{}))
	pagination = response["pagination"].(map[string]interface{})
	assert.Equal(suite.T(), float64(0), pagination["total_pages"])
	assert.Equal(suite.T(), float64(0), pagination["page"])
}

// TestOrderIntegrationTestSuite runs the test suite
func TestOrderIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(OrderIntegrationTestSuite))
}
