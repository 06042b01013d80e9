package controllers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dekii2275/oilandenegry-website-sub000/services"
	"github.com/dekii2275/oilandenegry-website-sub000/utils"
)

// GetOrderInvoice handles GET /api/v1/orders/:id/invoice - renders the
// invoice artifact for one of the caller's orders and responds with it as
// a download. When object storage is configured the artifact is also
// persisted there and a presigned URL is exposed through X-Invoice-URL;
// without storage a copy lands in the local invoice directory. A storage
// failure only loses the copy, never the download.
func GetOrderInvoice(c *gin.Context) {
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

	artifact := services.RenderInvoice(detail)

	if invoiceService := services.GetInvoiceService(); invoiceService != nil {
		key, err := invoiceService.StoreInvoice(detail)
		if err != nil {
			log.Printf("Failed to store invoice for %s: %v", order.OrderNumber, err)
		} else {
			c.Header("X-Invoice-Key", key)
			if url, err := invoiceService.GetInvoiceURL(key); err != nil {
				log.Printf("Failed to presign invoice %s: %v", key, err)
			} else if url != "" {
				c.Header("X-Invoice-URL", url)
			}
		}
	} else if _, err := utils.SaveInvoiceFile(utils.InvoiceDir, utils.InvoiceFileName(order.OrderNumber), artifact); err != nil {
		log.Printf("Failed to save invoice for %s locally: %v", order.OrderNumber, err)
	}

	c.Header("Content-Disposition", `attachment; filename="`+utils.InvoiceFileName(order.OrderNumber)+`"`)
	c.Data(http.StatusOK, utils.InvoiceContentType, artifact)
}
