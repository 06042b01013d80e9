package services

import (
	"fmt"
	"strings"

	"github.com/dekii2275/oilandenegry-website-sub000/models"
	"github.com/dekii2275/oilandenegry-website-sub000/utils"
)

// InvoiceService handles rendering, storage and retrieval of invoice
// artifacts.
type InvoiceService interface {
	// StoreInvoice renders the invoice for a detail and uploads it,
	// returning the storage key.
	StoreInvoice(detail *models.OrderDetail) (string, error)

	// GetInvoiceURL generates a URL for downloading a stored invoice.
	GetInvoiceURL(key string) (string, error)

	// DeleteInvoice removes a stored invoice.
	DeleteInvoice(key string) error
}

// S3InvoiceService implements InvoiceService using object storage.
type S3InvoiceService struct {
	s3Service S3Interface
}

var invoiceServiceInstance InvoiceService

// InitInvoiceService initializes the invoice service with an S3 backend
func InitInvoiceService(s3Service S3Interface) InvoiceService {
	invoiceServiceInstance = &S3InvoiceService{
		s3Service: s3Service,
	}
	return invoiceServiceInstance
}

// GetInvoiceService returns the initialized invoice service instance
func GetInvoiceService() InvoiceService {
	return invoiceServiceInstance
}

// SetInvoiceService sets the invoice service instance (primarily for testing)
func SetInvoiceService(service InvoiceService) {
	invoiceServiceInstance = service
}

// StoreInvoice renders and uploads the invoice artifact.
func (s *S3InvoiceService) StoreInvoice(detail *models.OrderDetail) (string, error) {
	key := utils.InvoiceStorageKey(detail.OrderNumber)
	if err := s.s3Service.UploadBytes(key, RenderInvoice(detail), utils.InvoiceContentType); err != nil {
		return "", fmt.Errorf("failed to store invoice: %w", err)
	}
	return key, nil
}

// GetInvoiceURL generates a presigned URL for a stored invoice.
func (s *S3InvoiceService) GetInvoiceURL(key string) (string, error) {
	if key == "" {
		return "", nil
	}

	url, err := s.s3Service.GetPresignedURL(key)
	if err != nil {
		return "", fmt.Errorf("failed to generate invoice URL: %w", err)
	}

	return url, nil
}

// DeleteInvoice deletes a stored invoice.
func (s *S3InvoiceService) DeleteInvoice(key string) error {
	if key == "" {
		return nil
	}

	if err := s.s3Service.DeleteFile(key); err != nil {
		return fmt.Errorf("failed to delete invoice: %w", err)
	}

	return nil
}

// RenderInvoice builds the textual invoice artifact for an order. The
// output is a pure function of the detail's fields, so the local mock path
// and repeated downloads always produce the same bytes.
func RenderInvoice(detail *models.OrderDetail) []byte {
	var b strings.Builder

	b.WriteString("ZENERGY ENERGY MARKETPLACE\n")
	b.WriteString("HOA DON / INVOICE\n")
	b.WriteString(strings.Repeat("=", 42) + "\n\n")

	fmt.Fprintf(&b, "Order:     %s\n", detail.OrderNumber)
	fmt.Fprintf(&b, "Date:      %s\n", utils.FormatOrderDate(detail.CreatedDate()))
	fmt.Fprintf(&b, "Status:    %s\n", detail.Status)
	fmt.Fprintf(&b, "Payment:   %s\n", detail.PaymentStatus)
	if detail.ShippingAddress != "" {
		fmt.Fprintf(&b, "Ship to:   %s\n", detail.ShippingAddress)
	}
	b.WriteString("\n")

	if len(detail.LineItems) > 0 {
		b.WriteString("Items:\n")
		for _, it := range detail.LineItems {
			fmt.Fprintf(&b, "  %-30s x%-4d %s\n", it.ProductName, it.Quantity, utils.FormatVND(it.LineTotal))
		}
	} else if detail.Items != "" {
		fmt.Fprintf(&b, "Items:\n  %s\n", detail.Items)
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "Subtotal:      %s\n", utils.FormatVND(detail.Subtotal))
	fmt.Fprintf(&b, "Shipping fee:  %s\n", utils.FormatVND(detail.ShippingFee))
	fmt.Fprintf(&b, "VAT (%d%%):      %s\n", models.TaxRatePercent, utils.FormatVND(detail.Tax))
	fmt.Fprintf(&b, "TOTAL:         %s\n", utils.FormatVND(detail.TotalAmount))

	return []byte(b.String())
}
