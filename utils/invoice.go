package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const (
	// InvoiceExtension is the artifact format served to customers.
	InvoiceExtension = ".txt"
	// InvoiceContentType is the MIME type of invoice artifacts.
	InvoiceContentType = "text/plain; charset=utf-8"
)

var (
	// InvoiceDir is the directory where invoice artifacts are stored when
	// no object storage is configured. Can be overridden for testing.
	InvoiceDir = "./invoices"
)

// InvoiceError represents an invoice artifact error
type InvoiceError struct {
	Code    string
	Message string
}

func (e *InvoiceError) Error() string {
	return e.Message
}

// FormatVND renders an integer VND amount with thousand separators,
// e.g. 1250000 -> "1,250,000 VND".
func FormatVND(amount int64) string {
	negative := amount < 0
	if negative {
		amount = -amount
	}

	digits := fmt.Sprintf("%d", amount)
	var b strings.Builder
	for i, d := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(d)
	}

	out := b.String()
	if negative {
		out = "-" + out
	}
	return out + " VND"
}

// FormatOrderDate renders a calendar date the way the order table shows
// it: dd/mm/yyyy.
func FormatOrderDate(t time.Time) string {
	return t.Format("02/01/2006")
}

// InvoiceFileName derives the artifact filename from an order number,
// e.g. "#ORD-2024-001" -> "ORD-2024-001.txt".
func InvoiceFileName(orderNumber string) string {
	name := strings.TrimPrefix(strings.TrimSpace(orderNumber), "#")
	name = strings.ReplaceAll(name, "/", "-")
	name = strings.ReplaceAll(name, "\\", "-")
	return name + InvoiceExtension
}

// InvoiceStorageKey derives the object-storage key for an order's invoice.
func InvoiceStorageKey(orderNumber string) string {
	return "invoices/" + InvoiceFileName(orderNumber)
}

// SaveInvoiceFile writes an invoice artifact to the local filesystem and
// returns the written filename. Used when no object storage is configured.
func SaveInvoiceFile(dir, filename string, data []byte) (string, error) {
	if strings.Contains(filename, "..") || strings.ContainsAny(filename, "/\\") {
		return "", &InvoiceError{
			Code:    "INVALID_FILENAME",
			Message: "Invalid invoice filename",
		}
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create invoice directory: %w", err)
	}

	fullPath := filepath.Join(dir, filename)
	if err := os.WriteFile(fullPath, data, 0644); err != nil {
		return "", fmt.Errorf("failed to save invoice: %w", err)
	}

	return filename, nil
}
