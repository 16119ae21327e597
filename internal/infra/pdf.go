package infra

// pdf.go — receipt and payslip generation using go-pdf/fpdf.
// Receipts are A7-size thermal-style tickets with a QR code carrying the
// order reference; payslips are A5 with the gross/advance/net breakdown.

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-pdf/fpdf"
	"github.com/skip2/go-qrcode"

	"teapos/internal/model"
)

// ReceiptQR returns the PNG bytes of the QR code printed on a receipt.
// The code carries "order:{id}" so a scan resolves back to the order record.
func ReceiptQR(order *model.Order) ([]byte, error) {
	return qrcode.Encode(fmt.Sprintf("order:%s", order.ID), qrcode.Medium, 256)
}

// GenerateReceiptPDF writes an A7 receipt for a closed order and returns the
// absolute path to the generated file.
func GenerateReceiptPDF(order *model.Order, shopName, storagePath string) (string, error) {
	if err := os.MkdirAll(storagePath, 0755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}

	fileName := fmt.Sprintf("receipt_%d.pdf", order.OrderNumber)
	filePath := filepath.Join(storagePath, fileName)

	// A7 ≈ 74mm × 105mm, close to thermal receipt paper.
	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "mm",
		Size:           fpdf.SizeType{Wd: 74, Ht: 105},
	})
	pdf.SetMargins(4, 4, 4)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 8

	pdf.SetFont("Helvetica", "B", 13)
	pdf.CellFormat(contentW, 7, shopName, "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 8)
	pdf.CellFormat(contentW, 5, "Receipt", "", 1, "C", false, 0, "")
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "B", 8)
	pdf.CellFormat(contentW, 5, fmt.Sprintf("Order #%d", order.OrderNumber), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 7)
	when := order.CreatedAt
	if order.ClosedAt != nil {
		when = *order.ClosedAt
	}
	pdf.CellFormat(contentW, 4, when.Format("02/01/2006  15:04"), "", 1, "L", false, 0, "")
	if order.TableLabel != nil {
		pdf.CellFormat(contentW, 4, *order.TableLabel, "", 1, "L", false, 0, "")
	}
	pdf.Ln(2)

	pdf.Line(4, pdf.GetY(), pageW-4, pdf.GetY())
	pdf.Ln(2)

	col1 := contentW * 0.52
	col2 := contentW * 0.16
	col3 := contentW * 0.32

	pdf.SetFont("Helvetica", "B", 7)
	pdf.CellFormat(col1, 5, "Item", "B", 0, "L", false, 0, "")
	pdf.CellFormat(col2, 5, "Qty", "B", 0, "C", false, 0, "")
	pdf.CellFormat(col3, 5, "Subtotal", "B", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	for _, line := range order.Items {
		name := line.ItemName
		if len(name) > 22 {
			name = name[:21] + "…"
		}
		pdf.CellFormat(col1, 5, name, "", 0, "L", false, 0, "")
		pdf.CellFormat(col2, 5, fmt.Sprintf("x%d", line.Quantity), "", 0, "C", false, 0, "")
		pdf.CellFormat(col3, 5, line.Subtotal.StringFixed(2), "", 1, "R", false, 0, "")
	}

	pdf.Ln(2)
	pdf.Line(4, pdf.GetY(), pageW-4, pdf.GetY())
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(col1+col2, 6, "TOTAL:", "", 0, "L", false, 0, "")
	pdf.CellFormat(col3, 6, order.Total.StringFixed(2), "", 1, "R", false, 0, "")

	if order.PaymentMethod != nil {
		pdf.SetFont("Helvetica", "", 7)
		pdf.CellFormat(contentW, 4, "Paid by "+*order.PaymentMethod, "", 1, "L", false, 0, "")
	}

	// QR code linking back to the order record.
	if png, err := ReceiptQR(order); err == nil {
		opts := fpdf.ImageOptions{ImageType: "PNG"}
		pdf.RegisterImageOptionsReader("receipt-qr", opts, bytes.NewReader(png))
		pdf.ImageOptions("receipt-qr", (pageW-20)/2, pdf.GetY()+2, 20, 20, false, opts, 0, "")
		pdf.SetY(pdf.GetY() + 24)
	}

	pdf.SetFont("Helvetica", "I", 7)
	pdf.CellFormat(contentW, 4, "Thank you, visit again!", "", 1, "C", false, 0, "")

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: write file: %w", err)
	}
	return filePath, nil
}

// GeneratePayslipPDF writes an A5 payslip for a salary payment.
func GeneratePayslipPDF(payment *model.SalaryPayment, emp *model.Employee, storagePath string) (string, error) {
	if err := os.MkdirAll(storagePath, 0755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}

	fileName := fmt.Sprintf("payslip_%s.pdf", payment.ID)
	filePath := filepath.Join(storagePath, fileName)

	pdf := fpdf.New("P", "mm", "A5", "")
	pdf.SetMargins(12, 12, 12)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 24

	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(contentW, 8, "Payslip", "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(contentW, 6, "Employee: "+emp.Name, "", 1, "L", false, 0, "")
	pdf.CellFormat(contentW, 6, fmt.Sprintf("Period: %s to %s",
		payment.PeriodStart.Format("02/01/2006"), payment.PeriodEnd.Format("02/01/2006")), "", 1, "L", false, 0, "")
	pdf.CellFormat(contentW, 6, "Paid at: "+payment.PaidAt.Format("02/01/2006 15:04"), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	row := func(label, value string, bold bool) {
		style := ""
		if bold {
			style = "B"
		}
		pdf.SetFont("Helvetica", style, 10)
		pdf.CellFormat(contentW*0.6, 7, label, "T", 0, "L", false, 0, "")
		pdf.CellFormat(contentW*0.4, 7, value, "T", 1, "R", false, 0, "")
	}

	row("Gross salary", payment.Gross.StringFixed(2), false)
	row("Advance deduction", "-"+payment.AdvanceDeduction.StringFixed(2), false)
	row("Net paid ("+payment.Method+")", payment.Net.StringFixed(2), true)

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: write file: %w", err)
	}
	return filePath, nil
}
