// README: PDF rendering of a booking receipt.
package booking

import (
	"bytes"
	"fmt"

	"github.com/phpdave11/gofpdf"
)

func RenderReceiptPDF(b Booking, mapURL string) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A5", "")
	pdf.SetTitle(fmt.Sprintf("Taxi receipt #%d", b.ID), true)
	pdf.AddPage()
	// Core fonts are cp1252; translate user-entered UTF-8 text.
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, "TAXI RECEIPT")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 11)
	lines := []string{
		fmt.Sprintf("Booking no : %d", b.ID),
		"Booked at  : " + b.CreatedAt.Format(TimestampLayout),
		"Account    : " + b.Username,
		"Rider      : " + orDash(b.Name),
		"Phone      : " + orDash(b.Phone),
		"Email      : " + orDash(b.Email),
		"From       : " + b.Pickup,
		"To         : " + b.Drop,
		"Driver     : " + b.Driver,
	}
	for _, l := range lines {
		pdf.Cell(0, 7, tr(l))
		pdf.Ln(7)
	}

	pdf.Ln(3)
	pdf.SetFont("Helvetica", "B", 13)
	pdf.Cell(0, 8, fmt.Sprintf("Fare: %s %.2f", b.Fare.Currency, b.Fare.Float()))
	pdf.Ln(10)

	if mapURL != "" {
		pdf.SetFont("Helvetica", "I", 9)
		pdf.MultiCell(0, 5, tr("Route: "+mapURL), "", "", false)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render receipt: %w", err)
	}
	return buf.Bytes(), nil
}

func orDash(v string) string {
	if v == "" {
		return "-"
	}
	return v
}
