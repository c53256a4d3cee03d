// Package pdf renders printable booking itineraries.
package pdf

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"yatra/internal/domain/entity"

	"github.com/jung-kurt/gofpdf"
)

// ItineraryRenderer renders a booking as an A4 PDF document.
type ItineraryRenderer struct{}

// NewItineraryRenderer creates a renderer with the default layout.
func NewItineraryRenderer() *ItineraryRenderer {
	return &ItineraryRenderer{}
}

// Render produces the itinerary PDF for the booking.
func (r *ItineraryRenderer) Render(booking *entity.Booking, traveller *entity.User) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(20, 20, 20)
	pdf.AddPage()

	// Header bar.
	pdf.SetFillColor(18, 48, 66)
	pdf.Rect(0, 0, 210, 28, "F")
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "B", 18)
	pdf.SetXY(20, 8)
	pdf.CellFormat(100, 10, "Yatra", "", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(233, 180, 76)
	pdf.SetXY(20, 18)
	pdf.CellFormat(170, 6, "Travel Itinerary", "", 1, "L", false, 0, "")

	pdf.SetY(35)
	pdf.SetTextColor(0, 0, 0)

	if booking.Estimated {
		pdf.SetFillColor(255, 248, 225)
		pdf.SetDrawColor(233, 180, 76)
		pdf.SetTextColor(130, 90, 20)
		pdf.SetFont("Helvetica", "I", 8)
		pdf.SetLineWidth(0.4)
		y := pdf.GetY()
		pdf.Rect(20, y, 170, 12, "FD")
		pdf.SetXY(23, y+2)
		pdf.MultiCell(164, 4, "ESTIMATED PRICES - this booking was priced from fallback data. Verify amounts with the provider.", "", "C", false)
		pdf.SetTextColor(0, 0, 0)
		pdf.SetDrawColor(0, 0, 0)
		pdf.SetLineWidth(0.2)
		pdf.Ln(6)
	}

	sectionHeader := func(title string) {
		pdf.SetFillColor(18, 48, 66)
		pdf.SetTextColor(255, 255, 255)
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(170, 8, "  "+title, "", 1, "L", true, 0, "")
		pdf.SetTextColor(0, 0, 0)
		pdf.Ln(2)
	}

	row := func(label, value string) {
		pdf.SetFont("Helvetica", "", 10)
		pdf.SetTextColor(100, 100, 100)
		pdf.CellFormat(55, 7, label, "", 0, "L", false, 0, "")
		pdf.SetTextColor(20, 20, 20)
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(115, 7, value, "", 1, "L", false, 0, "")
	}

	sectionHeader("Traveller")
	name := "Guest Traveller"
	if traveller != nil && traveller.FullName != "" {
		name = traveller.FullName
	}
	row("Name", name)
	row("Generated", time.Now().UTC().Format("02 Jan 2006, 15:04 UTC"))
	pdf.Ln(4)

	sectionHeader("Booking")
	row("Reference", booking.Reference)
	row("Type", strings.ToUpper(string(booking.Type)[:1])+string(booking.Type)[1:])
	row("Status", string(booking.Status))
	if booking.Origin != "" {
		row("Route", fmt.Sprintf("%s to %s", booking.Origin, booking.Destination))
	} else {
		row("Destination", booking.Destination)
	}
	row("Start", booking.StartDate.Format("02 Jan 2006"))
	if !booking.EndDate.IsZero() {
		row("End", booking.EndDate.Format("02 Jan 2006"))
	}
	if booking.Guests > 0 {
		row("Guests", fmt.Sprintf("%d", booking.Guests))
	}
	if booking.Rooms > 0 {
		row("Rooms", fmt.Sprintf("%d", booking.Rooms))
	}
	pdf.Ln(4)

	sectionHeader("Price Breakdown")
	row("Base amount", formatAmount(booking.Currency, booking.BaseAmount))
	row("Service fee", formatAmount(booking.Currency, booking.ServiceFee))
	row("Taxes (GST)", formatAmount(booking.Currency, booking.TaxAmount))
	row("Total", formatAmount(booking.Currency, booking.TotalAmount))

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render itinerary: %w", err)
	}

	return buf.Bytes(), nil
}

func formatAmount(currency string, amount float64) string {
	return fmt.Sprintf("%s %.2f", currency, amount)
}
