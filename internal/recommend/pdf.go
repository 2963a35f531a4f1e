package recommend

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"
)

// Result is a plan together with the form it was generated for.
type Result struct {
	Preferences Preferences `json:"preferences"`
	Plan        Plan        `json:"plan"`
	GeneratedAt time.Time   `json:"generatedAt"`
}

// ItineraryPDF renders r as an A4 document.
func ItineraryPDF(r Result) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(20, 20, 20)
	pdf.SetAutoPageBreak(true, 25)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFillColor(44, 62, 80)
	pdf.Rect(0, 0, 210, 28, "F")
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "B", 18)
	pdf.SetXY(20, 8)
	pdf.CellFormat(100, 10, "AI Travel Agent", "", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetXY(20, 18)
	pdf.CellFormat(170, 6, "Personalized Travel Recommendations", "", 1, "L", false, 0, "")
	pdf.SetY(35)

	section := func(title string) {
		pdf.SetFillColor(44, 62, 80)
		pdf.SetTextColor(255, 255, 255)
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(170, 8, "  "+tr(title), "", 1, "L", true, 0, "")
		pdf.SetTextColor(0, 0, 0)
		pdf.Ln(2)
	}
	row := func(label, value string) {
		pdf.SetFont("Helvetica", "", 10)
		pdf.SetTextColor(100, 100, 100)
		pdf.CellFormat(55, 7, tr(label), "", 0, "L", false, 0, "")
		pdf.SetTextColor(20, 20, 20)
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(115, 7, tr(value), "", 1, "L", false, 0, "")
	}
	text := func(s string) {
		pdf.SetFont("Helvetica", "", 10)
		pdf.SetTextColor(40, 40, 40)
		pdf.MultiCell(170, 5, tr(s), "", "L", false)
	}

	p := r.Preferences
	section("Your Trip")
	row("Age group", p.AgeGroup)
	row("Group", p.GroupSize)
	row("Duration", p.TripDuration)
	row("Budget", fmt.Sprintf("$%d", p.BudgetRange))
	row("Interests", strings.Join(p.Interests, ", "))
	if !r.GeneratedAt.IsZero() {
		row("Generated", r.GeneratedAt.UTC().Format("02 Jan 2006, 15:04 UTC"))
	}
	pdf.Ln(4)

	if len(r.Plan.Destinations) > 0 {
		section("Recommended Destinations")
		for _, d := range r.Plan.Destinations {
			pdf.SetFont("Helvetica", "B", 10)
			pdf.CellFormat(170, 6, tr(fmt.Sprintf("%s  %.1f  %s", d.Name, d.Rating, d.Price)), "", 1, "L", false, 0, "")
			text(d.Description)
			pdf.Ln(2)
		}
		pdf.Ln(2)
	}

	if len(r.Plan.Itinerary) > 0 {
		section("Itinerary")
		for _, day := range r.Plan.Itinerary {
			pdf.SetFont("Helvetica", "B", 10)
			pdf.CellFormat(170, 6, tr(day.Title), "", 1, "L", false, 0, "")
			for _, a := range day.Activities {
				text("- " + a)
			}
			pdf.Ln(2)
		}
		pdf.Ln(2)
	}

	if len(r.Plan.TravelTips) > 0 {
		section("Travel Tips")
		for _, tip := range r.Plan.TravelTips {
			text("- " + tip)
		}
		pdf.Ln(4)
	}

	b := r.Plan.BudgetBreakdown
	section("Budget Breakdown")
	row("Accommodation", fmt.Sprintf("$%.0f", b.Accommodation))
	row("Transportation", fmt.Sprintf("$%.0f", b.Transportation))
	row("Food", fmt.Sprintf("$%.0f", b.Food))
	row("Activities", fmt.Sprintf("$%.0f", b.Activities))
	pdf.SetFillColor(39, 174, 96)
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(55, 9, "TOTAL", "", 0, "L", true, 0, "")
	pdf.CellFormat(115, 9, fmt.Sprintf("$%.0f", b.Total), "", 1, "L", true, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("rendering itinerary pdf: %w", err)
	}
	return buf.Bytes(), nil
}
