package reservations

import (
	"bytes"
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"
)

const dayLayout = "Monday, January 2, 2006"

// renderPlacards writes one landscape page per reservation.
func renderPlacards(rows []Reservation, dates []time.Time) (*bytes.Buffer, error) {
	pdf := fpdf.New("L", "mm", "Letter", "")
	pdf.SetMargins(15, 15, 15)
	pdf.SetAutoPageBreak(false, 0)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	if len(rows) == 0 {
		pdf.AddPage()
		pdf.SetFont("Helvetica", "B", 32)
		pdf.CellFormat(0, 40, tr(noArrivalsTitle(dates)), "", 1, "C", false, 0, "")
	}

	for _, r := range rows {
		pdf.AddPage()

		pdf.SetFont("Helvetica", "B", 28)
		pdf.CellFormat(0, 16, tr("RESERVED"), "", 1, "C", false, 0, "")

		site := r.Site
		if site == "" {
			site = "-"
		}
		pdf.SetFont("Helvetica", "B", 110)
		pdf.CellFormat(0, 60, tr(site), "", 1, "C", false, 0, "")

		if r.Name != "" {
			pdf.SetFont("Helvetica", "", 32)
			pdf.CellFormat(0, 18, tr(r.Name), "", 1, "C", false, 0, "")
		}

		pdf.SetFont("Helvetica", "", 22)
		pdf.CellFormat(0, 14, tr(stayLine(r)), "", 1, "C", false, 0, "")

		pdf.SetFont("Helvetica", "", 14)
		var details string
		if r.Number != "" {
			details = "Reservation " + r.Number
		}
		if r.Occupants != "" {
			if details != "" {
				details += "   "
			}
			details += "Occupants: " + r.Occupants
		}
		if details != "" {
			pdf.CellFormat(0, 10, tr(details), "", 1, "C", false, 0, "")
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render placards: %w", err)
	}
	return &buf, nil
}

// renderSummary writes the arrivals overview, one block per arrival day.
func renderSummary(table *Table, rows []Reservation) (*bytes.Buffer, error) {
	pdf := fpdf.New("P", "mm", "Letter", "")
	pdf.SetMargins(15, 15, 15)
	pdf.SetAutoPageBreak(true, 15)
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 10, tr("Arrivals"), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 6, tr(fmt.Sprintf("Source: %s (%d reservations)", table.Source, len(table.Reservations))), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	var current time.Time
	for _, r := range rows {
		day := Day(r.ArrivalDate)
		if !day.Equal(current) {
			current = day
			pdf.Ln(2)
			pdf.SetFont("Helvetica", "B", 12)
			pdf.CellFormat(0, 8, tr(fmt.Sprintf("%s (%d)", day.Format(dayLayout), countOn(rows, day))), "B", 1, "L", false, 0, "")
			pdf.SetFont("Helvetica", "", 10)
		}
		pdf.CellFormat(25, 6, tr(r.Site), "", 0, "L", false, 0, "")
		pdf.CellFormat(80, 6, tr(r.Name), "", 0, "L", false, 0, "")
		pdf.CellFormat(20, 6, tr(nightsLabel(r)), "", 0, "L", false, 0, "")
		pdf.CellFormat(0, 6, tr(r.Number), "", 1, "L", false, 0, "")
	}
	if len(rows) == 0 {
		pdf.CellFormat(0, 8, tr("No arrivals."), "", 1, "L", false, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render summary: %w", err)
	}
	return &buf, nil
}

func stayLine(r Reservation) string {
	line := r.ArrivalDate.Format("Mon Jan 2")
	if !r.DepartureDate.IsZero() {
		line += " - " + r.DepartureDate.Format("Mon Jan 2")
	}
	return line
}

func nightsLabel(r Reservation) string {
	switch n := r.Nights(); n {
	case 0:
		return ""
	case 1:
		return "1 night"
	default:
		return fmt.Sprintf("%d nights", n)
	}
}

func countOn(rows []Reservation, day time.Time) int {
	n := 0
	for _, r := range rows {
		if Day(r.ArrivalDate).Equal(day) {
			n++
		}
	}
	return n
}

func noArrivalsTitle(dates []time.Time) string {
	if len(dates) == 1 {
		return "No arrivals on " + dates[0].Format(dayLayout)
	}
	return "No arrivals"
}
