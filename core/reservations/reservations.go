package reservations

import (
	"context"
	"io"
	"sort"
	"time"
)

// DefaultPlacardsFilename is used when Options.PlacardsFilename is empty.
const DefaultPlacardsFilename = "placards.pdf"

// SummaryFilename is the name of the arrivals overview written by CreateSummary.
const SummaryFilename = "summary.pdf"

// Options selects what a Process call produces besides the parsed table.
// The zero value only parses the input.
type Options struct {
	// CreatePlacards renders one placard page per matching reservation.
	CreatePlacards bool
	// CreateSummary renders the arrivals overview.
	CreateSummary bool
	// ArrivalDates restricts output to these days. Empty means every day.
	ArrivalDates []time.Time
	// OutputDir is the section (relative directory) artifacts are written to.
	OutputDir string
	// PlacardsFilename names the placards artifact.
	PlacardsFilename string
}

// Processor parses a reservation spreadsheet and optionally renders artifacts.
type Processor interface {
	Process(ctx context.Context, inputPath string, opts Options) (*Table, error)
}

// Sink receives rendered artifacts. reports.Store satisfies it.
type Sink interface {
	Save(ctx context.Context, name string, r io.Reader, size int64) error
}

// Reservation is one row of the spreadsheet.
type Reservation struct {
	Number        string
	Site          string
	Name          string
	Occupants     string
	ArrivalDate   time.Time
	DepartureDate time.Time
}

// Nights returns the length of stay, or 0 when the departure is unknown.
func (r Reservation) Nights() int {
	if r.DepartureDate.IsZero() || !r.DepartureDate.After(r.ArrivalDate) {
		return 0
	}
	return int(r.DepartureDate.Sub(r.ArrivalDate).Hours() / 24)
}

// Table is the parsed reservation dataset.
type Table struct {
	Source       string
	Sheet        string
	Reservations []Reservation
}

// Day truncates t to its calendar day, expressed as midnight UTC.
// Dates read from spreadsheets and "today" are compared in this form.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ArrivalDatesFrom returns the distinct arrival days on or after day, ascending.
func (t *Table) ArrivalDatesFrom(day time.Time) []time.Time {
	from := Day(day)
	seen := make(map[time.Time]struct{})
	var dates []time.Time
	for _, r := range t.Reservations {
		d := Day(r.ArrivalDate)
		if d.Before(from) {
			continue
		}
		if _, ok := seen[d]; ok {
			continue
		}
		seen[d] = struct{}{}
		dates = append(dates, d)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })
	return dates
}

// Arriving returns the reservations arriving on one of dates, ordered by
// arrival, site and name. An empty dates slice matches every reservation.
func (t *Table) Arriving(dates []time.Time) []Reservation {
	want := make(map[time.Time]struct{}, len(dates))
	for _, d := range dates {
		want[Day(d)] = struct{}{}
	}

	var out []Reservation
	for _, r := range t.Reservations {
		if len(want) > 0 {
			if _, ok := want[Day(r.ArrivalDate)]; !ok {
				continue
			}
		}
		out = append(out, r)
	}
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if !a.ArrivalDate.Equal(b.ArrivalDate) {
			return a.ArrivalDate.Before(b.ArrivalDate)
		}
		if a.Site != b.Site {
			return a.Site < b.Site
		}
		return a.Name < b.Name
	})
	return out
}
