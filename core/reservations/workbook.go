package reservations

import (
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

var (
	// ErrNoSheet is returned for workbooks without any worksheet.
	ErrNoSheet = errors.New("no worksheet found")
	// ErrMissingColumn is returned when the Arrival Date header cannot be located.
	ErrMissingColumn = errors.New(`missing "Arrival Date" column`)
	// ErrInvalidDate is returned for date cells that cannot be parsed.
	ErrInvalidDate = errors.New("invalid date")
)

// headerScanRows bounds how far down the sheet the header row is searched.
// Exports usually carry a few title rows above the table.
const headerScanRows = 25

type column int

const (
	colArrival column = iota
	colDeparture
	colSite
	colName
	colNumber
	colOccupants
)

var headerAliases = map[string]column{
	"arrival date":       colArrival,
	"arrival":            colArrival,
	"departure date":     colDeparture,
	"departure":          colDeparture,
	"site":               colSite,
	"site #":             colSite,
	"site number":        colSite,
	"site name":          colSite,
	"name":               colName,
	"primary occupant":   colName,
	"customer name":      colName,
	"occupant":           colName,
	"reservation #":      colNumber,
	"reservation number": colNumber,
	"reservation id":     colNumber,
	"res #":              colNumber,
	"occupants":          colOccupants,
	"# of occupants":     colOccupants,
	"number of people":   colOccupants,
	"people":             colOccupants,
}

var dateLayouts = []string{
	"2006-01-02",
	"1/2/2006",
	"01/02/2006",
	"1/2/06",
	"01/02/06",
	"1-2-2006",
	"01-02-2006",
	"1-2-06",
	"01-02-06",
	"Jan 2, 2006",
	"January 2, 2006",
	"Mon, Jan 2, 2006",
	"Monday, January 2, 2006",
	"2 Jan 2006",
	"2 January 2006",
	"2006/01/02",
	"1/2/2006 3:04 PM",
	"01/02/2006 03:04 PM",
	"1/2/2006 15:04",
	"01/02/2006 15:04",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	time.RFC3339,
}

// ReadWorkbook parses the first worksheet of an .xlsx file.
func ReadWorkbook(path string) (*Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook %s: %w", filepath.Base(path), err)
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrNoSheet
	}
	sheet := sheets[0]

	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", sheet, err)
	}

	table, err := parseRows(rows)
	if err != nil {
		return nil, err
	}
	table.Source = filepath.Base(path)
	table.Sheet = sheet
	return table, nil
}

func parseRows(rows [][]string) (*Table, error) {
	headerIdx, cols := findHeader(rows)
	if headerIdx < 0 {
		return nil, ErrMissingColumn
	}

	table := &Table{}
	for i := headerIdx + 1; i < len(rows); i++ {
		row := rows[i]
		rawArrival := cellValue(row, cols[colArrival])
		if rawArrival == "" {
			// Blank separators and footer lines carry no arrival.
			continue
		}

		arrival, err := parseDate(rawArrival)
		if err != nil {
			return nil, fmt.Errorf("row %d: arrival date %q: %w", i+1, rawArrival, err)
		}

		res := Reservation{
			ArrivalDate: arrival,
			Site:        cellValue(row, colIndex(cols, colSite)),
			Name:        cellValue(row, colIndex(cols, colName)),
			Number:      cellValue(row, colIndex(cols, colNumber)),
			Occupants:   cellValue(row, colIndex(cols, colOccupants)),
		}
		if raw := cellValue(row, colIndex(cols, colDeparture)); raw != "" {
			departure, err := parseDate(raw)
			if err != nil {
				return nil, fmt.Errorf("row %d: departure date %q: %w", i+1, raw, err)
			}
			res.DepartureDate = departure
		}
		table.Reservations = append(table.Reservations, res)
	}
	return table, nil
}

// findHeader returns the index of the first row holding an Arrival Date
// header, and the column positions of every recognised header in that row.
func findHeader(rows [][]string) (int, map[column]int) {
	limit := len(rows)
	if limit > headerScanRows {
		limit = headerScanRows
	}
	for i := 0; i < limit; i++ {
		cols := make(map[column]int)
		for j, cell := range rows[i] {
			c, ok := headerAliases[normalizeHeader(cell)]
			if !ok {
				continue
			}
			if _, dup := cols[c]; !dup {
				cols[c] = j
			}
		}
		if _, ok := cols[colArrival]; ok {
			return i, cols
		}
	}
	return -1, nil
}

func colIndex(cols map[column]int, c column) int {
	if idx, ok := cols[c]; ok {
		return idx
	}
	return -1
}

func normalizeHeader(header string) string {
	return strings.Join(strings.Fields(strings.ToLower(header)), " ")
}

func cellValue(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// parseDate accepts Excel serial numbers and the textual layouts exports use.
func parseDate(value string) (time.Time, error) {
	if serial, err := strconv.ParseFloat(value, 64); err == nil {
		if serial <= 0 {
			return time.Time{}, ErrInvalidDate
		}
		t, err := excelize.ExcelDateToTime(serial, false)
		if err != nil {
			return time.Time{}, fmt.Errorf("%w: %v", ErrInvalidDate, err)
		}
		return Day(t.Round(time.Second)), nil
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return Day(t), nil
		}
	}
	return time.Time{}, ErrInvalidDate
}
