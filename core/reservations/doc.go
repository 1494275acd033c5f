// Package reservations reads reservation spreadsheets and renders the
// documents derived from them.
//
// The portal treats this package as an opaque collaborator behind the
// Processor interface: it hands over the path of an uploaded workbook together
// with an Options set and gets back the parsed Table. Any error is meant to be
// shown to the user as is.
//
// # Options
//
//   - zero value: parse only.
//   - CreateSummary: write summary.pdf (arrivals grouped by day) into OutputDir.
//   - CreatePlacards: write one placard page per reservation arriving on one of
//     ArrivalDates into OutputDir/PlacardsFilename.
//
// # Workbook format
//
// The first worksheet is used. The header row is the first row (within the
// first 25) containing an "Arrival Date" cell; Site, Departure Date, Name or
// Primary Occupant, Reservation # and Occupants are picked up when present.
// Dates may be Excel serial numbers or common textual layouts.
package reservations
