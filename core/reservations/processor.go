package reservations

import (
	"context"
	"errors"
	"path"

	"go.uber.org/zap"
)

// ErrNoSink is returned when output is requested from a processor without a sink.
var ErrNoSink = errors.New("no output sink configured")

// WorkbookProcessor is the default Processor. It reads .xlsx exports and
// renders placards and the arrivals summary as PDF documents.
type WorkbookProcessor struct {
	sink   Sink
	logger *zap.Logger
}

// NewWorkbookProcessor creates a processor writing artifacts to sink.
func NewWorkbookProcessor(sink Sink, logger *zap.Logger) *WorkbookProcessor {
	return &WorkbookProcessor{sink: sink, logger: logger}
}

// Process parses inputPath and renders whatever opts asks for.
func (p *WorkbookProcessor) Process(ctx context.Context, inputPath string, opts Options) (*Table, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	table, err := ReadWorkbook(inputPath)
	if err != nil {
		return nil, err
	}

	if !opts.CreateSummary && !opts.CreatePlacards {
		return table, nil
	}
	if p.sink == nil {
		return nil, ErrNoSink
	}

	rows := table.Arriving(opts.ArrivalDates)

	if opts.CreateSummary {
		buf, err := renderSummary(table, rows)
		if err != nil {
			return nil, err
		}
		name := path.Join(opts.OutputDir, SummaryFilename)
		if err := p.sink.Save(ctx, name, buf, int64(buf.Len())); err != nil {
			return nil, err
		}
		p.logger.Debug("Summary written", zap.String("artifact", name), zap.Int("rows", len(rows)))
	}

	if opts.CreatePlacards {
		filename := opts.PlacardsFilename
		if filename == "" {
			filename = DefaultPlacardsFilename
		}
		buf, err := renderPlacards(rows, opts.ArrivalDates)
		if err != nil {
			return nil, err
		}
		name := path.Join(opts.OutputDir, filename)
		if err := p.sink.Save(ctx, name, buf, int64(buf.Len())); err != nil {
			return nil, err
		}
		p.logger.Debug("Placards written", zap.String("artifact", name), zap.Int("pages", len(rows)))
	}

	return table, nil
}
