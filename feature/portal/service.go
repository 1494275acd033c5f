package portal

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"reservation-portal/core/history"
	"reservation-portal/core/reports"
	"reservation-portal/core/reservations"
	"reservation-portal/core/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"
)

const (
	// SpreadsheetExt is the only accepted upload extension.
	SpreadsheetExt = ".xlsx"
	// PlacardsSection is the directory placards are written to.
	PlacardsSection = "placards"

	dateLayout = "2006-01-02"
)

var (
	// ErrMissingFile is returned when the upload form carries no file.
	ErrMissingFile = errors.New("no file was uploaded")
	// ErrInvalidFileType is returned for names not ending in .xlsx.
	ErrInvalidFileType = errors.New("invalid file type, please upload an Excel spreadsheet (.xlsx)")
)

// ProcessingError wraps a failure reported by the reservations processor.
// Its message is shown to the user verbatim.
type ProcessingError struct {
	Err error
}

func (e *ProcessingError) Error() string {
	return e.Err.Error()
}

func (e *ProcessingError) Unwrap() error {
	return e.Err
}

// Result describes a completed generation.
type Result struct {
	RunID        string
	FileName     string
	ArrivalDates []time.Time
	Placards     int
}

// Service stages uploads, drives the reservations processor and exposes the
// generated artifacts.
type Service struct {
	uploadDir string
	store     *reports.StagedStore
	processor reservations.Processor
	recorder  history.Recorder
	logger    *zap.Logger
	location  *time.Location
	now       func() time.Time

	// generation serializes writing an upload and regenerating from it.
	generation *semaphore.Weighted
}

// Option customizes a Service.
type Option func(*Service)

// WithClock overrides the time source deciding which arrivals are upcoming.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithLocation sets the timezone "today" is evaluated in.
func WithLocation(loc *time.Location) Option {
	return func(s *Service) {
		if loc != nil {
			s.location = loc
		}
	}
}

// WithRecorder stores run history.
func WithRecorder(r history.Recorder) Option {
	return func(s *Service) {
		if r != nil {
			s.recorder = r
		}
	}
}

// NewService creates the upload directory if needed. The processor must
// write its artifacts to store.
func NewService(uploadDir string, store *reports.StagedStore, processor reservations.Processor, logger *zap.Logger, opts ...Option) (*Service, error) {
	abs, err := filepath.Abs(uploadDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve upload directory: %w", err)
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}

	s := &Service{
		uploadDir:  abs,
		store:      store,
		processor:  processor,
		recorder:   history.NopRecorder{},
		logger:     logger,
		location:   time.Local,
		now:        time.Now,
		generation: semaphore.NewWeighted(1),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// ValidateFilename reduces a client filename to its base name and checks the extension.
func ValidateFilename(name string) (string, error) {
	base := utils.SanitizeFilename(name)
	if base == "" {
		return "", ErrMissingFile
	}
	if !strings.HasSuffix(base, SpreadsheetExt) || base == SpreadsheetExt {
		return "", ErrInvalidFileType
	}
	return base, nil
}

// Ingest stores an uploaded spreadsheet and regenerates the reports from it.
// No other upload or generation runs in between, so the file being
// processed cannot be replaced halfway through.
func (s *Service) Ingest(ctx context.Context, filename string, r io.Reader) (*Result, error) {
	if _, err := ValidateFilename(filename); err != nil {
		return nil, err
	}
	if err := s.generation.Acquire(ctx, 1); err != nil {
		return nil, fmt.Errorf("generation aborted: %w", err)
	}
	defer s.generation.Release(1)

	name, err := s.saveUpload(ctx, filename, r)
	if err != nil {
		return nil, err
	}
	return s.run(ctx, name)
}

// SaveUpload writes the spreadsheet to the upload directory under its
// original base name. An existing file with the same name is replaced.
func (s *Service) SaveUpload(ctx context.Context, filename string, r io.Reader) (string, error) {
	if err := s.generation.Acquire(ctx, 1); err != nil {
		return "", err
	}
	defer s.generation.Release(1)
	return s.saveUpload(ctx, filename, r)
}

func (s *Service) saveUpload(ctx context.Context, filename string, r io.Reader) (string, error) {
	name, err := ValidateFilename(filename)
	if err != nil {
		return "", err
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	dst := filepath.Join(s.uploadDir, name)
	tmp, err := os.CreateTemp(s.uploadDir, ".upload-*")
	if err != nil {
		return "", fmt.Errorf("failed to stage upload: %w", err)
	}
	if _, err := io.Copy(tmp, r); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", fmt.Errorf("failed to write upload: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("failed to write upload: %w", err)
	}
	if err := os.Rename(tmp.Name(), dst); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("failed to store upload: %w", err)
	}

	s.logger.Info("Upload stored", zap.String("file", name))
	return name, nil
}

// UploadPath resolves an uploaded file name inside the upload directory.
func (s *Service) UploadPath(name string) (string, error) {
	full, err := utils.SafeJoin(s.uploadDir, name)
	if err != nil {
		return "", fmt.Errorf("%w: %q", reports.ErrInvalidPath, name)
	}
	return full, nil
}

// Generate replaces the report set with the artifacts derived from an uploaded file.
//
// Artifacts are staged and only replace the previous set once every one of
// them was produced, so any failure leaves the previous reports in place.
// Placards are produced for every distinct arrival day from today on, one
// file per day.
func (s *Service) Generate(ctx context.Context, name string) (*Result, error) {
	if err := s.generation.Acquire(ctx, 1); err != nil {
		return nil, fmt.Errorf("generation aborted: %w", err)
	}
	defer s.generation.Release(1)
	return s.run(ctx, name)
}

// run generates from an uploaded file. The caller holds the generation slot.
func (s *Service) run(ctx context.Context, name string) (*Result, error) {
	input, err := s.UploadPath(name)
	if err != nil {
		return nil, err
	}

	run := &history.Run{
		RunID:     uuid.NewString(),
		FileName:  name,
		StartedAt: s.now(),
	}
	l := s.logger.With(zap.String("run_id", run.RunID), zap.String("file", name))

	result, err := s.generate(ctx, input, run, l)
	run.FinishedAt = s.now()
	if err != nil {
		run.Status = history.StatusFailed
		run.Error = truncate(err.Error(), 1024)
		l.Warn("Generation failed", zap.Error(err))
	} else {
		run.Status = history.StatusSucceeded
		l.Info("Generation finished",
			zap.Int("placards", result.Placards),
			zap.Duration("took", run.Duration()))
	}

	if recErr := s.recorder.Record(context.WithoutCancel(ctx), run); recErr != nil {
		l.Warn("Failed to record run", zap.Error(recErr))
	}
	return result, err
}

func (s *Service) generate(ctx context.Context, input string, run *history.Run, l *zap.Logger) (*Result, error) {
	table, err := s.processor.Process(ctx, input, reservations.Options{})
	if err != nil {
		return nil, &ProcessingError{Err: err}
	}

	today := reservations.Day(s.now().In(s.location))
	dates := table.ArrivalDatesFrom(today)
	run.ArrivalDates = joinDates(dates)
	l.Debug("Arrival dates selected", zap.Int("reservations", len(table.Reservations)), zap.Strings("dates", dateStrings(dates)))

	s.store.Begin()
	defer s.store.Discard()

	if _, err := s.processor.Process(ctx, input, reservations.Options{CreateSummary: true}); err != nil {
		return nil, &ProcessingError{Err: err}
	}

	result := &Result{RunID: run.RunID, FileName: run.FileName, ArrivalDates: dates}
	for _, d := range dates {
		opts := reservations.Options{
			CreatePlacards:   true,
			ArrivalDates:     []time.Time{d},
			OutputDir:        PlacardsSection,
			PlacardsFilename: d.Format(dateLayout) + ".pdf",
		}
		if _, err := s.processor.Process(ctx, input, opts); err != nil {
			return nil, &ProcessingError{Err: fmt.Errorf("placards for %s: %w", d.Format(dateLayout), err)}
		}
		result.Placards++
		run.Placards = result.Placards
	}

	if err := s.store.Commit(ctx); err != nil {
		return nil, err
	}
	return result, nil
}

// List returns the current report listing.
func (s *Service) List(ctx context.Context) ([]reports.Section, error) {
	return s.store.List(ctx)
}

// Open returns a generated artifact for download.
func (s *Service) Open(ctx context.Context, name string) (*reports.Artifact, error) {
	return s.store.Open(ctx, name)
}

// RecentRuns returns the latest generation runs, newest first.
func (s *Service) RecentRuns(ctx context.Context, limit int) ([]history.Run, error) {
	return s.recorder.Recent(ctx, limit)
}

func joinDates(dates []time.Time) string {
	return strings.Join(dateStrings(dates), ",")
}

func dateStrings(dates []time.Time) []string {
	out := make([]string, len(dates))
	for i, d := range dates {
		out[i] = d.Format(dateLayout)
	}
	return out
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
