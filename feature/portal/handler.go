package portal

import (
	"errors"
	"net/url"

	"reservation-portal/core/logger"
	"reservation-portal/core/middleware/auth"
	"reservation-portal/core/reports"
	"reservation-portal/core/session"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const (
	// TokenParam carries the access token on the entry route.
	TokenParam = "uuid"
	// FileField is the multipart field holding the spreadsheet.
	FileField = "file"

	recentRuns = 5
)

// Handler handles the portal's HTTP routes.
type Handler struct {
	service  *Service
	sessions *session.Manager
	views    *Views
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service, sessions *session.Manager, views *Views) *Handler {
	return &Handler{service: service, sessions: sessions, views: views}
}

// RegisterRoutes registers the portal routes. Everything except the entry
// route sits behind the session gate.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	gate := auth.New(auth.Config{Sessions: h.sessions, RedirectTo: "/"})

	app.Get("/", h.HandleEntry)
	app.Post("/", h.HandleEntry)
	app.Get("/upload", gate, h.HandleUploadForm)
	app.Post("/upload", gate, h.HandleUpload)
	app.Get("/reports", gate, h.HandleReports)
	app.Get("/downloads/*", gate, h.HandleDownload)
	app.Get("/status", gate, h.HandleStatus)
}

// HandleEntry authorizes a presented token or routes an existing session.
// @Summary Portal entry
// @Description Presents the access token or resumes the session. A matching token opens the upload page, a wrong one resets the session.
// @Tags portal
// @Produce html
// @Param uuid query string false "Access token"
// @Success 302 "Redirect to /upload or /reports"
// @Failure 401 {string} string "Unauthenticated page"
// @Router / [get]
func (h *Handler) HandleEntry(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	token := c.Query(TokenParam)
	if token == "" && c.Method() == fiber.MethodPost {
		token = c.FormValue(TokenParam)
	}

	if token != "" {
		if !h.sessions.CheckToken(token) {
			l.Warn("Rejected access token", zap.String("ip", c.IP()))
			if err := h.sessions.Reset(c); err != nil {
				return err
			}
			return c.Redirect("/", fiber.StatusFound)
		}
		if _, err := h.sessions.Authorize(c); err != nil {
			l.Error("Failed to authorize session", zap.Error(err))
			return err
		}
		l.Info("Session authorized")
		return c.Redirect("/upload", fiber.StatusFound)
	}

	snap, err := h.sessions.Load(c)
	if err != nil {
		return err
	}
	switch snap.State {
	case session.ActiveFile:
		return c.Redirect("/reports", fiber.StatusFound)
	case session.Authenticated:
		return c.Redirect("/upload", fiber.StatusFound)
	}
	return h.views.Render(c, fiber.StatusUnauthorized, PageUnauthorized, PageData{Title: "Access required"})
}

// HandleUploadForm renders the upload form.
// @Summary Upload form
// @Tags portal
// @Produce html
// @Success 200 {string} string "Upload page"
// @Failure 302 "Redirect to / when not authenticated"
// @Router /upload [get]
func (h *Handler) HandleUploadForm(c *fiber.Ctx) error {
	snap, err := h.sessions.Load(c)
	if err != nil {
		return err
	}
	return h.views.Render(c, fiber.StatusOK, PageUpload, PageData{Title: "Upload reservations", Session: snap})
}

// HandleUpload stores the spreadsheet and regenerates every report.
// @Summary Upload reservations
// @Description Accepts an .xlsx reservation export, replaces the generated reports and placards, then redirects to the listing.
// @Tags portal
// @Accept mpfd
// @Produce html
// @Param file formData file true "Reservation spreadsheet (.xlsx)"
// @Success 302 "Redirect to /reports"
// @Failure 400 {string} string "Missing or invalid file"
// @Failure 422 {string} string "Spreadsheet could not be processed"
// @Failure 500 {string} string "Internal Server Error"
// @Router /upload [post]
func (h *Handler) HandleUpload(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	snap, err := h.sessions.Load(c)
	if err != nil {
		return err
	}

	fh, err := c.FormFile(FileField)
	if err != nil {
		return h.uploadError(c, fiber.StatusBadRequest, snap, ErrMissingFile)
	}
	if _, err := ValidateFilename(fh.Filename); err != nil {
		l.Info("Upload rejected", zap.String("file", fh.Filename), zap.Error(err))
		return h.uploadError(c, fiber.StatusBadRequest, snap, err)
	}

	src, err := fh.Open()
	if err != nil {
		l.Error("Failed to open upload", zap.Error(err))
		return h.uploadError(c, fiber.StatusInternalServerError, snap, err)
	}
	defer src.Close()

	result, err := h.service.Ingest(c.Context(), fh.Filename, src)
	if err != nil {
		var perr *ProcessingError
		if errors.As(err, &perr) {
			return h.uploadError(c, fiber.StatusUnprocessableEntity, snap, perr)
		}
		l.Error("Upload failed", zap.Error(err))
		return h.uploadError(c, fiber.StatusInternalServerError, snap, err)
	}

	if _, err := h.sessions.Activate(c, result.FileName); err != nil {
		l.Error("Failed to activate file", zap.Error(err))
		return err
	}
	return c.Redirect("/reports", fiber.StatusFound)
}

func (h *Handler) uploadError(c *fiber.Ctx, status int, snap session.Snapshot, err error) error {
	msg := err.Error()
	if status == fiber.StatusUnprocessableEntity {
		msg = "Error processing file: " + msg
	}
	return h.views.Render(c, status, PageUpload, PageData{
		Title:   "Upload reservations",
		Session: snap,
		Error:   msg,
	})
}

// HandleReports renders the grouped listing of generated files.
// @Summary Reports listing
// @Tags portal
// @Produce html
// @Success 200 {string} string "Listing page"
// @Failure 302 "Redirect to / when not authenticated"
// @Failure 500 {string} string "Internal Server Error"
// @Router /reports [get]
func (h *Handler) HandleReports(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	snap, err := h.sessions.Load(c)
	if err != nil {
		return err
	}

	sections, err := h.service.List(c.Context())
	if err != nil {
		l.Error("Failed to list reports", zap.Error(err))
		return err
	}

	runs, err := h.service.RecentRuns(c.Context(), recentRuns)
	if err != nil {
		l.Warn("Failed to load run history", zap.Error(err))
	}

	return h.views.Render(c, fiber.StatusOK, PageReports, PageData{
		Title:    "Reports",
		Session:  snap,
		Sections: sections,
		Total:    reports.Count(sections),
		Runs:     runs,
	})
}

// HandleDownload sends a generated file as an attachment.
// @Summary Download a generated file
// @Tags portal
// @Produce application/pdf
// @Param path path string true "File path relative to the downloads root (e.g. 'placards/2024-06-01.pdf')"
// @Success 200 {file} file "File content"
// @Failure 400 {object} map[string]string "Invalid path"
// @Failure 404 {object} map[string]string "Not found"
// @Router /downloads/{path} [get]
func (h *Handler) HandleDownload(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	name, err := url.PathUnescape(c.Params("*"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": reports.ErrInvalidPath.Error()})
	}

	art, err := h.service.Open(c.Context(), name)
	switch {
	case errors.Is(err, reports.ErrInvalidPath):
		l.Warn("Rejected download path", zap.String("path", name))
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, reports.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	case err != nil:
		l.Error("Failed to open artifact", zap.String("path", name), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	c.Attachment(art.Name)
	// The body stream is closed by fasthttp once sent.
	return c.SendStream(art, int(art.Size))
}

// StatusResponse describes the caller's session.
type StatusResponse struct {
	State string `json:"state"`
	File  string `json:"file,omitempty"`
}

// HandleStatus reports the session state.
// @Summary Session status
// @Tags portal
// @Produce json
// @Success 200 {object} StatusResponse
// @Failure 302 "Redirect to / when not authenticated"
// @Router /status [get]
func (h *Handler) HandleStatus(c *fiber.Ctx) error {
	snap, err := h.sessions.Load(c)
	if err != nil {
		return err
	}
	return c.JSON(StatusResponse{State: snap.State.String(), File: snap.FilePath})
}
