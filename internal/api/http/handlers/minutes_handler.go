package handlers

import (
	"io"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/ticket-insights/internal/api/dto"
	"github.com/spec-kit/ticket-insights/internal/collab"
	"github.com/spec-kit/ticket-insights/internal/service"
	"github.com/spec-kit/ticket-insights/pkg/util"
)

// MinutesHandler runs the meeting-minutes pipeline over HTTP. Text can
// arrive pre-extracted as JSON or as a multipart document upload.
type MinutesHandler struct {
	minutes        *service.MinutesService
	store          collab.MinutesStore
	identityHeader string
	defaultOwner   string
}

// NewMinutesHandler returns a new handler instance.
func NewMinutesHandler(minutes *service.MinutesService, store collab.MinutesStore, identityHeader, defaultOwner string) *MinutesHandler {
	return &MinutesHandler{minutes: minutes, store: store, identityHeader: identityHeader, defaultOwner: defaultOwner}
}

// ProcessText accepts pre-extracted minutes text.
func (h *MinutesHandler) ProcessText(c *fiber.Ctx) error {
	var req dto.MinutesRequest
	if err := c.BodyParser(&req); err != nil {
		return util.NewValidationError("invalid request body", map[string]any{"error": err.Error()})
	}
	if req.Text == "" {
		return util.NewValidationError("text is required", nil)
	}

	record, err := h.minutes.ProcessText(c.UserContext(), req.Text, req.Filename, h.options(c, req.CreateTickets, req.DraftEmail))
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(dto.MinutesResponse{Record: record})
}

// ProcessUpload accepts a multipart document under the "document" field
// and extracts its text before parsing.
func (h *MinutesHandler) ProcessUpload(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("document")
	if err != nil {
		return util.NewValidationError("document file is required", nil)
	}

	file, err := fileHeader.Open()
	if err != nil {
		return util.NewValidationError("document could not be opened", map[string]any{"error": err.Error()})
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		return util.NewValidationError("document could not be read", map[string]any{"error": err.Error()})
	}

	createTickets := parseBoolValue(c.FormValue("create_tickets"), false)
	draftEmail := parseBoolValue(c.FormValue("draft_email"), false)

	record, err := h.minutes.ProcessDocument(c.UserContext(), content, fileHeader.Filename, h.options(c, createTickets, draftEmail))
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(dto.MinutesResponse{Record: record})
}

// Get returns one stored minutes record by ID.
func (h *MinutesHandler) Get(c *fiber.Ctx) error {
	if h.store == nil {
		return util.NewNotFound("minutes record", nil)
	}
	record, err := h.store.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	if record == nil {
		return util.NewNotFound("minutes record", map[string]any{"id": c.Params("id")})
	}
	return c.JSON(dto.MinutesResponse{Record: record})
}

func (h *MinutesHandler) options(c *fiber.Ctx, createTickets, draftEmail bool) service.ProcessOptions {
	owner := h.defaultOwner
	if h.identityHeader != "" {
		if identity := c.Get(h.identityHeader); identity != "" {
			owner = identity
		}
	}
	return service.ProcessOptions{
		CreateTickets: createTickets,
		DraftEmail:    draftEmail,
		Owner:         owner,
	}
}

func parseBoolValue(raw string, fallback bool) bool {
	if raw == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(raw)
	if err != nil {
		return fallback
	}
	return parsed
}
