package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/ticket-insights/internal/api/dto"
	"github.com/spec-kit/ticket-insights/internal/service"
	"github.com/spec-kit/ticket-insights/pkg/util"
)

// ReportHandler serves the current snapshot and manual refreshes.
type ReportHandler struct {
	sync   *service.SyncService
	holder *service.SnapshotHolder
}

// NewReportHandler returns a new handler instance.
func NewReportHandler(sync *service.SyncService, holder *service.SnapshotHolder) *ReportHandler {
	return &ReportHandler{sync: sync, holder: holder}
}

// Get returns the current report snapshot.
func (h *ReportHandler) Get(c *fiber.Ctx) error {
	snap := h.holder.Current()
	if snap == nil {
		return util.NewNotFound("report snapshot", nil)
	}
	return c.JSON(dto.ReportResponse{
		GeneratedAt: snap.GeneratedAt,
		Owner:       snap.Owner,
		ScopeNote:   snap.ScopeNote,
		Totals:      snap.Totals,
		Tickets:     snap.Tickets,
	})
}

// Refresh triggers one synchronization cycle. On failure the previous
// snapshot stays in place and the error envelope is returned, so a
// client can keep rendering its last good data.
func (h *ReportHandler) Refresh(c *fiber.Ctx) error {
	snap, err := h.sync.Refresh(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(dto.RefreshResponse{
		GeneratedAt: snap.GeneratedAt,
		Totals:      snap.Totals,
		Tickets:     len(snap.Tickets),
	})
}
