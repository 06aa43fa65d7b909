package handlers

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/ticket-insights/internal/api/dto"
	"github.com/spec-kit/ticket-insights/internal/query"
	"github.com/spec-kit/ticket-insights/internal/service"
	"github.com/spec-kit/ticket-insights/pkg/util"
)

// TicketsHandler exposes the interactive query engine over the current
// snapshot. Query params: filter[<col>]=substr, sort=<col>,
// dir=asc|desc, limit=<n>.
type TicketsHandler struct {
	holder  *service.SnapshotHolder
	columns []query.Column
}

// NewTicketsHandler returns a new handler instance.
func NewTicketsHandler(holder *service.SnapshotHolder) *TicketsHandler {
	return &TicketsHandler{holder: holder, columns: query.TicketColumns()}
}

// List applies filters, sort, and limit to the current snapshot.
func (h *TicketsHandler) List(c *fiber.Ctx) error {
	snap := h.holder.Current()
	if snap == nil {
		return util.NewNotFound("report snapshot", nil)
	}

	req, err := h.parseRequest(c)
	if err != nil {
		return err
	}

	rows := query.Apply(snap.Tickets, h.columns, req)
	return c.JSON(dto.TicketQueryResponse{Count: len(rows), Tickets: rows})
}

func (h *TicketsHandler) parseRequest(c *fiber.Ctx) (query.Request, error) {
	req := query.Request{Filters: map[string]string{}}

	for key, value := range c.Queries() {
		if col, ok := filterColumn(key); ok {
			req.Filters[col] = value
		}
	}

	if sortKey := c.Query("sort"); sortKey != "" {
		if !h.knownColumn(sortKey) {
			return query.Request{}, util.NewValidationError("unknown sort column", map[string]any{"sort": sortKey})
		}
		req.SortKey = sortKey
	}

	switch dir := strings.ToLower(c.Query("dir", "asc")); dir {
	case "asc":
	case "desc":
		req.Desc = true
	default:
		return query.Request{}, util.NewValidationError("dir must be asc or desc", map[string]any{"dir": dir})
	}

	if rawLimit := c.Query("limit"); rawLimit != "" {
		limit, err := strconv.Atoi(rawLimit)
		if err != nil || limit < 0 {
			return query.Request{}, util.NewValidationError("limit must be a non-negative integer", map[string]any{"limit": rawLimit})
		}
		req.Limit = limit
	}
	return req, nil
}

func (h *TicketsHandler) knownColumn(key string) bool {
	for _, col := range h.columns {
		if col.Key == key {
			return true
		}
	}
	return false
}

// filterColumn extracts "status" from "filter[status]".
func filterColumn(param string) (string, bool) {
	if !strings.HasPrefix(param, "filter[") || !strings.HasSuffix(param, "]") {
		return "", false
	}
	col := param[len("filter[") : len(param)-1]
	return col, col != ""
}
