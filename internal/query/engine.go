// Package query implements the client-side query engine used by the
// presentation surface: per-column substring filters, a single-column
// type-aware sort, and an optional row limit. The engine is stateless
// and deterministic; ties keep their original relative order.
package query

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/spec-kit/ticket-insights/internal/domain"
)

// Column binds a stable key to a value accessor. Render, when set,
// overrides the string form used for filtering and comparison. Rank,
// when set, imposes a domain ordering on the column's string values
// instead of lexical or numeric comparison.
type Column struct {
	Key    string
	Value  func(domain.Ticket) any
	Render func(domain.Ticket) string
	Rank   map[string]int
}

// Request describes one query over a ticket collection.
type Request struct {
	Filters map[string]string
	SortKey string
	Desc    bool
	Limit   int
}

var sortDateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05.000-0700",
	"2006-01-02",
}

// Apply filters, sorts, and limits rows in that order. The input slice
// is never modified.
func Apply(rows []domain.Ticket, cols []Column, req Request) []domain.Ticket {
	byKey := make(map[string]Column, len(cols))
	for _, col := range cols {
		byKey[col.Key] = col
	}

	out := filterRows(rows, byKey, req.Filters)

	if req.SortKey != "" {
		if col, ok := byKey[req.SortKey]; ok {
			sort.SliceStable(out, func(i, j int) bool {
				cmp := compare(col, out[i], out[j])
				if req.Desc {
					return cmp > 0
				}
				return cmp < 0
			})
		}
	}

	if req.Limit > 0 && len(out) > req.Limit {
		out = out[:req.Limit]
	}
	return out
}

// filterRows keeps rows whose every filtered column contains the
// case-folded filter substring. Filters across columns are ANDed.
func filterRows(rows []domain.Ticket, byKey map[string]Column, filters map[string]string) []domain.Ticket {
	out := make([]domain.Ticket, 0, len(rows))
	for _, row := range rows {
		if matchesAll(row, byKey, filters) {
			out = append(out, row)
		}
	}
	return out
}

func matchesAll(row domain.Ticket, byKey map[string]Column, filters map[string]string) bool {
	for key, substr := range filters {
		if substr == "" {
			continue
		}
		col, ok := byKey[key]
		if !ok {
			continue
		}
		cell := strings.ToLower(stringForm(col, row))
		if !strings.Contains(cell, strings.ToLower(substr)) {
			return false
		}
	}
	return true
}

// compare selects a comparator per value pair: domain rank when the
// column defines one, then numeric, then temporal, then lexical.
func compare(col Column, a, b domain.Ticket) int {
	av := stringForm(col, a)
	bv := stringForm(col, b)

	if col.Rank != nil {
		return rankOf(col.Rank, av) - rankOf(col.Rank, bv)
	}

	an, aerr := strconv.ParseFloat(av, 64)
	bn, berr := strconv.ParseFloat(bv, 64)
	if aerr == nil && berr == nil {
		switch {
		case an < bn:
			return -1
		case an > bn:
			return 1
		default:
			return 0
		}
	}

	at, aok := parseSortDate(av)
	bt, bok := parseSortDate(bv)
	if aok && bok {
		switch {
		case at.Before(bt):
			return -1
		case at.After(bt):
			return 1
		default:
			return 0
		}
	}

	return strings.Compare(av, bv)
}

func rankOf(rank map[string]int, value string) int {
	if r, ok := rank[value]; ok {
		return r
	}
	return -1
}

func stringForm(col Column, row domain.Ticket) string {
	if col.Render != nil {
		return col.Render(row)
	}
	value := col.Value(row)
	switch typed := value.(type) {
	case nil:
		return ""
	case string:
		return typed
	case *int:
		if typed == nil {
			return ""
		}
		return strconv.Itoa(*typed)
	case *time.Time:
		if typed == nil {
			return ""
		}
		return typed.Format("2006-01-02")
	case []string:
		return strings.Join(typed, " ")
	case bool:
		return strconv.FormatBool(typed)
	default:
		return fmt.Sprint(typed)
	}
}

func parseSortDate(raw string) (time.Time, bool) {
	if raw == "" {
		return time.Time{}, false
	}
	for _, layout := range sortDateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
