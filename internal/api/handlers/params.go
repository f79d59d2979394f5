package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gyeh/statehealth/internal/model"
	"github.com/gyeh/statehealth/internal/normalize"
	"github.com/gyeh/statehealth/internal/pipeline"
)

// paramError is a client mistake; handlers answer it with 400.
type paramError struct {
	param string
	msg   string
}

func (e *paramError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.param, e.msg)
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// parseStates reads state=... (repeatable) and states=a,b. "all" selects
// every state in the table. With neither parameter the configured default
// selection applies; an explicit empty list stays empty.
func (h *DashboardHandler) parseStates(r *http.Request, table *pipeline.Table) []string {
	q := r.URL.Query()
	if !q.Has("state") && !q.Has("states") {
		return append([]string(nil), h.defaults.States...)
	}
	names := append([]string(nil), q["state"]...)
	names = append(names, splitList(q.Get("states"))...)
	for _, n := range names {
		if strings.EqualFold(n, "all") {
			return table.States()
		}
	}
	out := make([]string, 0, len(names))
	for _, n := range names {
		if n = strings.TrimSpace(n); n != "" {
			out = append(out, n)
		}
	}
	return out
}

// parseYear returns nil for an absent year or "all". A well-formed year
// outside the data range is passed through and simply matches nothing.
func parseYear(r *http.Request) (*int, error) {
	s := strings.TrimSpace(r.URL.Query().Get("year"))
	if s == "" || strings.EqualFold(s, "all") {
		return nil, nil
	}
	y, ok := normalize.ParseYear(s)
	if !ok {
		return nil, &paramError{"year", fmt.Sprintf("%q is not a year", s)}
	}
	return &y, nil
}

// singleYear resolves the year for views that need exactly one: the request,
// then the configured default, then the latest year in the table.
func (h *DashboardHandler) singleYear(r *http.Request, table *pipeline.Table) (int, error) {
	y, err := parseYear(r)
	if err != nil {
		return 0, err
	}
	if y != nil {
		return *y, nil
	}
	if h.defaults.Year != 0 {
		return h.defaults.Year, nil
	}
	latest, _ := table.LatestYear()
	return latest, nil
}

func (h *DashboardHandler) parseIndicator(r *http.Request) (model.Indicator, error) {
	s := r.URL.Query().Get("indicator")
	if strings.TrimSpace(s) == "" {
		return model.Indicator(h.defaults.Indicator), nil
	}
	ind, ok := model.ParseIndicator(s)
	if !ok {
		return "", &paramError{"indicator", fmt.Sprintf("unknown indicator %q", s)}
	}
	return ind, nil
}

func (h *DashboardHandler) parseColumns(r *http.Request) ([]model.Column, error) {
	names := splitList(r.URL.Query().Get("columns"))
	if len(names) == 0 {
		names = h.defaults.Columns
	}
	cols := make([]model.Column, 0, len(names))
	for _, n := range names {
		c, ok := model.ParseColumn(n)
		if !ok {
			return nil, &paramError{"columns", fmt.Sprintf("unknown column %q", n)}
		}
		cols = append(cols, c)
	}
	return cols, nil
}

func parseOrder(r *http.Request) (descending bool, err error) {
	switch strings.ToLower(r.URL.Query().Get("order")) {
	case "", "desc":
		return true, nil
	case "asc":
		return false, nil
	}
	return false, &paramError{"order", "want asc or desc"}
}

func parseDimension(r *http.Request, name string) (int, error) {
	s := r.URL.Query().Get(name)
	if s == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 100 || n > 4096 {
		return 0, &paramError{name, "want an integer between 100 and 4096"}
	}
	return n, nil
}
