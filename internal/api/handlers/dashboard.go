package handlers

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/gyeh/statehealth/internal/chart"
	"github.com/gyeh/statehealth/internal/config"
	"github.com/gyeh/statehealth/internal/model"
	"github.com/gyeh/statehealth/internal/pipeline"
)

// DashboardHandler serves the dashboard views over the current table snapshot.
type DashboardHandler struct {
	handle   *pipeline.Handle
	defaults config.Defaults
	log      zerolog.Logger
}

// NewDashboardHandler creates a handler. defaults must already be validated
// with config.ApplyDefaults.
func NewDashboardHandler(handle *pipeline.Handle, defaults config.Defaults, log zerolog.Logger) *DashboardHandler {
	return &DashboardHandler{handle: handle, defaults: defaults, log: log}
}

// badParam writes a 400 for a paramError and reports whether it did.
func badParam(w http.ResponseWriter, err error) bool {
	var pe *paramError
	if errors.As(err, &pe) {
		respondError(w, http.StatusBadRequest, pe.Error())
		return true
	}
	return false
}

type indicatorMeta struct {
	ID    model.Indicator `json:"id"`
	Label string          `json:"label"`
	Unit  string          `json:"unit"`
}

type columnMeta struct {
	ID    model.Column `json:"id"`
	Title string       `json:"title"`
}

// regionMeta lists the loaded states of one region, for grouped selectors.
type regionMeta struct {
	Region model.Region `json:"region"`
	States []string     `json:"states"`
}

type metaResponse struct {
	States     []string        `json:"states"`
	Regions    []regionMeta    `json:"regions"`
	Years      []int           `json:"years"`
	LatestYear int             `json:"latest_year"`
	Indicators []indicatorMeta `json:"indicators"`
	Columns    []columnMeta    `json:"columns"`
	Defaults   config.Defaults `json:"defaults"`
	SnapshotID string          `json:"snapshot_id"`
	LoadedAt   time.Time       `json:"loaded_at"`
}

// GetMeta returns the selector options and defaults.
// GET /api/meta
func (h *DashboardHandler) GetMeta(w http.ResponseWriter, r *http.Request) {
	t := h.handle.Table()
	latest, _ := t.LatestYear()

	resp := metaResponse{
		States:     t.States(),
		Years:      t.Years(),
		LatestYear: latest,
		Defaults:   h.defaults,
		SnapshotID: t.SnapshotID(),
		LoadedAt:   t.LoadedAt(),
	}
	loaded := make(map[string]bool)
	for _, s := range resp.States {
		loaded[s] = true
	}
	for _, region := range model.AllRegions {
		rm := regionMeta{Region: region, States: []string{}}
		for _, s := range model.StatesIn(region) {
			if loaded[s] {
				rm.States = append(rm.States, s)
			}
		}
		resp.Regions = append(resp.Regions, rm)
	}
	for _, info := range model.AllIndicators {
		resp.Indicators = append(resp.Indicators, indicatorMeta{ID: info.Indicator, Label: info.Label, Unit: info.Unit})
	}
	for _, c := range model.AllColumns {
		resp.Columns = append(resp.Columns, columnMeta{ID: c, Title: c.Title()})
	}
	respondJSON(w, http.StatusOK, resp)
}

// GetLoad returns the summary of the current snapshot's load.
// GET /api/load
func (h *DashboardHandler) GetLoad(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.handle.Summary())
}

// GetSummary returns the status-card values for a selection.
// GET /api/summary?states=&year=&indicator=
func (h *DashboardHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	t := h.handle.Table()
	year, err := parseYear(r)
	if badParam(w, err) {
		return
	}
	sel := pipeline.Selection{States: h.parseStates(r, t), Year: year}
	// An unknown indicator is reported on the card rather than rejected.
	if s := r.URL.Query().Get("indicator"); s != "" {
		if ind, ok := model.ParseIndicator(s); ok {
			sel.Indicator = ind
		} else {
			sel.Indicator = model.Indicator(s)
		}
	}
	respondJSON(w, http.StatusOK, pipeline.Summarize(sel))
}

// SearchStates filters the state list by a case-insensitive substring.
// GET /api/states?q=new
func (h *DashboardHandler) SearchStates(w http.ResponseWriter, r *http.Request) {
	states := pipeline.SearchStates(h.handle.Table().States(), r.URL.Query().Get("q"))
	respondJSON(w, http.StatusOK, map[string]any{"states": states})
}

// GetRecords returns the matching records.
// GET /api/records?states=&year=&indicator=
func (h *DashboardHandler) GetRecords(w http.ResponseWriter, r *http.Request) {
	t := h.handle.Table()
	year, err := parseYear(r)
	if badParam(w, err) {
		return
	}
	ind, err := h.parseIndicator(r)
	if badParam(w, err) {
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"records": t.FilterBySelection(h.parseStates(r, t), year, ind),
	})
}

// GetBar returns the bar chart view for one year.
// GET /api/bar?states=&year=&indicator=
func (h *DashboardHandler) GetBar(w http.ResponseWriter, r *http.Request) {
	t := h.handle.Table()
	year, err := h.singleYear(r, t)
	if badParam(w, err) {
		return
	}
	ind, err := h.parseIndicator(r)
	if badParam(w, err) {
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"year":      year,
		"indicator": ind,
		"label":     ind.AxisLabel(),
		"bars":      t.BarChartView(h.parseStates(r, t), year, ind),
	})
}

// GetTrend returns the per-state trend series.
// GET /api/trend?states=&indicator=
func (h *DashboardHandler) GetTrend(w http.ResponseWriter, r *http.Request) {
	t := h.handle.Table()
	ind, err := h.parseIndicator(r)
	if badParam(w, err) {
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"indicator": ind,
		"label":     ind.AxisLabel(),
		"series":    t.TrendView(h.parseStates(r, t), ind),
	})
}

// GetTable returns the projected data table.
// GET /api/table?states=&year=&indicator=&columns=&order=
func (h *DashboardHandler) GetTable(w http.ResponseWriter, r *http.Request) {
	t := h.handle.Table()
	year, err := parseYear(r)
	if badParam(w, err) {
		return
	}
	ind, err := h.parseIndicator(r)
	if badParam(w, err) {
		return
	}
	cols, err := h.parseColumns(r)
	if badParam(w, err) {
		return
	}
	desc, err := parseOrder(r)
	if badParam(w, err) {
		return
	}
	respondJSON(w, http.StatusOK, t.TableView(h.parseStates(r, t), year, ind, cols, desc))
}

// GetChart renders the bar or trend view as an image.
// GET /api/chart/{bar|trend}.{png|svg}
func (h *DashboardHandler) GetChart(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	format, err := chart.ParseFormat(vars["format"])
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	t := h.handle.Table()
	ind, err := h.parseIndicator(r)
	if badParam(w, err) {
		return
	}
	opts := chart.Options{Format: format, Indicator: ind}
	if opts.Width, err = parseDimension(r, "width"); badParam(w, err) {
		return
	}
	if opts.Height, err = parseDimension(r, "height"); badParam(w, err) {
		return
	}

	var buf bytes.Buffer
	states := h.parseStates(r, t)
	switch vars["kind"] {
	case "bar":
		year, yerr := h.singleYear(r, t)
		if badParam(w, yerr) {
			return
		}
		opts.Title = fmt.Sprintf("%s, %d", ind.Label(), year)
		err = chart.RenderBar(&buf, t.BarChartView(states, year, ind), opts)
	default:
		opts.Title = fmt.Sprintf("%s over time", ind.Label())
		err = chart.RenderTrend(&buf, t.TrendView(states, ind), opts)
	}
	if errors.Is(err, chart.ErrNoData) {
		respondError(w, http.StatusNotFound, "no data for selection")
		return
	}
	if err != nil {
		h.log.Error().Err(err).Str("kind", vars["kind"]).Msg("chart render failed")
		respondError(w, http.StatusInternalServerError, "chart render failed")
		return
	}

	w.Header().Set("Content-Type", format.ContentType())
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

// Reload re-reads the data source and swaps the snapshot. On failure the
// previous snapshot keeps serving.
// POST /api/reload
func (h *DashboardHandler) Reload(w http.ResponseWriter, r *http.Request) {
	summary, err := h.handle.Reload(r.Context())
	if errors.Is(err, pipeline.ErrEmptyReload) {
		respondJSON(w, http.StatusConflict, map[string]any{
			"error":   err.Error(),
			"summary": summary,
		})
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, fmt.Sprintf("reload failed: %v", err))
		return
	}
	respondJSON(w, http.StatusOK, summary)
}
