package chart

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/gyeh/statehealth/internal/model"
)

var pngMagic = []byte("\x89PNG\r\n\x1a\n")

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{"png": PNG, "SVG": SVG, " png ": PNG} {
		got, err := ParseFormat(in)
		if err != nil || got != want {
			t.Errorf("ParseFormat(%q) = %q, %v", in, got, err)
		}
	}
	if _, err := ParseFormat("gif"); err == nil {
		t.Error("expected error for gif")
	}
	if SVG.ContentType() != "image/svg+xml" || PNG.ContentType() != "image/png" {
		t.Error("unexpected content types")
	}
}

func TestRenderBar_PNG(t *testing.T) {
	points := []model.BarPoint{
		{State: "Texas", Value: 33.0},
		{State: "New York", Value: 27.6},
		{State: "California", Value: 25.1},
	}
	var buf bytes.Buffer
	err := RenderBar(&buf, points, Options{Title: "Obesity 2018", Indicator: model.ObesityRate})
	if err != nil {
		t.Fatalf("RenderBar: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), pngMagic) {
		t.Error("output is not a PNG")
	}
}

func TestRenderBar_SVG(t *testing.T) {
	points := []model.BarPoint{{State: "Ohio", Value: 4.2}}
	var buf bytes.Buffer
	if err := RenderBar(&buf, points, Options{Format: SVG, Indicator: model.PhysicallyUnhealthyDays}); err != nil {
		t.Fatalf("RenderBar: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "<svg") || !strings.Contains(out, "Ohio") {
		t.Error("SVG output missing svg element or bar label")
	}
}

func TestRenderBar_ZeroValues(t *testing.T) {
	points := []model.BarPoint{{State: "Ohio", Value: 0}, {State: "Utah", Value: 0}}
	if err := RenderBar(&bytes.Buffer{}, points, Options{}); err != nil {
		t.Fatalf("RenderBar with all-zero values: %v", err)
	}
}

func TestRenderTrend(t *testing.T) {
	series := []model.TrendSeries{
		{State: "Texas", Points: []model.TrendPoint{{Year: 2016, Value: 31.0}, {Year: 2017, Value: 32.4}, {Year: 2018, Value: 33.0}}},
		{State: "Ohio", Points: []model.TrendPoint{{Year: 2017, Value: 30.1}}},
	}
	var buf bytes.Buffer
	if err := RenderTrend(&buf, series, Options{Format: SVG, Indicator: model.ObesityRate}); err != nil {
		t.Fatalf("RenderTrend: %v", err)
	}
	if !strings.Contains(buf.String(), "Texas") {
		t.Error("legend missing series name")
	}
}

func TestRenderTrend_SingleYear(t *testing.T) {
	series := []model.TrendSeries{
		{State: "Texas", Points: []model.TrendPoint{{Year: 2018, Value: 33.0}}},
	}
	var buf bytes.Buffer
	if err := RenderTrend(&buf, series, Options{}); err != nil {
		t.Fatalf("RenderTrend with one year: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), pngMagic) {
		t.Error("output is not a PNG")
	}
}

func TestRender_NoData(t *testing.T) {
	if err := RenderBar(&bytes.Buffer{}, nil, Options{}); !errors.Is(err, ErrNoData) {
		t.Errorf("RenderBar: got %v", err)
	}
	if err := RenderTrend(&bytes.Buffer{}, nil, Options{}); !errors.Is(err, ErrNoData) {
		t.Errorf("RenderTrend: got %v", err)
	}
	empty := []model.TrendSeries{{State: "Texas"}}
	if err := RenderTrend(&bytes.Buffer{}, empty, Options{}); !errors.Is(err, ErrNoData) {
		t.Errorf("RenderTrend with empty series: got %v", err)
	}
}
