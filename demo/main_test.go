package main

import (
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sartorproj/goflux/dataset"
)

func TestJSONFloat(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{1.5, "1.5"},
		{-0.25, "-0.25"},
		{0, "0"},
		{math.NaN(), "null"},
		{math.Inf(1), "null"},
		{math.Inf(-1), "null"},
	}

	for _, tt := range tests {
		got, err := json.Marshal(jsonFloat(tt.in))
		if err != nil {
			t.Fatalf("Marshal(%v) failed: %v", tt.in, err)
		}
		if string(got) != tt.want {
			t.Errorf("Marshal(%v): expected %s, got %s", tt.in, tt.want, got)
		}
	}
}

func TestAnalyzeEmptyTable(t *testing.T) {
	result := analyzeTable(dataset.NewTable("empty", nil), Dataset{Name: "Empty"})

	if result == nil {
		t.Fatal("Expected a result for an empty table")
	}
	if result.NObs != 0 || len(result.Missing) != 0 {
		t.Errorf("Expected no observations and no coverage, got %+v", result)
	}
	if !math.IsNaN(float64(result.Mean)) {
		t.Errorf("Expected NaN mean, got %f", float64(result.Mean))
	}
	if result.Coefficients != nil || result.Holdout != nil {
		t.Error("No regression should be attempted without observations")
	}
}

func TestExportKeepsUndefinedValues(t *testing.T) {
	synth := analyzeTable(synthetic(2), Dataset{Name: "Synthetic"})
	empty := analyzeTable(dataset.NewTable("empty", nil), Dataset{Name: "Empty"})
	if synth.Coefficients == nil || synth.Holdout == nil {
		t.Fatalf("Expected a fitted synthetic dataset, got fit error %q", synth.FitError)
	}

	path := filepath.Join(t.TempDir(), "results.json")
	if err := export(path, OutputData{Datasets: []DatasetResult{*synth, *empty}}); err != nil {
		t.Fatalf("export failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `"mean": null`) {
		t.Error("Expected the empty dataset mean to be exported as null")
	}

	var decoded struct {
		Datasets []struct {
			Mean         *float64           `json:"mean"`
			Coefficients map[string]float64 `json:"coefficients"`
		} `json:"datasets"`
	}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Exported JSON does not decode: %v", err)
	}
	if decoded.Datasets[0].Mean == nil || decoded.Datasets[1].Mean != nil {
		t.Errorf("Unexpected means %v, %v", decoded.Datasets[0].Mean, decoded.Datasets[1].Mean)
	}
	if len(decoded.Datasets[0].Coefficients) != 5 {
		t.Errorf("Expected 5 coefficients, got %v", decoded.Datasets[0].Coefficients)
	}
}

func TestExportReportsWriteFailure(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "results.json")
	if err := export(path, OutputData{}); err == nil {
		t.Error("Expected an error writing into a missing directory")
	}
}
