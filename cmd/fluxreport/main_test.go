package main

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// writeInput writes n daily rows from 1992 as CSV. collinear makes the air
// temperature a multiple of net radiation.
func writeInput(t *testing.T, n int, collinear bool) string {
	t.Helper()
	var b strings.Builder
	b.WriteString("year,month,doy,nee,rnet,tair,vpd,ws\n")
	for i := 0; i < n; i++ {
		x := float64(i)
		doy := i%365 + 1
		rnet := 300 * math.Sin(x/9)
		tair := 15 + 10*math.Cos(x/23)
		if collinear {
			tair = 2 * rnet
		}
		vpd := float64(i%7) * 0.4
		ws := 2 + math.Sqrt(x)*0.1
		flux := 1 - 0.01*rnet + 0.2*tair + 0.3*math.Sin(x*12.9898)
		fmt.Fprintf(&b, "%d,%d,%d,%g,%g,%g,%g,%g\n", 1992+i/365, min(doy/31+1, 12), doy, flux, rnet, tair, vpd, ws)
	}

	path := filepath.Join(t.TempDir(), "flux.csv")
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRunExportsEverything(t *testing.T) {
	input := writeInput(t, 800, false)
	out := t.TempDir()

	code := run([]string{
		"-input", input,
		"-html", filepath.Join(out, "flux.html"),
		"-workbook", filepath.Join(out, "flux.xlsx"),
		"-tables", filepath.Join(out, "tables"),
		"-parquet-out", filepath.Join(out, "flux.parquet"),
		"-log-level", "warn",
	})
	if code != 0 {
		t.Fatalf("Expected exit 0, got %d", code)
	}

	for _, name := range []string{"flux.html", "flux.xlsx", "flux.parquet", "tables/coverage.csv", "tables/fitted.csv"} {
		if _, err := os.Stat(filepath.Join(out, name)); err != nil {
			t.Errorf("Expected %s: %v", name, err)
		}
	}
}

func TestRunFitFailureStillExports(t *testing.T) {
	input := writeInput(t, 100, true)
	out := t.TempDir()

	code := run([]string{
		"-input", input,
		"-no-plot",
		"-workbook", filepath.Join(out, "flux.xlsx"),
		"-tables", filepath.Join(out, "tables"),
		"-log-level", "error",
	})
	if code != 1 {
		t.Errorf("Expected exit 1 for a singular fit, got %d", code)
	}

	if _, err := os.Stat(filepath.Join(out, "flux.xlsx")); err != nil {
		t.Errorf("Expected workbook after a fit failure: %v", err)
	}
	if _, err := os.Stat(filepath.Join(out, "tables", "coverage.csv")); err != nil {
		t.Errorf("Expected coverage table after a fit failure: %v", err)
	}
	if _, err := os.Stat(filepath.Join(out, "tables", "coefficients.csv")); err == nil {
		t.Error("No coefficients should be written after a fit failure")
	}
}

func TestRunLoadFailure(t *testing.T) {
	code := run([]string{"-input", filepath.Join(t.TempDir(), "absent.csv"), "-no-plot", "-log-level", "error"})
	if code != 1 {
		t.Errorf("Expected exit 1 for a missing input, got %d", code)
	}
}

func TestRunInvalidSettings(t *testing.T) {
	if code := run([]string{"-bins", "0", "-no-plot"}); code != 2 {
		t.Errorf("Expected exit 2 for zero bins, got %d", code)
	}
	if code := run([]string{"-unknown"}); code != 2 {
		t.Errorf("Expected exit 2 for an unknown flag, got %d", code)
	}
}
