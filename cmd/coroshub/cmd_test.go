// ABOUTME: Tests for CLI helper functions.
// ABOUTME: Formatting, padding, and download filename construction.
package main

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/coroshub/coroshub/internal/coros"
)

func TestFormatDistance(t *testing.T) {
	tests := []struct {
		meters float64
		want   string
	}{
		{0, "-"},
		{-5, "-"},
		{1000, "1.00 km"},
		{8042.5, "8.04 km"},
		{21097.5, "21.10 km"},
	}

	for _, tt := range tests {
		if got := formatDistance(tt.meters); got != tt.want {
			t.Errorf("formatDistance(%v) = %q, want %q", tt.meters, got, tt.want)
		}
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		seconds int
		want    string
	}{
		{0, "-"},
		{59, "0:59"},
		{61, "1:01"},
		{3600, "1:00:00"},
		{3725, "1:02:05"},
	}

	for _, tt := range tests {
		if got := formatDuration(tt.seconds); got != tt.want {
			t.Errorf("formatDuration(%d) = %q, want %q", tt.seconds, got, tt.want)
		}
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("short", 40); got != "short" {
		t.Errorf("truncate short = %q", got)
	}
	long := strings.Repeat("x", 50)
	got := truncate(long, 40)
	if len(got) != 40 || !strings.HasSuffix(got, "...") {
		t.Errorf("truncate long = %q (len %d)", got, len(got))
	}
	wide := strings.Repeat("早朝ラン", 20)
	got = truncate(wide, 10)
	if !utf8.ValidString(got) {
		t.Errorf("truncate split a rune: %q", got)
	}
	if want := string([]rune(wide)[:7]) + "..."; got != want {
		t.Errorf("truncate wide = %q, want %q", got, want)
	}
}

func TestPadRight(t *testing.T) {
	if got := padRight("run", 6); got != "run   " {
		t.Errorf("padRight = %q", got)
	}
	if got := padRight("toolong", 3); got != "toolong" {
		t.Errorf("padRight must not cut, got %q", got)
	}
}

func TestSanitizeName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", "activity"},
		{"Tempo Run", "Tempo-Run"},
		{"a/b\\c:d", "a-b-c-d"},
	}

	for _, tt := range tests {
		if got := sanitizeName(tt.in); got != tt.want {
			t.Errorf("sanitizeName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestExportFileName(t *testing.T) {
	ref := coros.ActivityRef{
		LabelID:   "L-9",
		Name:      "Morning Run",
		StartTime: 1700000000,
	}

	got := exportFileName(ref, coros.FileGPX)
	want := "2023-11-14T22-13-20Z_Morning-Run_L-9.gpx"
	if got != want {
		t.Errorf("exportFileName = %q, want %q", got, want)
	}
}
