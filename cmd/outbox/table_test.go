package main

import (
	"strings"
	"testing"
	"time"
)

func TestRenderTablePadsShortRows(t *testing.T) {
	out := renderTable(
		[]string{"Files", "Capacity", "Directory"},
		[][]string{
			{"3", "128", "/tmp/spool/events"},
			{"0"},
		},
		[]columnAlignment{alignRight, alignRight, alignLeft},
	)
	for _, want := range []string{"FILES", "CAPACITY", "DIRECTORY", "/tmp/spool/events"} {
		if !strings.Contains(out, want) {
			t.Fatalf("table output missing %q:\n%s", want, out)
		}
	}
	if lines := strings.Split(out, "\n"); len(lines) < 4 {
		t.Fatalf("table too short:\n%s", out)
	}
}

func TestRenderTableEmptyHeaders(t *testing.T) {
	if out := renderTable(nil, nil, nil); out != "" {
		t.Fatalf("renderTable with no headers = %q, want empty", out)
	}
}

func TestFormatAge(t *testing.T) {
	cases := []struct {
		d    time.Duration
		want string
	}{
		{30 * time.Second, "30s"},
		{5 * time.Minute, "5m"},
		{3 * time.Hour, "3h"},
		{49 * time.Hour, "2d"},
	}
	for _, tc := range cases {
		if got := formatAge(tc.d); got != tc.want {
			t.Fatalf("formatAge(%v) = %q, want %q", tc.d, got, tc.want)
		}
	}
}
