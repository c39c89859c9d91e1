package models

import (
	"encoding/json"
	"testing"
)

func TestCentsString(t *testing.T) {
	tests := []struct {
		cents Cents
		want  string
	}{
		{0, "0.00"},
		{5, "0.05"},
		{1750, "17.50"},
		{3333, "33.33"},
		{-1230, "-12.30"},
		{100000, "1000.00"},
	}
	for _, tt := range tests {
		if got := tt.cents.String(); got != tt.want {
			t.Errorf("Cents(%d).String() = %q, want %q", tt.cents, got, tt.want)
		}
	}
}

func TestCentsFromFloat(t *testing.T) {
	tests := []struct {
		dollars float64
		want    Cents
	}{
		{50.00, 5000},
		{33.33, 3333},
		{0.005, 1},
		{-0.005, -1},
		{0, 0},
	}
	for _, tt := range tests {
		if got := CentsFromFloat(tt.dollars); got != tt.want {
			t.Errorf("CentsFromFloat(%v) = %d, want %d", tt.dollars, got, tt.want)
		}
	}
}

func TestCentsJSONRoundTrip(t *testing.T) {
	data, err := json.Marshal(Cents(1750))
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if string(data) != "17.50" {
		t.Errorf("marshal = %s, want 17.50", data)
	}

	var c Cents
	if err := json.Unmarshal(data, &c); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if c != 1750 {
		t.Errorf("round trip = %d, want 1750", c)
	}

	if err := json.Unmarshal([]byte(`"nope"`), &c); err == nil {
		t.Error("expected error for non-numeric amount")
	}
}
