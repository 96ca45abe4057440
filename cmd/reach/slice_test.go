package main

import "testing"

func TestPosition(t *testing.T) {
	tests := []struct {
		line, col string
		wantLine  int
		wantCol   int
		wantErr   bool
	}{
		{"12", "4", 12, 4, false},
		{"x", "4", 0, 0, true},
		{"12", "", 0, 0, true},
	}
	for _, tt := range tests {
		line, col, err := position(tt.line, tt.col)
		if (err != nil) != tt.wantErr {
			t.Errorf("position(%q, %q) err = %v", tt.line, tt.col, err)
			continue
		}
		if line != tt.wantLine || col != tt.wantCol {
			t.Errorf("position(%q, %q) = %d, %d", tt.line, tt.col, line, col)
		}
	}
}
