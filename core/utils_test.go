package core

import "testing"

func TestCleanString(t *testing.T) {
	tests := []struct {
		in    string
		lower bool
		want  string
	}{
		{"  demo  ", false, "demo"},
		{"\tS1234567A\n", false, "S1234567A"},
		{"  DEMO  ", true, "demo"},
		{"", false, ""},
	}
	for _, tt := range tests {
		if got := CleanString(tt.in, tt.lower); got != tt.want {
			t.Errorf("CleanString(%q, %v) = %q; want %q", tt.in, tt.lower, got, tt.want)
		}
	}
}
