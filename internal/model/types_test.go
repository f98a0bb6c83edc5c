package model

import "testing"

func TestParseState(t *testing.T) {
	tests := []struct {
		token string
		want  State
		ok    bool
	}{
		{"locked", Locked, true},
		{"unlocked", Unlocked, true},
		{"", Unlocked, false},
		{"LOCKED", Unlocked, false},
		{"garbage", Unlocked, false},
	}

	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			got, ok := ParseState(tt.token)
			if got != tt.want || ok != tt.ok {
				t.Errorf("ParseState(%q) = (%v, %v), want (%v, %v)", tt.token, got, ok, tt.want, tt.ok)
			}
		})
	}
}
