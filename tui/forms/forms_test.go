package forms

import "testing"

func TestSessionFormResultValues(t *testing.T) {
	tests := []struct {
		name    string
		in      SessionFormResult
		min     float64
		max     float64
		frames  int
		wantErr bool
	}{
		{"seconds", SessionFormResult{"3", "10", "7"}, 3, 10, 7, false},
		{"clock", SessionFormResult{"0:03", "1:30", "10"}, 3, 90, 10, false},
		{"max below min", SessionFormResult{"10", "3", "7"}, 0, 0, 0, true},
		{"bad frames", SessionFormResult{"0", "10", "0"}, 0, 0, 0, true},
		{"bad duration", SessionFormResult{"x", "10", "7"}, 0, 0, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			min, max, frames, err := tt.in.Values()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Values() err = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if min != tt.min || max != tt.max || frames != tt.frames {
				t.Fatalf("Values() = %v, %v, %v; want %v, %v, %v", min, max, frames, tt.min, tt.max, tt.frames)
			}
		})
	}
}

func TestNewSessionFormResultRoundTrip(t *testing.T) {
	r := NewSessionFormResult(2.5, 12, 9)
	min, max, frames, err := r.Values()
	if err != nil {
		t.Fatalf("Values() failed: %v", err)
	}
	if min != 2.5 || max != 12 || frames != 9 {
		t.Fatalf("Values() = %v, %v, %v", min, max, frames)
	}
}
