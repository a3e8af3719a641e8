package cli

import "testing"

func TestTruncate(t *testing.T) {
	tests := []struct {
		name string
		in   string
		max  int
		want string
	}{
		{"shorter than max", "Reduce build times", 50, "Reduce build times"},
		{"exactly max", "abcde", 5, "abcde"},
		{"cuts on word boundary", "alpha beta gamma delta", 10, "alpha beta..."},
		{"no boundary falls back to hard cut", "abcdefghijklmnop", 5, "abcde..."},
		{"leading word longer than max", "supercalifragilistic word", 10, "supercalif..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := truncate(tt.in, tt.max); got != tt.want {
				t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.max, got, tt.want)
			}
		})
	}
}

func TestObjectiveLink(t *testing.T) {
	got := objectiveLink("https://my.15five.com", 7654321)
	want := "https://my.15five.com/objectives/details/7654321/"
	if got != want {
		t.Errorf("objectiveLink = %q, want %q", got, want)
	}
}
