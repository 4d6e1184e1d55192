package textutil

import "testing"

func TestParseFolderName(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantTitle string
		wantYear  int
	}{
		{"title with year", "Inception (2010)", "Inception", 2010},
		{"bracketed year", "Inception [2010]", "Inception", 2010},
		{"no year", "Inception", "Inception", 0},
		{"dotted separator", "Blade.Runner.2049.(2017)", "Blade.Runner.2049", 2017},
		{"year out of range", "Room 101 (0042)", "Room 101 (0042)", 0},
		{"year in title only", "2001 A Space Odyssey", "2001 A Space Odyssey", 0},
		{"empty", "  ", "", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			title, year := ParseFolderName(tt.input)
			if title != tt.wantTitle || year != tt.wantYear {
				t.Errorf("ParseFolderName(%q) = (%q, %d), want (%q, %d)",
					tt.input, title, year, tt.wantTitle, tt.wantYear)
			}
		})
	}
}

func TestDeriveTitle(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain folder", "/movies/Inception (2010)", "Inception"},
		{"underscored", "/movies/the_thin_red_line", "The Thin Red Line"},
		{"dotted release name", "/downloads/blade.runner.2049.(2017)", "Blade Runner 2049"},
		{"file with extension", "/downloads/heat.mkv", "Heat"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DeriveTitle(tt.input); got != tt.want {
				t.Errorf("DeriveTitle(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
