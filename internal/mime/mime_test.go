package mime

import (
	"strings"
	"testing"
)

func TestResolve(t *testing.T) {
	table := NewTable()

	tests := []struct {
		name string
		file string
		want string
	}{
		{"module script", "app.mjs", "application/javascript"},
		{"classic script", "main.js", "application/javascript"},
		{"nested script", "vendor/lib/chart.js", "application/javascript"},
		{"json document", "data.json", "application/json"},
		{"uppercase extension", "APP.MJS", "application/javascript"},
		{"no extension", "Makefile", "application/octet-stream"},
		{"dotted parent directory", "src/v2.0/README", "application/octet-stream"},
		{"unknown extension", "notes.weft", "application/octet-stream"},
		{"empty name", "", "application/octet-stream"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := table.Resolve(tt.file); got != tt.want {
				t.Errorf("Resolve(%q) = %q, want %q", tt.file, got, tt.want)
			}
		})
	}
}

func TestResolve_PlatformFallback(t *testing.T) {
	table := NewTable()

	// .html is not overridden, so it comes from the platform table.
	// Platforms differ on parameters, so only check the media type.
	got := table.Resolve("index.html")
	if !strings.HasPrefix(got, "text/html") {
		t.Errorf("Resolve(%q) = %q, want text/html prefix", "index.html", got)
	}
}

func TestResolve_OverridesWinOverPlatform(t *testing.T) {
	table := NewTable()

	// Many platform tables map .js to text/javascript. The override
	// must win regardless.
	if got := table.Resolve("app.js"); got != "application/javascript" {
		t.Errorf("Resolve(%q) = %q, want %q", "app.js", got, "application/javascript")
	}
}
