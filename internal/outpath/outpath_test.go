package outpath

import "testing"

func TestNewFilePath(t *testing.T) {
	tests := []struct {
		fileName string
		prefix   string
		want     string
	}{
		{"site.css", "-min", "site-min.css"},
		{"/srv/www/index.html", ".min", "/srv/www/index.min.html"},
		{"Makefile", "-min", "Makefile-min"},
		{"archive.tar.json", "-min", "archive.tar-min.json"},
		{"app.js", "", "app-min.js"},
		{"dir.v2/readme", "-min", "dir.v2/readme-min"},
	}
	for _, tt := range tests {
		if got := NewFilePath(tt.fileName, tt.prefix); got != tt.want {
			t.Errorf("NewFilePath(%q, %q) = %q, want %q", tt.fileName, tt.prefix, got, tt.want)
		}
	}
}

func TestIsMinified(t *testing.T) {
	tests := []struct {
		fileName string
		prefix   string
		want     bool
	}{
		{"site-min.css", "-min", true},
		{"site.css", "-min", false},
		{"index.min.html", ".min", true},
		{"app-min.js", "", true},
		{"Makefile-min", "-min", true},
	}
	for _, tt := range tests {
		if got := IsMinified(tt.fileName, tt.prefix); got != tt.want {
			t.Errorf("IsMinified(%q, %q) = %v, want %v", tt.fileName, tt.prefix, got, tt.want)
		}
	}
}
