package specs

import (
	"embed"
	"os"
	"path/filepath"
	"strings"
)

//go:embed *.yaml
var SpecsFS embed.FS

// Load reads a spec file, preferring a copy on disk under specs/ over the
// embedded default.
func Load(name string) ([]byte, error) {
	clean := cleanSpecPath(name)
	if data, err := os.ReadFile(diskSpecPath(clean)); err == nil {
		return data, nil
	}
	return SpecsFS.ReadFile(clean)
}

func cleanSpecPath(path string) string {
	if path == "" {
		return ""
	}
	s := filepath.ToSlash(path)
	if strings.HasPrefix(s, "specs/") {
		return strings.TrimPrefix(s, "specs/")
	}
	return s
}

func diskSpecPath(clean string) string {
	return filepath.Join("specs", filepath.FromSlash(clean))
}
