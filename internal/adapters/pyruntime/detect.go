// Package pyruntime detects and provisions the Python interpreter a project
// expects before its solver runs.
package pyruntime

import (
	"strings"

	"github.com/BurntSushi/toml"
	"go.trai.ch/relock/internal/core/domain"
)

// Detect inspects the project files for a Python version pin. Sources are
// checked in priority order: the manifest's python constraint, then a
// .python-version file, then a Heroku style runtime.txt.
func (m *Manager) Detect(files domain.FileSet) (string, bool) {
	if manifest, ok := files.Get(m.manifestName); ok {
		if version, ok := manifestConstraint(manifest.Content); ok {
			return version, true
		}
	}
	if file, ok := files.Get(".python-version"); ok {
		if version := firstLine(file.Content); version != "" {
			return version, true
		}
	}
	if file, ok := files.Get("runtime.txt"); ok {
		version := strings.TrimPrefix(firstLine(file.Content), "python-")
		if version != "" {
			return version, true
		}
	}
	return "", false
}

type manifestSchema struct {
	Tool struct {
		Poetry struct {
			Dependencies map[string]any `toml:"dependencies"`
		} `toml:"poetry"`
	} `toml:"tool"`
}

// manifestConstraint extracts a concrete interpreter version from the
// manifest's python requirement. Range constraints yield their lower bound.
func manifestConstraint(content string) (string, bool) {
	var schema manifestSchema
	if _, err := toml.Decode(content, &schema); err != nil {
		return "", false
	}
	constraint, ok := schema.Tool.Poetry.Dependencies["python"].(string)
	if !ok {
		return "", false
	}
	return concreteVersion(constraint)
}

// concreteVersion reduces a version constraint to an installable version
// string, e.g. "^3.11" to "3.11" or ">=3.9,<3.12" to "3.9".
func concreteVersion(constraint string) (string, bool) {
	first, _, _ := strings.Cut(constraint, ",")
	version := strings.TrimLeft(strings.TrimSpace(first), "^~=<>! ")
	version = strings.TrimSuffix(version, ".*")
	if version == "" || version == "*" {
		return "", false
	}
	for _, r := range version {
		if (r < '0' || r > '9') && r != '.' {
			return "", false
		}
	}
	return version, true
}

func firstLine(content string) string {
	line, _, _ := strings.Cut(content, "\n")
	return strings.TrimSpace(line)
}
