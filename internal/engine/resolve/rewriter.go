package resolve

import (
	"bytes"
	"net/url"
	"regexp"
	"strings"

	"github.com/BurntSushi/toml"
	"go.trai.ch/relock/internal/core/domain"
	"go.trai.ch/zerr"
)

// RewriteInput configures one manifest rewrite for sandboxing.
type RewriteInput struct {
	// DependencyName is the target dependency, the one free variable of the
	// solve.
	DependencyName string

	// Candidate is the requirement to place on the target dependency.
	// Empty leaves the manifest's existing requirement untouched.
	Candidate string

	// Lockfile supplies the exact versions used to freeze sibling
	// dependencies, and the category for inserting a transitive dependency.
	Lockfile domain.Lockfile

	// Credentials are injected as private registry sources.
	Credentials []domain.Credential

	// FreezeSiblings pins every other top-level dependency to its locked
	// version. Disabled when checking original-requirement resolvability.
	FreezeSiblings bool
}

// placeholderPattern matches unresolved templating placeholders ({{ name }})
// that the solver cannot parse.
var placeholderPattern = regexp.MustCompile(`\{\{\s*([^{}]*?)\s*\}\}`)

// Rewrite produces the replacement manifest content fed to the sandbox.
// The pipeline order is fixed: sanitize placeholders, inject registry
// sources, freeze siblings, then set or insert the candidate requirement.
// The output is structurally re-encoded; byte-exact formatting only matters
// for on-disk patches, never for sandbox input.
func Rewrite(manifest string, in RewriteInput) (string, error) {
	sanitized := sanitizePlaceholders(manifest)

	var doc map[string]any
	if _, err := toml.Decode(sanitized, &doc); err != nil {
		return "", zerr.Wrap(err, "failed to parse manifest for rewriting")
	}

	project, err := projectTable(doc)
	if err != nil {
		return "", err
	}

	injectSources(project, in.Credentials)

	if in.FreezeSiblings {
		freezeSiblings(project, in.DependencyName, in.Lockfile)
	}

	if in.Candidate != "" {
		setCandidate(project, in.DependencyName, in.Candidate, in.Lockfile)
	}

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(doc); err != nil {
		return "", zerr.Wrap(err, "failed to encode rewritten manifest")
	}
	return buf.String(), nil
}

// sanitizePlaceholders turns templating placeholders into syntactically
// valid literals so the solver can parse the manifest.
func sanitizePlaceholders(manifest string) string {
	return placeholderPattern.ReplaceAllStringFunc(manifest, func(m string) string {
		inner := placeholderPattern.FindStringSubmatch(m)[1]
		var b strings.Builder
		for _, r := range inner {
			switch {
			case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9',
				r == '_', r == '.', r == '-':
				b.WriteRune(r)
			default:
				b.WriteRune('-')
			}
		}
		if b.Len() == 0 {
			return "sanitized"
		}
		return b.String()
	})
}

func projectTable(doc map[string]any) (map[string]any, error) {
	tool, ok := doc["tool"].(map[string]any)
	if !ok {
		return nil, zerr.Wrap(domain.ErrManifestMissing, "manifest has no tool table")
	}
	project, ok := tool["poetry"].(map[string]any)
	if !ok {
		return nil, zerr.Wrap(domain.ErrManifestMissing, "manifest has no tool.poetry table")
	}
	return project, nil
}

// injectSources appends a source declaration per credential so the solver
// can authenticate against private registries.
func injectSources(project map[string]any, creds []domain.Credential) {
	if len(creds) == 0 {
		return
	}

	sources, _ := project["source"].([]map[string]any)
	for _, cred := range creds {
		registry := cred.RegistryURL
		name := "relock-source"
		if u, err := url.Parse(cred.RegistryURL); err == nil && u.Host != "" {
			name = u.Host
			if cred.Username != "" {
				u.User = url.UserPassword(cred.Username, cred.Password)
				registry = u.String()
			}
		}
		sources = append(sources, map[string]any{
			"name":     name,
			"url":      registry,
			"priority": "supplemental",
		})
	}
	project["source"] = sources
}

// freezeSiblings pins every top-level dependency other than the target to
// its currently locked exact version, leaving the target as the single free
// variable of the solve. Entries without a registry-style string or version
// field (git, path) and entries absent from the lockfile stay untouched.
func freezeSiblings(project map[string]any, target string, lock domain.Lockfile) {
	normalized := domain.NormalizeName(target)
	for _, table := range dependencyTables(project) {
		for name, value := range table {
			if name == "python" || domain.NormalizeName(name) == normalized {
				continue
			}
			locked, ok := lock.Package(name)
			if !ok {
				continue
			}
			switch v := value.(type) {
			case string:
				table[name] = locked.Version
			case map[string]any:
				if _, has := v["version"]; has {
					v["version"] = locked.Version
				}
			}
		}
	}
}

// setCandidate places the candidate requirement on the target dependency's
// existing entry, or inserts a new entry in the category the lockfile
// records for it when the dependency is not yet declared directly.
func setCandidate(project map[string]any, target, candidate string, lock domain.Lockfile) {
	normalized := domain.NormalizeName(target)
	for _, table := range dependencyTables(project) {
		for name, value := range table {
			if domain.NormalizeName(name) != normalized {
				continue
			}
			switch v := value.(type) {
			case map[string]any:
				v["version"] = candidate
			default:
				table[name] = candidate
			}
			return
		}
	}

	// Transitive dependency: promote it to a direct entry in its category.
	category := domain.CategoryMain
	if locked, ok := lock.Package(target); ok {
		category = locked.Category
	}
	insertTable(project, category)[target] = candidate
}

// dependencyTables returns every top-level dependency table of the manifest:
// the runtime table, the legacy dev table and any group tables.
func dependencyTables(project map[string]any) []map[string]any {
	var tables []map[string]any
	if deps, ok := project["dependencies"].(map[string]any); ok {
		tables = append(tables, deps)
	}
	if deps, ok := project["dev-dependencies"].(map[string]any); ok {
		tables = append(tables, deps)
	}
	if groups, ok := project["group"].(map[string]any); ok {
		for _, group := range groups {
			if g, ok := group.(map[string]any); ok {
				if deps, ok := g["dependencies"].(map[string]any); ok {
					tables = append(tables, deps)
				}
			}
		}
	}
	return tables
}

func insertTable(project map[string]any, category domain.Category) map[string]any {
	key := "dependencies"
	if category == domain.CategoryDev {
		key = "dev-dependencies"
		if groups, ok := project["group"].(map[string]any); ok {
			if g, ok := groups["dev"].(map[string]any); ok {
				if deps, ok := g["dependencies"].(map[string]any); ok {
					return deps
				}
			}
		}
	}
	deps, ok := project[key].(map[string]any)
	if !ok {
		deps = make(map[string]any)
		project[key] = deps
	}
	return deps
}
