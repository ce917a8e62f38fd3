// Package declaration implements the declaration locator: it finds the
// literal substrings of the working set that encode a dependency's version
// requirement, resolving build-property indirection across files.
package declaration

import (
	"regexp"
	"strings"

	"go.trai.ch/relock/internal/core/domain"
	"go.trai.ch/relock/internal/core/ports"
)

// Finder implements ports.DeclarationFinder over textual manifest content.
//
// Three declaration shapes are recognized:
//
//   - key/value lines:      requests = "^2.31.0"   (also inline tables)
//   - quoted specifiers:    "requests>=2.31"       (PEP 508 style arrays)
//   - attribute elements:   <PackageReference Include="LibY" Version="3.1.0" />
//
// A declaration whose value references a property (${name} or $(name)) is
// resolved to the property assignment text in whichever file defines it, so
// the returned occurrences can live outside the requirement's declaring file.
type Finder struct{}

// New creates a declaration finder.
func New() *Finder {
	return &Finder{}
}

var _ ports.DeclarationFinder = (*Finder)(nil)

// propertyRefPattern matches ${name} and $(name) references inside a
// declaration candidate.
var propertyRefPattern = regexp.MustCompile(`\$\{([A-Za-z0-9_.-]+)\}|\$\(([A-Za-z0-9_.-]+)\)`)

// FindDeclarations returns every literal occurrence that declares the given
// requirement, across the full working set.
func (f *Finder) FindDeclarations(dep domain.Dependency, req domain.Requirement, files domain.FileSet) ([]domain.Declaration, error) {
	name := dep.Name.String()
	expr := req.Expression

	var decls []domain.Declaration
	seen := make(map[string]bool)
	add := func(file domain.InternedString, text string) {
		key := file.String() + "\x00" + text
		if seen[key] {
			return
		}
		seen[key] = true
		decls = append(decls, domain.Declaration{File: file, Text: text})
	}

	candidates := candidatePatterns(name)

	// Direct declarations: the same literal text may declare the dependency
	// in several files (shared-property manifests), so every file is scanned.
	for _, file := range files.Sorted() {
		for _, candidate := range matchCandidates(candidates, file.Content) {
			if strings.Contains(candidate, expr) {
				add(file.Path, candidate)
			}
		}
	}

	// Property indirection: a candidate in the declaring file may reference a
	// version symbolically. The assignment carrying the actual expression is
	// the declaration, wherever it is defined.
	declaring, ok := files.Get(req.File.String())
	if !ok {
		return decls, nil
	}
	for _, candidate := range matchCandidates(candidates, declaring.Content) {
		for _, prop := range propertyRefs(candidate) {
			assignments := assignmentPatterns(prop, expr)
			for _, file := range files.Sorted() {
				for _, text := range matchCandidates(assignments, file.Content) {
					add(file.Path, text)
				}
			}
		}
	}

	return decls, nil
}

// candidatePatterns builds the declaration-candidate regexes for one
// dependency name. Separator characters in the name are interchangeable and
// matching is case-insensitive, mirroring registry name normalization.
func candidatePatterns(name string) []*regexp.Regexp {
	n := namePattern(name)
	return []*regexp.Regexp{
		// TOML/INI key/value line, optionally quoted key, including inline tables.
		regexp.MustCompile(`(?mi)^[ \t]*"?` + n + `"?[ \t]*=[ \t]*[^\r\n]+`),
		// Quoted PEP 508 specifier: name, optional extras, then a version part.
		regexp.MustCompile(`(?i)"` + n + `(?:\[[^"\]]*\])?(?:[<>=!~ @][^"]*)?"`),
		// XML element addressing the package by an Include attribute.
		regexp.MustCompile(`(?i)<[^<>]*\bInclude="` + n + `"[^<>]*/?>`),
	}
}

// assignmentPatterns builds regexes matching a property assignment that
// carries exactly the requirement expression.
func assignmentPatterns(prop, expr string) []*regexp.Regexp {
	p := regexp.QuoteMeta(prop)
	e := regexp.QuoteMeta(expr)
	return []*regexp.Regexp{
		regexp.MustCompile(`(?m)"?` + p + `"?[ \t]*=[ \t]*["']` + e + `["']`),
		regexp.MustCompile(`<` + p + `>[ \t]*` + e + `[ \t]*</` + p + `>`),
	}
}

func matchCandidates(patterns []*regexp.Regexp, content string) []string {
	var out []string
	for _, re := range patterns {
		out = append(out, re.FindAllString(content, -1)...)
	}
	return out
}

func propertyRefs(candidate string) []string {
	var refs []string
	for _, m := range propertyRefPattern.FindAllStringSubmatch(candidate, -1) {
		if m[1] != "" {
			refs = append(refs, m[1])
		} else {
			refs = append(refs, m[2])
		}
	}
	return refs
}

// namePattern renders a package name as a regex fragment with the separator
// characters "-", "_" and "." treated as equivalent.
func namePattern(name string) string {
	var b strings.Builder
	for _, r := range name {
		switch r {
		case '-', '_', '.':
			b.WriteString(`[-_.]`)
		default:
			b.WriteString(regexp.QuoteMeta(string(r)))
		}
	}
	return b.String()
}
