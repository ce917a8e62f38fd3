package domain

import "strings"

// Category describes which dependency group a requirement or locked package
// belongs to.
type Category string

const (
	// CategoryMain marks runtime (production) dependencies.
	CategoryMain Category = "main"

	// CategoryDev marks development-only dependencies.
	CategoryDev Category = "dev"
)

// Requirement is a single version-requirement declaration: the constraint
// expression together with the file it is declared in.
type Requirement struct {
	// File identifies the manifest file the requirement is attributed to.
	File InternedString

	// Expression is the version constraint exactly as written (e.g. "^2.31.0").
	Expression string

	// Group is the dependency category the requirement belongs to.
	// Empty is treated as CategoryMain.
	Group Category
}

// Equal reports whether two requirements carry the same constraint expression.
// Pairing between old and new requirement lists is positional; only the
// expression decides whether a pair changed.
func (r Requirement) Equal(other Requirement) bool {
	return r.Expression == other.Expression
}

// Dependency is a package whose requirement declarations are being updated.
// Requirements and PreviousRequirements are positionally paired: entry i of
// one list corresponds to entry i of the other, and both must be attributed
// to the same file. The upstream resolver that proposed the update guarantees
// this parity; a violation is a contract failure, never a silent skip.
type Dependency struct {
	Name                 InternedString
	Requirements         []Requirement
	PreviousRequirements []Requirement
}

// NormalizeName canonicalizes a package name for identity comparison.
// Case is folded and the separator characters "_" and "." are mapped to "-",
// matching common registry semantics.
func NormalizeName(name string) string {
	lower := strings.ToLower(strings.TrimSpace(name))
	return strings.NewReplacer("_", "-", ".", "-").Replace(lower)
}
