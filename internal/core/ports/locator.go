// Package ports defines the core interfaces for the application.
package ports

import (
	"go.trai.ch/relock/internal/core/domain"
)

// DeclarationFinder locates the literal substrings that constitute a
// requirement's textual declaration across the full working set.
//
// Declarations are not necessarily confined to the requirement's declaring
// file: a build-property mechanism can let one file declare a version string
// referenced symbolically from another. Implementations must resolve such
// indirection and return the declaration text as it actually appears,
// including in the indirection's source file.
//
//go:generate go run go.uber.org/mock/mockgen -source=locator.go -destination=mocks/mock_locator.go -package=mocks
type DeclarationFinder interface {
	// FindDeclarations returns every (file, text) occurrence that declares
	// the given requirement for the dependency. The returned slice may be
	// empty when no declaration exists.
	FindDeclarations(dep domain.Dependency, req domain.Requirement, files domain.FileSet) ([]domain.Declaration, error)
}
