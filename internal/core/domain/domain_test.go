package domain_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.trai.ch/relock/internal/core/domain"
	"go.trai.ch/zerr"
)

func TestNormalizeName(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "lowercases", in: "Requests", want: "requests"},
		{name: "underscore equals hyphen", in: "typing_extensions", want: "typing-extensions"},
		{name: "dot equals hyphen", in: "zope.interface", want: "zope-interface"},
		{name: "trims whitespace", in: "  flask ", want: "flask"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, domain.NormalizeName(tt.in))
		})
	}
}

func TestRequirement_Equal(t *testing.T) {
	a := domain.Requirement{
		File:       domain.NewInternedString("pyproject.toml"),
		Expression: "^2.31.0",
	}
	b := domain.Requirement{
		File:       domain.NewInternedString("other.toml"),
		Expression: "^2.31.0",
	}
	c := domain.Requirement{
		File:       domain.NewInternedString("pyproject.toml"),
		Expression: "^2.32.0",
	}

	// Only the expression decides equality; the file identity does not.
	require.True(t, a.Equal(b))
	require.False(t, a.Equal(c))
}

func TestNewFileSet_RejectsDuplicatePaths(t *testing.T) {
	_, err := domain.NewFileSet(
		domain.NewManagedFile("pyproject.toml", "a"),
		domain.NewManagedFile("pyproject.toml", "b"),
	)
	require.ErrorIs(t, err, domain.ErrDuplicateFilePath)

	var zErr *zerr.Error
	require.True(t, errors.As(err, &zErr))
	require.Equal(t, "pyproject.toml", zErr.Metadata()["path"])
}

func TestFileSet_CloneIsIndependent(t *testing.T) {
	set, err := domain.NewFileSet(domain.NewManagedFile("pyproject.toml", "original"))
	require.NoError(t, err)

	clone := set.Clone()
	clone.Replace(domain.NewManagedFile("pyproject.toml", "mutated"))

	original, ok := set.Get("pyproject.toml")
	require.True(t, ok)
	require.Equal(t, "original", original.Content)
}

func TestFileSet_SortedIsDeterministic(t *testing.T) {
	set, err := domain.NewFileSet(
		domain.NewManagedFile("b.toml", ""),
		domain.NewManagedFile("a.toml", ""),
		domain.NewManagedFile("c/d.toml", ""),
	)
	require.NoError(t, err)

	files := set.Sorted()
	require.Len(t, files, 3)
	require.Equal(t, "a.toml", files[0].Path.String())
	require.Equal(t, "b.toml", files[1].Path.String())
	require.Equal(t, "c/d.toml", files[2].Path.String())
}

func TestLockfile_Package(t *testing.T) {
	lock := domain.Lockfile{
		Packages: []domain.LockedPackage{
			{Name: "typing_extensions", Version: "4.12.2", Category: domain.CategoryMain},
			{Name: "pytest", Version: "8.3.1", Category: domain.CategoryDev},
		},
	}

	pkg, ok := lock.Package("Typing-Extensions")
	require.True(t, ok)
	require.Equal(t, "4.12.2", pkg.Version)

	_, ok = lock.Package("requests")
	require.False(t, ok)
}
