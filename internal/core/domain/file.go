package domain

import (
	"slices"

	"go.trai.ch/zerr"
)

// ManagedFile is an immutable snapshot of one project file. Mutation produces
// a new value via WithContent rather than editing in place.
type ManagedFile struct {
	Path    InternedString
	Content string
}

// NewManagedFile creates a ManagedFile for the given path and content.
func NewManagedFile(path, content string) ManagedFile {
	return ManagedFile{
		Path:    NewInternedString(path),
		Content: content,
	}
}

// WithContent returns a copy of the file carrying new content.
func (f ManagedFile) WithContent(content string) ManagedFile {
	return ManagedFile{
		Path:    f.Path,
		Content: content,
	}
}

// FileSet is a working set of project files keyed by path. Paths are unique;
// adding a file under an existing path replaces the previous snapshot.
type FileSet map[string]ManagedFile

// NewFileSet builds a FileSet from the given files.
// A duplicate path is a caller bug and fails with ErrDuplicateFilePath.
func NewFileSet(files ...ManagedFile) (FileSet, error) {
	set := make(FileSet, len(files))
	for _, f := range files {
		path := f.Path.String()
		if _, exists := set[path]; exists {
			return nil, zerr.With(zerr.Wrap(ErrDuplicateFilePath, "failed to build working set"), "path", path)
		}
		set[path] = f
	}
	return set, nil
}

// Get returns the file stored under path.
func (s FileSet) Get(path string) (ManagedFile, bool) {
	f, ok := s[path]
	return f, ok
}

// Replace stores f under its path, overwriting any previous snapshot.
func (s FileSet) Replace(f ManagedFile) {
	s[f.Path.String()] = f
}

// Clone returns an independent copy of the set. The ManagedFile values are
// immutable, so a shallow copy of the map is sufficient.
func (s FileSet) Clone() FileSet {
	clone := make(FileSet, len(s))
	for path, f := range s {
		clone[path] = f
	}
	return clone
}

// Sorted returns the files ordered by path. Callers that hand files to
// external consumers use this to keep output deterministic.
func (s FileSet) Sorted() []ManagedFile {
	paths := make([]string, 0, len(s))
	for path := range s {
		paths = append(paths, path)
	}
	slices.Sort(paths)

	files := make([]ManagedFile, 0, len(paths))
	for _, path := range paths {
		files = append(files, s[path])
	}
	return files
}

// Declaration is one literal occurrence of a requirement's textual
// declaration: the exact substring as it appears in a file, together with the
// file it appears in. The same text may occur in several files when a version
// is shared through a build property.
type Declaration struct {
	File InternedString
	Text string
}
