// Package update implements the manifest patch-computation engine: it diffs a
// dependency's old and new requirement lists and rewrites the exact textual
// declarations in the working set, leaving every other byte untouched.
package update

import (
	"sync"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/relock/internal/core/domain"
	"go.trai.ch/relock/internal/core/ports"
	"go.trai.ch/zerr"
)

// Engine drives the declaration finder and the patch applier for a set of
// dependencies. Declaration lookups are cached per (dependency, requirement)
// pair for the lifetime of the Engine, since multiple requirement pairs can
// reference the same declaration. The cache is safe for concurrent reads and
// is never invalidated mid-run.
type Engine struct {
	finder ports.DeclarationFinder

	mu    sync.RWMutex
	cache map[uint64][]domain.Declaration
}

// NewEngine creates an update engine backed by the given declaration finder.
func NewEngine(finder ports.DeclarationFinder) *Engine {
	return &Engine{
		finder: finder,
		cache:  make(map[uint64][]domain.Declaration),
	}
}

// UpdateFiles applies every changed requirement of every dependency to the
// working set and returns the files whose content actually changed, ordered
// by path, each with full new content.
//
// Requirement lists are paired positionally; a pair whose file identities
// disagree fails with domain.ErrRequirementPairMismatch before any patch is
// applied. Pairs with equal expressions are skipped without a declaration
// lookup. An invocation that changes nothing fails with
// domain.ErrNoFilesChanged: callers must not silently no-op.
func (e *Engine) UpdateFiles(deps []domain.Dependency, files domain.FileSet) ([]domain.ManagedFile, error) {
	work := files.Clone()

	for _, dep := range deps {
		if err := e.updateDependency(dep, work); err != nil {
			return nil, err
		}
	}

	var changed []domain.ManagedFile
	for _, f := range work.Sorted() {
		original, ok := files.Get(f.Path.String())
		if ok && original.Content == f.Content {
			continue
		}
		changed = append(changed, f)
	}

	if len(changed) == 0 {
		return nil, domain.ErrNoFilesChanged
	}
	return changed, nil
}

func (e *Engine) updateDependency(dep domain.Dependency, work domain.FileSet) error {
	if len(dep.Requirements) != len(dep.PreviousRequirements) {
		err := zerr.Wrap(domain.ErrRequirementPairMismatch, "requirement list lengths differ")
		err = zerr.With(err, "dependency", dep.Name.String())
		err = zerr.With(err, "previous", len(dep.PreviousRequirements))
		return zerr.With(err, "current", len(dep.Requirements))
	}

	// Validate every pair before touching any file, so a pairing violation
	// never leaves the working set half-patched.
	for i, old := range dep.PreviousRequirements {
		updated := dep.Requirements[i]
		if old.File != updated.File {
			err := zerr.Wrap(domain.ErrRequirementPairMismatch, "paired requirements name different files")
			err = zerr.With(err, "dependency", dep.Name.String())
			err = zerr.With(err, "previous_file", old.File.String())
			return zerr.With(err, "current_file", updated.File.String())
		}
	}

	for i, old := range dep.PreviousRequirements {
		updated := dep.Requirements[i]
		if old.Equal(updated) {
			continue
		}

		decls, err := e.declarations(dep, old, work)
		if err != nil {
			return err
		}
		if len(decls) == 0 {
			err := zerr.Wrap(domain.ErrDeclarationNotFound, "locator found no declarations")
			err = zerr.With(err, "dependency", dep.Name.String())
			err = zerr.With(err, "file", old.File.String())
			return zerr.With(err, "expression", old.Expression)
		}

		for path, fileDecls := range groupByFile(decls) {
			target, ok := work.Get(path)
			if !ok {
				err := zerr.Wrap(domain.ErrDeclarationNotFound, "declaration file absent from working set")
				err = zerr.With(err, "dependency", dep.Name.String())
				return zerr.With(err, "file", path)
			}

			patched, err := patchFile(target, fileDecls, old.Expression, updated.Expression)
			if err != nil {
				return zerr.With(err, "dependency", dep.Name.String())
			}
			work.Replace(patched)
		}
	}
	return nil
}

// declarations resolves the declaration set for one (dependency, requirement)
// pair, consulting the run-scoped cache first.
func (e *Engine) declarations(dep domain.Dependency, req domain.Requirement, files domain.FileSet) ([]domain.Declaration, error) {
	key := cacheKey(dep, req)

	e.mu.RLock()
	cached, ok := e.cache[key]
	e.mu.RUnlock()
	if ok {
		return cached, nil
	}

	decls, err := e.finder.FindDeclarations(dep, req, files)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to locate requirement declarations")
	}

	e.mu.Lock()
	e.cache[key] = decls
	e.mu.Unlock()
	return decls, nil
}

func cacheKey(dep domain.Dependency, req domain.Requirement) uint64 {
	h := xxhash.New()
	_, _ = h.WriteString(dep.Name.String())
	_, _ = h.WriteString("\x00")
	_, _ = h.WriteString(req.File.String())
	_, _ = h.WriteString("\x00")
	_, _ = h.WriteString(req.Expression)
	return h.Sum64()
}

func groupByFile(decls []domain.Declaration) map[string][]domain.Declaration {
	grouped := make(map[string][]domain.Declaration)
	for _, d := range decls {
		path := d.File.String()
		grouped[path] = append(grouped[path], d)
	}
	return grouped
}
