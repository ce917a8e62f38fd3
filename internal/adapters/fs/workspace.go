// Package fs provides the sandbox workspace adapter.
package fs

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/google/uuid"
	"go.trai.ch/relock/internal/core/domain"
	"go.trai.ch/relock/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

const (
	dirPerm  = 0o750
	filePerm = 0o600
)

// Factory implements ports.WorkspaceFactory on the local filesystem. Every
// Create call gets a fresh uuid-named directory, so concurrent invocations
// never share a workspace.
type Factory struct {
	// baseDir is the parent of all workspaces; empty selects os.TempDir.
	baseDir string
}

// NewFactory creates a workspace factory rooted at baseDir.
func NewFactory(baseDir string) *Factory {
	return &Factory{baseDir: baseDir}
}

// Create materializes the files into a new temporary workspace. Files are
// written concurrently; on any failure the partially built workspace is
// removed before returning.
func (f *Factory) Create(ctx context.Context, files []domain.ManagedFile) (ports.Workspace, error) {
	base := f.baseDir
	if base == "" {
		base = os.TempDir()
	}

	root := filepath.Join(base, "relock-"+uuid.NewString())
	if err := os.MkdirAll(root, dirPerm); err != nil {
		return nil, zerr.Wrap(err, "failed to create workspace directory")
	}

	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	for _, file := range files {
		g.Go(func() error {
			target, err := securePath(root, file.Path.String())
			if err != nil {
				return err
			}
			if err := os.MkdirAll(filepath.Dir(target), dirPerm); err != nil {
				return zerr.Wrap(err, "failed to create workspace subdirectory")
			}
			if err := os.WriteFile(target, []byte(file.Content), filePerm); err != nil {
				return zerr.With(zerr.Wrap(err, "failed to materialize file"), "path", file.Path.String())
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		_ = os.RemoveAll(root)
		return nil, err
	}

	return &workspace{root: root}, nil
}

type workspace struct {
	root string
}

// Root returns the absolute path of the workspace directory.
func (w *workspace) Root() string {
	return w.root
}

// ReadFile reads a file relative to the workspace root.
func (w *workspace) ReadFile(name string) (string, error) {
	target, err := securePath(w.root, name)
	if err != nil {
		return "", err
	}
	data, err := os.ReadFile(target) //nolint:gosec // path is confined to the workspace
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, "failed to read workspace file"), "path", name)
	}
	return string(data), nil
}

// Close removes the workspace tree.
func (w *workspace) Close() error {
	if err := os.RemoveAll(w.root); err != nil {
		return zerr.Wrap(err, "failed to remove workspace")
	}
	return nil
}

// securePath resolves name inside root and rejects traversal outside it.
func securePath(root, name string) (string, error) {
	target := filepath.Join(root, filepath.FromSlash(name))
	if target != root && !strings.HasPrefix(target, root+string(filepath.Separator)) {
		return "", zerr.With(zerr.New("file path escapes workspace"), "path", name)
	}
	return target, nil
}
