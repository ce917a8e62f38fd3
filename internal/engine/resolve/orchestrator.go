// Package resolve implements the resolution-orchestration engine: it drives
// an external dependency solver inside a sandboxed copy of the project and
// interprets its results and failures.
package resolve

import (
	"context"
	"errors"
	"sync"

	"go.trai.ch/relock/internal/core/domain"
	"go.trai.ch/relock/internal/core/ports"
	"go.trai.ch/zerr"
)

const (
	// DefaultManifestName is the manifest file the rewriter targets.
	DefaultManifestName = "pyproject.toml"

	// DefaultLockfileName is the artifact the solver writes on success.
	DefaultLockfileName = "poetry.lock"

	// DefaultSolverCommand runs the solver in lock-only mode: it resolves
	// the dependency graph without install side effects.
	DefaultSolverCommand = "poetry lock --no-update"
)

// originalMemoKey indexes the original-requirements resolvability check in
// the memo map. Candidate requirement strings are prefixed so they can never
// collide with it.
const originalMemoKey = "\x00original"

// Options configure one orchestrator, scoped to a single dependency within a
// single project snapshot.
type Options struct {
	Files       domain.FileSet
	Dependency  domain.Dependency
	Credentials []domain.Credential

	// ManifestName, LockfileName and SolverCommand default to the poetry
	// conventions when empty.
	ManifestName  string
	LockfileName  string
	SolverCommand string
}

// Orchestrator answers "what version would the solver settle on if the
// target dependency's requirement were changed to this candidate?".
//
// Results are memoized per candidate requirement string: repeated queries
// never re-invoke the solver. The memo is safe for concurrent readers; each
// orchestrator instance is scoped to one invocation context, never ambient
// process state.
type Orchestrator struct {
	opts       Options
	lock       domain.Lockfile
	workspaces ports.WorkspaceFactory
	runtime    ports.RuntimeManager
	runner     ports.CommandRunner
	logger     ports.Logger
	classifier *Classifier

	mu   sync.Mutex
	memo map[string]memoEntry
}

type memoEntry struct {
	version string
	err     error
}

// NewOrchestrator creates an orchestrator for one dependency. The project's
// existing lock artifact, when present in the working set, supplies the
// versions used to freeze sibling dependencies.
func NewOrchestrator(
	opts Options,
	workspaces ports.WorkspaceFactory,
	runtime ports.RuntimeManager,
	runner ports.CommandRunner,
	logger ports.Logger,
) (*Orchestrator, error) {
	if opts.ManifestName == "" {
		opts.ManifestName = DefaultManifestName
	}
	if opts.LockfileName == "" {
		opts.LockfileName = DefaultLockfileName
	}
	if opts.SolverCommand == "" {
		opts.SolverCommand = DefaultSolverCommand
	}

	var lock domain.Lockfile
	if lockFile, ok := opts.Files.Get(opts.LockfileName); ok {
		parsed, err := ParseLockfile(lockFile.Content)
		if err != nil {
			return nil, err
		}
		lock = parsed
	}

	return &Orchestrator{
		opts:       opts,
		lock:       lock,
		workspaces: workspaces,
		runtime:    runtime,
		runner:     runner,
		logger:     logger,
		classifier: NewClassifier(),
		memo:       make(map[string]memoEntry),
	}, nil
}

// ResolveVersion returns the exact version the solver settles on for the
// target dependency under the candidate requirement. An empty candidate
// keeps the manifest's existing requirement, which probes the latest
// resolvable version. An empty result with nil error means the solve
// succeeded but dropped the (transitive) dependency.
func (o *Orchestrator) ResolveVersion(ctx context.Context, candidate string) (string, error) {
	key := "candidate\x00" + candidate

	o.mu.Lock()
	if entry, ok := o.memo[key]; ok {
		o.mu.Unlock()
		return entry.version, entry.err
	}
	o.mu.Unlock()

	version, err := o.resolveCandidate(ctx, candidate)

	o.mu.Lock()
	o.memo[key] = memoEntry{version: version, err: err}
	o.mu.Unlock()
	return version, err
}

func (o *Orchestrator) resolveCandidate(ctx context.Context, candidate string) (string, error) {
	output, lockContent, err := o.solve(ctx, candidate, true)
	if err != nil {
		return "", o.classifier.Classify(ctx, output, err, o.originalResolvable)
	}

	locked, err := ParseLockfile(lockContent)
	if err != nil {
		return "", err
	}

	name := o.opts.Dependency.Name.String()
	pkg, ok := locked.Package(name)
	if !ok {
		if o.isDirect() {
			err := zerr.Wrap(domain.ErrLockEntryMissing, "direct dependency absent from solved lock")
			err = zerr.With(err, "dependency", name)
			return "", zerr.With(err, "candidate", candidate)
		}
		return "", nil
	}

	o.logger.Info("resolved " + name + " to " + pkg.Version)
	return pkg.Version, nil
}

// originalResolvable re-resolves the project's unmodified requirements: no
// candidate, no sibling freezing. The result is memoized so the fallback
// check runs the solver at most once per orchestrator. A re-run that fails
// for a reason of its own (git fetch failure, timeout) keeps that
// classification so the classifier does not blame the dependency file.
func (o *Orchestrator) originalResolvable(ctx context.Context) error {
	o.mu.Lock()
	if entry, ok := o.memo[originalMemoKey]; ok {
		o.mu.Unlock()
		return entry.err
	}
	o.mu.Unlock()

	output, _, err := o.solve(ctx, "", false)
	if err != nil && !errors.Is(err, domain.ErrSolverTimedOut) {
		if gitErr := classifyGit(output); gitErr != nil {
			err = gitErr
		} else {
			err = zerr.With(zerr.Wrap(err, "original requirements not resolvable"),
				"output", domain.RedactURLs(failureSummary(output)))
		}
	}

	o.mu.Lock()
	o.memo[originalMemoKey] = memoEntry{err: err}
	o.mu.Unlock()
	return err
}

// solve materializes a sandbox with the rewritten manifest, runs the solver
// and returns its combined output plus the produced lock artifact.
func (o *Orchestrator) solve(ctx context.Context, candidate string, freeze bool) (output, lockContent string, err error) {
	manifest, ok := o.opts.Files.Get(o.opts.ManifestName)
	if !ok {
		return "", "", zerr.With(zerr.Wrap(domain.ErrManifestMissing, "working set has no manifest"),
			"manifest", o.opts.ManifestName)
	}

	rewritten, err := Rewrite(manifest.Content, RewriteInput{
		DependencyName: o.opts.Dependency.Name.String(),
		Candidate:      candidate,
		Lockfile:       o.lock,
		Credentials:    o.opts.Credentials,
		FreezeSiblings: freeze,
	})
	if err != nil {
		return "", "", err
	}

	sandboxFiles := o.opts.Files.Clone()
	sandboxFiles.Replace(manifest.WithContent(rewritten))

	ws, err := o.workspaces.Create(ctx, sandboxFiles.Sorted())
	if err != nil {
		return "", "", zerr.Wrap(err, "failed to create sandbox workspace")
	}
	defer func() {
		if closeErr := ws.Close(); closeErr != nil {
			o.logger.Error(zerr.Wrap(closeErr, "failed to clean up sandbox workspace"))
		}
	}()

	var env []string
	if version, ok := o.runtime.Detect(o.opts.Files); ok {
		env, err = o.runtime.Ensure(ctx, version)
		if err != nil {
			return "", "", zerr.Wrap(err, "failed to prepare runtime version")
		}
	}

	output, err = o.runner.Run(ctx, ws.Root(), env, o.opts.SolverCommand)
	if err != nil {
		return output, "", err
	}

	lockContent, err = ws.ReadFile(o.opts.LockfileName)
	if err != nil {
		return output, "", zerr.Wrap(err, "solver succeeded but produced no lock artifact")
	}
	return output, lockContent, nil
}

// isDirect reports whether the target dependency is declared directly in the
// manifest, as opposed to appearing only transitively in the lock artifact.
func (o *Orchestrator) isDirect() bool {
	for _, r := range o.opts.Dependency.Requirements {
		if r.File.String() == o.opts.ManifestName {
			return true
		}
	}
	for _, r := range o.opts.Dependency.PreviousRequirements {
		if r.File.String() == o.opts.ManifestName {
			return true
		}
	}
	return false
}
