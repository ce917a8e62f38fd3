package resolve

import (
	"context"
	"errors"
	"net/url"
	"path"
	"regexp"
	"strings"

	"go.trai.ch/relock/internal/core/domain"
	"go.trai.ch/zerr"
)

// Classifier maps raw solver failure text to the structured error taxonomy.
// Generic solve failures are not immediately blamed on the candidate: the
// originalCheck callback re-resolves the project's unmodified requirements
// exactly once to distinguish a pre-existing unresolvable project from a
// candidate that broke resolution.
type Classifier struct{}

// NewClassifier creates a solver failure classifier.
func NewClassifier() *Classifier {
	return &Classifier{}
}

var (
	// gitRefPattern matches "could not check out the requested reference"
	// failures, capturing the reference and the repository URL.
	gitRefPattern = regexp.MustCompile(`(?m)Failed to checkout (\S+) (\S+?)\.?$`)

	// gitClonePattern matches "could not clone" failures, capturing the
	// unreachable URL.
	gitClonePattern = regexp.MustCompile(`(?m)Failed to clone (\S+?)\.?$`)

	// solveFailurePattern matches generic resolution failures that may or
	// may not be caused by the candidate.
	solveFailurePattern = regexp.MustCompile(
		`SolverProblemError|version solving failed|Unable to find installation candidates|` +
			`No matching distribution found|Package \S+ \(\S+\) not found`)

	// runtimeConstraintPattern matches failures caused by the candidate
	// conflicting with the project's declared runtime version constraint.
	runtimeConstraintPattern = regexp.MustCompile(
		`requires Python (\S+?),?\s|The current project's Python requirement|python version .* is not allowed`)
)

// Classify turns a failed solver invocation into a structured error.
// The timeout sentinel passes through untouched; anything that matches no
// known pattern is re-raised unclassified, never silently absorbed.
func (c *Classifier) Classify(ctx context.Context, output string, runErr error, originalCheck func(context.Context) error) error {
	if errors.Is(runErr, domain.ErrSolverTimedOut) {
		return runErr
	}

	if gitErr := classifyGit(output); gitErr != nil {
		return gitErr
	}

	if solveFailurePattern.MatchString(output) {
		if origErr := originalCheck(ctx); origErr != nil {
			// A re-run that failed for its own reason (unreachable git
			// dependency, timeout) keeps that classification.
			if errors.Is(origErr, domain.ErrGitReferenceNotFound) ||
				errors.Is(origErr, domain.ErrGitDependencyUnreachable) ||
				errors.Is(origErr, domain.ErrSolverTimedOut) {
				return origErr
			}

			// The project was already unresolvable before the candidate.
			err := zerr.Wrap(domain.ErrDependencyFileNotResolvable, "original requirements also fail to resolve")
			return zerr.With(err, "message", domain.RedactURLs(failureSummary(output)))
		}

		if m := runtimeConstraintPattern.FindStringSubmatch(output); m != nil {
			err := zerr.Wrap(domain.ErrRuntimeVersionIncompatible, "candidate conflicts with the runtime constraint")
			if m[1] != "" {
				err = zerr.With(err, "required_runtime", m[1])
			}
			return err
		}
	}

	unclassified := zerr.Wrap(runErr, "solver failed with unclassified error")
	return zerr.With(unclassified, "output", domain.RedactURLs(failureSummary(output)))
}

// classifyGit recognizes git fetch failures in solver output. It returns nil
// when the output carries no known git failure.
func classifyGit(output string) error {
	if m := gitRefPattern.FindStringSubmatch(output); m != nil {
		err := zerr.Wrap(domain.ErrGitReferenceNotFound, "git reference could not be checked out")
		err = zerr.With(err, "dependency", repoName(m[2]))
		return zerr.With(err, "reference", m[1])
	}

	if m := gitClonePattern.FindStringSubmatch(output); m != nil {
		err := zerr.Wrap(domain.ErrGitDependencyUnreachable, "git repository could not be cloned")
		return zerr.With(err, "url", stripUserInfo(m[1]))
	}
	return nil
}

// repoName derives a dependency name from a git URL.
func repoName(rawURL string) string {
	return strings.TrimSuffix(path.Base(strings.TrimSuffix(rawURL, "/")), ".git")
}

// stripUserInfo removes embedded credentials from a URL, keeping the rest of
// the location intact so the caller can act on it.
func stripUserInfo(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return domain.RedactURLs(rawURL)
	}
	u.User = nil
	return u.String()
}

// failureSummary trims solver output to its informative tail; solver logs
// lead with progress noise.
func failureSummary(output string) string {
	const maxLines = 15
	lines := strings.Split(strings.TrimSpace(output), "\n")
	if len(lines) > maxLines {
		lines = lines[len(lines)-maxLines:]
	}
	return strings.Join(lines, "\n")
}
