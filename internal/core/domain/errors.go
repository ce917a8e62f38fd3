package domain

import "go.trai.ch/zerr"

var (
	// ErrRequirementPairMismatch is returned when old/new requirement lists
	// cannot be paired positionally, either because their lengths differ or
	// because a pair is attributed to different files. This indicates the
	// upstream requirement ordering contract was violated.
	ErrRequirementPairMismatch = zerr.New("requirement lists cannot be paired")

	// ErrDuplicateFilePath is returned when a working set is built with two
	// files under the same path.
	ErrDuplicateFilePath = zerr.New("duplicate file path in working set")

	// ErrDeclarationNotFound is returned when no textual declaration for a
	// requirement can be located, or when a located declaration is absent
	// from its file's content at patch time.
	ErrDeclarationNotFound = zerr.New("requirement declaration not found")

	// ErrPatchUnchanged is returned when applying a patch leaves a file's
	// content byte-identical to its input. A patch operation must change
	// content; an unchanged result signals a locator/patch mismatch bug.
	ErrPatchUnchanged = zerr.New("patch left file content unchanged")

	// ErrNoFilesChanged is returned when an update run mutates no file at
	// all. Callers must not silently no-op.
	ErrNoFilesChanged = zerr.New("no files changed by update")

	// ErrGitReferenceNotFound is returned when the solver could not check
	// out the requested source-control reference of a git dependency.
	ErrGitReferenceNotFound = zerr.New("git reference not found")

	// ErrGitDependencyUnreachable is returned when the solver could not
	// clone a git dependency's URL.
	ErrGitDependencyUnreachable = zerr.New("git dependency unreachable")

	// ErrDependencyFileNotResolvable is returned when the project's own
	// requirements cannot be resolved, independent of any candidate update.
	ErrDependencyFileNotResolvable = zerr.New("dependency file not resolvable")

	// ErrRuntimeVersionIncompatible is returned when a candidate requirement
	// conflicts with the project's declared runtime version constraint.
	// This is a normal "no update possible" outcome, not a system fault.
	ErrRuntimeVersionIncompatible = zerr.New("candidate incompatible with runtime version constraint")

	// ErrSolverTimedOut is returned when the external solver exceeds its
	// configured deadline.
	ErrSolverTimedOut = zerr.New("solver timed out")

	// ErrLockEntryMissing is returned when a successful solve produces a
	// lock artifact without an entry for a direct dependency.
	ErrLockEntryMissing = zerr.New("direct dependency missing from lock artifact")

	// ErrManifestMissing is returned when the working set has no manifest
	// file to rewrite.
	ErrManifestMissing = zerr.New("manifest file missing from working set")

	// ErrRuntimeInstallFailed is returned when installing a required runtime
	// version into the sandbox environment fails.
	ErrRuntimeInstallFailed = zerr.New("failed to install runtime version")

	// ErrJobInvalid is returned when an update-job description fails
	// validation.
	ErrJobInvalid = zerr.New("invalid update job")
)
