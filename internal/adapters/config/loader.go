// Package config provides the update-job loader for relock.
package config

import (
	"os"
	"path/filepath"

	"go.trai.ch/relock/internal/core/domain"
	"go.trai.ch/relock/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// FileJobLoader implements ports.JobLoader using a YAML job file. Project
// files named in the job are read relative to the job file's directory.
type FileJobLoader struct{}

// Load reads the job description at path and the project files it names.
func (l *FileJobLoader) Load(path string) (*ports.UpdateJob, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is provided by user
	if err != nil {
		return nil, zerr.Wrap(err, "failed to read job file")
	}

	var jobfile Jobfile
	if err := yaml.Unmarshal(data, &jobfile); err != nil {
		return nil, zerr.Wrap(err, "failed to parse job file")
	}

	if err := validate(jobfile); err != nil {
		return nil, err
	}

	root := filepath.Dir(path)
	files := make([]domain.ManagedFile, 0, len(jobfile.Files))
	for _, name := range jobfile.Files {
		content, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(name))) //nolint:gosec // paths come from the job file
		if err != nil {
			return nil, zerr.With(zerr.Wrap(err, "failed to read project file"), "file", name)
		}
		files = append(files, domain.NewManagedFile(name, string(content)))
	}

	fileSet, err := domain.NewFileSet(files...)
	if err != nil {
		return nil, err
	}

	return &ports.UpdateJob{
		Files:         fileSet,
		Dependency:    dependency(jobfile.Dependency),
		Credentials:   credentials(jobfile.Credentials),
		SolverCommand: jobfile.SolverCommand,
	}, nil
}

func validate(jobfile Jobfile) error {
	if jobfile.Dependency.Name == "" {
		return zerr.Wrap(domain.ErrJobInvalid, "dependency name is required")
	}
	if len(jobfile.Files) == 0 {
		return zerr.Wrap(domain.ErrJobInvalid, "at least one project file is required")
	}
	if len(jobfile.Dependency.Requirements) != len(jobfile.Dependency.PreviousRequirements) {
		return zerr.Wrap(domain.ErrJobInvalid, "requirements and previousRequirements must pair up")
	}
	for _, req := range append(jobfile.Dependency.Requirements, jobfile.Dependency.PreviousRequirements...) {
		switch req.Group {
		case "", string(domain.CategoryMain), string(domain.CategoryDev):
		default:
			return zerr.With(zerr.Wrap(domain.ErrJobInvalid, "unknown requirement group"), "group", req.Group)
		}
	}
	return nil
}

func dependency(dto DependencyDTO) domain.Dependency {
	return domain.Dependency{
		Name:                 domain.NewInternedString(dto.Name),
		Requirements:         requirements(dto.Requirements),
		PreviousRequirements: requirements(dto.PreviousRequirements),
	}
}

func requirements(dtos []RequirementDTO) []domain.Requirement {
	res := make([]domain.Requirement, len(dtos))
	for i, dto := range dtos {
		group := domain.Category(dto.Group)
		if group == "" {
			group = domain.CategoryMain
		}
		res[i] = domain.Requirement{
			File:       domain.NewInternedString(dto.File),
			Expression: dto.Expression,
			Group:      group,
		}
	}
	return res
}

func credentials(dtos []CredentialDTO) []domain.Credential {
	if len(dtos) == 0 {
		return nil
	}
	res := make([]domain.Credential, len(dtos))
	for i, dto := range dtos {
		res[i] = domain.Credential{
			RegistryURL: dto.RegistryURL,
			Username:    dto.Username,
			Password:    dto.Password,
		}
	}
	return res
}
