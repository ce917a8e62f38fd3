package resolve

import (
	"github.com/BurntSushi/toml"
	"go.trai.ch/relock/internal/core/domain"
	"go.trai.ch/zerr"
)

// lockfileDTO mirrors the solver's lock artifact layout: an array of
// [[package]] tables with name/version and a category or group marker.
type lockfileDTO struct {
	Package []lockedPackageDTO `toml:"package"`
}

type lockedPackageDTO struct {
	Name     string `toml:"name"`
	Version  string `toml:"version"`
	Category string `toml:"category"`
	Group    string `toml:"group"`
}

// ParseLockfile decodes a lock artifact into its domain form. Entries
// without an explicit category default to the main group.
func ParseLockfile(content string) (domain.Lockfile, error) {
	var dto lockfileDTO
	if _, err := toml.Decode(content, &dto); err != nil {
		return domain.Lockfile{}, zerr.Wrap(err, "failed to parse lock artifact")
	}

	packages := make([]domain.LockedPackage, 0, len(dto.Package))
	for _, pkg := range dto.Package {
		category := domain.CategoryMain
		if pkg.Category == string(domain.CategoryDev) || pkg.Group == string(domain.CategoryDev) {
			category = domain.CategoryDev
		}
		packages = append(packages, domain.LockedPackage{
			Name:     pkg.Name,
			Version:  pkg.Version,
			Category: category,
		})
	}
	return domain.Lockfile{Packages: packages}, nil
}
