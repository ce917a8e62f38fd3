package domain

// LockedPackage is one entry of a resolver-produced lock artifact: a package
// pinned to a single exact version within a dependency category.
type LockedPackage struct {
	Name     string
	Version  string
	Category Category
}

// Lockfile is the parsed form of a lock artifact. It pins every dependency,
// direct and transitive, to one exact version.
type Lockfile struct {
	Packages []LockedPackage
}

// Package looks up a locked entry by normalized package name.
func (l Lockfile) Package(name string) (LockedPackage, bool) {
	normalized := NormalizeName(name)
	for _, pkg := range l.Packages {
		if NormalizeName(pkg.Name) == normalized {
			return pkg, true
		}
	}
	return LockedPackage{}, false
}
