package config

// Jobfile represents the structure of an update-job YAML file.
type Jobfile struct {
	Files         []string        `yaml:"files"`
	Dependency    DependencyDTO   `yaml:"dependency"`
	Credentials   []CredentialDTO `yaml:"credentials"`
	SolverCommand string          `yaml:"solverCommand"`
}

// DependencyDTO represents the dependency section of a job file.
type DependencyDTO struct {
	Name                 string           `yaml:"name"`
	Requirements         []RequirementDTO `yaml:"requirements"`
	PreviousRequirements []RequirementDTO `yaml:"previousRequirements"`
}

// RequirementDTO represents one requirement declaration in a job file.
type RequirementDTO struct {
	File       string `yaml:"file"`
	Expression string `yaml:"expression"`
	Group      string `yaml:"group"`
}

// CredentialDTO represents one registry credential in a job file.
type CredentialDTO struct {
	RegistryURL string `yaml:"registryUrl"`
	Username    string `yaml:"username"`
	Password    string `yaml:"password"`
}
