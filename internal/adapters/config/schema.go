package config

// buildfile is the YAML schema of surok-build.yaml.
type buildfile struct {
	Source  sourceDTO           `yaml:"source"`
	Output  string              `yaml:"output"`
	Images  map[string]imageDTO `yaml:"images"`
	Package packageDTO          `yaml:"package"`
}

type sourceDTO struct {
	Dir        string `yaml:"dir"`
	Repository string `yaml:"repository"`
}

type imageDTO struct {
	Tag        string `yaml:"tag"`
	Context    string `yaml:"context"`
	Dockerfile string `yaml:"dockerfile"`
}

type packageDTO struct {
	Command []string `yaml:"command"`
	Host    bool     `yaml:"host"`
	Workdir string   `yaml:"workdir"`
	Env     []string `yaml:"env"`
}
