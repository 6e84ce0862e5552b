package config

// Fxfile represents the structure of the fxdev.yaml configuration file.
type Fxfile struct {
	Resource string                `yaml:"resource"`
	Game     string                `yaml:"game"`
	Address  string                `yaml:"address"`
	Restart  *RestartDTO           `yaml:"restart"`
	UI       *UIDTO                `yaml:"ui"`
	Targets  map[string]*TargetDTO `yaml:"targets"`
	Define   map[string]string     `yaml:"define"`
}

// RestartDTO represents the restart notifier settings in the configuration.
// Durations are Go duration strings such as "2s" or "500ms".
type RestartDTO struct {
	URL      string `yaml:"url"`
	Timeout  string `yaml:"timeout"`
	Debounce string `yaml:"debounce"`
}

// UIDTO represents the UI sub-project settings in the configuration.
type UIDTO struct {
	Dir   string   `yaml:"dir"`
	Port  int      `yaml:"port"`
	Build []string `yaml:"build"`
	Dev   []string `yaml:"dev"`
}

// TargetDTO represents a build target definition in the configuration.
type TargetDTO struct {
	Entry     string            `yaml:"entry"`
	Outfile   string            `yaml:"outfile"`
	Platform  string            `yaml:"platform"`
	Target    string            `yaml:"target"`
	Format    string            `yaml:"format"`
	Sourcemap bool              `yaml:"sourcemap"`
	Define    map[string]string `yaml:"define"`
}
