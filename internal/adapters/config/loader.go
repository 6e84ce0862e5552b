// Package config provides the configuration loader for fxdev.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.trai.ch/fxdev/internal/core/domain"
	"go.trai.ch/fxdev/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// Loader reads fxdev.yaml and resolves it into a domain.Project.
type Loader struct {
	Logger ports.Logger
}

// NewLoader creates a configuration loader.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{Logger: logger}
}

// validNameRegex matches resource and target names. Both end up in restart
// URLs and log lines, so they are restricted to a safe character set.
var validNameRegex = regexp.MustCompile("^[a-zA-Z0-9_-]+$")

var invalidNameCharsRegex = regexp.MustCompile("[^a-zA-Z0-9_-]+")

// Defaults applied when the configuration file is missing or partial.
const (
	defaultRestartURL      = "http://127.0.0.1:30120/fxdev/restart"
	defaultRestartTimeout  = 2 * time.Second
	defaultRestartDebounce = 500 * time.Millisecond
	defaultUIPort          = 5173
	defaultSyntaxTarget    = "es2021"
)

var (
	defaultUIBuild = []string{"npm", "run", "build"}
	defaultUIDev   = []string{"npm", "run", "dev"}
)

// Load walks up from cwd to find fxdev.yaml and resolves it into a project.
// A resource without a configuration file yields a default project rooted at
// cwd. The resource root's .env file, when present, is loaded into the
// process environment before resolution.
func (l *Loader) Load(cwd string) (*domain.Project, error) {
	absCwd, err := filepath.Abs(cwd)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to resolve working directory")
	}

	var fxfile Fxfile
	root := absCwd
	if configPath := findConfiguration(absCwd); configPath != "" {
		if err := readAndUnmarshalYAML(configPath, &fxfile); err != nil {
			return nil, err
		}
		root = filepath.Dir(configPath)
	}

	l.loadDotenv(root)

	return l.resolve(root, &fxfile)
}

// findConfiguration walks up from startDir looking for the configuration
// file. It returns the empty string when no ancestor carries one.
func findConfiguration(startDir string) string {
	currentDir := startDir
	for {
		candidate := filepath.Join(currentDir, domain.ConfigFileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			return ""
		}
		currentDir = parentDir
	}
}

// loadDotenv loads root/.env into the process environment. Variables already
// set in the environment win. A missing file is fine, a broken one only warns.
func (l *Loader) loadDotenv(root string) {
	envPath := filepath.Join(root, domain.EnvFileName)
	if _, err := os.Stat(envPath); err != nil {
		return
	}
	if err := godotenv.Load(envPath); err != nil {
		l.Logger.Warn(fmt.Sprintf("failed to load %s: %v", domain.EnvFileName, err))
	}
}

func (l *Loader) resolve(root string, fxfile *Fxfile) (*domain.Project, error) {
	resource, err := resolveResourceName(root, fxfile.Resource)
	if err != nil {
		return nil, err
	}

	game := domain.GameGTA5
	if fxfile.Game != "" {
		game, err = domain.ParseGame(fxfile.Game)
		if err != nil {
			return nil, zerr.With(err, "game", fxfile.Game)
		}
	}

	restart, err := resolveRestart(fxfile.Restart)
	if err != nil {
		return nil, err
	}

	targets, err := resolveTargets(root, fxfile.Targets)
	if err != nil {
		return nil, err
	}

	return &domain.Project{
		Root:     root,
		Resource: resource,
		Game:     game,
		Address:  fxfile.Address,
		Restart:  restart,
		UI:       l.resolveUI(root, fxfile.UI),
		Targets:  targets,
		Define:   fxfile.Define,
	}, nil
}

// resolveResourceName validates a configured name or derives one from the
// root directory when the configuration leaves it empty.
func resolveResourceName(root, configured string) (string, error) {
	if configured != "" {
		if !validNameRegex.MatchString(configured) {
			return "", zerr.With(domain.ErrInvalidResourceName, "resource", configured)
		}
		return configured, nil
	}
	return sanitizeResourceName(filepath.Base(root)), nil
}

// sanitizeResourceName replaces everything outside [a-zA-Z0-9_-] so derived
// names are always valid.
func sanitizeResourceName(name string) string {
	sanitized := invalidNameCharsRegex.ReplaceAllString(name, "-")
	sanitized = strings.Trim(sanitized, "-")
	if sanitized == "" {
		return "resource"
	}
	return sanitized
}

func resolveRestart(dto *RestartDTO) (domain.RestartSettings, error) {
	settings := domain.RestartSettings{
		URL:      defaultRestartURL,
		Timeout:  defaultRestartTimeout,
		Debounce: defaultRestartDebounce,
	}
	if dto == nil {
		return settings, nil
	}

	if dto.URL != "" {
		settings.URL = dto.URL
	}
	if dto.Timeout != "" {
		timeout, err := parseDurationSetting("restart.timeout", dto.Timeout)
		if err != nil {
			return domain.RestartSettings{}, err
		}
		settings.Timeout = timeout
	}
	if dto.Debounce != "" {
		debounce, err := parseDurationSetting("restart.debounce", dto.Debounce)
		if err != nil {
			return domain.RestartSettings{}, err
		}
		settings.Debounce = debounce
	}

	return settings, nil
}

func parseDurationSetting(field, value string) (time.Duration, error) {
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, zerr.With(zerr.Wrap(err, domain.ErrConfigParseFailed.Error()), "field", field)
	}
	return d, nil
}

func (l *Loader) resolveUI(root string, dto *UIDTO) domain.UISettings {
	settings := domain.UISettings{
		Dir:   filepath.Join(root, domain.DefaultUIDirName),
		Name:  domain.DefaultUIDirName,
		Port:  defaultUIPort,
		Build: defaultUIBuild,
		Dev:   defaultUIDev,
	}
	if dto == nil {
		return settings
	}

	if dto.Dir != "" {
		settings.Dir = resolvePath(root, dto.Dir)
		settings.Name = l.uiName(root, settings.Dir)
	}
	if dto.Port != 0 {
		settings.Port = dto.Port
	}
	if len(dto.Build) > 0 {
		settings.Build = dto.Build
	}
	if len(dto.Dev) > 0 {
		settings.Dev = dto.Dev
	}

	return settings
}

// uiName derives the manifest-relative directory used for built ui_page
// entries. A UI directory outside the resource root cannot be referenced
// from the manifest, so the name falls back to the default location.
func (l *Loader) uiName(root, dir string) string {
	rel, err := filepath.Rel(root, dir)
	if err != nil || strings.HasPrefix(rel, "..") {
		l.Logger.Warn(fmt.Sprintf("ui directory %s is outside the resource root, ui_page entries will use %s", dir, domain.DefaultUIDirName))
		return domain.DefaultUIDirName
	}
	return filepath.ToSlash(rel)
}

func resolveTargets(root string, dtos map[string]*TargetDTO) ([]domain.BuildTarget, error) {
	if len(dtos) == 0 {
		return defaultTargets(root), nil
	}

	targets := make([]domain.BuildTarget, 0, len(dtos))
	for name, dto := range dtos {
		target, err := resolveTarget(root, name, dto)
		if err != nil {
			return nil, err
		}
		targets = append(targets, target)
	}

	// Map iteration order is random, sort so builds and logs are deterministic.
	slices.SortFunc(targets, func(a, b domain.BuildTarget) int {
		return strings.Compare(a.Name, b.Name)
	})

	return targets, nil
}

func resolveTarget(root, name string, dto *TargetDTO) (domain.BuildTarget, error) {
	if !validNameRegex.MatchString(name) {
		return domain.BuildTarget{}, zerr.With(domain.ErrInvalidTargetName, "target", name)
	}
	if dto == nil || dto.Entry == "" {
		return domain.BuildTarget{}, zerr.With(domain.ErrMissingEntryPoint, "target", name)
	}
	if dto.Outfile == "" {
		return domain.BuildTarget{}, zerr.With(domain.ErrMissingOutfile, "target", name)
	}

	platform := dto.Platform
	if platform == "" {
		platform = "browser"
	}
	if err := validatePlatform(platform); err != nil {
		return domain.BuildTarget{}, zerr.With(err, "target", name)
	}

	format := dto.Format
	if format == "" {
		format = defaultFormat(platform)
	}
	if err := validateFormat(format); err != nil {
		return domain.BuildTarget{}, zerr.With(err, "target", name)
	}

	syntax := dto.Target
	if syntax == "" {
		syntax = defaultSyntaxTarget
	}
	if !domain.ValidSyntaxTarget(syntax) {
		err := zerr.With(domain.ErrInvalidSyntaxTarget, "syntax", syntax)
		return domain.BuildTarget{}, zerr.With(err, "target", name)
	}

	return domain.BuildTarget{
		Name:      name,
		Entry:     resolvePath(root, dto.Entry),
		Outfile:   resolvePath(root, dto.Outfile),
		Platform:  platform,
		Target:    syntax,
		Format:    format,
		Sourcemap: dto.Sourcemap,
		Define:    dto.Define,
	}, nil
}

func validatePlatform(platform string) error {
	switch platform {
	case "browser", "node", "neutral":
		return nil
	default:
		return zerr.With(domain.ErrInvalidPlatform, "platform", platform)
	}
}

func validateFormat(format string) error {
	switch format {
	case "iife", "cjs", "esm":
		return nil
	default:
		return zerr.With(domain.ErrInvalidFormat, "format", format)
	}
}

func defaultFormat(platform string) string {
	if platform == "node" {
		return "cjs"
	}
	return "iife"
}

// defaultTargets describe the conventional client and server scripts of a
// resource created without any target configuration.
func defaultTargets(root string) []domain.BuildTarget {
	return []domain.BuildTarget{
		{
			Name:     "client",
			Entry:    filepath.Join(root, "src", "client", "index.ts"),
			Outfile:  filepath.Join(root, "dist", "client.js"),
			Platform: "browser",
			Target:   defaultSyntaxTarget,
			Format:   "iife",
		},
		{
			Name:     "server",
			Entry:    filepath.Join(root, "src", "server", "index.ts"),
			Outfile:  filepath.Join(root, "dist", "server.js"),
			Platform: "node",
			Target:   "node16",
			Format:   "cjs",
		},
	}
}

// resolvePath anchors a configured path at the resource root unless it is
// already absolute.
func resolvePath(root, p string) string {
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Clean(filepath.Join(root, p))
}

// readAndUnmarshalYAML reads a YAML file and unmarshals it into the target struct.
func readAndUnmarshalYAML[T any](configPath string, target *T) error {
	// #nosec G304 -- configPath comes from the configuration walk-up
	configFile, err := os.ReadFile(configPath)
	if err != nil {
		return zerr.Wrap(err, domain.ErrConfigReadFailed.Error())
	}

	if parseErr := yaml.Unmarshal(configFile, target); parseErr != nil {
		return zerr.Wrap(parseErr, domain.ErrConfigParseFailed.Error())
	}

	return nil
}
