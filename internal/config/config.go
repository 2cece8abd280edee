// Package config loads installcheck settings from defaults, the user config,
// the project config and INSTALLCHECK_* environment variables, in that order.
package config

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	ierrors "github.com/Aman-CERP/installcheck/internal/errors"
	"github.com/Aman-CERP/installcheck/internal/preflight"
)

// Evaluator names accepted in the evaluators list.
const (
	EvaluatorPackageManager = "package-manager"
	EvaluatorRuntime        = "runtime"
)

// ProjectConfigNames are looked up in the working directory, first match wins.
var ProjectConfigNames = []string{".installcheck.yaml", ".installcheck.yml"}

// Config is the complete installcheck configuration.
type Config struct {
	Version      int                `yaml:"version" json:"version" validate:"eq=1"`
	PHP          PHPConfig          `yaml:"php" json:"php"`
	Requirements RequirementsConfig `yaml:"requirements" json:"requirements"`
	Probe        ProbeConfig        `yaml:"probe" json:"probe"`
	Evaluators   []string           `yaml:"evaluators" json:"evaluators" validate:"min=1,dive,evaluator"`
	LogLevel     string             `yaml:"log_level" json:"log_level" validate:"oneof=debug info warn error"`
}

// PHPConfig selects the runtimes to inspect.
type PHPConfig struct {
	Binaries    []string      `yaml:"binaries" json:"binaries" validate:"min=1,dive,required"`
	Timeout     time.Duration `yaml:"timeout" json:"timeout" validate:"gt=0"`
	Parallelism int           `yaml:"parallelism" json:"parallelism" validate:"gte=1,lte=64"`
}

// MarshalJSON writes the timeout as a duration string ("10s"), the form the
// YAML file uses.
func (p PHPConfig) MarshalJSON() ([]byte, error) {
	type plain PHPConfig
	return json.Marshal(struct {
		plain
		Timeout string `json:"timeout"`
	}{plain: plain(p), Timeout: p.Timeout.String()})
}

// RequirementsConfig holds the minimum versions the checks compare against.
type RequirementsConfig struct {
	PackageManagerMinVersion string `yaml:"package_manager_min_version" json:"package_manager_min_version" validate:"version"`
	RuntimeMinVersion        string `yaml:"runtime_min_version" json:"runtime_min_version" validate:"version"`
	GDMinVersion             string `yaml:"gd_min_version" json:"gd_min_version" validate:"version"`
}

// ProbeConfig configures the filesystem probes.
type ProbeConfig struct {
	// WorkDir is where folder, file and symlink probes run.
	WorkDir string `yaml:"work_dir" json:"work_dir" validate:"required"`
	// SymlinkTarget is what the probe link points at. Empty means ".".
	SymlinkTarget string `yaml:"symlink_target" json:"symlink_target"`
}

// NewConfig creates a Config with defaults.
func NewConfig() *Config {
	return &Config{
		Version: 1,
		PHP: PHPConfig{
			Binaries:    []string{"php"},
			Timeout:     10 * time.Second,
			Parallelism: 4,
		},
		Requirements: RequirementsConfig{
			PackageManagerMinVersion: preflight.DefaultPackageManagerMinVersion,
			RuntimeMinVersion:        preflight.DefaultRuntimeMinVersion,
			GDMinVersion:             preflight.DefaultGDMinVersion,
		},
		Probe: ProbeConfig{
			WorkDir: ".",
		},
		Evaluators: []string{EvaluatorPackageManager, EvaluatorRuntime},
		LogLevel:   "warn",
	}
}

// GetUserConfigPath returns the user configuration file path:
//   - $XDG_CONFIG_HOME/installcheck/config.yaml (if XDG_CONFIG_HOME is set)
//   - ~/.config/installcheck/config.yaml (default)
func GetUserConfigPath() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "installcheck", "config.yaml")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), ".config", "installcheck", "config.yaml")
	}
	return filepath.Join(home, ".config", "installcheck", "config.yaml")
}

// Load loads configuration for a working directory. It applies, in order of
// increasing precedence:
//  1. Hardcoded defaults
//  2. User config (~/.config/installcheck/config.yaml)
//  3. Project config (.installcheck.yaml in dir)
//  4. Environment variables (INSTALLCHECK_*)
func Load(dir string) (*Config, error) {
	return load(dir, "")
}

// LoadFile is like Load but reads the project layer from an explicit path,
// which must exist.
func LoadFile(dir, path string) (*Config, error) {
	if !fileExists(path) {
		return nil, ierrors.New(ierrors.ErrCodeConfigNotFound, fmt.Sprintf("config file %s not found", path), nil).
			WithDetail("path", path)
	}
	return load(dir, path)
}

func load(dir, explicit string) (*Config, error) {
	cfg := NewConfig()

	if userPath := GetUserConfigPath(); fileExists(userPath) {
		user, err := readYAML(userPath)
		if err != nil {
			return nil, err
		}
		cfg.mergeWith(user)
		slog.Debug("user config loaded", slog.String("path", userPath))
	}

	projectPath := explicit
	if projectPath == "" {
		projectPath = FindProjectConfig(dir)
	}
	if projectPath != "" {
		project, err := readYAML(projectPath)
		if err != nil {
			return nil, err
		}
		cfg.mergeWith(project)
		slog.Debug("project config loaded", slog.String("path", projectPath))
	}

	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// FindProjectConfig returns the project config path in dir, or "".
func FindProjectConfig(dir string) string {
	for _, name := range ProjectConfigNames {
		if path := filepath.Join(dir, name); fileExists(path) {
			return path
		}
	}
	return ""
}

func readYAML(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, ierrors.New(ierrors.ErrCodeConfigNotFound, fmt.Sprintf("read config file %s", path), err).
			WithDetail("path", path)
	}

	var parsed Config
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return nil, ierrors.ConfigError(fmt.Sprintf("parse config file %s", path), err).
			WithDetail("path", path)
	}
	return &parsed, nil
}

// mergeWith copies the non-zero values of other over c.
func (c *Config) mergeWith(other *Config) {
	if other.Version != 0 {
		c.Version = other.Version
	}

	if len(other.PHP.Binaries) > 0 {
		c.PHP.Binaries = other.PHP.Binaries
	}
	if other.PHP.Timeout != 0 {
		c.PHP.Timeout = other.PHP.Timeout
	}
	if other.PHP.Parallelism != 0 {
		c.PHP.Parallelism = other.PHP.Parallelism
	}

	if other.Requirements.PackageManagerMinVersion != "" {
		c.Requirements.PackageManagerMinVersion = other.Requirements.PackageManagerMinVersion
	}
	if other.Requirements.RuntimeMinVersion != "" {
		c.Requirements.RuntimeMinVersion = other.Requirements.RuntimeMinVersion
	}
	if other.Requirements.GDMinVersion != "" {
		c.Requirements.GDMinVersion = other.Requirements.GDMinVersion
	}

	if other.Probe.WorkDir != "" {
		c.Probe.WorkDir = other.Probe.WorkDir
	}
	if other.Probe.SymlinkTarget != "" {
		c.Probe.SymlinkTarget = other.Probe.SymlinkTarget
	}

	if len(other.Evaluators) > 0 {
		c.Evaluators = other.Evaluators
	}
	if other.LogLevel != "" {
		c.LogLevel = other.LogLevel
	}
}

// applyEnvOverrides applies INSTALLCHECK_* variables. Unparsable values are
// logged and ignored.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("INSTALLCHECK_PHP_BINARY"); v != "" {
		if list := splitList(v); len(list) > 0 {
			c.PHP.Binaries = list
		}
	}
	if v := os.Getenv("INSTALLCHECK_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			c.PHP.Timeout = d
		} else {
			slog.Warn("ignoring INSTALLCHECK_TIMEOUT", slog.String("value", v))
		}
	}
	if v := os.Getenv("INSTALLCHECK_PARALLELISM"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.PHP.Parallelism = n
		} else {
			slog.Warn("ignoring INSTALLCHECK_PARALLELISM", slog.String("value", v))
		}
	}
	if v := os.Getenv("INSTALLCHECK_WORK_DIR"); v != "" {
		c.Probe.WorkDir = v
	}
	if v := os.Getenv("INSTALLCHECK_PM_MIN_VERSION"); v != "" {
		c.Requirements.PackageManagerMinVersion = v
	}
	if v := os.Getenv("INSTALLCHECK_RUNTIME_MIN_VERSION"); v != "" {
		c.Requirements.RuntimeMinVersion = v
	}
	if v := os.Getenv("INSTALLCHECK_EVALUATORS"); v != "" {
		if list := splitList(v); len(list) > 0 {
			c.Evaluators = list
		}
	}
	if v := os.Getenv("INSTALLCHECK_LOG_LEVEL"); v != "" {
		c.LogLevel = strings.ToLower(v)
	}
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("yaml"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
		_ = validate.RegisterValidation("version", func(fl validator.FieldLevel) bool {
			return preflight.ValidVersion(fl.Field().String())
		})
		_ = validate.RegisterValidation("evaluator", func(fl validator.FieldLevel) bool {
			return IsEvaluator(fl.Field().String())
		})
	})
	return validate
}

// IsEvaluator reports whether name is a known evaluator.
func IsEvaluator(name string) bool {
	return name == EvaluatorPackageManager || name == EvaluatorRuntime
}

// Validate checks the configuration. The first violation is returned as an
// ERR_102_CONFIG_INVALID error naming the offending field, or as
// ERR_403_INVALID_VERSION when a minimum version cannot be parsed.
func (c *Config) Validate() error {
	err := getValidator().Struct(c)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok || len(verrs) == 0 {
		return ierrors.ConfigError("invalid configuration", err)
	}
	return convertValidationError(verrs[0])
}

func convertValidationError(fe validator.FieldError) error {
	field := strings.TrimPrefix(fe.Namespace(), "Config.")

	code := ierrors.ErrCodeConfigInvalid
	var msg, hint string
	switch fe.Tag() {
	case "eq":
		msg = fmt.Sprintf("%s must be %s", field, fe.Param())
	case "min":
		msg = fmt.Sprintf("%s needs at least %s entry", field, fe.Param())
	case "gt":
		msg = fmt.Sprintf("%s must be greater than %s", field, fe.Param())
		hint = "Use a duration such as 10s"
	case "gte", "lte":
		msg = fmt.Sprintf("%s must be between 1 and 64", field)
	case "required":
		msg = fmt.Sprintf("%s must not be empty", field)
	case "oneof":
		msg = fmt.Sprintf("%s must be one of: %s", field, fe.Param())
	case "version":
		code = ierrors.ErrCodeInvalidVersion
		msg = fmt.Sprintf("%s %q is not a version", field, fe.Value())
		hint = "Use a dotted version such as 5.6.0"
	case "evaluator":
		msg = fmt.Sprintf("%s %q is not an evaluator", field, fe.Value())
		hint = fmt.Sprintf("Use %s or %s", EvaluatorPackageManager, EvaluatorRuntime)
	default:
		msg = fmt.Sprintf("%s failed %s validation", field, fe.Tag())
	}

	ce := ierrors.New(code, msg, nil).WithDetail("field", field)
	if hint != "" {
		ce = ce.WithSuggestion(hint)
	}
	return ce
}

// PreflightRequirements converts the configured versions for the check engine.
func (c *Config) PreflightRequirements() preflight.Requirements {
	return preflight.Requirements{
		PackageManagerMinVersion: c.Requirements.PackageManagerMinVersion,
		RuntimeMinVersion:        c.Requirements.RuntimeMinVersion,
		GDMinVersion:             c.Requirements.GDMinVersion,
		SymlinkTarget:            c.Probe.SymlinkTarget,
	}
}

// HasEvaluator reports whether name is enabled.
func (c *Config) HasEvaluator(name string) bool {
	for _, e := range c.Evaluators {
		if e == name {
			return true
		}
	}
	return false
}

// Marshal renders the configuration as YAML.
func (c *Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}

// WriteYAML writes the configuration to path, creating parent directories.
func (c *Config) WriteYAML(path string) error {
	data, err := c.Marshal()
	if err != nil {
		return ierrors.InternalError("marshal config", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return ierrors.New(ierrors.ErrCodeConfigWrite, fmt.Sprintf("create directory for %s", path), err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return ierrors.New(ierrors.ErrCodeConfigWrite, fmt.Sprintf("write config file %s", path), err)
	}
	return nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
