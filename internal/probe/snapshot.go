package probe

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	ierrors "github.com/Aman-CERP/installcheck/internal/errors"
)

// Snapshot is a point-in-time record of a PHP runtime's registry state:
// loaded extensions, defined functions and classes, configuration.
// It answers the runtime half of preflight.Probe.
type Snapshot struct {
	// Binary is the resolved PHP CLI path the snapshot was taken from.
	Binary string `json:"binary,omitempty" yaml:"binary,omitempty"`
	// Version is major.minor.release; FullVersion is PHP_VERSION.
	Version     string `json:"version" yaml:"version"`
	FullVersion string `json:"full_version,omitempty" yaml:"full_version,omitempty"`
	SAPI        string `json:"sapi,omitempty" yaml:"sapi,omitempty"`

	Extensions []string          `json:"extensions" yaml:"extensions"`
	Functions  []string          `json:"functions" yaml:"functions"`
	Classes    []string          `json:"classes" yaml:"classes"`
	Constants  map[string]string `json:"constants" yaml:"constants"`
	INI        map[string]string `json:"ini" yaml:"ini"`
	TempDir    string            `json:"temp_dir" yaml:"temp_dir"`

	once  sync.Once
	index *snapshotIndex
}

// snapshotIndex holds lowercase lookup sets. PHP treats extension, function
// and class names case-insensitively.
type snapshotIndex struct {
	extensions map[string]struct{}
	functions  map[string]struct{}
	classes    map[string]struct{}
	disabled   map[string]struct{}
}

// Directives whose comma-separated values list disabled functions.
var disableDirectives = []string{"disable_functions", "suhosin.executor.func.blacklist"}

func (s *Snapshot) idx() *snapshotIndex {
	s.once.Do(func() {
		s.index = &snapshotIndex{
			extensions: lowerSet(s.Extensions),
			functions:  lowerSet(s.Functions),
			classes:    lowerSet(s.Classes),
			disabled:   map[string]struct{}{},
		}
		for _, directive := range disableDirectives {
			for _, fn := range strings.Split(s.INI[directive], ",") {
				if fn = strings.ToLower(strings.TrimSpace(fn)); fn != "" {
					s.index.disabled[fn] = struct{}{}
				}
			}
		}
	})
	return s.index
}

func lowerSet(names []string) map[string]struct{} {
	set := make(map[string]struct{}, len(names))
	for _, n := range names {
		set[strings.ToLower(n)] = struct{}{}
	}
	return set
}

func contains(set map[string]struct{}, name string) bool {
	_, ok := set[strings.ToLower(name)]
	return ok
}

// RuntimeVersion returns PHP_VERSION when the snapshot has it, so
// pre-release tags like "RC1" take part in version checks. Hand-written
// snapshots may only carry the release version.
func (s *Snapshot) RuntimeVersion() string {
	if s.FullVersion != "" {
		return s.FullVersion
	}
	return s.Version
}

// ExtensionLoaded reports whether the extension is loaded.
func (s *Snapshot) ExtensionLoaded(name string) bool {
	return contains(s.idx().extensions, name)
}

// FunctionDisabled reports whether the function is listed in
// disable_functions or the Suhosin function blacklist.
func (s *Snapshot) FunctionDisabled(name string) bool {
	return contains(s.idx().disabled, name)
}

// FunctionCallable reports whether the function is defined and not disabled.
func (s *Snapshot) FunctionCallable(name string) bool {
	return contains(s.idx().functions, name) && !s.FunctionDisabled(name)
}

// ClassAvailable reports whether the class is declared.
func (s *Snapshot) ClassAvailable(name string) bool {
	return contains(s.idx().classes, name)
}

// Constant returns a constant captured in the snapshot.
func (s *Snapshot) Constant(name string) (string, bool) {
	v, ok := s.Constants[name]
	return v, ok
}

// ConfigValue returns an ini value; ok is false if the directive is not registered.
func (s *Snapshot) ConfigValue(name string) (string, bool) {
	v, ok := s.INI[name]
	return v, ok
}

// ConfigFlag applies PHP string truthiness to an ini value: "" and "0" are
// false, and so is a missing directive. PHP's ini parser already stores
// Off/No/False/None as "", so ini_get_all reports them that way.
func (s *Snapshot) ConfigFlag(name string) bool {
	v, ok := s.INI[name]
	return ok && v != "" && v != "0"
}

// RuntimeTempDir returns sys_get_temp_dir() as reported by the runtime.
func (s *Snapshot) RuntimeTempDir() string {
	return s.TempDir
}

// DecodeSnapshot parses the JSON document printed by the collection script.
// Anything printed around the JSON object (startup warnings) is ignored.
func DecodeSnapshot(data []byte) (*Snapshot, error) {
	start := bytes.IndexByte(data, '{')
	end := bytes.LastIndexByte(data, '}')
	if start < 0 || end < start {
		return nil, ierrors.New(ierrors.ErrCodeSnapshotDecode, "runtime output contains no snapshot", nil)
	}

	var snap Snapshot
	if err := json.Unmarshal(data[start:end+1], &snap); err != nil {
		return nil, ierrors.New(ierrors.ErrCodeSnapshotDecode, "decode snapshot", err)
	}
	if snap.Version == "" {
		return nil, ierrors.New(ierrors.ErrCodeSnapshotDecode, "snapshot has no runtime version", nil)
	}
	return &snap, nil
}

// LoadSnapshot reads a snapshot file. YAML and JSON are both accepted.
func LoadSnapshot(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, ierrors.New(ierrors.ErrCodeFileNotFound, fmt.Sprintf("read snapshot %s", path), err)
	}

	var snap Snapshot
	if err := yaml.Unmarshal(data, &snap); err != nil {
		return nil, ierrors.New(ierrors.ErrCodeSnapshotDecode, fmt.Sprintf("parse snapshot %s", path), err).
			WithDetail("path", path)
	}
	if snap.Version == "" {
		return nil, ierrors.New(ierrors.ErrCodeSnapshotDecode, fmt.Sprintf("snapshot %s has no version", path), nil).
			WithDetail("path", path)
	}
	return &snap, nil
}

// MarshalYAML-friendly view without the lookup index.
type snapshotFile struct {
	Binary      string            `yaml:"binary,omitempty"`
	Version     string            `yaml:"version"`
	FullVersion string            `yaml:"full_version,omitempty"`
	SAPI        string            `yaml:"sapi,omitempty"`
	Extensions  []string          `yaml:"extensions"`
	Functions   []string          `yaml:"functions"`
	Classes     []string          `yaml:"classes"`
	Constants   map[string]string `yaml:"constants"`
	INI         map[string]string `yaml:"ini"`
	TempDir     string            `yaml:"temp_dir"`
}

// EncodeYAML renders the snapshot as YAML.
func (s *Snapshot) EncodeYAML() ([]byte, error) {
	return yaml.Marshal(snapshotFile{
		Binary:      s.Binary,
		Version:     s.Version,
		FullVersion: s.FullVersion,
		SAPI:        s.SAPI,
		Extensions:  s.Extensions,
		Functions:   s.Functions,
		Classes:     s.Classes,
		Constants:   s.Constants,
		INI:         s.INI,
		TempDir:     s.TempDir,
	})
}

// WriteYAML writes the snapshot to path.
func (s *Snapshot) WriteYAML(path string) error {
	data, err := s.EncodeYAML()
	if err != nil {
		return ierrors.InternalError("encode snapshot", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return ierrors.New(ierrors.ErrCodeSnapshotWrite, fmt.Sprintf("write snapshot %s", path), err)
	}
	return nil
}
