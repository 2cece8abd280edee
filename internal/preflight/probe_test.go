package preflight

import (
	"errors"
	"strings"
)

// fakeProbe is a programmable Probe that records every call by method name.
type fakeProbe struct {
	version    string
	extensions map[string]bool
	functions  map[string]bool
	disabled   map[string]bool
	classes    map[string]bool
	constants  map[string]string
	ini        map[string]string
	tempDir    string
	writable   map[string]bool

	folderOK  bool
	fileOK    bool
	symlinkOK bool

	calls []string
}

// newHealthyProbe returns a probe that satisfies every requirement.
func newHealthyProbe() *fakeProbe {
	return &fakeProbe{
		version:    "8.2.12",
		extensions: map[string]bool{"phar": true, "dom": true, "intl": true, "xmlreader": true},
		functions: map[string]bool{
			"curl_init": true, "shell_exec": true, "proc_open": true,
			"gd_info": true, "symlink": true, "posix_getpwuid": true,
		},
		disabled:  map[string]bool{},
		classes:   map[string]bool{},
		constants: map[string]string{"GD_VERSION": "2.3.3"},
		ini:       map[string]string{"allow_url_fopen": "1"},
		tempDir:   "/tmp",
		writable:  map[string]bool{"/tmp": true},
		folderOK:  true,
		fileOK:    true,
		symlinkOK: true,
	}
}

func (f *fakeProbe) record(call string) { f.calls = append(f.calls, call) }

func (f *fakeProbe) called(call string) bool {
	for _, c := range f.calls {
		if c == call {
			return true
		}
	}
	return false
}

func (f *fakeProbe) count(call string) int {
	n := 0
	for _, c := range f.calls {
		if c == call {
			n++
		}
	}
	return n
}

func (f *fakeProbe) RuntimeVersion() string {
	f.record("RuntimeVersion")
	return f.version
}

func (f *fakeProbe) ExtensionLoaded(name string) bool {
	f.record("ExtensionLoaded:" + strings.ToLower(name))
	return f.extensions[strings.ToLower(name)]
}

func (f *fakeProbe) FunctionCallable(name string) bool {
	f.record("FunctionCallable:" + name)
	return f.functions[name] && !f.disabled[name]
}

func (f *fakeProbe) FunctionDisabled(name string) bool {
	f.record("FunctionDisabled:" + name)
	return f.disabled[name]
}

func (f *fakeProbe) ClassAvailable(name string) bool {
	f.record("ClassAvailable:" + name)
	return f.classes[name]
}

func (f *fakeProbe) Constant(name string) (string, bool) {
	f.record("Constant:" + name)
	v, ok := f.constants[name]
	return v, ok
}

func (f *fakeProbe) ConfigValue(name string) (string, bool) {
	f.record("ConfigValue:" + name)
	v, ok := f.ini[name]
	return v, ok
}

func (f *fakeProbe) ConfigFlag(name string) bool {
	f.record("ConfigFlag:" + name)
	v := f.ini[name]
	return v != "" && v != "0"
}

func (f *fakeProbe) TempDir() string {
	f.record("TempDir")
	return f.tempDir
}

func (f *fakeProbe) PathWritable(path string) bool {
	f.record("PathWritable:" + path)
	return f.writable[path]
}

func (f *fakeProbe) CreateTempFolder() bool {
	f.record("CreateTempFolder")
	return f.folderOK
}

func (f *fakeProbe) CreateTempFile() bool {
	f.record("CreateTempFile")
	return f.fileOK
}

func (f *fakeProbe) CreateSymlink(target, link string) bool {
	f.record("CreateSymlink:" + link)
	return f.symlinkOK
}

func (f *fakeProbe) Remove(path string) error {
	f.record("Remove:" + path)
	return errors.New("remove " + path + ": no such file or directory")
}
