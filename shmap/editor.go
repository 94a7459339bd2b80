package shmap

import (
	"bytes"
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/natefinch/atomic"
)

type LogFunc func(level int, format string, param ...interface{})

type Config struct {
	Rules RuleTable

	// Backup keeps the unpatched file as <path>.bak.
	Backup bool
	DryRun bool

	LogFunc LogFunc
}

// Editor loads, patches and saves map files. Each call owns the file
// exclusively until it returns.
type Editor struct {
	config Config
}

func New(config Config) (*Editor, error) {
	if config.Rules == nil {
		config.Rules = DefaultRules()
	}
	if err := config.Rules.Validate(); err != nil {
		return nil, err
	}

	return &Editor{config: config}, nil
}

func (e *Editor) Rules() RuleTable {
	return e.config.Rules
}

func (e *Editor) log(level int, format string, param ...interface{}) {
	if e.config.LogFunc != nil {
		e.config.LogFunc(level, format, param...)
	}
}

// Inspect plans action against the file at path without writing anything.
func (e *Editor) Inspect(path string, action ActionKind) (Patch, []byte, error) {
	buf, err := readMap(path)
	if err != nil {
		return Patch{}, nil, err
	}

	p, err := e.config.Rules.Plan(buf, action)
	if err != nil {
		return Patch{}, buf, err
	}
	return p, buf, nil
}

// PatchFile applies action to the file at path. The file is replaced as a
// whole, so on error it is left exactly as it was.
func (e *Editor) PatchFile(path string, action ActionKind) (Patch, error) {
	e.log(0, "Attempting action '%s' on file %s", action.Caption(), path)

	unlock, err := lockMap(path)
	if err != nil {
		return Patch{}, err
	}
	defer func() {
		if err := unlock(); err != nil {
			e.log(0, "Failed to release lock on %s: %v", path, err)
		}
	}()

	buf, err := readMap(path)
	if err != nil {
		return Patch{}, err
	}

	p, err := e.config.Rules.Plan(buf, action)
	if err != nil {
		return Patch{}, err
	}
	e.log(1, "Calculated values: %s, write_offset=%X", p.Offsets, p.Offset)

	if e.config.DryRun {
		e.log(0, "Dry run, not writing %s", p)
		return p, nil
	}

	out, _, err := e.config.Rules.Apply(buf, action)
	if err != nil {
		return Patch{}, err
	}

	info, err := os.Stat(path)
	if err != nil {
		return Patch{}, &IOError{Op: "stat", Path: path, Err: err}
	}

	if e.config.Backup {
		bak := path + ".bak"
		if err := writeFileAtomic(bak, buf, info.Mode().Perm()); err != nil {
			return Patch{}, err
		}
		e.log(1, "Saved backup to %s", bak)
	}

	if err := writeFileAtomic(path, out, info.Mode().Perm()); err != nil {
		return Patch{}, err
	}

	e.log(0, "Wrote %d bytes to offset %X of %s", len(p.New), p.Offset, filepath.Base(path))
	return p, nil
}

func readMap(path string) ([]byte, error) {
	buf, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, &IOError{Op: "read", Path: path, Err: err}
	}
	return buf, nil
}

// writeFileAtomic replaces path with data through a temporary file, so
// readers see either the old or the new contents.
func writeFileAtomic(path string, data []byte, perm os.FileMode) error {
	if err := atomic.WriteFile(path, bytes.NewReader(data)); err != nil {
		return &IOError{Op: "write", Path: path, Err: err}
	}

	/* atomic keeps the mode of a replaced file, new files start out 0600 */
	info, err := os.Stat(path)
	if err != nil {
		return &IOError{Op: "stat", Path: path, Err: err}
	}
	if info.Mode().Perm() != perm {
		if err := os.Chmod(path, perm); err != nil {
			return &IOError{Op: "chmod", Path: path, Err: err}
		}
	}
	return nil
}
