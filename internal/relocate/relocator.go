// Package relocate moves processed source files into terminal directories.
package relocate

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/spf13/afero"
)

// Outcome is the result of a relocation attempt.
type Outcome int

const (
	// Moved means the file now lives in the destination directory.
	Moved Outcome = iota
	// FailedExists means the destination already holds a file with the same name.
	FailedExists
	// FailedPermission means the filesystem refused the move.
	FailedPermission
	// FailedMissing means the source file or destination directory does not exist.
	FailedMissing
)

func (o Outcome) String() string {
	switch o {
	case Moved:
		return "moved"
	case FailedExists:
		return "failed-exists"
	case FailedPermission:
		return "failed-permission"
	case FailedMissing:
		return "failed-missing"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}

// Result describes one relocation. Err is nil only when Outcome is Moved.
type Result struct {
	Outcome     Outcome
	Source      string
	Destination string
	Err         error
}

// OK reports whether the file was moved.
func (r Result) OK() bool { return r.Outcome == Moved }

// Move renames source into dir, keeping its filename. It never overwrites
// an existing file and reports every failure as a Result.
func Move(fsys afero.Fs, source, dir string) Result {
	res := Result{Source: source, Destination: filepath.Join(dir, filepath.Base(source))}

	if _, err := fsys.Stat(source); err != nil {
		return res.fail(err)
	}
	info, err := fsys.Stat(dir)
	if err != nil {
		return res.fail(err)
	}
	if !info.IsDir() {
		return res.fail(fmt.Errorf("%s is not a directory: %w", dir, fs.ErrNotExist))
	}
	if _, err := fsys.Stat(res.Destination); err == nil {
		return res.fail(fmt.Errorf("%s: %w", res.Destination, fs.ErrExist))
	} else if !errors.Is(err, fs.ErrNotExist) {
		return res.fail(err)
	}

	if err := fsys.Rename(source, res.Destination); err != nil {
		return res.fail(err)
	}
	res.Outcome = Moved
	return res
}

func (r Result) fail(err error) Result {
	r.Err = err
	r.Outcome = classify(err)
	return r
}

// classify maps a filesystem error onto a failure outcome. Errors that are
// neither "exists" nor "missing" are treated as the OS refusing the move.
func classify(err error) Outcome {
	switch {
	case errors.Is(err, fs.ErrExist):
		return FailedExists
	case errors.Is(err, fs.ErrNotExist):
		return FailedMissing
	default:
		return FailedPermission
	}
}
