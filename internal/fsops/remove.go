package fsops

import (
	"errors"
	"fmt"
	"io/fs"
	"syscall"
)

// RemoveError reports a removal that failed for a reason other than the
// target already being absent. It carries the path that could not be
// removed and the underlying operating-system error.
type RemoveError struct {
	Path string
	Err  error
}

func (e *RemoveError) Error() string {
	return fmt.Sprintf("failed to remove %q: %v", e.Path, e.Err)
}

func (e *RemoveError) Unwrap() error {
	return e.Err
}

// Remove ensures nothing exists at path, whether it is a plain file or a
// populated directory. A path that does not exist is success: the caller
// wants the path gone, and it already is.
func Remove(path string) error {
	return RemoveWith(OSDeleter{}, path)
}

// RemoveWith is Remove with an injected Deleter.
//
// The path is stat'ed to pick between recursive directory removal and
// plain file removal. The stat can race with concurrent filesystem
// activity, so a "not a directory" failure from the recursive removal
// redirects to the file removal. "Not found" from any step is success.
func RemoveWith(d Deleter, path string) error {
	info, statErr := d.Lstat(path)

	var err error
	switch {
	case statErr == nil && info.IsDir():
		err = d.RemoveAll(path)
		if isNotDir(err) {
			// replaced by a non-directory between the stat and the removal
			err = d.Remove(path)
		}
	case statErr == nil:
		err = d.Remove(path)
	case isNotFound(statErr):
		return nil
	default:
		// stat failed for some other reason; attempt removal blind
		err = d.RemoveAll(path)
		if isNotDir(err) {
			err = d.Remove(path)
		}
	}

	if err == nil || isNotFound(err) {
		return nil
	}
	return &RemoveError{Path: path, Err: err}
}

func isNotFound(err error) bool {
	return errors.Is(err, fs.ErrNotExist)
}

func isNotDir(err error) bool {
	return errors.Is(err, syscall.ENOTDIR)
}
