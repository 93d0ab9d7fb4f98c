package fsops

import (
	"io/fs"
	"os"
	"time"
)

// FakeDeleter implements Deleter for testing
// Records all delete calls without performing actual deletions
type FakeDeleter struct {
	Calls []string
	Dirs  map[string]bool // paths Lstat reports as directories
	Err   error           // returned from Remove and RemoveAll when set
}

func (f *FakeDeleter) Remove(path string) error {
	f.Calls = append(f.Calls, "rm:"+path)
	return f.Err
}

func (f *FakeDeleter) RemoveAll(path string) error {
	f.Calls = append(f.Calls, "rmall:"+path)
	return f.Err
}

func (f *FakeDeleter) Lstat(path string) (fs.FileInfo, error) {
	if f.Dirs == nil {
		return fakeInfo{name: path}, nil
	}
	isDir, known := f.Dirs[path]
	if !known {
		return nil, os.ErrNotExist
	}
	return fakeInfo{name: path, dir: isDir}, nil
}

type fakeInfo struct {
	name string
	dir  bool
}

func (i fakeInfo) Name() string       { return i.name }
func (i fakeInfo) Size() int64        { return 0 }
func (i fakeInfo) Mode() fs.FileMode  { return 0 }
func (i fakeInfo) ModTime() time.Time { return time.Time{} }
func (i fakeInfo) IsDir() bool        { return i.dir }
func (i fakeInfo) Sys() interface{}   { return nil }
