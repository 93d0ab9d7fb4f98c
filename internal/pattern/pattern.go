package pattern

import (
	"path/filepath"
	"strings"
)

// Pattern decides which directory entries a routine acts on.
// Implementations must be pure: Matches has no side effects and is
// deterministic for a given path.
type Pattern interface {
	Matches(path string) bool
	// String returns the config-facing representation, used in logs
	// and journal rows.
	String() string
}

// Any matches every path.
type Any struct{}

func (Any) Matches(string) bool { return true }

func (Any) String() string { return "any" }

// Extension matches paths whose extension component equals Ext exactly.
// The comparison is case-sensitive and Ext carries no leading dot.
// A path with no extension never matches a non-empty Ext; a dotfile
// whose only dot is the leading one (".lnk") has no extension.
type Extension struct {
	Ext string
}

func (p Extension) Matches(path string) bool {
	base := strings.TrimPrefix(filepath.Base(path), ".")
	ext := strings.TrimPrefix(filepath.Ext(base), ".")
	return ext == p.Ext
}

func (p Extension) String() string { return "extension:" + p.Ext }
