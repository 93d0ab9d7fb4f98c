package pattern

import "testing"

func TestAnyMatchesEverything(t *testing.T) {
	paths := []string{
		"/tmp/a.lnk",
		"/tmp/noext",
		"relative/path.txt",
		"/tmp/dir",
		"",
	}
	p := Any{}
	for _, path := range paths {
		if !p.Matches(path) {
			t.Errorf("Any should match %q", path)
		}
	}
}

func TestExtensionExactMatch(t *testing.T) {
	p := Extension{Ext: "lnk"}

	cases := []struct {
		path string
		want bool
	}{
		{"/home/user/Desktop/a.lnk", true},
		{"a.lnk", true},
		{"/tmp/a.LNK", false},     // case-sensitive
		{"/tmp/a.lnk.bak", false}, // only the final extension counts
		{"/tmp/noext", false},     // no extension never matches
		{"/tmp/archive.tar.lnk", true},
		{"/tmp/a.lnkx", false},
	}

	for _, tc := range cases {
		if got := p.Matches(tc.path); got != tc.want {
			t.Errorf("Extension(lnk).Matches(%q) = %v, want %v", tc.path, got, tc.want)
		}
	}
}

// TestExtensionNeverMatchesDotfiles verifies a hidden file whose only dot
// is the leading one has no extension, so an extension routine must not
// remove it. A dotfile with a real extension still matches.
func TestExtensionNeverMatchesDotfiles(t *testing.T) {
	p := Extension{Ext: "lnk"}

	if p.Matches("/home/user/Desktop/.lnk") {
		t.Error("Extension(lnk) must not match dotfile .lnk")
	}
	if p.Matches(".lnk") {
		t.Error("Extension(lnk) must not match bare dotfile name .lnk")
	}
	if !p.Matches("/home/user/Desktop/.hidden.lnk") {
		t.Error("Extension(lnk) should match .hidden.lnk")
	}
}

func TestExtensionString(t *testing.T) {
	if got := (Extension{Ext: "log"}).String(); got != "extension:log" {
		t.Errorf("String() = %q, want %q", got, "extension:log")
	}
	if got := (Any{}).String(); got != "any" {
		t.Errorf("String() = %q, want %q", got, "any")
	}
}
