package routine

import (
	"errors"
	"testing"
	"time"

	"sweepd/internal/config"
	"sweepd/internal/pattern"
)

func TestNewRejectsNonPositiveInterval(t *testing.T) {
	_, err := New("/tmp/spool", 0, pattern.Any{})
	if !errors.Is(err, errNonPositiveInterval) {
		t.Errorf("Expected errNonPositiveInterval for zero interval, got %v", err)
	}
	_, err = New("/tmp/spool", -time.Minute, pattern.Any{})
	if !errors.Is(err, errNonPositiveInterval) {
		t.Errorf("Expected errNonPositiveInterval for negative interval, got %v", err)
	}
}

func TestNewDefaultsNilPatternToAny(t *testing.T) {
	r, err := New("/tmp/spool", time.Minute, nil)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if !r.Pattern.Matches("/tmp/spool/anything") {
		t.Error("nil pattern should default to Any")
	}
}

func TestFromConfig(t *testing.T) {
	cfg := &config.Config{
		Routines: []config.RoutineCfg{
			{
				Directory:       "/home/user/Desktop",
				IntervalMinutes: 60,
				Pattern:         config.PatternCfg{Type: "extension", Extension: "lnk"},
			},
			{
				Directory:       "/home/user/Downloads",
				IntervalMinutes: 30,
				Pattern:         config.PatternCfg{Type: "any"},
			},
		},
	}

	routines, err := FromConfig(cfg)
	if err != nil {
		t.Fatalf("FromConfig failed: %v", err)
	}
	if len(routines) != 2 {
		t.Fatalf("Expected 2 routines, got %d", len(routines))
	}

	if routines[0].Interval != time.Hour {
		t.Errorf("Interval = %v, want 1h", routines[0].Interval)
	}
	if !routines[0].Pattern.Matches("/home/user/Desktop/a.lnk") {
		t.Error("Extension pattern should match a.lnk")
	}
	if routines[0].Pattern.Matches("/home/user/Desktop/a.txt") {
		t.Error("Extension pattern should not match a.txt")
	}
}

func TestFromConfigRejectsZeroInterval(t *testing.T) {
	cfg := &config.Config{
		Routines: []config.RoutineCfg{
			{Directory: "/tmp/spool", IntervalMinutes: 0},
		},
	}

	if _, err := FromConfig(cfg); err == nil {
		t.Error("Expected error for zero interval")
	}
}
