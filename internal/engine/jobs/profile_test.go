package jobs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/anatolykoptev/go_jobagent/internal/engine"
)

func TestProfileStore_Defaults(t *testing.T) {
	s := NewProfileStore(t.TempDir())
	p := s.Get()
	if p.MinSalary != engine.DefaultMinSalary {
		t.Errorf("MinSalary = %d, want %d", p.MinSalary, engine.DefaultMinSalary)
	}
	if len(p.Skills) != 0 || len(p.Experience) != 0 || len(p.Qualifications) != 0 {
		t.Errorf("new profile not empty: %+v", p)
	}
}

func TestProfileStore_WholesaleOverwrite(t *testing.T) {
	s := NewProfileStore(t.TempDir())

	_, err := s.Update(engine.ProfileUpdateInput{
		Skills:     []string{"python", "go", "sql"},
		Experience: []string{"payments"},
	})
	if err != nil {
		t.Fatal(err)
	}

	// A new Skills list replaces the old one entirely; omitted fields
	// keep their value.
	p, err := s.Update(engine.ProfileUpdateInput{Skills: []string{"rust"}})
	if err != nil {
		t.Fatal(err)
	}
	if len(p.Skills) != 1 || p.Skills[0] != "rust" {
		t.Errorf("Skills = %v, want [rust]", p.Skills)
	}
	if len(p.Experience) != 1 || p.Experience[0] != "payments" {
		t.Errorf("Experience = %v, want [payments]", p.Experience)
	}
	if p.MinSalary != engine.DefaultMinSalary {
		t.Errorf("MinSalary = %d, want untouched default", p.MinSalary)
	}
}

func TestProfileStore_MinSalary(t *testing.T) {
	s := NewProfileStore(t.TempDir())

	min := 65000
	p, err := s.Update(engine.ProfileUpdateInput{MinSalary: &min})
	if err != nil {
		t.Fatal(err)
	}
	if p.MinSalary != 65000 {
		t.Errorf("MinSalary = %d, want 65000", p.MinSalary)
	}

	bad := -1
	if _, err := s.Update(engine.ProfileUpdateInput{MinSalary: &bad}); err == nil {
		t.Error("negative min_salary accepted, want error")
	}
}

func TestProfileStore_Persistence(t *testing.T) {
	dir := t.TempDir()

	s := NewProfileStore(dir)
	if _, err := s.Update(engine.ProfileUpdateInput{Skills: []string{"kotlin"}}); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(filepath.Join(dir, "profile.json")); err != nil {
		t.Fatalf("profile.json not written: %v", err)
	}

	// A fresh store over the same dir sees the saved profile.
	reloaded := NewProfileStore(dir).Get()
	if len(reloaded.Skills) != 1 || reloaded.Skills[0] != "kotlin" {
		t.Errorf("reloaded Skills = %v, want [kotlin]", reloaded.Skills)
	}
}

func TestProfileStore_GetReturnsSnapshot(t *testing.T) {
	s := NewProfileStore(t.TempDir())
	if _, err := s.Update(engine.ProfileUpdateInput{Skills: []string{"python"}}); err != nil {
		t.Fatal(err)
	}

	p := s.Get()
	p.Skills[0] = "mutated"

	if got := s.Get().Skills[0]; got != "python" {
		t.Errorf("store mutated through snapshot: %q", got)
	}
}
