package jobs

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/anatolykoptev/go_jobagent/internal/engine"
)

// ProfileStore holds the searcher's profile for the lifetime of the process
// and persists it as JSON under the data dir, so a session survives restarts.
// All methods are safe for concurrent use.
type ProfileStore struct {
	mu      sync.RWMutex
	path    string
	profile engine.UserProfile
}

// NewProfileStore loads profile.json from dataDir, or starts from the default
// profile when the file is absent or unreadable.
func NewProfileStore(dataDir string) *ProfileStore {
	s := &ProfileStore{
		path:    filepath.Join(dataDir, "profile.json"),
		profile: engine.NewUserProfile(),
	}
	if data, err := os.ReadFile(s.path); err == nil {
		var p engine.UserProfile
		if json.Unmarshal(data, &p) == nil {
			if p.Skills == nil {
				p.Skills = []string{}
			}
			if p.Experience == nil {
				p.Experience = []string{}
			}
			if p.Qualifications == nil {
				p.Qualifications = []string{}
			}
			if p.MinSalary < 0 {
				p.MinSalary = engine.DefaultMinSalary
			}
			s.profile = p
		}
	}
	return s
}

// Get returns a snapshot of the current profile. Mutating the returned value
// does not affect the store.
func (s *ProfileStore) Get() engine.UserProfile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneProfile(s.profile)
}

// Update overwrites the supplied fields wholesale: a provided list replaces
// the stored one entirely, omitted fields keep their value. A negative
// MinSalary is rejected. The updated profile is persisted before returning.
func (s *ProfileStore) Update(input engine.ProfileUpdateInput) (engine.UserProfile, error) {
	if input.MinSalary != nil && *input.MinSalary < 0 {
		return engine.UserProfile{}, fmt.Errorf("profile: min_salary must be non-negative, got %d", *input.MinSalary)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if input.Skills != nil {
		s.profile.Skills = append([]string{}, input.Skills...)
	}
	if input.Experience != nil {
		s.profile.Experience = append([]string{}, input.Experience...)
	}
	if input.Qualifications != nil {
		s.profile.Qualifications = append([]string{}, input.Qualifications...)
	}
	if input.MinSalary != nil {
		s.profile.MinSalary = *input.MinSalary
	}

	if err := s.save(); err != nil {
		return engine.UserProfile{}, err
	}
	engine.IncrProfileUpdates()
	return cloneProfile(s.profile), nil
}

// save writes the profile JSON. Callers hold s.mu.
func (s *ProfileStore) save() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("profile: mkdir: %w", err)
	}
	data, err := json.MarshalIndent(s.profile, "", "  ")
	if err != nil {
		return fmt.Errorf("profile: marshal: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("profile: write: %w", err)
	}
	return nil
}

func cloneProfile(p engine.UserProfile) engine.UserProfile {
	return engine.UserProfile{
		Skills:         append([]string{}, p.Skills...),
		Experience:     append([]string{}, p.Experience...),
		Qualifications: append([]string{}, p.Qualifications...),
		MinSalary:      p.MinSalary,
	}
}
