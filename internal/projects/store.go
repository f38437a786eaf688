package projects

import (
	"context"
	"errors"
	"sort"
	"sync"

	"clipforge/internal/media"
)

// ErrNotFound is returned when a referenced project does not exist.
var ErrNotFound = errors.New("project not found")

// ErrClipNotFound is returned when a referenced clip does not exist.
var ErrClipNotFound = errors.New("clip not found")

// ErrEffectNotFound is returned when a referenced effect does not exist.
var ErrEffectNotFound = errors.New("effect not found")

// Store persists project records. Get returns (nil, nil) when no project
// exists for the id.
type Store interface {
	Get(ctx context.Context, id string) (*media.Project, error)
	Put(ctx context.Context, project *media.Project) error
	List(ctx context.Context) ([]*media.Project, error)
	Count(ctx context.Context) (int, error)
}

// MemoryStore keeps projects in a mutex-guarded map of deep copies.
type MemoryStore struct {
	mu       sync.RWMutex
	projects map[string]*media.Project
}

// NewMemoryStore constructs an empty in-memory project store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{projects: make(map[string]*media.Project)}
}

// Get returns a deep copy of the stored project, or (nil, nil) when absent.
func (s *MemoryStore) Get(_ context.Context, id string) (*media.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	project, ok := s.projects[id]
	if !ok {
		return nil, nil
	}
	return project.Clone(), nil
}

// Put stores a deep copy of the project.
func (s *MemoryStore) Put(_ context.Context, project *media.Project) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.projects[project.ID] = project.Clone()
	return nil
}

// List returns deep copies of all projects ordered by creation time.
func (s *MemoryStore) List(_ context.Context) ([]*media.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	projects := make([]*media.Project, 0, len(s.projects))
	for _, project := range s.projects {
		projects = append(projects, project.Clone())
	}
	sort.Slice(projects, func(i, j int) bool {
		if projects[i].CreatedAt.Equal(projects[j].CreatedAt) {
			return projects[i].ID < projects[j].ID
		}
		return projects[i].CreatedAt.Before(projects[j].CreatedAt)
	})
	return projects, nil
}

// Count returns the number of stored projects.
func (s *MemoryStore) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.projects), nil
}

var _ Store = (*MemoryStore)(nil)
