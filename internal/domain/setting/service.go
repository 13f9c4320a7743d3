package setting

import (
	"context"
	"fmt"
	"sync"

	"gallery/internal/domain"
)

type Repository interface {
	Load(ctx context.Context) (Map, error)
	Set(ctx context.Context, name, value string) error
}

// Validator checks a candidate configuration before it is stored.
type Validator func(Store) error

type Service interface {
	All() Map
	Set(ctx context.Context, viewer domain.Viewer, name, value string) error
	Reload(ctx context.Context) error
}

type service struct {
	// mu serializes writers so concurrent Sets never lose each other's keys.
	mu       sync.Mutex
	repo     Repository
	snap     *Snapshot
	defaults Source
	validate Validator
}

// NewService manages the stored layer of a Layered{snap, defaults} store.
func NewService(repo Repository, snap *Snapshot, defaults Source, validate Validator) Service {
	return &service{
		repo:     repo,
		snap:     snap,
		defaults: defaults,
		validate: validate,
	}
}

func (s *service) All() Map {
	return s.snap.Current().Clone()
}

func (s *service) Set(ctx context.Context, viewer domain.Viewer, name, value string) error {
	if !viewer.Admin {
		return domain.PermissionDenied("only admins can change settings")
	}
	if name == "" {
		return domain.BadRequest("setting name is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.snap.Current().Clone()
	next[name] = value
	if s.validate != nil {
		if err := s.validate(Layered{next, s.defaults}); err != nil {
			return domain.BadRequest(err.Error())
		}
	}

	if err := s.repo.Set(ctx, name, value); err != nil {
		return fmt.Errorf("store setting %q: %w", name, err)
	}
	s.snap.Replace(next)
	return nil
}

func (s *service) Reload(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, err := s.repo.Load(ctx)
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}
	s.snap.Replace(m)
	return nil
}
