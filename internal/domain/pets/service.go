package pets

import (
	"context"
	"errors"
	"fmt"

	"pets-service/internal/platform/logger"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
)

// Operaciones y resultados usados como labels de métricas.
const (
	OpList   = "list"
	OpCreate = "create"
	OpUpdate = "update"

	OutcomeOK       = "ok"
	OutcomeInvalid  = "invalid"
	OutcomeNotFound = "not_found"
	OutcomeError    = "error"
)

// Recorder recibe las observaciones del servicio (implementado por platform/metrics).
type Recorder interface {
	RecordPetOperation(op, outcome string)
	SetPetsStored(n int)
}

type nopRecorder struct{}

func (nopRecorder) RecordPetOperation(string, string) {}
func (nopRecorder) SetPetsStored(int)                 {}

type Service struct {
	repo      Repository
	log       logger.Logger
	rec       Recorder
	assignIDs bool
}

type Option func(*Service)

func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.log = l
		}
	}
}

func WithRecorder(r Recorder) Option {
	return func(s *Service) {
		if r != nil {
			s.rec = r
		}
	}
}

// WithIDAssignment controla si Create asigna id. Con false se conserva el
// comportamiento histórico: el registro creado no lleva id.
func WithIDAssignment(enabled bool) Option {
	return func(s *Service) {
		s.assignIDs = enabled
	}
}

func NewService(repo Repository, opts ...Option) *Service {
	s := &Service{
		repo:      repo,
		log:       logger.Nop(),
		rec:       nopRecorder{},
		assignIDs: true,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Input son los campos de create/update. nil = ausente.
type Input struct {
	Name *string
	Type *string
}

func (in Input) valid() bool {
	return in.Name != nil && *in.Name != "" &&
		in.Type != nil && *in.Type != ""
}

func (s *Service) List(ctx context.Context) ([]Pet, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		s.rec.RecordPetOperation(OpList, OutcomeError)
		return nil, fmt.Errorf("list pets: %w", err)
	}
	if items == nil {
		items = []Pet{}
	}
	s.rec.RecordPetOperation(OpList, OutcomeOK)
	s.rec.SetPetsStored(len(items))
	return items, nil
}

func (s *Service) Create(ctx context.Context, in Input) (Pet, error) {
	if !in.valid() {
		s.rec.RecordPetOperation(OpCreate, OutcomeInvalid)
		return Pet{}, ErrInvalidInput
	}

	var (
		created Pet
		stored  int
	)
	err := s.repo.Mutate(ctx, func(items []Pet) ([]Pet, error) {
		created = Pet{Name: *in.Name, Type: *in.Type}
		if s.assignIDs {
			created.ID = intPtr(NextID(items))
		}
		items = append(items, created)
		stored = len(items)
		return items, nil
	})
	if err != nil {
		s.rec.RecordPetOperation(OpCreate, OutcomeError)
		return Pet{}, fmt.Errorf("create pet: %w", err)
	}

	s.rec.RecordPetOperation(OpCreate, OutcomeOK)
	s.rec.SetPetsStored(stored)
	s.log.Debug("pet created", map[string]any{"name": created.Name, "type": created.Type})
	return created, nil
}

// Update busca primero el registro y recién después valida el body:
// un id inexistente es 404 aunque el body sea inválido.
func (s *Service) Update(ctx context.Context, id int, in Input) (Pet, error) {
	var (
		updated Pet
		stored  int
	)
	err := s.repo.Mutate(ctx, func(items []Pet) ([]Pet, error) {
		idx := -1
		for i, p := range items {
			if p.HasID(id) {
				idx = i
				break
			}
		}
		if idx == -1 {
			return nil, ErrNotFound
		}
		if !in.valid() {
			return nil, ErrInvalidInput
		}

		updated = Pet{ID: intPtr(id), Name: *in.Name, Type: *in.Type}
		items[idx] = updated
		stored = len(items)
		return items, nil
	})
	switch {
	case errors.Is(err, ErrNotFound):
		s.rec.RecordPetOperation(OpUpdate, OutcomeNotFound)
		return Pet{}, ErrNotFound
	case errors.Is(err, ErrInvalidInput):
		s.rec.RecordPetOperation(OpUpdate, OutcomeInvalid)
		return Pet{}, ErrInvalidInput
	case err != nil:
		s.rec.RecordPetOperation(OpUpdate, OutcomeError)
		return Pet{}, fmt.Errorf("update pet %d: %w", id, err)
	}

	s.rec.RecordPetOperation(OpUpdate, OutcomeOK)
	s.rec.SetPetsStored(stored)
	s.log.Debug("pet updated", map[string]any{"id": id})
	return updated, nil
}
