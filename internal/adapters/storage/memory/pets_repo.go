package memory

import (
	"context"
	"sync"

	"pets-service/internal/adapters/storage/document"
	"pets-service/internal/domain/pets"
)

// petRepo guarda el documento ya codificado: cada lectura devuelve una copia
// y el formato es el mismo que en disco.
type petRepo struct {
	mu  sync.Mutex
	doc []byte
}

func NewPetRepo() pets.Repository {
	return &petRepo{}
}

// NewPetRepoWithDocument arranca con un documento existente (seed de tests/dev).
func NewPetRepoWithDocument(doc []byte) pets.Repository {
	return &petRepo{doc: append([]byte(nil), doc...)}
}

func (r *petRepo) List(ctx context.Context) ([]pets.Pet, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	return document.Decode(r.doc)
}

func (r *petRepo) Mutate(ctx context.Context, fn pets.MutateFunc) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	items, err := document.Decode(r.doc)
	if err != nil {
		return err
	}

	next, err := fn(items)
	if err != nil {
		return err
	}

	b, err := document.Encode(next)
	if err != nil {
		return err
	}
	r.doc = b
	return nil
}
