package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"pets-service/internal/adapters/storage/document"
	"pets-service/internal/domain/pets"
)

// DefaultCollection es la fila usada cuando no se indica otra.
const DefaultCollection = "pets"

// PetsRepo guarda la colección completa como JSONB en una fila de pet_collections.
// El read-modify-write corre en una transacción con SELECT ... FOR UPDATE.
type PetsRepo struct {
	db         *sql.DB
	collection string
}

func NewPetsRepo(db *sql.DB, collection string) *PetsRepo {
	if collection == "" {
		collection = DefaultCollection
	}
	return &PetsRepo{db: db, collection: collection}
}

func (r *PetsRepo) List(ctx context.Context) ([]pets.Pet, error) {
	var raw []byte
	err := r.db.QueryRowContext(ctx, `
		SELECT document
		FROM pet_collections
		WHERE name = $1
	`, r.collection).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return []pets.Pet{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("select collection %q: %w", r.collection, err)
	}
	return document.Decode(raw)
}

func (r *PetsRepo) Mutate(ctx context.Context, fn pets.MutateFunc) (err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	// Garantiza que exista la fila para poder bloquearla.
	if _, err = tx.ExecContext(ctx, `
		INSERT INTO pet_collections (name, document)
		VALUES ($1, '[]'::jsonb)
		ON CONFLICT (name) DO NOTHING
	`, r.collection); err != nil {
		return fmt.Errorf("init collection %q: %w", r.collection, err)
	}

	var raw []byte
	if err = tx.QueryRowContext(ctx, `
		SELECT document
		FROM pet_collections
		WHERE name = $1
		FOR UPDATE
	`, r.collection).Scan(&raw); err != nil {
		return fmt.Errorf("lock collection %q: %w", r.collection, err)
	}

	items, err := document.Decode(raw)
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

	if _, err = tx.ExecContext(ctx, `
		UPDATE pet_collections
		SET document = $2::jsonb, updated_at = now()
		WHERE name = $1
	`, r.collection, string(b)); err != nil {
		return fmt.Errorf("update collection %q: %w", r.collection, err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}
