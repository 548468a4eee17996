// Package file guarda la colección de mascotas como un documento JSON en disco.
package file

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"pets-service/internal/adapters/storage/document"
	"pets-service/internal/domain/pets"
	"pets-service/internal/platform/logger"

	"github.com/google/uuid"
)

// ReadMode define qué pasa cuando el documento no se puede leer.
type ReadMode string

const (
	// ReadStrict: archivo inexistente o vacío = colección vacía; el resto es error.
	ReadStrict ReadMode = "strict"
	// ReadLenient: cualquier fallo de lectura o parseo = colección vacía.
	ReadLenient ReadMode = "lenient"
)

const defaultPerm fs.FileMode = 0o644

type PetRepo struct {
	mu   sync.Mutex
	path string
	mode ReadMode
	perm fs.FileMode
	log  logger.Logger
}

type Option func(*PetRepo)

func WithReadMode(m ReadMode) Option {
	return func(r *PetRepo) {
		if m != "" {
			r.mode = m
		}
	}
}

func WithLogger(l logger.Logger) Option {
	return func(r *PetRepo) {
		if l != nil {
			r.log = l
		}
	}
}

func WithPerm(p fs.FileMode) Option {
	return func(r *PetRepo) {
		if p != 0 {
			r.perm = p
		}
	}
}

func NewPetRepo(path string, opts ...Option) *PetRepo {
	r := &PetRepo{
		path: path,
		mode: ReadStrict,
		perm: defaultPerm,
		log:  logger.Nop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Path devuelve la ruta del documento.
func (r *PetRepo) Path() string { return r.path }

// List también toma el lock: no queremos leer en medio de un Mutate.
func (r *PetRepo) List(ctx context.Context) ([]pets.Pet, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	return r.read()
}

func (r *PetRepo) Mutate(ctx context.Context, fn pets.MutateFunc) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	items, err := r.read()
	if err != nil {
		return err
	}

	next, err := fn(items)
	if err != nil {
		return err
	}

	return r.write(next)
}

func (r *PetRepo) read() ([]pets.Pet, error) {
	b, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []pets.Pet{}, nil
		}
		return r.readFailed(fmt.Errorf("read %s: %w", r.path, err))
	}

	items, err := document.Decode(b)
	if err != nil {
		return r.readFailed(fmt.Errorf("read %s: %w", r.path, err))
	}
	return items, nil
}

func (r *PetRepo) readFailed(err error) ([]pets.Pet, error) {
	if r.mode != ReadLenient {
		return nil, err
	}
	r.log.Warn("pets document unreadable; using empty collection", map[string]any{
		"path":  r.path,
		"error": err,
	})
	return []pets.Pet{}, nil
}

// write escribe a un temporal en el mismo directorio y hace rename,
// así un crash a mitad de escritura deja intacto el documento anterior.
func (r *PetRepo) write(items []pets.Pet) error {
	b, err := document.Encode(items)
	if err != nil {
		return err
	}

	dir, base := filepath.Split(r.path)
	if dir == "" {
		dir = "."
	}
	tmp := filepath.Join(dir, "."+base+"."+uuid.NewString()+".tmp")

	f, err := os.OpenFile(tmp, os.O_WRONLY|os.O_CREATE|os.O_EXCL, r.perm)
	if err != nil {
		return fmt.Errorf("write %s: %w", r.path, err)
	}

	if _, err := f.Write(b); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return fmt.Errorf("write %s: %w", r.path, err)
	}
	if err := f.Sync(); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return fmt.Errorf("sync %s: %w", r.path, err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("close %s: %w", r.path, err)
	}

	if err := os.Rename(tmp, r.path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("rename %s: %w", r.path, err)
	}
	return nil
}
