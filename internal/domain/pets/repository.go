package pets

import "context"

// MutateFunc recibe la colección completa y devuelve la colección a escribir.
// Si devuelve error, el repositorio no escribe nada.
type MutateFunc func(items []Pet) ([]Pet, error)

// Repository guarda la colección entera como un único documento.
// Mutate hace read-modify-write dentro de una sección crítica del backend.
type Repository interface {
	List(ctx context.Context) ([]Pet, error)
	Mutate(ctx context.Context, fn MutateFunc) error
}
