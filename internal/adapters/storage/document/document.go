// Package document codifica la colección de mascotas como un único array JSON.
// Lo comparten todos los backends para que el formato persistido sea el mismo.
package document

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"pets-service/internal/domain/pets"
)

// ErrCorruptDocument indica que el contenido existe pero no es un array de mascotas.
var ErrCorruptDocument = errors.New("corrupt pets document")

// Decode parsea el documento. Vacío o solo espacios = colección vacía.
func Decode(b []byte) ([]pets.Pet, error) {
	if len(bytes.TrimSpace(b)) == 0 {
		return []pets.Pet{}, nil
	}

	var items []pets.Pet
	if err := json.Unmarshal(b, &items); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptDocument, err)
	}
	// "null" decodifica a nil
	if items == nil {
		items = []pets.Pet{}
	}
	return items, nil
}

// Encode serializa con indentación de 2 espacios y sin newline final.
func Encode(items []pets.Pet) ([]byte, error) {
	if items == nil {
		items = []pets.Pet{}
	}
	b, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode pets document: %w", err)
	}
	return b, nil
}
