package pets

// Pet es el único registro de la colección persistida.
// ID es opcional: los registros creados con asignación de ids desactivada
// (o editados a mano en el documento) pueden no tenerlo.
//
// Los miembros que no son id/name/type, y los valores de esos tres que no
// tienen el tipo esperado, se conservan en extra y vuelven a escribirse tal
// cual (ver codec.go).
type Pet struct {
	ID   *int   `json:"id,omitempty"`
	Name string `json:"name"`
	Type string `json:"type"`

	extra []member
}

// HasID indica si el registro tiene el id buscado.
func (p Pet) HasID(id int) bool {
	return p.ID != nil && *p.ID == id
}

// NextID devuelve max(ids existentes)+1, empezando en 1.
// Los registros sin id entero no cuentan.
func NextID(items []Pet) int {
	highest := 0
	for _, p := range items {
		if p.ID != nil && *p.ID > highest {
			highest = *p.ID
		}
	}
	return highest + 1
}

func intPtr(v int) *int { return &v }
