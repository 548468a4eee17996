package pets

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"
	"unicode"

	"pets-service/internal/platform/logger"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

// Mensajes de error visibles para el cliente. Son parte del contrato HTTP.
const (
	MsgCreateFieldsRequired = "Name and type are required for a new pet."
	MsgUpdateFieldsRequired = "Name and type are required for editing a pet."
	MsgNotFound             = "Pet not found."
	MsgInvalidJSON          = "Invalid JSON body."
	MsgBodyTooLarge         = "Request body too large."
	MsgInternal             = "Internal server error."
)

const maxBodyBytes = 1 << 20

func RegisterRoutes(r chi.Router, svc *Service, log logger.Logger) {
	if log == nil {
		log = logger.Nop()
	}

	r.Get("/pets", listPetsHandler(svc, log))
	r.Post("/pets", createPetHandler(svc, log))
	r.Put("/pets/{id}", updatePetHandler(svc, log))
}

// petRequest es el body de create/update. Los campos quedan crudos para
// distinguir ausente / null / "" / 0 / false de un string con contenido.
type petRequest struct {
	Name json.RawMessage `json:"name" swaggertype:"string" example:"Rex"`
	Type json.RawMessage `json:"type" swaggertype:"string" example:"dog"`
}

type errorResponse struct {
	Error string `json:"error" example:"Pet not found."`
}

var errBodyTooLarge = errors.New("request body too large")

// decodePetRequest: body vacío cuenta como {}.
func decodePetRequest(w http.ResponseWriter, r *http.Request) (Input, error) {
	raw, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return Input{}, errBodyTooLarge
		}
		return Input{}, err
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return Input{}, nil
	}

	var req petRequest
	if err := json.Unmarshal(raw, &req); err != nil {
		return Input{}, err
	}
	return Input{Name: textField(req.Name), Type: textField(req.Type)}, nil
}

// textField devuelve nil salvo que el valor sea un string JSON no vacío.
// null, "", 0, false y cualquier otro tipo cuentan como ausentes.
func textField(raw json.RawMessage) *string {
	if len(raw) == 0 {
		return nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil || s == "" {
		return nil
	}
	return &s
}

// listPetsHandler godoc
// @Summary Listar mascotas
// @Description Devuelve la colección completa en orden de inserción. Un documento inexistente o vacío devuelve `[]`.
// @Tags pets
// @Produce json
// @Success 200 {array} Pet
// @Failure 500 {object} errorResponse
// @Router /pets [get]
func listPetsHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.List(r.Context())
		if err != nil {
			internalError(w, r, log, err)
			return
		}
		writeJSON(w, http.StatusOK, items)
	}
}

// createPetHandler godoc
// @Summary Crear mascota
// @Description Agrega una mascota al final de la colección. `name` y `type` deben ser strings no vacíos. El id se asigna como max(id)+1 salvo que `assign_ids` esté desactivado.
// @Tags pets
// @Accept json
// @Produce json
// @Param payload body petRequest true "Datos de la mascota"
// @Success 200 {object} Pet
// @Failure 400 {object} errorResponse "Name and type are required for a new pet."
// @Failure 413 {object} errorResponse "Request body too large."
// @Failure 500 {object} errorResponse
// @Router /pets [post]
func createPetHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		in, err := decodePetRequest(w, r)
		if err != nil {
			writeDecodeError(w, err)
			return
		}

		p, err := svc.Create(r.Context(), in)
		if err != nil {
			switch {
			case errors.Is(err, ErrInvalidInput):
				writeError(w, http.StatusBadRequest, MsgCreateFieldsRequired)
			default:
				internalError(w, r, log, err)
			}
			return
		}

		writeJSON(w, http.StatusOK, p)
	}
}

// updatePetHandler godoc
// @Summary Editar mascota
// @Description Reemplaza el primer registro con ese id por `{id, name, type}`. Si el id no existe responde 404 aunque el body sea inválido.
// @Tags pets
// @Accept json
// @Produce json
// @Param id path int true "ID de la mascota"
// @Param payload body petRequest true "Datos de la mascota"
// @Success 200 {object} Pet
// @Failure 400 {object} errorResponse "Name and type are required for editing a pet."
// @Failure 404 {object} errorResponse "Pet not found."
// @Failure 413 {object} errorResponse "Request body too large."
// @Failure 500 {object} errorResponse
// @Router /pets/{id} [put]
func updatePetHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		in, err := decodePetRequest(w, r)
		if err != nil {
			writeDecodeError(w, err)
			return
		}

		id, ok := parseID(chi.URLParam(r, "id"))
		if !ok {
			writeError(w, http.StatusNotFound, MsgNotFound)
			return
		}

		p, err := svc.Update(r.Context(), id, in)
		if err != nil {
			switch {
			case errors.Is(err, ErrNotFound):
				writeError(w, http.StatusNotFound, MsgNotFound)
			case errors.Is(err, ErrInvalidInput):
				writeError(w, http.StatusBadRequest, MsgUpdateFieldsRequired)
			default:
				internalError(w, r, log, err)
			}
			return
		}

		writeJSON(w, http.StatusOK, p)
	}
}

func writeDecodeError(w http.ResponseWriter, err error) {
	if errors.Is(err, errBodyTooLarge) {
		writeError(w, http.StatusRequestEntityTooLarge, MsgBodyTooLarge)
		return
	}
	writeError(w, http.StatusBadRequest, MsgInvalidJSON)
}

// parseID toma el prefijo entero del segmento como parseInt en JS:
// espacios iniciales, signo opcional, "0x" para hexadecimal, y dígitos
// hasta el primer carácter inválido ("2abc" = 2). Sin dígitos no hay id.
func parseID(s string) (int, bool) {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)

	neg := false
	if s != "" && (s[0] == '+' || s[0] == '-') {
		neg = s[0] == '-'
		s = s[1:]
	}

	base := 10
	if len(s) > 1 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') {
		base = 16
		s = s[2:]
	}

	end := 0
	for end < len(s) && digitValue(s[end]) < base {
		end++
	}
	if end == 0 {
		return 0, false
	}

	n, err := strconv.ParseInt(s[:end], base, 64)
	if err != nil || n > maxSafeInteger {
		// fuera de rango no puede coincidir con un id asignado
		return 0, false
	}
	if neg {
		n = -n
	}
	return int(n), true
}

func digitValue(c byte) int {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0')
	case c >= 'a' && c <= 'z':
		return int(c-'a') + 10
	case c >= 'A' && c <= 'Z':
		return int(c-'A') + 10
	default:
		return 99
	}
}

func internalError(w http.ResponseWriter, r *http.Request, log logger.Logger, err error) {
	log.Error("request failed", map[string]any{
		"req_id": chimw.GetReqID(r.Context()),
		"method": r.Method,
		"path":   r.URL.Path,
		"error":  err,
	})
	writeError(w, http.StatusInternalServerError, MsgInternal)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
