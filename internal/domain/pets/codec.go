package pets

import (
	"bytes"
	"encoding/json"
	"errors"
	"math"
	"strconv"
)

const (
	keyID   = "id"
	keyName = "name"
	keyType = "type"

	// encima de 2^53 un float64 ya no distingue enteros consecutivos
	maxSafeInteger = 1 << 53
)

// member es un par clave/valor crudo del objeto original.
// raw nil marca un campo conocido que no venía en el registro.
type member struct {
	key string
	raw json.RawMessage
}

var errNotObject = errors.New("pet record is not a JSON object")

// UnmarshalJSON acepta cualquier objeto JSON. id solo se toma como entero si
// es un número con valor integral (1, 1.0, 1e0); cualquier otro valor queda
// crudo y el registro no matchea ningún id.
func (p *Pet) UnmarshalJSON(b []byte) error {
	dec := json.NewDecoder(bytes.NewReader(b))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return errNotObject
	}

	var out Pet
	seen := map[string]bool{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, _ := tok.(string)

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return err
		}
		seen[key] = true

		switch key {
		case keyID:
			out.ID = nil
			out.dropExtra(keyID)
			if id, ok := integralNumber(raw); ok {
				out.ID = &id
			} else {
				out.setExtra(keyID, raw)
			}
		case keyName, keyType:
			dst := &out.Name
			if key == keyType {
				dst = &out.Type
			}
			*dst = ""
			out.dropExtra(key)
			if s, ok := jsonString(raw); ok {
				*dst = s
			} else {
				out.setExtra(key, raw)
			}
		default:
			out.setExtra(key, raw)
		}
	}
	if _, err := dec.Token(); err != nil {
		return err
	}

	for _, k := range []string{keyName, keyType} {
		if !seen[k] {
			out.extra = append(out.extra, member{key: k})
		}
	}

	*p = out
	return nil
}

// MarshalJSON escribe id, name y type primero y después los miembros
// desconocidos en su orden original.
func (p Pet) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	n := 0
	put := func(key string, raw []byte) {
		if n > 0 {
			buf.WriteByte(',')
		}
		k, _ := json.Marshal(key)
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(raw)
		n++
	}

	switch {
	case p.ID != nil:
		put(keyID, []byte(strconv.Itoa(*p.ID)))
	default:
		if m, ok := p.lookupExtra(keyID); ok {
			put(keyID, m.raw)
		}
	}

	for _, f := range []struct {
		key string
		val string
	}{{keyName, p.Name}, {keyType, p.Type}} {
		if m, ok := p.lookupExtra(f.key); ok {
			if m.raw != nil {
				put(f.key, m.raw)
			}
			continue
		}
		s, err := json.Marshal(f.val)
		if err != nil {
			return nil, err
		}
		put(f.key, s)
	}

	for _, m := range p.extra {
		switch m.key {
		case keyID, keyName, keyType:
			continue
		}
		put(m.key, m.raw)
	}

	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (p *Pet) setExtra(key string, raw json.RawMessage) {
	// clave repetida: gana el último valor, en la posición del primero
	for i := range p.extra {
		if p.extra[i].key == key {
			p.extra[i].raw = raw
			return
		}
	}
	p.extra = append(p.extra, member{key: key, raw: raw})
}

func (p *Pet) dropExtra(key string) {
	for i := range p.extra {
		if p.extra[i].key == key {
			p.extra = append(p.extra[:i], p.extra[i+1:]...)
			if len(p.extra) == 0 {
				p.extra = nil
			}
			return
		}
	}
}

func (p Pet) lookupExtra(key string) (member, bool) {
	for _, m := range p.extra {
		if m.key == key {
			return m, true
		}
	}
	return member{}, false
}

func jsonString(raw json.RawMessage) (string, bool) {
	if len(raw) == 0 || raw[0] != '"' {
		return "", false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", false
	}
	return s, true
}

// integralNumber solo acepta literales numéricos (no strings) con valor entero.
func integralNumber(raw json.RawMessage) (int, bool) {
	if len(raw) == 0 || (raw[0] != '-' && (raw[0] < '0' || raw[0] > '9')) {
		return 0, false
	}
	f, err := strconv.ParseFloat(string(raw), 64)
	if err != nil || f != math.Trunc(f) || math.Abs(f) > maxSafeInteger {
		return 0, false
	}
	return int(f), true
}
