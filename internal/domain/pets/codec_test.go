package pets

import (
	"encoding/json"
	"testing"
)

func roundTrip(t *testing.T, in string) (Pet, string) {
	t.Helper()

	var p Pet
	if err := json.Unmarshal([]byte(in), &p); err != nil {
		t.Fatalf("unmarshal %s: %v", in, err)
	}
	b, err := json.Marshal(p)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return p, string(b)
}

func TestPetJSON_KeepsUnknownMembers(t *testing.T) {
	p, out := roundTrip(t, `{"id":1,"name":"Rex","type":"dog","age":3,"owner":{"name":"Ana"}}`)

	if !p.HasID(1) || p.Name != "Rex" || p.Type != "dog" {
		t.Fatalf("unexpected typed view: %+v", p)
	}
	want := `{"id":1,"name":"Rex","type":"dog","age":3,"owner":{"name":"Ana"}}`
	if out != want {
		t.Fatalf("got %s want %s", out, want)
	}
}

func TestPetJSON_IDs(t *testing.T) {
	cases := []struct {
		in      string
		matches bool
		out     string
	}{
		{`{"id":1.0,"name":"Rex","type":"dog"}`, true, `{"id":1,"name":"Rex","type":"dog"}`},
		{`{"id":1e0,"name":"Rex","type":"dog"}`, true, `{"id":1,"name":"Rex","type":"dog"}`},
		{`{"id":"1","name":"Rex","type":"dog"}`, false, `{"id":"1","name":"Rex","type":"dog"}`},
		{`{"id":1.5,"name":"Rex","type":"dog"}`, false, `{"id":1.5,"name":"Rex","type":"dog"}`},
		{`{"id":null,"name":"Rex","type":"dog"}`, false, `{"id":null,"name":"Rex","type":"dog"}`},
		{`{"name":"Rex","type":"dog"}`, false, `{"name":"Rex","type":"dog"}`},
	}
	for _, tc := range cases {
		p, out := roundTrip(t, tc.in)
		if p.HasID(1) != tc.matches {
			t.Fatalf("%s: HasID(1)=%v want %v", tc.in, p.HasID(1), tc.matches)
		}
		if out != tc.out {
			t.Fatalf("%s: got %s want %s", tc.in, out, tc.out)
		}
	}
}

func TestPetJSON_NonStringAndMissingFields(t *testing.T) {
	p, out := roundTrip(t, `{"id":2,"name":5}`)
	if p.Name != "" || p.Type != "" {
		t.Fatalf("expected empty typed name/type, got %+v", p)
	}
	if out != `{"id":2,"name":5}` {
		t.Fatalf("got %s", out)
	}
}

func TestPetJSON_DuplicateKeyLastWins(t *testing.T) {
	p, out := roundTrip(t, `{"name":"A","type":"dog","age":1,"name":"B","age":2}`)
	if p.Name != "B" {
		t.Fatalf("expected last name, got %q", p.Name)
	}
	if out != `{"name":"B","type":"dog","age":2}` {
		t.Fatalf("got %s", out)
	}
}

func TestPetJSON_RejectsNonObjects(t *testing.T) {
	for _, in := range []string{`[]`, `1`, `"rex"`, `null`} {
		var p Pet
		if err := p.UnmarshalJSON([]byte(in)); err == nil {
			t.Fatalf("expected error for %s", in)
		}
	}
}

func TestNextID_IgnoresNonIntegralIDs(t *testing.T) {
	var items []Pet
	if err := json.Unmarshal([]byte(`[{"id":"9","name":"a","type":"b"},{"id":4.0,"name":"c","type":"d"}]`), &items); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got := NextID(items); got != 5 {
		t.Fatalf("NextID = %d, want 5", got)
	}
}
