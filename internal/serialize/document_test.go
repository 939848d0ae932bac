package serialize

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

type testDoc struct {
	Field  string `msgpack:"field"`
	Op     string `msgpack:"op"`
	Values []any  `msgpack:"values"`
}

func TestPackUnpack(t *testing.T) {
	in := testDoc{Field: "project", Op: "IN", Values: []any{"A", "B", 3}}

	data, err := Pack(in)
	if err != nil {
		t.Fatalf("Pack failed: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("JQL")) {
		t.Errorf("expected JQL header, got %q", data[:3])
	}
	if data[3] != Version {
		t.Errorf("expected version %d, got %d", Version, data[3])
	}

	var out testDoc
	if err := Unpack(data, &out); err != nil {
		t.Fatalf("Unpack failed: %v", err)
	}
	if out.Field != "project" || out.Op != "IN" {
		t.Errorf("unexpected document: %+v", out)
	}
	if len(out.Values) != 3 || out.Values[2] != int64(3) {
		t.Errorf("unexpected values: %#v", out.Values)
	}
}

func TestPackIsDeterministic(t *testing.T) {
	doc := map[string]any{"field": "status", "op": "=", "value": "Open"}

	a, err := Pack(doc)
	if err != nil {
		t.Fatalf("Pack failed: %v", err)
	}
	b, err := Pack(doc)
	if err != nil {
		t.Fatalf("Pack failed: %v", err)
	}
	if !bytes.Equal(a, b) {
		t.Error("expected equal documents to pack to equal bytes")
	}
}

func TestUnpackErrors(t *testing.T) {
	valid, err := Pack(testDoc{Field: "x"})
	if err != nil {
		t.Fatalf("Pack failed: %v", err)
	}

	tests := []struct {
		name string
		data []byte
		want error
	}{
		{"empty", nil, ErrBadHeader},
		{"short", []byte("JQ"), ErrBadHeader},
		{"wrong magic", []byte("XYZ\x01abc"), ErrBadHeader},
		{"future version", append([]byte("JQL\x09"), valid[4:]...), ErrUnsupportedVersion},
		{"corrupt payload", []byte("JQL\x01not zstd at all"), ErrCorrupt},
		{"empty payload", []byte("JQL\x01"), ErrCorrupt},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out testDoc
			err := Unpack(tt.data, &out)
			if !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestPackCompresses(t *testing.T) {
	doc := map[string]any{"values": []any{strings.Repeat("'project' IN ('A', 'B') AND ", 64)}}

	data, err := Pack(doc)
	if err != nil {
		t.Fatalf("Pack failed: %v", err)
	}
	if len(data) >= 64*28 {
		t.Errorf("expected compression, got %d bytes", len(data))
	}
}

func TestOversizedPayload(t *testing.T) {
	big := map[string]any{"value": strings.Repeat("x", MaxPayload)}
	if _, err := Pack(big); !errors.Is(err, ErrTooLarge) {
		t.Errorf("expected ErrTooLarge from Pack, got %v", err)
	}

	// A small compressed frame that expands past the limit.
	compressed, err := compress(make([]byte, 4*MaxPayload))
	if err != nil {
		t.Fatalf("compress failed: %v", err)
	}
	data := append([]byte("JQL\x01"), compressed...)

	var out map[string]any
	if err := Unpack(data, &out); !errors.Is(err, ErrTooLarge) {
		t.Errorf("expected ErrTooLarge from Unpack, got %v", err)
	}
	if _, err := Inspect(data); !errors.Is(err, ErrTooLarge) {
		t.Errorf("expected ErrTooLarge from Inspect, got %v", err)
	}
}

func TestInspect(t *testing.T) {
	data, err := Pack(testDoc{Field: "status", Op: "IN", Values: []any{"Open"}})
	if err != nil {
		t.Fatalf("Pack failed: %v", err)
	}

	m, err := Inspect(data)
	if err != nil {
		t.Fatalf("Inspect failed: %v", err)
	}
	if m["field"] != "status" || m["op"] != "IN" {
		t.Errorf("unexpected document: %v", m)
	}
	if _, err := Inspect([]byte("nope")); !errors.Is(err, ErrBadHeader) {
		t.Errorf("expected ErrBadHeader, got %v", err)
	}
}
