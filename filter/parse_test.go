package filter

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/hugr-lab/jql-go"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name     string
		doc      string
		expected string
	}{
		{"default equal", `{"field": "project", "value": "PROJ"}`, "'project' = 'PROJ'"},
		{"number", `{"field": "originalEstimate", "op": ">=", "value": 240}`, "'originalEstimate' >= 240"},
		{"number text kept", `{"field": "cf[10010]", "op": "!=", "value": 1.50}`, "cf[10010] != 1.50"},
		{"exponent expanded", `{"field": "votes", "op": ">", "value": 1e3}`, "'votes' > 1000"},
		{"negative exponent", `{"field": "votes", "op": ">", "value": -2.50E-2}`, "'votes' > -0.025"},
		{"number object exponent", `{"field": "votes", "op": ">", "value": {"number": "1.5e2"}}`, "'votes' > 150"},
		{"big number", `{"field": "votes", "op": "gt", "value": {"number": "12345678901234567890.5"}}`, "'votes' > 12345678901234567890.5"},
		{"date", `{"field": "created", "value": {"date": "1984-06-03"}}`, "'created' = '1984/06/03'"},
		{"datetime", `{"field": "created", "value": {"datetime": "1984-06-03T08:20:34Z"}}`, "'created' = '1984/06/03 08:20'"},
		{"escaped", `{"field": "assignee", "value": "Bobby O'Shea"}`, `'assignee' = 'Bobby O\'Shea'`},
		{"bool", `{"field": "flagged", "value": true}`, "'flagged' = 'true'"},
		{"function value", `{"field": "assignee", "value": {"function": "currentUser"}}`, "'assignee' = currentUser()"},
		{"function in", `{"field": "fixVersion", "op": "in", "value": {"function": "unreleasedVersions", "args": ["JORP"]}}`, "'fixVersion' IN unreleasedVersions('JORP')"},
		{"default in", `{"field": "project", "values": ["A", "B", "A"]}`, "'project' IN ('A', 'B')"},
		{"empty set", `{"field": "labels", "op": "not in", "values": []}`, "'labels' NOT IN ()"},
		{"is empty", `{"field": "assignee", "op": "is empty"}`, "'assignee' IS EMPTY"},
		{"case insensitive", `{"field": "FIXVERSION", "op": "IS NOT EMPTY"}`, "'fixVersion' IS NOT EMPTY"},
		{"is null", `{"field": "resolution", "op": "is null"}`, "'resolution' = null"},
		{"is not null", `{"field": "resolution", "op": "IS NOT NULL"}`, "'resolution' != null"},
		{"custom", `{"field": {"custom": 10010}, "op": "~", "value": "x"}`, "cf[10010] ~ 'x'"},
		{"development", `{"field": {"development": {"subscript": "pullrequests", "property": "open"}}, "op": "gt", "value": 0}`, "Development[pullrequests].open > 0"},
		{"or", `{"or": [{"field": "priority", "value": "High"}, {"field": "labels", "values": ["urgent"]}]}`, "('priority' = 'High' OR 'labels' IN ('urgent'))"},
		{
			"nested",
			`{"and": [{"field": "project", "value": "A"}, {"or": [{"field": "status", "value": "Open"}, {"field": "assignee", "op": "is empty"}]}]}`,
			"('project' = 'A' AND ('status' = 'Open' OR 'assignee' IS EMPTY))",
		},
		{
			"order by",
			`{"field": "project", "value": "A", "order_by": ["created", {"field": "priority", "direction": "desc"}]}`,
			"'project' = 'A' ORDER BY 'created' ASC, 'priority' DESC",
		},
		{"empty order by", `{"field": "project", "value": "A", "order_by": []}`, "'project' = 'A'"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := Parse([]byte(tt.doc), nil)
			if err != nil {
				t.Fatalf("Parse failed: %v", err)
			}
			if q.String() != tt.expected {
				t.Errorf("expected '%s', got '%s'", tt.expected, q.String())
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want error
	}{
		{"empty object", `{}`, ErrInvalidDocument},
		{"unknown key", `{"fields": "x", "value": 1}`, ErrInvalidDocument},
		{"mixed node", `{"and": [{"field": "a", "value": 1}], "field": "b", "value": 1}`, ErrInvalidDocument},
		{"unknown operator", `{"field": "x", "op": "between", "value": 1}`, ErrInvalidDocument},
		{"existence with value", `{"field": "x", "op": "is empty", "value": 1}`, ErrInvalidDocument},
		{"binary with values", `{"field": "x", "op": "=", "values": [1]}`, ErrInvalidDocument},
		{"bad date", `{"field": "x", "value": {"date": "yesterday"}}`, ErrInvalidDocument},
		{"unknown value object", `{"field": "x", "value": {"color": "red"}}`, ErrInvalidDocument},
		{"nested list", `{"field": "x", "op": "in", "values": [[1]]}`, ErrInvalidDocument},
		{"bad direction", `{"field": "x", "value": 1, "order_by": [{"field": "y", "direction": "up"}]}`, ErrInvalidDocument},
		{"incomplete development", `{"field": {"development": {"subscript": "builds"}}, "op": "is empty"}`, ErrInvalidDocument},
		{"number object infinity", `{"field": "votes", "op": ">", "value": {"number": "Inf"}}`, ErrInvalidDocument},
		{"number object NaN", `{"field": "votes", "op": ">", "value": {"number": "NaN"}}`, ErrInvalidDocument},
		{"number object hex", `{"field": "votes", "op": ">", "value": {"number": "0x10"}}`, ErrInvalidDocument},
		{"number object clause", `{"field": "votes", "op": ">", "value": {"number": "1 OR 1 = 1"}}`, ErrInvalidDocument},
		{"exponent out of range", `{"field": "votes", "op": ">", "value": 1e999999}`, ErrInvalidDocument},
		{"null value", `{"field": "x", "value": null}`, jql.ErrNullArgument},
		{"missing value", `{"field": "x", "op": "!="}`, jql.ErrNullArgument},
		{"function without name", `{"field": "x", "value": {"function": ""}}`, jql.ErrNullArgument},
		{"missing values", `{"field": "x", "op": "in"}`, jql.ErrInvalidCollection},
		{"null member", `{"field": "x", "op": "in", "values": ["a", null]}`, jql.ErrInvalidCollection},
		{"empty and", `{"and": []}`, jql.ErrInvalidCollection},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc), nil)
			if !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestParseErrorPath(t *testing.T) {
	doc := `{"and": [{"field": "a", "value": 1}, {"or": [{"field": "b", "op": "in", "values": [null]}]}]}`

	_, err := Parse([]byte(doc), nil)
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "filter.and[1].or[0]") {
		t.Errorf("expected node path in error, got '%s'", err.Error())
	}
}

func TestParseInvalidJSON(t *testing.T) {
	for _, doc := range []string{``, `{`, `[1, 2]`, `{"field": "a", "value": 1} {}`} {
		if _, err := Parse([]byte(doc), nil); err == nil {
			t.Errorf("expected error for %q", doc)
		}
	}
}

func TestParseYAML(t *testing.T) {
	doc := `
and:
  - field: project
    op: in
    values: [PROJ, OPS]
  - field: created
    op: ">="
    value: {date: "2024-01-31"}
  - field: votes
    op: gte
    value: 3
order_by:
  - field: created
    direction: desc
`
	q, err := ParseYAML([]byte(doc), nil)
	if err != nil {
		t.Fatalf("ParseYAML failed: %v", err)
	}

	expected := "('project' IN ('PROJ', 'OPS') AND 'created' >= '2024/01/31' AND 'votes' >= 3) ORDER BY 'created' DESC"
	if q.String() != expected {
		t.Errorf("expected '%s', got '%s'", expected, q.String())
	}
}

func TestParseYAMLNonFiniteNumber(t *testing.T) {
	for _, doc := range []string{"{field: votes, op: '>', value: .inf}", "{field: votes, op: '>', value: {number: .nan}}"} {
		if _, err := ParseYAML([]byte(doc), nil); !errors.Is(err, ErrInvalidDocument) {
			t.Errorf("expected ErrInvalidDocument for %q, got %v", doc, err)
		}
	}
}

func TestCanonicalNumber(t *testing.T) {
	tests := []struct {
		text     string
		expected string
	}{
		{"240", "240"},
		{"1.50", "1.50"},
		{"-3", "-3"},
		{"1e3", "1000"},
		{"1E+3", "1000"},
		{"1.5e-3", "0.0015"},
		{"-2.50e1", "-25"},
		{"0e5", "0"},
		{"-0e0", "0"},
		{"12.5e1", "125"},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			got, err := canonicalNumber(tt.text)
			if err != nil {
				t.Fatalf("canonicalNumber failed: %v", err)
			}
			if got != tt.expected {
				t.Errorf("expected '%s', got '%s'", tt.expected, got)
			}
		})
	}

	for _, text := range []string{"", "Inf", "+Inf", "NaN", "0x10", "1_000", ".5", "1.", "1e", "1e401"} {
		if _, err := canonicalNumber(text); !errors.Is(err, ErrInvalidDocument) {
			t.Errorf("expected ErrInvalidDocument for %q, got %v", text, err)
		}
	}
}

func TestParseMapWeakTypes(t *testing.T) {
	raw := map[string]any{
		"field": map[string]any{"custom": "10010"},
		"op":    "=",
		"value": 5,
	}

	q, err := ParseMap(raw, nil)
	if err != nil {
		t.Fatalf("ParseMap failed: %v", err)
	}
	if q.String() != "cf[10010] = 5" {
		t.Errorf("expected 'cf[10010] = 5', got '%s'", q.String())
	}

	if _, err := ParseMap(nil, nil); !errors.Is(err, ErrInvalidDocument) {
		t.Errorf("expected ErrInvalidDocument for nil map, got %v", err)
	}
}

func TestParseOptions(t *testing.T) {
	var logs bytes.Buffer
	opts := &Options{
		FieldMapping: map[string]string{"Owner": "assignee", "points": "cf[10016]"},
		CustomFields: map[string]int{"Team": 10020},
		Logger:       slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug})),
	}

	doc := `{"and": [
		{"field": "owner", "value": {"function": "currentUser"}},
		{"field": "TEAM", "value": "core"},
		{"field": "points", "op": ">", "value": 3},
		{"field": "myField", "op": "is not empty"}
	]}`

	q, err := Parse([]byte(doc), opts)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	expected := "('assignee' = currentUser() AND cf[10020] = 'core' AND cf[10016] > 3 AND 'myField' IS NOT EMPTY)"
	if q.String() != expected {
		t.Errorf("expected '%s', got '%s'", expected, q.String())
	}
	if !strings.Contains(logs.String(), "Unknown field passed through") {
		t.Errorf("expected unknown field to be logged, got '%s'", logs.String())
	}
}

func TestCompileNilDocument(t *testing.T) {
	if _, err := Compile(nil, nil); !errors.Is(err, ErrInvalidDocument) {
		t.Errorf("expected ErrInvalidDocument, got %v", err)
	}
}
