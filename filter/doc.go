// Package filter compiles filter documents (JSON, YAML or generic maps) into
// query expressions and converts expressions back into documents.
//
// This package enables service developers to:
//   - Accept filters from API clients or config files as plain data
//   - Map client-facing field names to query fields and custom field ids
//   - Ship compiled queries between processes in a compact binary form
//
// # Basic Usage
//
//	q, err := filter.Parse([]byte(`{
//	    "and": [
//	        {"field": "project", "op": "in", "values": ["PROJ", "OPS"]},
//	        {"field": "assignee", "value": {"function": "currentUser"}}
//	    ],
//	    "order_by": [{"field": "created", "direction": "DESC"}]
//	}`), nil)
//	if err != nil {
//	    return err
//	}
//	q.String()
//	// ('project' IN ('PROJ', 'OPS') AND 'assignee' = currentUser()) ORDER BY 'created' DESC
//
// # Field Mapping
//
// Field names are matched case-insensitively against the well-known fields.
// Client names can be mapped to other fields or to custom field ids:
//
//	q, err := filter.Parse(data, &filter.Options{
//	    FieldMapping: map[string]string{"owner": "assignee"},
//	    CustomFields: map[string]int{"story points": 10016},
//	})
//
// # Values
//
// Strings, booleans and numbers are written as is. Other values use objects:
//
//	{"date": "2024-01-31"}                  '2024/01/31'
//	{"datetime": "2024-01-31T08:20:00Z"}    '2024/01/31 08:20'
//	{"function": "membersOf", "args": [..]} membersOf('..')
//	{"number": "12345678901234567890.5"}    12345678901234567890.5
//
// Comparing with null is written with the "is null" and "is not null" operators.
//
// # Binary Form
//
// MarshalBinary and UnmarshalBinary pack documents as zstd-compressed
// MessagePack with a short versioned header.
package filter
