// Package jql builds JQL queries as typed, immutable expression trees and
// renders them to query text.
//
// The jql package provides:
//   - Fields (simple, custom cf[id] and Development[...] metrics) with builder methods
//   - Server-side function calls usable as comparison values
//   - Logical, existence, comparison and membership expressions
//   - Sort expressions producing the trailing ORDER BY clause
//   - Deterministic rendering with correct quoting, escaping and date formatting
//
// # Quick Start
//
//	import (
//	    "github.com/hugr-lab/jql-go"
//	    "github.com/hugr-lab/jql-go/fields"
//	    "github.com/hugr-lab/jql-go/functions"
//	)
//
//	project, _ := fields.Project.In("PROJ", "OPS")
//	mine, _ := fields.Assignee.Eq(functions.CurrentUser())
//	filter, _ := jql.All(project, mine)
//	query, _ := jql.OrderByDirection(filter, fields.Created, jql.Descending)
//
//	query.String()
//	// ('project' IN ('PROJ', 'OPS') AND 'assignee' = currentUser()) ORDER BY 'created' DESC
//
// # Validation
//
// Every constructor validates its input eagerly and returns an error instead
// of a node when a required argument is absent (ErrNullArgument) or a
// collection is nil or holds a nil element (ErrInvalidCollection). The
// returned *ArgumentError names the offending parameter. Use Must for
// queries assembled from constants.
//
// # Sets and Ordering
//
// Children of logical expressions and values of membership tests are sets:
// duplicates are dropped and two expressions built from the same members in
// a different order are Equal. Rendering keeps the first-occurrence order so
// output is byte-stable. AndOf and OrOf always create a new two-child node and
// never flatten; All and Any create one node over the whole list.
//
// # Literals
//
//	string          'Bobby O\'Shea'
//	time.Time       '1984/06/03' or '1984/06/03 08:20'
//	numbers         240, 1.5
//	Function        currentUser(), updatedBy('user', '2020/02/01')
//	null            only via IsNull / IsNotNull
//
// # Concurrency
//
// All nodes are immutable after construction. Trees may be shared, compared,
// hashed and rendered from any number of goroutines without synchronization.
package jql
