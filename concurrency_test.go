package jql_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hugr-lab/jql-go"
	"github.com/hugr-lab/jql-go/fields"
	"github.com/hugr-lab/jql-go/functions"
)

func TestSharedTreeAcrossGoroutines(t *testing.T) {
	build := func() *jql.SortExpression {
		filter := jql.Must(jql.All(
			jql.Must(fields.Project.In("PROJ", "OPS")),
			jql.Must(jql.Any(
				jql.Must(fields.Assignee.Eq(functions.CurrentUser())),
				jql.Must(fields.Assignee.IsEmpty()),
			)),
			jql.Must(fields.Votes.Gte(3)),
		))
		return jql.Must(jql.OrderByFields(filter, jql.Desc(fields.Priority), jql.Asc(fields.Created)))
	}

	shared := build()
	expected := shared.String()
	hash := shared.Hash()
	filterHash := shared.Filter().Hash()

	const workers = 16
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				assert.Equal(t, expected, shared.String())
				assert.Equal(t, hash, shared.Hash())
				assert.Equal(t, filterHash, shared.Filter().Hash())
				assert.True(t, shared.Equal(build()))
				assert.Len(t, jql.ReferencedFields(shared.Filter()), 3)

				// Shared nodes may be reused as children of new trees.
				combined, err := jql.AndOf(shared.Filter(), jql.Must(fields.Status.Eq("Open")))
				if assert.NoError(t, err) {
					assert.Equal(t, "("+shared.Filter().String()+" AND 'status' = 'Open')", combined.String())
				}
			}
		}()
	}
	wg.Wait()
}
