package jql_test

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hugr-lab/jql-go"
	"github.com/hugr-lab/jql-go/fields"
	"github.com/hugr-lab/jql-go/functions"
)

func TestExpressionString(t *testing.T) {
	tests := []struct {
		name     string
		expr     jql.Expression
		expected string
	}{
		{
			name:     "equal string",
			expr:     jql.Must(fields.Project.Eq("PROJ")),
			expected: "'project' = 'PROJ'",
		},
		{
			name:     "equal date",
			expr:     jql.Must(fields.Created.Eq(time.Date(1984, 6, 3, 0, 0, 0, 0, time.UTC))),
			expected: "'created' = '1984/06/03'",
		},
		{
			name:     "equal date time",
			expr:     jql.Must(fields.Created.Eq(time.Date(1984, 6, 3, 8, 20, 34, 0, time.UTC))),
			expected: "'created' = '1984/06/03 08:20'",
		},
		{
			name:     "escaped value",
			expr:     jql.Must(fields.Assignee.Eq("Bobby O'Shea")),
			expected: `'assignee' = 'Bobby O\'Shea'`,
		},
		{
			name:     "number",
			expr:     jql.Must(fields.OriginalEstimate.Gte(240)),
			expected: "'originalEstimate' >= 240",
		},
		{
			name:     "like",
			expr:     jql.Must(fields.Summary.Like("crash")),
			expected: "'summary' ~ 'crash'",
		},
		{
			name:     "not like",
			expr:     jql.Must(fields.Summary.NotLike("crash")),
			expected: "'summary' !~ 'crash'",
		},
		{
			name:     "not equal",
			expr:     jql.Must(fields.Status.NotEq("Done")),
			expected: "'status' != 'Done'",
		},
		{
			name:     "comparisons",
			expr:     jql.Must(jql.All(jql.Must(fields.Votes.Gt(1)), jql.Must(fields.Votes.Lt(10)), jql.Must(fields.WorkRatio.Lte(0.5)))),
			expected: "('votes' > 1 AND 'votes' < 10 AND 'workRatio' <= 0.5)",
		},
		{
			name:     "is empty",
			expr:     jql.Must(fields.Assignee.IsEmpty()),
			expected: "'assignee' IS EMPTY",
		},
		{
			name:     "is not empty",
			expr:     jql.Must(fields.FixVersion.IsNotEmpty()),
			expected: "'fixVersion' IS NOT EMPTY",
		},
		{
			name:     "is null",
			expr:     jql.Must(fields.Resolution.IsNull()),
			expected: "'resolution' = null",
		},
		{
			name:     "is not null",
			expr:     jql.Must(fields.Resolution.IsNotNull()),
			expected: "'resolution' != null",
		},
		{
			name:     "in",
			expr:     jql.Must(fields.Project.In("PROJ", "OPS")),
			expected: "'project' IN ('PROJ', 'OPS')",
		},
		{
			name:     "not in",
			expr:     jql.Must(fields.Status.NotIn("Done", "Closed")),
			expected: "'status' NOT IN ('Done', 'Closed')",
		},
		{
			name:     "in empty",
			expr:     jql.Must(fields.Labels.In()),
			expected: "'labels' IN ()",
		},
		{
			name:     "in single function",
			expr:     jql.Must(fields.FixVersion.In(functions.UnreleasedVersionsOf("JORP"))),
			expected: "'fixVersion' IN unreleasedVersions('JORP')",
		},
		{
			name: "in function with dates",
			expr: jql.Must(fields.IssueKey.In(functions.UpdatedByBetween("user",
				time.Date(2020, 2, 1, 0, 0, 0, 0, time.UTC),
				time.Date(2020, 2, 29, 0, 0, 0, 0, time.UTC)))),
			expected: "'issueKey' IN updatedBy('user', '2020/02/01', '2020/02/29')",
		},
		{
			name:     "in functions mixed",
			expr:     jql.Must(fields.FixVersion.In(functions.ReleasedVersions(), "1.0")),
			expected: "'fixVersion' IN (releasedVersions(), '1.0')",
		},
		{
			name:     "function value",
			expr:     jql.Must(fields.Assignee.Eq(functions.CurrentUser())),
			expected: "'assignee' = currentUser()",
		},
		{
			name:     "custom field",
			expr:     jql.Must(jql.CustomField(10010).Eq("x")),
			expected: "cf[10010] = 'x'",
		},
		{
			name:     "development field",
			expr:     jql.Must(fields.Development.PullRequests.Open.Gt(0)),
			expected: "Development[pullrequests].open > 0",
		},
		{
			name: "and of nested",
			expr: jql.Must(jql.AndOf(
				jql.Must(jql.AndOf(jql.Must(fields.Project.Eq("A")), jql.Must(fields.Status.Eq("Open")))),
				jql.Must(fields.Assignee.IsEmpty()),
			)),
			expected: "(('project' = 'A' AND 'status' = 'Open') AND 'assignee' IS EMPTY)",
		},
		{
			name: "or",
			expr: jql.Must(jql.OrOf(
				jql.Must(fields.Priority.Eq("High")),
				jql.Must(fields.Labels.In("urgent")),
			)),
			expected: "('priority' = 'High' OR 'labels' IN ('urgent'))",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.expr.String())
			assert.Equal(t, tt.expected, tt.expr.String(), "rendering must be idempotent")
		})
	}
}

func TestNumericTextIsQuotedUnlessDecimal(t *testing.T) {
	b := jql.Must(fields.Project.Eq(json.Number("1 OR 'project' = 'SECRET'")))
	assert.Equal(t, `'project' = '1 OR \'project\' = \'SECRET\''`, b.String())

	// Non-decimal numeric text compares like the same string.
	assert.True(t, jql.Must(fields.Votes.Gt(json.Number("1e3"))).Equal(jql.Must(fields.Votes.Gt("1e3"))))
	assert.True(t, jql.Must(fields.Votes.Gt(json.Number("10"))).Equal(jql.Must(fields.Votes.Gt(json.Number("10")))))
	assert.Equal(t, "'votes' > 10", jql.Must(fields.Votes.Gt(json.Number("10"))).String())
}

func TestMultiValueDeduplicates(t *testing.T) {
	m := jql.Must(fields.Project.In("A", "B", "A", "C", "B"))
	assert.Equal(t, "'project' IN ('A', 'B', 'C')", m.String())
	assert.Len(t, m.Values(), 3)

	// Typed values stay distinct.
	m = jql.Must(fields.Votes.In(1, "1"))
	assert.Len(t, m.Values(), 2)
}

func TestMultiValueSetEquality(t *testing.T) {
	a := jql.Must(fields.Project.In("A", "B", "C"))
	b := jql.Must(fields.Project.In("C", "A", "B", "A"))
	c := jql.Must(fields.Project.NotIn("A", "B", "C"))
	d := jql.Must(fields.Status.In("A", "B", "C"))

	assert.True(t, a.Equal(b))
	assert.Equal(t, a.Hash(), b.Hash())
	assert.False(t, a.Equal(c))
	assert.False(t, a.Equal(d))
}

func TestLogicalSetSemantics(t *testing.T) {
	p := jql.Must(fields.Project.Eq("A"))
	s := jql.Must(fields.Status.Eq("Open"))
	e := jql.Must(fields.Assignee.IsEmpty())

	x := jql.Must(jql.All(p, s, e))
	y := jql.Must(jql.All(e, p, s, p))

	assert.True(t, x.Equal(y))
	assert.Equal(t, x.Hash(), y.Hash())
	assert.Len(t, y.Children(), 3)
	assert.Equal(t, "('assignee' IS EMPTY AND 'project' = 'A' AND 'status' = 'Open')", y.String())

	z := jql.Must(jql.Any(p, s, e))
	assert.False(t, x.Equal(z))

	// Structurally equal nodes built separately are duplicates.
	dup := jql.Must(jql.All(p, jql.Must(fields.Project.Eq("A"))))
	assert.Len(t, dup.Children(), 1)
	assert.Equal(t, "('project' = 'A')", dup.String())
}

func TestAndOfDoesNotFlatten(t *testing.T) {
	a := jql.Must(fields.Project.Eq("A"))
	b := jql.Must(fields.Status.Eq("Open"))
	c := jql.Must(fields.Assignee.IsEmpty())

	nested := jql.Must(jql.AndOf(jql.Must(jql.AndOf(a, b)), c))
	flat := jql.Must(jql.All(a, b, c))

	assert.False(t, nested.Equal(flat))
	assert.Len(t, nested.Children(), 2)
}

func TestEqualAcrossKinds(t *testing.T) {
	eq := jql.Must(fields.Project.Eq("A"))
	in := jql.Must(fields.Project.In("A"))

	assert.False(t, eq.Equal(in))
	assert.False(t, eq.Equal(nil))
	assert.True(t, eq.Equal(jql.Must(fields.Project.Eq("A"))))
	assert.False(t, eq.Equal(jql.Must(fields.Project.Eq(1))))
}

func TestFunctionEquality(t *testing.T) {
	a := functions.MembersOf("jira-users")
	b := jql.MustFunction("membersOf", "jira-users")
	c := functions.MembersOf("admins")

	assert.True(t, a.Equal(b))
	assert.Equal(t, a.Hash(), b.Hash())
	assert.False(t, a.Equal(c))

	x := jql.Must(fields.Reporter.In(a))
	y := jql.Must(fields.Reporter.In(b))
	assert.True(t, x.Equal(y))
}

func TestNullGuards(t *testing.T) {
	tests := []struct {
		name  string
		build func() error
		param string
		index int
		want  error
	}{
		{"binary absent field", func() error { _, err := jql.Field{}.Eq("x"); return err }, "field", -1, jql.ErrNullArgument},
		{"binary nil value", func() error { _, err := fields.Project.Eq(nil); return err }, "value", -1, jql.ErrNullArgument},
		{"binary typed nil", func() error { _, err := fields.Created.Eq((*time.Time)(nil)); return err }, "value", -1, jql.ErrNullArgument},
		{"binary zero function", func() error { _, err := fields.Created.Eq(jql.Function{}); return err }, "value", -1, jql.ErrNullArgument},
		{"binary zero function pointer", func() error { _, err := fields.Assignee.Eq(&jql.Function{}); return err }, "value", -1, jql.ErrNullArgument},
		{"multi zero function pointer", func() error { _, err := fields.Assignee.In("a", &jql.Function{}); return err }, "values", 1, jql.ErrInvalidCollection},
		{"binary invalid operator", func() error { _, err := jql.NewBinary(fields.Project, "==", "x"); return err }, "operator", -1, jql.ErrNullArgument},
		{"null comparison ordering", func() error { _, err := jql.NewNullComparison(fields.Due, jql.GreaterThan); return err }, "value", -1, jql.ErrNullArgument},
		{"existence absent field", func() error { _, err := jql.Field{}.IsEmpty(); return err }, "field", -1, jql.ErrNullArgument},
		{"multi nil collection", func() error { _, err := jql.NewMultiValue(fields.Project, jql.In, nil); return err }, "values", -1, jql.ErrInvalidCollection},
		{"multi nil element", func() error { _, err := fields.Project.In("A", nil); return err }, "values", 1, jql.ErrInvalidCollection},
		{"logical empty", func() error { _, err := jql.All(); return err }, "expressions", -1, jql.ErrInvalidCollection},
		{"logical nil child", func() error { _, err := jql.AndOf(jql.Must(fields.Project.Eq("A")), nil); return err }, "expressions", 1, jql.ErrInvalidCollection},
		{"logical typed nil child", func() error { _, err := jql.Any((*jql.Binary)(nil)); return err }, "expressions", 0, jql.ErrInvalidCollection},
		{"function empty name", func() error { _, err := jql.NewFunction(""); return err }, "name", -1, jql.ErrNullArgument},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.build()
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)

			var argErr *jql.ArgumentError
			require.True(t, errors.As(err, &argErr))
			assert.Equal(t, tt.param, argErr.Param)
			assert.Equal(t, tt.index, argErr.Index)
		})
	}
}

func TestValuesAreDetached(t *testing.T) {
	ts := time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC)
	b := jql.Must(fields.Created.Gte(&ts))
	ts = ts.AddDate(1, 0, 0)
	assert.Equal(t, "'created' >= '2021/01/01'", b.String())

	m := jql.Must(fields.Project.In("A", "B"))
	vals := m.Values()
	vals[0] = "Z"
	assert.Equal(t, "'project' IN ('A', 'B')", m.String())
}

func TestReferencedFields(t *testing.T) {
	expr := jql.Must(jql.All(
		jql.Must(fields.Project.Eq("A")),
		jql.Must(jql.Any(jql.Must(fields.Status.Eq("Open")), jql.Must(fields.Project.IsNotEmpty()))),
		jql.Must(jql.CustomField(10010).In("x")),
	))

	got := jql.ReferencedFields(expr)
	assert.Equal(t, []jql.Field{fields.Project, fields.Status, jql.CustomField(10010)}, got)
}

func TestFieldString(t *testing.T) {
	assert.Equal(t, "'Epic Link'", fields.EpicLink.String())
	assert.Equal(t, `'it\'s'`, jql.NewField("it's").String())
	assert.Equal(t, "cf[42]", jql.CustomField(42).String())
	assert.Equal(t, "Development[builds].failing", fields.Development.Builds.Failing.String())
	assert.Equal(t, "category", fields.Category.Name())
	assert.Equal(t, "change-gating-type", fields.ChangeGatingType.Name())
	assert.True(t, jql.Field{}.IsZero())
	assert.Equal(t, jql.FieldCustom, jql.CustomField(1).Kind())
}
