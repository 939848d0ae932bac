package filter

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"golang.org/x/text/cases"

	"github.com/hugr-lab/jql-go"
	"github.com/hugr-lab/jql-go/fields"
)

// Options configures how document field names resolve to query fields.
type Options struct {
	// FieldMapping maps document field names to query field names.
	// Names not in the map are used as is.
	FieldMapping map[string]string

	// CustomFields maps document field names to custom field ids, e.g.
	// "story points" -> 10016 renders as cf[10016].
	// Takes precedence over FieldMapping.
	CustomFields map[string]int

	// Logger for resolution diagnostics.
	// OPTIONAL: Uses slog.Default() if nil.
	// If LogLevel is specified, a new logger will be created with that level.
	Logger *slog.Logger

	// LogLevel sets the logging level when Logger is nil.
	LogLevel *slog.Level
}

func (o *Options) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	if o.LogLevel != nil {
		return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: *o.LogLevel}))
	}
	return slog.Default()
}

// resolver turns field references into fields. Lookups are case-insensitive.
type resolver struct {
	mapping map[string]string
	custom  map[string]int
	known   map[string]jql.Field
	fold    cases.Caser
	logger  *slog.Logger
}

func newResolver(opts *Options) *resolver {
	if opts == nil {
		opts = &Options{}
	}
	r := &resolver{
		mapping: make(map[string]string, len(opts.FieldMapping)),
		custom:  make(map[string]int, len(opts.CustomFields)),
		known:   make(map[string]jql.Field),
		fold:    cases.Fold(),
		logger:  opts.logger(),
	}
	for k, v := range opts.FieldMapping {
		r.mapping[r.key(k)] = v
	}
	for k, v := range opts.CustomFields {
		r.custom[r.key(k)] = v
	}
	for _, f := range fields.All() {
		r.known[r.key(f.Name())] = f
	}
	return r
}

func (r *resolver) key(name string) string {
	return r.fold.String(strings.TrimSpace(name))
}

// field resolves ref to a query field.
func (r *resolver) field(ref *FieldRef) (jql.Field, error) {
	if ref == nil {
		return jql.Field{}, fmt.Errorf("%w: missing field", ErrInvalidDocument)
	}
	switch {
	case ref.Development != nil:
		d := ref.Development
		if d.Subscript == "" || d.Property == "" {
			return jql.Field{}, fmt.Errorf("%w: development field needs subscript and property", ErrInvalidDocument)
		}
		return jql.DevelopmentField(d.Subscript, d.Property), nil
	case ref.Custom != 0:
		return jql.CustomField(ref.Custom), nil
	case ref.Literal:
		if ref.Name == "" {
			return jql.Field{}, fmt.Errorf("%w: empty field name", ErrInvalidDocument)
		}
		return jql.NewField(ref.Name), nil
	}
	return r.byName(ref.Name)
}

func (r *resolver) byName(name string) (jql.Field, error) {
	if strings.TrimSpace(name) == "" {
		return jql.Field{}, fmt.Errorf("%w: empty field name", ErrInvalidDocument)
	}
	if id, ok := parseCustomName(name); ok {
		return jql.CustomField(id), nil
	}

	k := r.key(name)
	if id, ok := r.custom[k]; ok {
		r.logger.Debug("Field mapped to custom field", "field", name, "id", id)
		return jql.CustomField(id), nil
	}
	if target, ok := r.mapping[k]; ok {
		r.logger.Debug("Field mapped", "field", name, "target", target)
		name, k = target, r.key(target)
		if id, ok := parseCustomName(name); ok {
			return jql.CustomField(id), nil
		}
	}
	if f, ok := r.known[k]; ok {
		return f, nil
	}

	r.logger.Debug("Unknown field passed through", "field", name)
	return jql.NewField(name), nil
}

// parseCustomName recognizes the cf[10010] form.
func parseCustomName(name string) (int, bool) {
	s, ok := strings.CutPrefix(strings.TrimSpace(name), "cf[")
	if !ok {
		return 0, false
	}
	s, ok = strings.CutSuffix(s, "]")
	if !ok {
		return 0, false
	}
	id, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return id, true
}

// fieldRef is the inverse of resolver.field.
func fieldRef(f jql.Field) *FieldRef {
	switch f.Kind() {
	case jql.FieldCustom:
		return &FieldRef{Custom: f.ID()}
	case jql.FieldDevelopment:
		return &FieldRef{Development: &DevelopmentRef{Subscript: f.Subscript(), Property: f.Property()}}
	}
	return &FieldRef{Name: f.Name(), Literal: literalName(f.Name())}
}

// literalName reports whether a simple field name reads back as a different
// field without options, e.g. "cf[10]" or "Project".
func literalName(name string) bool {
	if _, ok := parseCustomName(name); ok {
		return true
	}
	fold := cases.Fold()
	k := fold.String(strings.TrimSpace(name))
	for _, f := range fields.All() {
		if fold.String(f.Name()) == k {
			return f.Name() != name
		}
	}
	return false
}
