package lake

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/tidewater-labs/lakeview-cli/internal/core/domain"
)

// defaultQueryLimit caps result sets when a query sets no limit.
const defaultQueryLimit = 100

// identPattern accepts field names safe to interpolate into a query
// string. Everything else travels as a parameter.
var identPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// render translates a structured query into the lake's query language
// plus named parameters. Values never end up inside the query string;
// only validated field names do.
func render(q domain.Query) (string, map[string]any, error) {
	params := make(map[string]any)

	filters, err := renderFilters(q, params)
	if err != nil {
		return "", nil, err
	}

	var b strings.Builder
	b.WriteString("*[")
	b.WriteString(strings.Join(filters, " && "))
	b.WriteString("]")

	if q.Match != nil {
		pipe, err := scorePipe(q.Match.Fields)
		if err != nil {
			return "", nil, err
		}
		b.WriteString(pipe)
	}

	switch q.Order {
	case domain.OrderScoreDesc:
		b.WriteString(" | order(_score desc)")
	case domain.OrderUpdatedDesc:
		b.WriteString(" | order(_updatedAt desc)")
	}

	limit := q.Limit
	if limit <= 0 {
		limit = defaultQueryLimit
	}
	fmt.Fprintf(&b, " [0...%d]", limit)

	proj, err := renderProjection(q)
	if err != nil {
		return "", nil, err
	}
	b.WriteString(proj)

	return b.String(), params, nil
}

// renderCount translates the query's filters into a count expression.
// Ordering, limits and projections do not apply to counting.
func renderCount(q domain.Query) (string, map[string]any, error) {
	params := make(map[string]any)
	filters, err := renderFilters(q, params)
	if err != nil {
		return "", nil, err
	}
	return "count(*[" + strings.Join(filters, " && ") + "])", params, nil
}

func renderFilters(q domain.Query, params map[string]any) ([]string, error) {
	var filters []string

	if len(q.Kinds) > 0 {
		filters = append(filters, "_type in $__kinds")
		params["__kinds"] = q.Kinds
	}
	if len(q.IDs) > 0 {
		filters = append(filters, "_id in $__ids")
		params["__ids"] = q.IDs
	}
	if q.DefinedField != "" {
		if !identPattern.MatchString(q.DefinedField) {
			return nil, fmt.Errorf("%w: invalid field name %q", domain.ErrInvalidInput, q.DefinedField)
		}
		filters = append(filters, fmt.Sprintf("defined(%s)", q.DefinedField))
	}
	if q.Match != nil {
		names := make([]string, len(q.Match.Fields))
		for i, f := range q.Match.Fields {
			if !identPattern.MatchString(f.Name) {
				return nil, fmt.Errorf("%w: invalid field name %q", domain.ErrInvalidInput, f.Name)
			}
			names[i] = f.Name
		}
		filters = append(filters, fmt.Sprintf("[%s] match $__text", strings.Join(names, ", ")))
		params["__text"] = q.Match.Text
	}

	return filters, nil
}

// scorePipe renders the relevance-scoring stage: each searchable field
// contributes a boosted match term, weight 1 fields an unboosted one.
func scorePipe(fields []domain.BoostedField) (string, error) {
	terms := make([]string, len(fields))
	for i, f := range fields {
		if !identPattern.MatchString(f.Name) {
			return "", fmt.Errorf("%w: invalid field name %q", domain.ErrInvalidInput, f.Name)
		}
		if f.Weight > 1 {
			terms[i] = fmt.Sprintf("boost(%s match $__text, %g)", f.Name, f.Weight)
		} else {
			terms[i] = fmt.Sprintf("%s match $__text", f.Name)
		}
	}
	return " | score(" + strings.Join(terms, ", ") + ")", nil
}

// renderProjection emits the projection stage. Scored queries surface
// the relevance score; flatten projections add server-side flattened
// text per rich-text field. Both keep every regular field.
func renderProjection(q domain.Query) (string, error) {
	scored := q.Match != nil
	var flat []domain.FlatField
	if q.Projection != nil {
		flat = q.Projection.Flat
	}
	if !scored && len(flat) == 0 {
		return "", nil
	}

	parts := []string{"..."}
	if scored {
		parts = append(parts, `"_score": _score`)
	}
	for _, f := range flat {
		if !identPattern.MatchString(f.Source) {
			return "", fmt.Errorf("%w: invalid field name %q", domain.ErrInvalidInput, f.Source)
		}
		parts = append(parts, fmt.Sprintf("%q: pt::text(%s)", f.Alias, f.Source))
	}
	return " {" + strings.Join(parts, ", ") + "}", nil
}
