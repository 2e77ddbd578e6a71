package segment

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/DanielCayresFilho/midpainel-sub000/internal/domain"
)

// Predicate is a compiled boolean filter expression. SQL uses $n placeholders
// numbered from the compiler's starting index; Args holds the bound values in
// placeholder order. An empty spec list compiles to the always-true predicate.
type Predicate struct {
	SQL  string
	Args []interface{}
}

// IgnoredSpec records a filter spec the compiler dropped and why, so callers
// can surface silently-skipped filters instead of losing them.
type IgnoredSpec struct {
	Spec   domain.FilterSpec `json:"spec"`
	Reason string            `json:"reason"`
}

var validOperators = map[domain.FilterOperator]bool{
	domain.OpEquals:    true,
	domain.OpNotEquals: true,
	domain.OpGt:        true,
	domain.OpLt:        true,
	domain.OpGte:       true,
	domain.OpLte:       true,
	domain.OpIn:        true,
}

// identifierRe matches plain SQL identifiers. Column names arrive from the
// same UI as the values, so they get the same distrust.
var identifierRe = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// Compile builds a conjunctive predicate from the given specs with
// placeholders starting at $1.
func Compile(specs []domain.FilterSpec) (Predicate, []IgnoredSpec) {
	return CompileFrom(specs, 1)
}

// CompileFrom is Compile with a caller-chosen first placeholder index, for
// queries that bind their own parameters ahead of the predicate.
func CompileFrom(specs []domain.FilterSpec, firstPlaceholder int) (Predicate, []IgnoredSpec) {
	var (
		parts   []string
		args    []interface{}
		ignored []IgnoredSpec
		n       = firstPlaceholder
	)

	skip := func(s domain.FilterSpec, reason string) {
		ignored = append(ignored, IgnoredSpec{Spec: s, Reason: reason})
	}

	for _, s := range specs {
		if !identifierRe.MatchString(s.Column) {
			skip(s, "invalid column name")
			continue
		}
		if !validOperators[s.Operator] {
			skip(s, fmt.Sprintf("unknown operator %q", s.Operator))
			continue
		}

		if s.Operator == domain.OpIn {
			if len(s.Values) == 0 {
				skip(s, "IN requires at least one value")
				continue
			}
			placeholders := make([]string, len(s.Values))
			for i, v := range s.Values {
				placeholders[i] = fmt.Sprintf("$%d", n)
				args = append(args, v)
				n++
			}
			parts = append(parts, fmt.Sprintf("%s IN (%s)", s.Column, strings.Join(placeholders, ", ")))
			continue
		}

		if strings.TrimSpace(s.Value) == "" {
			skip(s, "missing value")
			continue
		}
		parts = append(parts, fmt.Sprintf("%s %s $%d", s.Column, s.Operator, n))
		args = append(args, s.Value)
		n++
	}

	if len(parts) == 0 {
		return Predicate{SQL: "1=1"}, ignored
	}
	return Predicate{SQL: strings.Join(parts, " AND "), Args: args}, ignored
}
