package toolkit

import (
	"context"
	"fmt"
	"sort"
	"strings"
)

// Result is the value an Operation returns. It is a closed sum of
// TextResult and StructuredResult so the tool instance's formatting step
// is an exhaustive match rather than an instance check.
type Result interface {
	isResult()
}

// TextResult is a ready-to-return textual result. It passes through to
// the caller verbatim.
type TextResult string

func (TextResult) isResult() {}

// StructuredResult is a non-textual result rendered by the tool instance
// into a short human-readable summary.
type StructuredResult map[string]any

func (StructuredResult) isResult() {}

// Operation is a bound backing-service operation. Arguments arrive as the
// (possibly remapped) call arguments keyed by parameter name. Operations
// may block; cancellation is the backing service's concern.
type Operation func(ctx context.Context, args map[string]any) (Result, error)

// OpSet maps operation identifiers to the statically known operations of
// one backing-service role. The factory resolves descriptor operation
// identifiers against it at build time, so an unknown identifier fails at
// startup rather than at call time.
type OpSet map[string]Operation

// renderResult turns a Result into the textual form returned to the caller.
// Structured results render with sorted keys for stable output.
func renderResult(label string, res Result) string {
	switch r := res.(type) {
	case TextResult:
		return string(r)
	case StructuredResult:
		keys := make([]string, 0, len(r))
		for k := range r {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		var b strings.Builder
		fmt.Fprintf(&b, "%s completed", capitalize(label))
		for _, k := range keys {
			fmt.Fprintf(&b, "\n- %s: %v", k, r[k])
		}
		return b.String()
	default:
		return fmt.Sprintf("%s completed", capitalize(label))
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
