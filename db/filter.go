package db

import (
	"fmt"
	"math"
	"strings"

	e "github.com/joblyhq/jobly-api/rest/errors"
)

type FilterKind int

const (
	// Contains is a case-insensitive substring match on a text column.
	Contains FilterKind = iota
	// AtLeast is an inclusive lower bound on a numeric column.
	AtLeast
	// AtMost is an inclusive upper bound on a numeric column.
	AtMost
	// Positive only keeps rows where a numeric column is greater than zero. It takes a boolean flag,
	// and a false flag does not filter at all.
	Positive
)

func (k FilterKind) String() string {
	switch k {
	case Contains:
		return "contains"
	case AtLeast:
		return "atLeast"
	case AtMost:
		return "atMost"
	case Positive:
		return "positive"
	default:
		return fmt.Sprintf("FilterKind(%d)", int(k))
	}
}

// FilterTerm is the comparison a recognized filter key compiles to. Column is always a literal taken
// from a FilterTable, never from the request.
type FilterTerm struct {
	Column string
	Kind   FilterKind
}

func (t FilterTerm) fragment(n int) string {
	p := Placeholder(n)
	switch t.Kind {
	case Contains:
		return t.Column + " ILIKE '%' || " + p + " || '%'"
	case AtLeast:
		return t.Column + " >= " + p
	case AtMost:
		return t.Column + " <= " + p
	default:
		return t.Column + " > " + p
	}
}

// FilterTable is the fixed set of filter keys an entity recognizes.
type FilterTable map[string]FilterTerm

// FilterValue is a filter key present in a search together with its value.
type FilterValue struct {
	Key   string
	Value interface{}
}

// BuildFilter compiles the recognized keys among values into a clause joined with AND, in the order of
// values. Keys missing from table are skipped without consuming a placeholder. The clause is empty when
// nothing applies.
//
// A ValidationError is returned when a value has the wrong type for its term, a bound is not a finite
// number, or a lower bound exceeds the upper bound on the same column.
func BuildFilter(values []FilterValue, table FilterTable) (Clause, error) {
	if err := checkBounds(values, table); err != nil {
		return Clause{}, err
	}

	fragments := make([]string, 0, len(values))
	clause := Clause{Values: make([]interface{}, 0, len(values))}

	for _, fv := range values {
		term, ok := table[fv.Key]
		if !ok || fv.Value == nil {
			continue
		}

		value, emit, err := bindValue(fv, term)
		if err != nil {
			return Clause{}, err
		}
		if !emit {
			continue
		}

		clause.Values = append(clause.Values, value)
		fragments = append(fragments, term.fragment(len(clause.Values)))
	}

	clause.Text = strings.Join(fragments, " AND ")
	return clause, nil
}

func bindValue(fv FilterValue, term FilterTerm) (interface{}, bool, error) {
	switch term.Kind {
	case Contains:
		s, ok := fv.Value.(string)
		if !ok {
			return nil, false, e.NewValidationError(fmt.Sprintf("%s must be a string", fv.Key))
		}
		return s, true, nil
	case AtLeast, AtMost:
		if _, err := toNumber(fv.Key, fv.Value); err != nil {
			return nil, false, err
		}
		return fv.Value, true, nil
	case Positive:
		flag, ok := fv.Value.(bool)
		if !ok {
			return nil, false, e.NewValidationError(fmt.Sprintf("%s must be a boolean", fv.Key))
		}
		return 0, flag, nil
	default:
		return nil, false, fmt.Errorf("unsupported filter kind %s for %s", term.Kind, fv.Key)
	}
}

type bound struct {
	key   string
	value float64
}

func checkBounds(values []FilterValue, table FilterTable) error {
	lower := make(map[string]bound)
	upper := make(map[string]bound)

	for _, fv := range values {
		term, ok := table[fv.Key]
		if !ok || fv.Value == nil || (term.Kind != AtLeast && term.Kind != AtMost) {
			continue
		}

		n, err := toNumber(fv.Key, fv.Value)
		if err != nil {
			return err
		}

		if term.Kind == AtLeast {
			lower[term.Column] = bound{fv.Key, n}
		} else {
			upper[term.Column] = bound{fv.Key, n}
		}
	}

	for column, min := range lower {
		max, ok := upper[column]
		if ok && min.value > max.value {
			return e.NewValidationError(
				fmt.Sprintf("%s needs to be less than or equal to %s.", min.key, max.key))
		}
	}
	return nil
}

func toNumber(key string, value interface{}) (float64, error) {
	var n float64
	switch v := value.(type) {
	case int:
		n = float64(v)
	case int8:
		n = float64(v)
	case int16:
		n = float64(v)
	case int32:
		n = float64(v)
	case int64:
		n = float64(v)
	case uint:
		n = float64(v)
	case uint8:
		n = float64(v)
	case uint16:
		n = float64(v)
	case uint32:
		n = float64(v)
	case uint64:
		n = float64(v)
	case float32:
		n = float64(v)
	case float64:
		n = v
	default:
		return 0, e.NewValidationError(fmt.Sprintf("%s must be a number", key))
	}

	if math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, e.NewValidationError(fmt.Sprintf("%s must be a finite number", key))
	}
	return n, nil
}
