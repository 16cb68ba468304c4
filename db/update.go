package db

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/lib/pq"

	e "github.com/joblyhq/jobly-api/rest/errors"
)

// Assignment sets one attribute to a value. A nil Value sets the column to NULL.
type Assignment struct {
	Attribute string
	Value     interface{}
}

// UpdateSpec is an ordered list of assignments, each attribute appearing at most once.
type UpdateSpec []Assignment

// Get returns the value assigned to attribute.
func (s UpdateSpec) Get(attribute string) (interface{}, bool) {
	for _, a := range s {
		if a.Attribute == attribute {
			return a.Value, true
		}
	}
	return nil, false
}

// Set replaces the value of an existing assignment in place, or appends a new one.
func (s UpdateSpec) Set(attribute string, value interface{}) UpdateSpec {
	for i, a := range s {
		if a.Attribute == attribute {
			s[i].Value = value
			return s
		}
	}
	return append(s, Assignment{attribute, value})
}

// Attributes lists the attributes in assignment order.
func (s UpdateSpec) Attributes() []string {
	attrs := make([]string, 0, len(s))
	for _, a := range s {
		attrs = append(attrs, a.Attribute)
	}
	return attrs
}

type columnNamer interface {
	ToColumn(attribute string) string
}

// ColumnNameMap renames attributes whose column name differs. Attributes it does not list are used as
// column names unchanged.
type ColumnNameMap map[string]string

// NewColumnNameMap derives the renames for attributes from a naming convention.
func NewColumnNameMap(naming columnNamer, attributes ...string) ColumnNameMap {
	m := make(ColumnNameMap)
	for _, attr := range attributes {
		if column := naming.ToColumn(attr); column != attr {
			m[attr] = column
		}
	}
	return m
}

func (m ColumnNameMap) Column(attribute string) string {
	if column, ok := m[attribute]; ok {
		return column
	}
	return attribute
}

// BuildPartialUpdate compiles spec into the assignment list of an UPDATE statement, e.g.
// `"first_name"=$1, "age"=$2`. Column names are quoted identifiers and values are bound in assignment
// order. An empty spec is a ValidationError.
func BuildPartialUpdate(spec UpdateSpec, columns ColumnNameMap) (Clause, error) {
	if len(spec) == 0 {
		return Clause{}, e.NewValidationError("No data")
	}

	sets := make([]string, 0, len(spec))
	clause := Clause{Values: make([]interface{}, 0, len(spec))}
	for _, a := range spec {
		clause.Values = append(clause.Values, a.Value)
		sets = append(sets, pq.QuoteIdentifier(columns.Column(a.Attribute))+"="+Placeholder(len(clause.Values)))
	}

	clause.Text = strings.Join(sets, ", ")
	return clause, nil
}

// DecodeUpdateSpec reads a JSON object into an UpdateSpec, keeping the order of its members and explicit
// nulls. Members must be scalars. A repeated member keeps its first position and its last value.
func DecodeUpdateSpec(data []byte) (UpdateSpec, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	if tok, err := dec.Token(); err != nil || tok != json.Delim('{') {
		return nil, e.NewValidationError("request body must be a JSON object")
	}

	var spec UpdateSpec
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, e.NewValidationError(fmt.Sprintf("invalid JSON: %v", err))
		}
		key := tok.(string)

		var value interface{}
		if err := dec.Decode(&value); err != nil {
			return nil, e.NewValidationError(fmt.Sprintf("invalid JSON: %v", err))
		}

		switch v := value.(type) {
		case map[string]interface{}, []interface{}:
			return nil, e.NewValidationError(fmt.Sprintf("%s must be a scalar value", key))
		case json.Number:
			value = fromNumber(v)
		}
		spec = spec.Set(key, value)
	}

	if _, err := dec.Token(); err != nil {
		return nil, e.NewValidationError(fmt.Sprintf("invalid JSON: %v", err))
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, e.NewValidationError("request body must contain a single JSON object")
	}
	return spec, nil
}

func fromNumber(n json.Number) interface{} {
	if i, err := n.Int64(); err == nil {
		return i
	}
	if f, err := n.Float64(); err == nil {
		return f
	}
	return n.String()
}
