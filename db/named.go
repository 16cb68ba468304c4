package db

import (
	"fmt"

	"github.com/mikeschinkel/go-sqlparams"
)

// Args holds the values of the :name parameters of a Query.
type Args map[string]interface{}

// Query is a SQL statement using :name parameters, e.g. `SELECT handle FROM companies WHERE handle = :handle`.
type Query string

// Bind rewrites the named parameters of q into positional placeholders starting at $1.
func (q Query) Bind(args Args) (string, []interface{}, error) {
	return q.BindFrom(1, args)
}

// BindFrom rewrites the named parameters of q into positional placeholders starting at $first, which lets
// a query be appended to a Clause. A parameter used several times binds a single placeholder.
func (q Query) BindFrom(first int, args Args) (string, []interface{}, error) {
	parsed, err := sqlparams.ParseSQL(sqlparams.SQLQuery(q), func(i int) string {
		return Placeholder(first + i - 1)
	})
	if err != nil {
		return "", nil, fmt.Errorf("unable to parse query: %v", err)
	}

	params := parsed.Parameters()
	values := make([]interface{}, 0, len(params))
	for _, p := range params {
		value, ok := args[string(p.Name)]
		if !ok {
			return "", nil, fmt.Errorf("no value for query parameter :%s", p.Name)
		}
		values = append(values, value)
	}

	return string(parsed.SQL), values, nil
}

// After binds q so that it follows clause and returns the combined values.
func (q Query) After(clause Clause, args Args) (string, []interface{}, error) {
	query, values, err := q.BindFrom(clause.Next(), args)
	if err != nil {
		return "", nil, err
	}
	return query, append(append(make([]interface{}, 0, len(clause.Values)+len(values)), clause.Values...), values...), nil
}
