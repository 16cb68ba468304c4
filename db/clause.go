package db

import (
	"strconv"
)

// Clause is a SQL fragment that only references values through positional placeholders. The Nth
// placeholder ($N) binds Values[N-1]; numbering starts at 1 and has no gaps.
type Clause struct {
	Text   string
	Values []interface{}
}

func (c Clause) IsEmpty() bool {
	return c.Text == ""
}

// Where renders the clause as a WHERE clause, or an empty string when there is nothing to filter on.
func (c Clause) Where() string {
	if c.IsEmpty() {
		return ""
	}
	return "WHERE " + c.Text
}

// Next returns the index of the first placeholder free after this clause.
func (c Clause) Next() int {
	return len(c.Values) + 1
}

// Placeholder renders the nth positional placeholder.
func Placeholder(n int) string {
	return "$" + strconv.Itoa(n)
}
