package db

import (
	"context"
	"database/sql"
)

// Session runs statements against the database.
type Session interface {
	// Query returns every row produced by the statement, keyed by column name.
	Query(ctx context.Context, query string, values ...interface{}) ([]map[string]interface{}, error)

	// Execute runs a statement and returns the number of affected rows.
	Execute(ctx context.Context, query string, values ...interface{}) (int64, error)
}

type sqlSession struct {
	pool *sql.DB
}

func (s *sqlSession) Query(ctx context.Context, query string, values ...interface{}) ([]map[string]interface{}, error) {
	rows, err := s.pool.QueryContext(ctx, query, values...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	results := make([]map[string]interface{}, 0)
	for rows.Next() {
		cells := make([]interface{}, len(columns))
		pointers := make([]interface{}, len(columns))
		for i := range cells {
			pointers[i] = &cells[i]
		}

		if err := rows.Scan(pointers...); err != nil {
			return nil, err
		}

		row := make(map[string]interface{}, len(columns))
		for i, column := range columns {
			row[column] = normalize(cells[i])
		}
		results = append(results, row)
	}

	return results, rows.Err()
}

func (s *sqlSession) Execute(ctx context.Context, query string, values ...interface{}) (int64, error) {
	result, err := s.pool.ExecContext(ctx, query, values...)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

// Drivers hand text and numeric columns back as raw bytes.
func normalize(value interface{}) interface{} {
	if b, ok := value.([]byte); ok {
		return string(b)
	}
	return value
}
