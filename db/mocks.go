package db

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type SessionMock struct {
	mock.Mock
}

func NewSessionMock() *SessionMock {
	return &SessionMock{}
}

func (o *SessionMock) Query(ctx context.Context, query string, values ...interface{}) ([]map[string]interface{}, error) {
	args := o.Called(query, values)
	rows := args.Get(0)
	if rows == nil {
		return nil, args.Error(1)
	}
	return rows.([]map[string]interface{}), args.Error(1)
}

func (o *SessionMock) Execute(ctx context.Context, query string, values ...interface{}) (int64, error) {
	args := o.Called(query, values)
	return args.Get(0).(int64), args.Error(1)
}

// SetQueryResult expects a query with the given values and returns rows.
func (o *SessionMock) SetQueryResult(query string, values []interface{}, rows []map[string]interface{}) *mock.Call {
	return o.On("Query", query, values).Return(rows, nil)
}

// SetQueryError expects a query with the given values and fails it.
func (o *SessionMock) SetQueryError(query string, values []interface{}, err error) *mock.Call {
	return o.On("Query", query, values).Return(nil, err)
}
