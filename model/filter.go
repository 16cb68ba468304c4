package model

import (
	"github.com/joblyhq/jobly-api/db"
)

// companyFilterTable lists the filter keys of a company search. Each call returns a new table.
func companyFilterTable() db.FilterTable {
	return db.FilterTable{
		"nameLike":     {Column: "name", Kind: db.Contains},
		"minEmployees": {Column: "num_employees", Kind: db.AtLeast},
		"maxEmployees": {Column: "num_employees", Kind: db.AtMost},
	}
}

// jobFilterTable lists the filter keys of a job search. Each call returns a new table.
func jobFilterTable() db.FilterTable {
	return db.FilterTable{
		"title":     {Column: "title", Kind: db.Contains},
		"minSalary": {Column: "salary", Kind: db.AtLeast},
		"hasEquity": {Column: "equity", Kind: db.Positive},
	}
}

// CompanyFilter is a company search. Nil fields are not filtered on.
type CompanyFilter struct {
	NameLike     *string `mapstructure:"nameLike" validate:"omitempty,min=1"`
	MinEmployees *int    `mapstructure:"minEmployees" validate:"omitempty,min=0"`
	MaxEmployees *int    `mapstructure:"maxEmployees" validate:"omitempty,min=0"`
}

// Values lists the present filters in a fixed order.
func (f CompanyFilter) Values() []db.FilterValue {
	values := make([]db.FilterValue, 0, 3)
	if f.NameLike != nil {
		values = append(values, db.FilterValue{Key: "nameLike", Value: *f.NameLike})
	}
	if f.MinEmployees != nil {
		values = append(values, db.FilterValue{Key: "minEmployees", Value: *f.MinEmployees})
	}
	if f.MaxEmployees != nil {
		values = append(values, db.FilterValue{Key: "maxEmployees", Value: *f.MaxEmployees})
	}
	return values
}

// JobFilter is a job search. Nil fields are not filtered on.
type JobFilter struct {
	Title     *string `mapstructure:"title" validate:"omitempty,min=1"`
	MinSalary *int    `mapstructure:"minSalary" validate:"omitempty,min=0"`
	HasEquity *bool   `mapstructure:"hasEquity"`
}

// Values lists the present filters in a fixed order.
func (f JobFilter) Values() []db.FilterValue {
	values := make([]db.FilterValue, 0, 3)
	if f.Title != nil {
		values = append(values, db.FilterValue{Key: "title", Value: *f.Title})
	}
	if f.MinSalary != nil {
		values = append(values, db.FilterValue{Key: "minSalary", Value: *f.MinSalary})
	}
	if f.HasEquity != nil {
		values = append(values, db.FilterValue{Key: "hasEquity", Value: *f.HasEquity})
	}
	return values
}
