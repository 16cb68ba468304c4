package model

import (
	"context"
	"fmt"

	"github.com/joblyhq/jobly-api/config"
	"github.com/joblyhq/jobly-api/db"
	"github.com/joblyhq/jobly-api/log"
	e "github.com/joblyhq/jobly-api/rest/errors"
)

type Company struct {
	Handle       string  `json:"handle"`
	Name         string  `json:"name"`
	Description  string  `json:"description"`
	NumEmployees *int    `json:"numEmployees"`
	LogoURL      *string `json:"logoUrl"`
}

// CompanyDetail is a company together with its jobs.
type CompanyDetail struct {
	Company
	Jobs []Job `json:"jobs"`
}

type NewCompany struct {
	Handle       string  `json:"handle" validate:"required,max=25,lowercase"`
	Name         string  `json:"name" validate:"required"`
	Description  string  `json:"description" validate:"required"`
	NumEmployees *int    `json:"numEmployees" validate:"omitempty,min=0"`
	LogoURL      *string `json:"logoUrl" validate:"omitempty,url"`
}

const companyColumns = `handle, name, description, num_employees AS "numEmployees", logo_url AS "logoUrl"`

var (
	companyDuplicateQuery = db.Query(`SELECT handle FROM companies WHERE handle = :handle`)
	companyInsertQuery    = db.Query(`INSERT INTO companies (handle, name, description, num_employees, logo_url)
VALUES (:handle, :name, :description, :numEmployees, :logoUrl)
RETURNING ` + companyColumns)
	companyGetQuery     = db.Query(`SELECT ` + companyColumns + ` FROM companies WHERE handle = :handle`)
	companyJobsQuery    = db.Query(`SELECT ` + jobColumns + ` FROM jobs WHERE company_handle = :handle ORDER BY id`)
	companyUpdateTail   = db.Query(`WHERE handle = :handle RETURNING ` + companyColumns)
	companyDeleteQuery  = db.Query(`DELETE FROM companies WHERE handle = :handle RETURNING handle`)
	companyUpdatable    = map[string]bool{"name": true, "description": true, "numEmployees": true, "logoUrl": true}
	companySearchPrefix = `SELECT ` + companyColumns + ` FROM companies`
)

// CompanyStore reads and writes companies.
type CompanyStore struct {
	db      *db.Db
	columns db.ColumnNameMap
	filters db.FilterTable
	logger  log.Logger
}

// NewCompanyStore creates a store searching with filters. The store owns filters from then on.
func NewCompanyStore(database *db.Db, cfg config.Config, filters db.FilterTable) *CompanyStore {
	return &CompanyStore{
		db:      database,
		columns: db.NewColumnNameMap(cfg.Naming(), "name", "description", "numEmployees", "logoUrl"),
		filters: filters,
		logger:  cfg.Logger(),
	}
}

// Create adds a company. A handle that is already taken is a ValidationError.
func (s *CompanyStore) Create(ctx context.Context, company NewCompany) (*Company, error) {
	query, values, err := companyDuplicateQuery.Bind(db.Args{"handle": company.Handle})
	if err != nil {
		return nil, err
	}
	existing, err := s.db.SelectOne(ctx, query, values...)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, e.NewValidationError(fmt.Sprintf("Duplicate company: %s", company.Handle))
	}

	query, values, err = companyInsertQuery.Bind(db.Args{
		"handle":       company.Handle,
		"name":         company.Name,
		"description":  company.Description,
		"numEmployees": company.NumEmployees,
		"logoUrl":      company.LogoURL,
	})
	if err != nil {
		return nil, err
	}
	row, err := s.db.SelectOne(ctx, query, values...)
	if err != nil {
		if db.IsUniqueViolation(err) {
			return nil, e.NewValidationError(fmt.Sprintf("Duplicate company: %s", company.Handle))
		}
		return nil, err
	}

	s.logger.Info("company created", "handle", company.Handle)
	return toCompany(row)
}

// FindAll returns the companies matching filter, ordered by name.
func (s *CompanyStore) FindAll(ctx context.Context, filter CompanyFilter) ([]Company, error) {
	where, err := db.BuildFilter(filter.Values(), s.filters)
	if err != nil {
		return nil, err
	}

	query := companySearchPrefix
	if !where.IsEmpty() {
		query += " " + where.Where()
	}
	rows, err := s.db.Select(ctx, query+" ORDER BY name", where.Values...)
	if err != nil {
		return nil, err
	}

	companies := make([]Company, 0, len(rows))
	for _, row := range rows {
		var company Company
		if err := decodeRow(row, &company); err != nil {
			return nil, err
		}
		companies = append(companies, company)
	}
	return companies, nil
}

// Get returns a company with its jobs.
func (s *CompanyStore) Get(ctx context.Context, handle string) (*CompanyDetail, error) {
	args := db.Args{"handle": handle}
	query, values, err := companyGetQuery.Bind(args)
	if err != nil {
		return nil, err
	}
	row, err := s.db.SelectOne(ctx, query, values...)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, e.NewNotFoundError(fmt.Sprintf("No company: %s", handle))
	}

	company, err := toCompany(row)
	if err != nil {
		return nil, err
	}

	query, values, err = companyJobsQuery.Bind(args)
	if err != nil {
		return nil, err
	}
	rows, err := s.db.Select(ctx, query, values...)
	if err != nil {
		return nil, err
	}
	jobs, err := toJobs(rows)
	if err != nil {
		return nil, err
	}

	return &CompanyDetail{Company: *company, Jobs: jobs}, nil
}

// Update changes the attributes listed in spec. The handle cannot be changed.
func (s *CompanyStore) Update(ctx context.Context, handle string, spec db.UpdateSpec) (*Company, error) {
	if err := checkAttributes(spec, companyUpdatable); err != nil {
		return nil, err
	}

	query, values, err := update(spec, s.columns, "companies", companyUpdateTail, db.Args{"handle": handle})
	if err != nil {
		return nil, err
	}
	row, err := s.db.SelectOne(ctx, query, values...)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, e.NewNotFoundError(fmt.Sprintf("No company: %s", handle))
	}
	return toCompany(row)
}

// Remove deletes a company and, through the foreign key, its jobs.
func (s *CompanyStore) Remove(ctx context.Context, handle string) error {
	query, values, err := companyDeleteQuery.Bind(db.Args{"handle": handle})
	if err != nil {
		return err
	}
	row, err := s.db.SelectOne(ctx, query, values...)
	if err != nil {
		return err
	}
	if row == nil {
		return e.NewNotFoundError(fmt.Sprintf("No company: %s", handle))
	}

	s.logger.Info("company removed", "handle", handle)
	return nil
}

func toCompany(row map[string]interface{}) (*Company, error) {
	var company Company
	if err := decodeRow(row, &company); err != nil {
		return nil, err
	}
	return &company, nil
}
