package model

import (
	"context"
	"fmt"
	"strconv"

	"github.com/joblyhq/jobly-api/config"
	"github.com/joblyhq/jobly-api/db"
	"github.com/joblyhq/jobly-api/log"
	e "github.com/joblyhq/jobly-api/rest/errors"
	"github.com/joblyhq/jobly-api/types"
)

type Job struct {
	ID            int           `json:"id"`
	Title         string        `json:"title"`
	Salary        *int          `json:"salary"`
	Equity        types.Decimal `json:"equity"`
	CompanyHandle string        `json:"companyHandle"`
}

// JobDetail is a job together with the company offering it.
type JobDetail struct {
	ID      int           `json:"id"`
	Title   string        `json:"title"`
	Salary  *int          `json:"salary"`
	Equity  types.Decimal `json:"equity"`
	Company Company       `json:"company"`
}

type NewJob struct {
	Title         string        `json:"title" validate:"required"`
	Salary        *int          `json:"salary" validate:"omitempty,min=0"`
	Equity        types.Decimal `json:"equity"`
	CompanyHandle string        `json:"companyHandle" validate:"required,max=25"`
}

const jobColumns = `id, title, salary, equity, company_handle AS "companyHandle"`

var (
	jobDuplicateQuery = db.Query(`SELECT id FROM jobs
WHERE title = :title AND salary IS NOT DISTINCT FROM :salary AND equity IS NOT DISTINCT FROM :equity AND company_handle = :companyHandle`)
	jobInsertQuery = db.Query(`INSERT INTO jobs (title, salary, equity, company_handle)
VALUES (:title, :salary, :equity, :companyHandle)
RETURNING ` + jobColumns)
	jobGetQuery = db.Query(`SELECT j.id, j.title, j.salary, j.equity,
c.handle, c.name, c.description, c.num_employees AS "numEmployees", c.logo_url AS "logoUrl"
FROM jobs AS j JOIN companies AS c ON j.company_handle = c.handle
WHERE j.id = :id`)
	jobUpdateTail   = db.Query(`WHERE id = :id RETURNING ` + jobColumns)
	jobDeleteQuery  = db.Query(`DELETE FROM jobs WHERE id = :id RETURNING id`)
	jobUpdatable    = map[string]bool{"title": true, "salary": true, "equity": true, "companyHandle": true}
	jobSearchPrefix = `SELECT ` + jobColumns + ` FROM jobs`
)

// JobStore reads and writes jobs.
type JobStore struct {
	db      *db.Db
	columns db.ColumnNameMap
	filters db.FilterTable
	logger  log.Logger
}

// NewJobStore creates a store searching with filters. The store owns filters from then on.
func NewJobStore(database *db.Db, cfg config.Config, filters db.FilterTable) *JobStore {
	return &JobStore{
		db:      database,
		columns: db.NewColumnNameMap(cfg.Naming(), "title", "salary", "equity", "companyHandle"),
		filters: filters,
		logger:  cfg.Logger(),
	}
}

// Create adds a job. An identical job at the same company is a ValidationError.
func (s *JobStore) Create(ctx context.Context, job NewJob) (*Job, error) {
	if err := checkEquity(job.Equity); err != nil {
		return nil, err
	}

	args := db.Args{
		"title":         job.Title,
		"salary":        job.Salary,
		"equity":        job.Equity,
		"companyHandle": job.CompanyHandle,
	}

	query, values, err := jobDuplicateQuery.Bind(args)
	if err != nil {
		return nil, err
	}
	existing, err := s.db.SelectOne(ctx, query, values...)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, e.NewValidationError(fmt.Sprintf("Duplicate job: %v", existing["id"]))
	}

	query, values, err = jobInsertQuery.Bind(args)
	if err != nil {
		return nil, err
	}
	row, err := s.db.SelectOne(ctx, query, values...)
	if err != nil {
		return nil, err
	}

	created, err := toJob(row)
	if err != nil {
		return nil, err
	}
	s.logger.Info("job created", "id", created.ID, "company", created.CompanyHandle)
	return created, nil
}

// FindAll returns the jobs matching filter, ordered by id.
func (s *JobStore) FindAll(ctx context.Context, filter JobFilter) ([]Job, error) {
	where, err := db.BuildFilter(filter.Values(), s.filters)
	if err != nil {
		return nil, err
	}

	query := jobSearchPrefix
	if !where.IsEmpty() {
		query += " " + where.Where()
	}
	rows, err := s.db.Select(ctx, query+" ORDER BY id", where.Values...)
	if err != nil {
		return nil, err
	}
	return toJobs(rows)
}

// Get returns a job with its company. An id that is not a number is not found.
func (s *JobStore) Get(ctx context.Context, id string) (*JobDetail, error) {
	jobID, err := parseJobID(id)
	if err != nil {
		return nil, err
	}

	query, values, err := jobGetQuery.Bind(db.Args{"id": jobID})
	if err != nil {
		return nil, err
	}
	row, err := s.db.SelectOne(ctx, query, values...)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, e.NewNotFoundError(fmt.Sprintf("No job: %s", id))
	}

	var detail JobDetail
	if err := decodeRow(row, &detail); err != nil {
		return nil, err
	}
	if err := decodeRow(row, &detail.Company); err != nil {
		return nil, err
	}
	return &detail, nil
}

// Update changes the attributes listed in spec. The id of a job cannot be changed. Moving a job to a
// company that does not exist fails on the foreign key as a ValidationError.
func (s *JobStore) Update(ctx context.Context, id string, spec db.UpdateSpec) (*Job, error) {
	jobID, err := parseJobID(id)
	if err != nil {
		return nil, err
	}
	if err := checkAttributes(spec, jobUpdatable); err != nil {
		return nil, err
	}
	if value, ok := spec.Get("equity"); ok && value != nil {
		equity, err := types.ToDecimal(value)
		if err != nil {
			return nil, e.NewValidationError("equity must be a number")
		}
		if err := checkEquity(equity); err != nil {
			return nil, err
		}
		spec = spec.Set("equity", equity)
	}

	query, values, err := update(spec, s.columns, "jobs", jobUpdateTail, db.Args{"id": jobID})
	if err != nil {
		return nil, err
	}
	row, err := s.db.SelectOne(ctx, query, values...)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, e.NewNotFoundError(fmt.Sprintf("No job: %s", id))
	}
	return toJob(row)
}

func (s *JobStore) Remove(ctx context.Context, id string) error {
	jobID, err := parseJobID(id)
	if err != nil {
		return err
	}

	query, values, err := jobDeleteQuery.Bind(db.Args{"id": jobID})
	if err != nil {
		return err
	}
	row, err := s.db.SelectOne(ctx, query, values...)
	if err != nil {
		return err
	}
	if row == nil {
		return e.NewNotFoundError(fmt.Sprintf("No job: %s", id))
	}

	s.logger.Info("job removed", "id", jobID)
	return nil
}

var (
	minEquity = types.MustDecimal("0")
	maxEquity = types.MustDecimal("1")
)

func checkEquity(equity types.Decimal) error {
	if equity.IsNull() {
		return nil
	}
	if equity.Cmp(minEquity) < 0 || equity.Cmp(maxEquity) > 0 {
		return e.NewValidationError("equity must be between 0 and 1")
	}
	return nil
}

func parseJobID(id string) (int, error) {
	jobID, err := strconv.Atoi(id)
	if err != nil || jobID <= 0 {
		return 0, e.NewNotFoundError(fmt.Sprintf("No job: %s", id))
	}
	return jobID, nil
}

func toJob(row map[string]interface{}) (*Job, error) {
	var job Job
	if err := decodeRow(row, &job); err != nil {
		return nil, err
	}
	return &job, nil
}

func toJobs(rows []map[string]interface{}) ([]Job, error) {
	jobs := make([]Job, 0, len(rows))
	for _, row := range rows {
		job, err := toJob(row)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, *job)
	}
	return jobs, nil
}
