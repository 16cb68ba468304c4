package models

import (
	"github.com/joblyhq/jobly-api/model"
	"github.com/joblyhq/jobly-api/types"
)

type JobResponse struct {
	Job interface{} `json:"job"`
}

type JobsResponse struct {
	Jobs []model.Job `json:"jobs"`
}

// JobUpdate lists the attributes a job update may carry.
type JobUpdate struct {
	Title         *string        `json:"title" validate:"omitempty,min=1"`
	Salary        *int           `json:"salary" validate:"omitempty,min=0"`
	Equity        *types.Decimal `json:"equity"`
	CompanyHandle *string        `json:"companyHandle" validate:"omitempty,max=25"`
}
