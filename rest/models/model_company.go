package models

import "github.com/joblyhq/jobly-api/model"

type CompanyResponse struct {
	Company interface{} `json:"company"`
}

type CompaniesResponse struct {
	Companies []model.Company `json:"companies"`
}

// CompanyUpdate lists the attributes a company update may carry.
type CompanyUpdate struct {
	Name         *string `json:"name" validate:"omitempty,min=1"`
	Description  *string `json:"description"`
	NumEmployees *int    `json:"numEmployees" validate:"omitempty,min=0"`
	LogoURL      *string `json:"logoUrl" validate:"omitempty,url"`
}
