package graphql

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/graphql-go/graphql"

	"github.com/joblyhq/jobly-api/model"
	t "github.com/joblyhq/jobly-api/rest/translator"
)

func (sg *SchemaGenerator) queryCompanies(params graphql.ResolveParams) (interface{}, error) {
	var filter model.CompanyFilter
	if err := t.DecodeFilter(params.Args, &filter); err != nil {
		return nil, err
	}

	companies, err := sg.stores.Companies.FindAll(params.Context, filter)
	if err != nil {
		return nil, err
	}
	return toResult(companies)
}

func (sg *SchemaGenerator) queryCompany(params graphql.ResolveParams) (interface{}, error) {
	handle, _ := params.Args["handle"].(string)
	company, err := sg.stores.Companies.Get(params.Context, handle)
	if err != nil {
		return nil, err
	}
	return toResult(company)
}

func (sg *SchemaGenerator) queryJobs(params graphql.ResolveParams) (interface{}, error) {
	var filter model.JobFilter
	if err := t.DecodeFilter(params.Args, &filter); err != nil {
		return nil, err
	}

	jobs, err := sg.stores.Jobs.FindAll(params.Context, filter)
	if err != nil {
		return nil, err
	}
	return toResult(jobs)
}

func (sg *SchemaGenerator) queryJob(params graphql.ResolveParams) (interface{}, error) {
	id, ok := params.Args["id"].(int)
	if !ok {
		return nil, fmt.Errorf("invalid job id %v", params.Args["id"])
	}

	job, err := sg.stores.Jobs.Get(params.Context, strconv.Itoa(id))
	if err != nil {
		return nil, err
	}
	return toResult(job)
}

// toResult renders a model value the way the REST endpoint does, so both endpoints share field names
// and formats.
func toResult(value interface{}) (interface{}, error) {
	data, err := json.Marshal(value)
	if err != nil {
		return nil, err
	}

	var result interface{}
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, err
	}
	return result, nil
}
