package graphql

import (
	"github.com/graphql-go/graphql"

	"github.com/joblyhq/jobly-api/log"
	"github.com/joblyhq/jobly-api/model"
)

// SchemaGenerator builds the read-only schema over the company and job stores.
type SchemaGenerator struct {
	stores *model.Stores
	logger log.Logger
}

func NewSchemaGenerator(stores *model.Stores, logger log.Logger) *SchemaGenerator {
	return &SchemaGenerator{stores: stores, logger: logger}
}

func (sg *SchemaGenerator) BuildSchema() (graphql.Schema, error) {
	jobType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Job",
		Fields: graphql.Fields{
			"id":            &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
			"title":         &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"salary":        &graphql.Field{Type: graphql.Int},
			"equity":        &graphql.Field{Type: decimal},
			"companyHandle": &graphql.Field{Type: graphql.String},
		},
	})

	companyType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Company",
		Fields: graphql.Fields{
			"handle":       &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"name":         &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"description":  &graphql.Field{Type: graphql.String},
			"numEmployees": &graphql.Field{Type: graphql.Int},
			"logoUrl":      &graphql.Field{Type: graphql.String},
			// Only resolved for a single company
			"jobs": &graphql.Field{Type: graphql.NewList(jobType)},
		},
	})

	jobType.AddFieldConfig("company", &graphql.Field{Type: companyType})

	query := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"companies": &graphql.Field{
				Type: graphql.NewList(companyType),
				Args: graphql.FieldConfigArgument{
					"nameLike":     &graphql.ArgumentConfig{Type: graphql.String},
					"minEmployees": &graphql.ArgumentConfig{Type: graphql.Int},
					"maxEmployees": &graphql.ArgumentConfig{Type: graphql.Int},
				},
				Resolve: sg.queryCompanies,
			},
			"company": &graphql.Field{
				Type: companyType,
				Args: graphql.FieldConfigArgument{
					"handle": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: sg.queryCompany,
			},
			"jobs": &graphql.Field{
				Type: graphql.NewList(jobType),
				Args: graphql.FieldConfigArgument{
					"title":     &graphql.ArgumentConfig{Type: graphql.String},
					"minSalary": &graphql.ArgumentConfig{Type: graphql.Int},
					"hasEquity": &graphql.ArgumentConfig{Type: graphql.Boolean},
				},
				Resolve: sg.queryJobs,
			},
			"job": &graphql.Field{
				Type: jobType,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Int)},
				},
				Resolve: sg.queryJob,
			},
		},
	})

	return graphql.NewSchema(graphql.SchemaConfig{Query: query})
}
