// Package model holds the company, job and user stores. Every statement is built from fixed query
// templates and the clause builders of package db, so request values only ever reach the database as
// bound parameters.
package model

import (
	"fmt"
	"reflect"

	"github.com/mitchellh/mapstructure"

	"github.com/joblyhq/jobly-api/config"
	"github.com/joblyhq/jobly-api/db"
	e "github.com/joblyhq/jobly-api/rest/errors"
	"github.com/joblyhq/jobly-api/types"
)

var decimalType = reflect.TypeOf(types.Decimal{})

func decimalHook(from reflect.Type, to reflect.Type, data interface{}) (interface{}, error) {
	if to != decimalType || from == decimalType {
		return data, nil
	}
	return types.ToDecimal(data)
}

// decodeRow copies the columns of row into the fields of out with the matching json name.
func decodeRow(row map[string]interface{}, out interface{}) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: decimalHook,
		TagName:    "json",
		Result:     out,
	})
	if err != nil {
		return err
	}
	if err := decoder.Decode(row); err != nil {
		return fmt.Errorf("unable to decode row: %v", err)
	}
	return nil
}

// checkAttributes rejects assignments to attributes that are not updatable.
func checkAttributes(spec db.UpdateSpec, updatable map[string]bool) error {
	for _, attr := range spec.Attributes() {
		if !updatable[attr] {
			return e.NewValidationError(fmt.Sprintf("%s cannot be updated", attr))
		}
	}
	return nil
}

// update runs `UPDATE <table> SET <spec> <tail>` where tail is bound after the assignments.
func update(spec db.UpdateSpec, columns db.ColumnNameMap, table string, tail db.Query, args db.Args) (string, []interface{}, error) {
	set, err := db.BuildPartialUpdate(spec, columns)
	if err != nil {
		return "", nil, err
	}

	query, values, err := tail.After(set, args)
	if err != nil {
		return "", nil, err
	}
	return "UPDATE " + table + " SET " + set.Text + " " + query, values, nil
}

// Stores groups the stores sharing one database.
type Stores struct {
	Companies *CompanyStore
	Jobs      *JobStore
	Users     *UserStore
}

func NewStores(database *db.Db, cfg config.Config) *Stores {
	return &Stores{
		Companies: NewCompanyStore(database, cfg, companyFilterTable()),
		Jobs:      NewJobStore(database, cfg, jobFilterTable()),
		Users:     NewUserStore(database, cfg),
	}
}
