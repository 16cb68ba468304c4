package translator

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/joblyhq/jobly-api/db"
	"github.com/joblyhq/jobly-api/model"
	e "github.com/joblyhq/jobly-api/rest/errors"
	m "github.com/joblyhq/jobly-api/rest/models"
)

func TestToCompanyFilter(t *testing.T) {
	filter, err := ToCompanyFilter(url.Values{"nameLike": {"net"}, "minEmployees": {"10"}})
	assert.NoError(t, err)
	assert.Equal(t, []db.FilterValue{{Key: "nameLike", Value: "net"}, {Key: "minEmployees", Value: 10}}, filter.Values())

	filter, err = ToCompanyFilter(url.Values{})
	assert.NoError(t, err)
	assert.Empty(t, filter.Values())
}

func TestToCompanyFilterRejected(t *testing.T) {
	for name, query := range map[string]url.Values{
		"unknown key":    {"color": {"red"}},
		"not a number":   {"minEmployees": {"lots"}},
		"fraction":       {"maxEmployees": {"1.5"}},
		"negative":       {"minEmployees": {"-1"}},
		"repeated key":   {"nameLike": {"a", "b"}},
		"unknown and ok": {"nameLike": {"a"}, "handle": {"c1"}},
	} {
		_, err := ToCompanyFilter(query)
		assert.True(t, e.IsValidation(err), name)
	}
}

func TestToCompanyFilterUnknownMessage(t *testing.T) {
	_, err := ToCompanyFilter(url.Values{"size": {"1"}, "color": {"red"}})
	assert.EqualError(t, err, "unknown filter: color, size")
}

func TestToJobFilter(t *testing.T) {
	filter, err := ToJobFilter(url.Values{"title": {"eng"}, "minSalary": {"100"}, "hasEquity": {"true"}})
	assert.NoError(t, err)
	assert.Equal(t, []db.FilterValue{
		{Key: "title", Value: "eng"}, {Key: "minSalary", Value: 100}, {Key: "hasEquity", Value: true},
	}, filter.Values())

	_, err = ToJobFilter(url.Values{"hasEquity": {"maybe"}})
	assert.True(t, e.IsValidation(err))
}

func TestDecodeFilter(t *testing.T) {
	var companies model.CompanyFilter
	assert.NoError(t, DecodeFilter(map[string]interface{}{"minEmployees": 5}, &companies))
	assert.Equal(t, []db.FilterValue{{Key: "minEmployees", Value: 5}}, companies.Values())

	companies = model.CompanyFilter{}
	err := DecodeFilter(map[string]interface{}{"minEmployees": -5}, &companies)
	assert.True(t, e.IsValidation(err))
	assert.Contains(t, err.Error(), "minEmployees")

	var jobs model.JobFilter
	err = DecodeFilter(map[string]interface{}{"title": ""}, &jobs)
	assert.True(t, e.IsValidation(err))
	assert.Contains(t, err.Error(), "title")

	jobs = model.JobFilter{}
	err = DecodeFilter(map[string]interface{}{"color": "red"}, &jobs)
	assert.True(t, e.IsValidation(err))
}

func TestDecodeBody(t *testing.T) {
	var company model.NewCompany
	err := DecodeBody([]byte(`{"handle":"new","name":"New","description":"D","numEmployees":5}`), &company)
	assert.NoError(t, err)
	assert.Equal(t, "new", company.Handle)
	assert.Equal(t, 5, *company.NumEmployees)

	err = DecodeBody([]byte(`{"handle":"new","name":"New","description":"D","extra":1}`), &model.NewCompany{})
	assert.True(t, e.IsValidation(err))

	err = DecodeBody([]byte(`{"handle":"New","name":"New","description":"D"}`), &model.NewCompany{})
	assert.True(t, e.IsValidation(err))

	err = DecodeBody([]byte(`not json`), &model.NewCompany{})
	assert.True(t, e.IsValidation(err))
}

func TestDecodeBodyMessages(t *testing.T) {
	err := DecodeBody([]byte(`{"password":"p"}`), &m.Credentials{})
	assert.EqualError(t, err, "username is a required field")

	err = DecodeBody([]byte(`{}`), &m.Credentials{})
	assert.EqualError(t, err, "password is a required field username is a required field")
}

func TestToUpdateSpec(t *testing.T) {
	spec, err := ToUpdateSpec([]byte(`{"numEmployees":10,"name":"New","logoUrl":null}`), &m.CompanyUpdate{})
	assert.NoError(t, err)
	assert.Equal(t, db.UpdateSpec{
		{Attribute: "numEmployees", Value: int64(10)},
		{Attribute: "name", Value: "New"},
		{Attribute: "logoUrl", Value: nil},
	}, spec)

	for _, body := range []string{
		`{"handle":"c2"}`,
		`{"numEmployees":-1}`,
		`{"numEmployees":"ten"}`,
		`{"logoUrl":"not a url"}`,
	} {
		_, err = ToUpdateSpec([]byte(body), &m.CompanyUpdate{})
		assert.True(t, e.IsValidation(err), body)
	}

	spec, err = ToUpdateSpec([]byte(`{"equity":0.25}`), &m.JobUpdate{})
	assert.NoError(t, err)
	assert.Equal(t, db.UpdateSpec{{Attribute: "equity", Value: 0.25}}, spec)

	_, err = ToUpdateSpec([]byte(`{"companyHandle":"c2"}`), &m.JobUpdate{})
	assert.True(t, e.IsValidation(err))
}
