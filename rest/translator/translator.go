// Package translator turns request input (query strings and JSON bodies) into validated model values.
package translator

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
	"github.com/mitchellh/mapstructure"

	"github.com/joblyhq/jobly-api/db"
	"github.com/joblyhq/jobly-api/model"
	e "github.com/joblyhq/jobly-api/rest/errors"
)

var (
	inputValidator *validator.Validate
	trans          ut.Translator
)

func init() {
	inputValidator = validator.New()
	inputValidator.RegisterTagNameFunc(jsonName)

	uni := ut.New(en.New(), en.New())
	trans, _ = uni.GetTranslator("en")

	_ = enTranslations.RegisterDefaultTranslations(inputValidator, trans)

	_ = inputValidator.RegisterTranslation("required", trans, func(ut ut.Translator) error {
		return ut.Add("required", "{0} is a required field", true)
	}, func(ut ut.Translator, fe validator.FieldError) string {
		t, _ := ut.T("required", fe.Field())
		return t
	})
}

// jsonName reports fields under the name the client used.
func jsonName(field reflect.StructField) string {
	for _, tag := range []string{"json", "mapstructure"} {
		name := strings.SplitN(field.Tag.Get(tag), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name != "" {
			return name
		}
	}
	return field.Name
}

// Validate checks obj against its validate tags.
func Validate(obj interface{}) error {
	if err := inputValidator.Struct(obj); err != nil {
		return e.TranslateValidatorError(err, trans)
	}
	return nil
}

// DecodeBody reads a single JSON object into obj, rejecting unknown attributes, and validates it.
func DecodeBody(body []byte, obj interface{}) error {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.DisallowUnknownFields()
	if err := dec.Decode(obj); err != nil {
		return e.NewValidationError(fmt.Sprintf("invalid request body: %v", err))
	}
	if dec.More() {
		return e.NewValidationError("request body must contain a single JSON object")
	}
	return Validate(obj)
}

// ToUpdateSpec validates body against the attributes allowed in typed and returns its assignments in
// the order they appear in body.
func ToUpdateSpec(body []byte, typed interface{}) (db.UpdateSpec, error) {
	if err := DecodeBody(body, typed); err != nil {
		return nil, err
	}
	return db.DecodeUpdateSpec(body)
}

// ToCompanyFilter decodes the query string of a company search.
func ToCompanyFilter(query url.Values) (model.CompanyFilter, error) {
	var filter model.CompanyFilter
	if err := decodeQuery(query, &filter); err != nil {
		return filter, err
	}
	return filter, Validate(filter)
}

// ToJobFilter decodes the query string of a job search.
func ToJobFilter(query url.Values) (model.JobFilter, error) {
	var filter model.JobFilter
	if err := decodeQuery(query, &filter); err != nil {
		return filter, err
	}
	return filter, Validate(filter)
}

// decodeQuery decodes a query string into a filter. Unknown keys, repeated keys and values that do not
// parse as the field type are ValidationErrors.
func decodeQuery(query url.Values, out interface{}) error {
	input := make(map[string]interface{}, len(query))
	for key, values := range query {
		if len(values) != 1 {
			return e.NewValidationError(fmt.Sprintf("%s must be given once", key))
		}
		input[key] = values[0]
	}
	return decodeFilter(input, out)
}

// DecodeFilter decodes already parsed filter arguments, such as GraphQL arguments, into out and
// validates the result the same way a query string is.
func DecodeFilter(args map[string]interface{}, out interface{}) error {
	if err := decodeFilter(args, out); err != nil {
		return err
	}
	return Validate(out)
}

func decodeFilter(input map[string]interface{}, out interface{}) error {
	var metadata mapstructure.Metadata
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Metadata:         &metadata,
		Result:           out,
	})
	if err != nil {
		return err
	}

	if err := decoder.Decode(input); err != nil {
		var mapErr *mapstructure.Error
		if errors.As(err, &mapErr) {
			details := append([]string(nil), mapErr.Errors...)
			sort.Strings(details)
			return e.NewValidationError(strings.Join(details, " "), details...)
		}
		return e.NewValidationError(err.Error())
	}

	if len(metadata.Unused) > 0 {
		sort.Strings(metadata.Unused)
		return e.NewValidationError(fmt.Sprintf("unknown filter: %s", strings.Join(metadata.Unused, ", ")))
	}
	return nil
}
