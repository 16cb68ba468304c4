package config

import "github.com/iancoleman/strcase"

// NamingConvention translates API attribute names into storage column names.
type NamingConvention interface {
	ToColumn(attribute string) string
}

type defaultNaming struct {
}

func NewDefaultNaming() NamingConvention {
	return &defaultNaming{}
}

func (n *defaultNaming) ToColumn(attribute string) string {
	// TODO: Fix numbers: "logoUrl2" --> "logo_url_2"
	return strcase.ToSnake(attribute)
}
