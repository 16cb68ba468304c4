package graphql

import (
	"github.com/graphql-go/graphql"
	"github.com/graphql-go/graphql/language/ast"

	"github.com/joblyhq/jobly-api/types"
)

var decimal = graphql.NewScalar(graphql.ScalarConfig{
	Name:         "Decimal",
	Description:  "The `Decimal` scalar type represents an exact decimal number as a string.",
	Serialize:    serializeDecimal,
	ParseValue:   deserializeDecimal,
	ParseLiteral: parseLiteralDecimal,
})

func serializeDecimal(value interface{}) interface{} {
	switch value := value.(type) {
	case types.Decimal:
		if value.IsNull() {
			return nil
		}
		return value.String()
	case *types.Decimal:
		if value == nil {
			return nil
		}
		return serializeDecimal(*value)
	default:
		return value
	}
}

func deserializeDecimal(value interface{}) interface{} {
	d, err := types.ToDecimal(value)
	if err != nil {
		return nil
	}
	return d
}

func parseLiteralDecimal(valueAST ast.Value) interface{} {
	switch valueAST := valueAST.(type) {
	case *ast.StringValue:
		return deserializeDecimal(valueAST.Value)
	case *ast.FloatValue:
		return deserializeDecimal(valueAST.Value)
	case *ast.IntValue:
		return deserializeDecimal(valueAST.Value)
	}
	return nil
}
