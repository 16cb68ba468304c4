package types

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"

	"gopkg.in/inf.v0"
)

// Decimal is an exact numeric value, such as the equity of a job. It is rendered as a JSON string
// ("0.25") so that no precision is lost in transit, and accepts either a JSON number or a string.
type Decimal struct {
	*inf.Dec
}

func NewDecimal(s string) (Decimal, error) {
	d, ok := new(inf.Dec).SetString(s)
	if !ok {
		return Decimal{}, fmt.Errorf("invalid decimal value '%s'", s)
	}
	return Decimal{d}, nil
}

func MustDecimal(s string) Decimal {
	d, err := NewDecimal(s)
	if err != nil {
		panic(err)
	}
	return d
}

// ToDecimal converts the values produced by JSON decoding and by the database drivers.
func ToDecimal(value interface{}) (Decimal, error) {
	switch v := value.(type) {
	case Decimal:
		return v, nil
	case *inf.Dec:
		return Decimal{v}, nil
	case string:
		return NewDecimal(v)
	case []byte:
		return NewDecimal(string(v))
	case json.Number:
		return NewDecimal(v.String())
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return Decimal{}, errors.New("decimal value must be finite")
		}
		return NewDecimal(strconv.FormatFloat(v, 'f', -1, 64))
	case float32:
		return ToDecimal(float64(v))
	case int:
		return Decimal{inf.NewDec(int64(v), 0)}, nil
	case int64:
		return Decimal{inf.NewDec(v, 0)}, nil
	case int32:
		return Decimal{inf.NewDec(int64(v), 0)}, nil
	default:
		return Decimal{}, fmt.Errorf("unsupported decimal value of type %T", value)
	}
}

func (d Decimal) IsNull() bool {
	return d.Dec == nil
}

// Cmp compares against other, a null decimal sorts first.
func (d Decimal) Cmp(other Decimal) int {
	switch {
	case d.IsNull() && other.IsNull():
		return 0
	case d.IsNull():
		return -1
	case other.IsNull():
		return 1
	}
	return d.Dec.Cmp(other.Dec)
}

func (d Decimal) String() string {
	if d.IsNull() {
		return ""
	}
	return d.Dec.String()
}

func (d Decimal) MarshalJSON() ([]byte, error) {
	if d.IsNull() {
		return []byte("null"), nil
	}
	return json.Marshal(d.Dec.String())
}

func (d *Decimal) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		d.Dec = nil
		return nil
	}

	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	if _, ok := raw.(float64); ok {
		// Keep the literal digits instead of the float64 approximation
		raw = json.Number(string(data))
	}

	parsed, err := ToDecimal(raw)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Value implements driver.Valuer, decimals are sent to the database as text.
func (d Decimal) Value() (driver.Value, error) {
	if d.IsNull() {
		return nil, nil
	}
	return d.Dec.String(), nil
}
