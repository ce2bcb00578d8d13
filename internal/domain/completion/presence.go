package completion

import (
	"database/sql"
	"encoding/json"
	"math"
	"reflect"
	"strings"
	"time"
)

// Count is the filled/total tally of a group of fields.
type Count struct {
	Filled int     `json:"filled"`
	Total  int     `json:"total"`
	Ratio  float64 `json:"ratio"`
}

// IsFilled reports whether a single field value counts as filled in.
// A stored false counts the same as a missing value.
func IsFilled(v any) bool {
	switch val := v.(type) {
	case nil:
		return false
	case string:
		return strings.TrimSpace(val) != ""
	case bool:
		return val
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return true
	case float32:
		return !math.IsNaN(float64(val))
	case float64:
		return !math.IsNaN(val)
	case json.Number:
		f, err := val.Float64()
		return err == nil && !math.IsNaN(f)
	case time.Time:
		return true
	case sql.NullString:
		return val.Valid && IsFilled(val.String)
	case sql.NullBool:
		return val.Valid && val.Bool
	case sql.NullInt16:
		return val.Valid
	case sql.NullInt32:
		return val.Valid
	case sql.NullInt64:
		return val.Valid
	case sql.NullFloat64:
		return val.Valid && !math.IsNaN(val.Float64)
	case sql.NullTime:
		return val.Valid
	case map[string]any:
		return len(val) > 0
	case []any:
		return len(val) > 0
	case []string:
		return len(val) > 0
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return false
		}
		return IsFilled(rv.Elem().Interface())
	case reflect.Slice, reflect.Array, reflect.Map:
		return rv.Len() > 0
	case reflect.String:
		return strings.TrimSpace(rv.String()) != ""
	case reflect.Bool:
		return rv.Bool()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return true
	case reflect.Float32, reflect.Float64:
		return !math.IsNaN(rv.Float())
	}
	return false
}

// CountFilled tallies how many of the given values are filled.
func CountFilled(values ...any) Count {
	c := Count{Total: len(values)}
	for _, v := range values {
		if IsFilled(v) {
			c.Filled++
		}
	}
	c.Ratio = ratio(c.Filled, c.Total)
	return c
}

func (c Count) add(other Count) Count {
	c.Filled += other.Filled
	c.Total += other.Total
	c.Ratio = ratio(c.Filled, c.Total)
	return c
}

func ratio(filled, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(filled) / float64(total)
}
