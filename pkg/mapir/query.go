package mapir

import (
	"fmt"
	"math"
	"net/url"
	"reflect"
	"strconv"
	"strings"
)

// CleanMode selects which values a Query drops when encoding.
type CleanMode int

const (
	// CleanStrict drops every falsy value: nil, "", 0, NaN and false.
	CleanStrict CleanMode = iota
	// CleanPresent drops only absent values: nil, nil pointers and "".
	CleanPresent
)

// Query is an ordered set of query-string parameters.
type Query struct {
	keys   []string
	values map[string]interface{}
}

// NewQuery returns an empty Query.
func NewQuery() *Query {
	return &Query{values: make(map[string]interface{})}
}

// Set stores value under key. Setting an existing key replaces its value but
// keeps its original position.
func (q *Query) Set(key string, value interface{}) *Query {
	if _, exists := q.values[key]; !exists {
		q.keys = append(q.keys, key)
	}
	q.values[key] = value
	return q
}

// Encode encodes the query in strict mode.
func (q *Query) Encode() string {
	return q.EncodeMode(CleanStrict)
}

// EncodeMode URL-encodes the kept pairs in insertion order.
func (q *Query) EncodeMode(mode CleanMode) string {
	var b strings.Builder
	for _, key := range q.keys {
		s, keep := stringify(q.values[key], mode)
		if !keep {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(key))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(s))
	}
	return b.String()
}

// AppendTo joins path and the encoded query. The "?" is left out when nothing
// survives cleaning.
func (q *Query) AppendTo(path string, mode CleanMode) string {
	encoded := q.EncodeMode(mode)
	if encoded == "" {
		return path
	}
	return path + "?" + encoded
}

// stringify converts v to its query form and reports whether mode keeps it.
func stringify(v interface{}, mode CleanMode) (string, bool) {
	if v == nil {
		return "", false
	}

	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Ptr || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return "", false
		}
		rv = rv.Elem()
	}

	if s, ok := rv.Interface().(fmt.Stringer); ok {
		str := s.String()
		return str, str != ""
	}

	var (
		str    string
		truthy bool
	)

	switch rv.Kind() {
	case reflect.String:
		str = rv.String()
		if str == "" {
			return "", false
		}
		truthy = true
	case reflect.Bool:
		str = strconv.FormatBool(rv.Bool())
		truthy = rv.Bool()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		str = strconv.FormatInt(rv.Int(), 10)
		truthy = rv.Int() != 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		str = strconv.FormatUint(rv.Uint(), 10)
		truthy = rv.Uint() != 0
	case reflect.Float32:
		f := rv.Float()
		str = strconv.FormatFloat(f, 'f', -1, 32)
		truthy = f != 0 && !math.IsNaN(f)
	case reflect.Float64:
		f := rv.Float()
		str = strconv.FormatFloat(f, 'f', -1, 64)
		truthy = f != 0 && !math.IsNaN(f)
	default:
		str = fmt.Sprint(rv.Interface())
		truthy = str != ""
	}

	if mode == CleanStrict && !truthy {
		return "", false
	}
	return str, true
}
