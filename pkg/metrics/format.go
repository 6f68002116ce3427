package metrics

import (
	"encoding"
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

var ErrUnrenderable = errors.New("metric value cannot be rendered as text")

// Format encodes a single event without the source segment.
func Format(kind Kind, prefix, name string, value any) (string, error) {
	rendered, err := Render(value)
	if err != nil {
		return "", fmt.Errorf("format %s %q: %w", kind, name, err)
	}

	var b strings.Builder
	b.WriteString(string(kind))
	b.WriteByte('#')
	if prefix != "" {
		b.WriteString(prefix)
		b.WriteByte('.')
	}
	b.WriteString(name)
	b.WriteByte('=')
	b.WriteString(rendered)
	return b.String(), nil
}

// Render turns a metric value into its wire text.
func Render(value any) (string, error) {
	switch v := value.(type) {
	case string:
		return v, nil
	case int:
		return strconv.Itoa(v), nil
	case int8:
		return strconv.FormatInt(int64(v), 10), nil
	case int16:
		return strconv.FormatInt(int64(v), 10), nil
	case int32:
		return strconv.FormatInt(int64(v), 10), nil
	case int64:
		return strconv.FormatInt(v, 10), nil
	case uint:
		return strconv.FormatUint(uint64(v), 10), nil
	case uint8:
		return strconv.FormatUint(uint64(v), 10), nil
	case uint16:
		return strconv.FormatUint(uint64(v), 10), nil
	case uint32:
		return strconv.FormatUint(uint64(v), 10), nil
	case uint64:
		return strconv.FormatUint(v, 10), nil
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32), nil
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), nil
	case bool:
		return strconv.FormatBool(v), nil
	case decimal.Decimal:
		return v.String(), nil
	case encoding.TextMarshaler:
		if isNilPointer(v) {
			return "", fmt.Errorf("%w: nil %T", ErrUnrenderable, value)
		}
		text, err := v.MarshalText()
		if err != nil {
			return "", err
		}
		return string(text), nil
	case fmt.Stringer:
		if isNilPointer(v) {
			return "", fmt.Errorf("%w: nil %T", ErrUnrenderable, value)
		}
		return v.String(), nil
	default:
		return "", fmt.Errorf("%w: %T", ErrUnrenderable, value)
	}
}

func isNilPointer(v any) bool {
	rv := reflect.ValueOf(v)
	return rv.Kind() == reflect.Pointer && rv.IsNil()
}

func line(source, encoded string) string {
	if source == "" {
		return encoded
	}
	return "source=" + source + " " + encoded
}
