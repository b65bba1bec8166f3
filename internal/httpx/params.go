package httpx

import (
	"fmt"
	"net/http"
	"net/url"
	"slices"
	"strconv"
	"strings"
)

// QueryParser coerces query-string values and collects one detail per malformed field.
type QueryParser struct {
	values  url.Values
	details []ErrorDetail
}

func NewQueryParser(values url.Values) *QueryParser {
	return &QueryParser{values: values}
}

func (p *QueryParser) fail(key, format string, args ...any) {
	p.details = append(p.details, ErrorDetail{Field: key, Message: fmt.Sprintf(format, args...)})
}

func (p *QueryParser) String(key string) string {
	return p.values.Get(key)
}

// Int returns def when key is absent.
func (p *QueryParser) Int(key string, def int) int {
	raw := strings.TrimSpace(p.values.Get(key))
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		p.fail(key, "%s must be an integer", key)
		return def
	}
	return v
}

// MinInt is Int with a lower bound.
func (p *QueryParser) MinInt(key string, def, minimum int) int {
	v := p.Int(key, def)
	if v < minimum {
		p.fail(key, "%s must be at least %d", key, minimum)
		return def
	}
	return v
}

func (p *QueryParser) OptionalInt64(key string) *int64 {
	raw := strings.TrimSpace(p.values.Get(key))
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		p.fail(key, "%s must be an integer", key)
		return nil
	}
	return &v
}

// OptionalBool accepts true/false/1/0.
func (p *QueryParser) OptionalBool(key string) *bool {
	raw := strings.TrimSpace(p.values.Get(key))
	var v bool
	switch raw {
	case "":
		return nil
	case "true", "1":
		v = true
	case "false", "0":
		v = false
	default:
		p.fail(key, "%s must be a boolean", key)
		return nil
	}
	return &v
}

// OneOf returns the value when it is one of allowed, "" when absent.
func (p *QueryParser) OneOf(key string, allowed ...string) string {
	raw := strings.TrimSpace(p.values.Get(key))
	if raw == "" {
		return ""
	}
	if !slices.Contains(allowed, raw) {
		p.fail(key, "%s must be one of %s", key, strings.Join(allowed, ", "))
		return ""
	}
	return raw
}

// Err returns a *ValidationError when any value was malformed.
func (p *QueryParser) Err() error {
	if len(p.details) == 0 {
		return nil
	}
	return &ValidationError{Details: p.details}
}

// PathID parses the named path value as a positive integer id.
func PathID(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(r.PathValue(name), 10, 64)
	if err != nil || id < 1 {
		return 0, &ValidationError{Details: []ErrorDetail{{Field: name, Message: name + " must be a positive integer"}}}
	}
	return id, nil
}
