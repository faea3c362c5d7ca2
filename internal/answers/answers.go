// Package answers reads the flat key/value answers document supplied by the
// user and coerces its values into the cty types declared by the blueprint.
package answers

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/viper"
	"github.com/vk/scaffgo/internal/blueprint"
	"github.com/zclconf/go-cty/cty"
)

// Document is a raw, flat answer set as read from disk plus any command-line
// overrides. Values are untyped until coerced against a concrete option.
type Document struct {
	values map[string]any
}

// Empty returns a document with no answers, for runs driven purely by
// defaults and -set overrides.
func Empty() *Document {
	return &Document{values: map[string]any{}}
}

// Load reads an answers file. The format (YAML, JSON or TOML) is inferred
// from the file extension.
func Load(path string) (*Document, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read answers file %s: %w", path, err)
	}
	return &Document{values: v.AllSettings()}, nil
}

// ApplySet applies key=value override pairs from the command line. Override
// values are kept as strings and coerced against the option type later, so
// `-set use_channels=true` and `-set deployment_targets=render,flyio` both
// work.
func (d *Document) ApplySet(pairs []string) error {
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok || key == "" {
			return fmt.Errorf("invalid -set %q: expected key=value", pair)
		}
		d.values[strings.ToLower(key)] = value
	}
	return nil
}

// Has reports whether a raw value was supplied for key.
func (d *Document) Has(key string) bool {
	_, ok := d.values[key]
	return ok
}

// Keys returns every supplied key, in no particular order.
func (d *Document) Keys() []string {
	keys := make([]string, 0, len(d.values))
	for k := range d.values {
		keys = append(keys, k)
	}
	return keys
}

// Coerce converts the raw value supplied for opt.Key into the option's cty
// type. It must only be called when Has(opt.Key) is true.
func (d *Document) Coerce(opt *blueprint.Option) (cty.Value, error) {
	raw, ok := d.values[opt.Key]
	if !ok {
		return cty.NilVal, fmt.Errorf("no raw answer for option %q", opt.Key)
	}

	switch opt.Kind {
	case blueprint.KindString, blueprint.KindChoice:
		s, ok := raw.(string)
		if !ok {
			return cty.NilVal, fmt.Errorf("expected a string, got %T", raw)
		}
		return cty.StringVal(s), nil

	case blueprint.KindBool:
		switch v := raw.(type) {
		case bool:
			return cty.BoolVal(v), nil
		case string:
			b, err := strconv.ParseBool(v)
			if err != nil {
				return cty.NilVal, fmt.Errorf("expected a boolean, got %q", v)
			}
			return cty.BoolVal(b), nil
		}
		return cty.NilVal, fmt.Errorf("expected a boolean, got %T", raw)

	case blueprint.KindNumber:
		switch v := raw.(type) {
		case int:
			return cty.NumberIntVal(int64(v)), nil
		case int64:
			return cty.NumberIntVal(v), nil
		case float64:
			return cty.NumberFloatVal(v), nil
		case string:
			f, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return cty.NilVal, fmt.Errorf("expected a number, got %q", v)
			}
			return cty.NumberFloatVal(f), nil
		}
		return cty.NilVal, fmt.Errorf("expected a number, got %T", raw)

	case blueprint.KindMultiChoice:
		items, err := stringSlice(raw)
		if err != nil {
			return cty.NilVal, err
		}
		if len(items) == 0 {
			return cty.ListValEmpty(cty.String), nil
		}
		vals := make([]cty.Value, len(items))
		for i, s := range items {
			vals[i] = cty.StringVal(s)
		}
		return cty.ListVal(vals), nil
	}

	return cty.NilVal, fmt.Errorf("unknown option kind %q", opt.Kind)
}

// stringSlice accepts the shapes a multichoice answer can arrive in: a real
// list from YAML/JSON/TOML, or a comma-separated -set string.
func stringSlice(raw any) ([]string, error) {
	switch v := raw.(type) {
	case []string:
		return v, nil
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("expected a list of strings, found %T element", item)
			}
			out = append(out, s)
		}
		return out, nil
	case string:
		if strings.TrimSpace(v) == "" {
			return nil, nil
		}
		parts := strings.Split(v, ",")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		return parts, nil
	}
	return nil, fmt.Errorf("expected a list of strings, got %T", raw)
}
