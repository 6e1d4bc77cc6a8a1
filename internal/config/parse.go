package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"sort"

	"effectlint/internal/catalog"
)

// Parse decodes and validates a JSON configuration. Nothing is returned
// unless the whole document is valid.
func Parse(data []byte) (*AnalysisConfig, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	var raw any
	if err := dec.Decode(&raw); err != nil {
		return nil, &ParseError{Reason: "invalid JSON: " + err.Error(), Err: err}
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, &ParseError{Reason: "trailing data after the configuration object"}
	}
	return FromValue(raw)
}

// FromValue validates a decoded document, as produced by JSON, TOML or YAML decoders.
func FromValue(raw any) (*AnalysisConfig, error) {
	root, ok := asObject(raw)
	if !ok {
		return nil, fieldError("", "root must be an object, got %s", typeName(raw))
	}
	cfg := &AnalysisConfig{}
	var err error
	for _, key := range sortedKeys(root) {
		val := root[key]
		switch key {
		case "ignore":
			cfg.Ignore, err = stringList("ignore", val)
		case "include":
			cfg.Include, err = stringList("include", val)
		case "rules":
			cfg.Rules, err = ruleSettings(val)
		case "$schema":
		default:
			err = fieldError(key, "unknown field")
		}
		if err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

func stringList(field string, v any) ([]string, error) {
	items, ok := v.([]any)
	if !ok {
		return nil, fieldError(field, "must be an array of strings, got %s", typeName(v))
	}
	out := make([]string, 0, len(items))
	for _, it := range items {
		s, ok := it.(string)
		if !ok {
			return nil, fieldError(field, "must contain only strings, got %s", typeName(it))
		}
		out = append(out, s)
	}
	return out, nil
}

func ruleSettings(v any) (map[string]RuleSetting, error) {
	obj, ok := asObject(v)
	if !ok {
		return nil, fieldError("rules", "must be an object, got %s", typeName(v))
	}
	out := make(map[string]RuleSetting, len(obj))
	for _, id := range sortedKeys(obj) {
		field := "rules." + id
		setting, err := ruleSetting(field, obj[id])
		if err != nil {
			return nil, err
		}
		out[id] = setting
	}
	return out, nil
}

func ruleSetting(field string, v any) (RuleSetting, error) {
	switch val := v.(type) {
	case string:
		lvl, err := level(field, val)
		return RuleSetting{Level: lvl}, err
	case []any:
		if len(val) == 0 || len(val) > 2 {
			return RuleSetting{}, fieldError(field, "tuple must be [level] or [level, {severity, options}]")
		}
		s, ok := val[0].(string)
		if !ok {
			return RuleSetting{}, fieldError(field+"[0]", "level must be a string, got %s", typeName(val[0]))
		}
		lvl, err := level(field+"[0]", s)
		if err != nil {
			return RuleSetting{}, err
		}
		setting := RuleSetting{Level: lvl, Tuple: true}
		if len(val) == 2 {
			if err := tupleOptions(field+"[1]", val[1], &setting); err != nil {
				return RuleSetting{}, err
			}
		}
		return setting, nil
	}
	return RuleSetting{}, fieldError(field, "must be a level string or a [level, options] tuple, got %s", typeName(v))
}

func tupleOptions(field string, v any, setting *RuleSetting) error {
	obj, ok := asObject(v)
	if !ok {
		return fieldError(field, "must be an object, got %s", typeName(v))
	}
	for _, key := range sortedKeys(obj) {
		switch key {
		case "severity":
			s, ok := obj[key].(string)
			sev := catalog.Severity(s)
			if !ok || !sev.Valid() {
				return fieldError(field+".severity", "must be one of low, medium, high")
			}
			setting.Severity = &sev
		case "options":
			opts, ok := asObject(obj[key])
			if !ok {
				return fieldError(field+".options", "must be an object, got %s", typeName(obj[key]))
			}
			setting.Options = opts
		default:
			return fieldError(field+"."+key, "unknown field")
		}
	}
	return nil
}

func level(field, s string) (catalog.Level, error) {
	lvl := catalog.Level(s)
	if !lvl.Valid() {
		return "", fieldError(field, "level must be one of off, warn, error, got %q", s)
	}
	return lvl, nil
}

// asObject accepts the map shapes produced by the supported decoders.
func asObject(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case map[any]any:
		out := make(map[string]any, len(m))
		for k, val := range m {
			ks, ok := k.(string)
			if !ok {
				return nil, false
			}
			out[ks] = val
		}
		return out, true
	}
	return nil, false
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func typeName(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case bool:
		return "boolean"
	case float64, int, int64, uint64, json.Number:
		return "number"
	case []any:
		return "array"
	case map[string]any, map[any]any:
		return "object"
	}
	return "value"
}
