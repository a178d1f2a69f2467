package mcpserver

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"slides/internal/service"

	"github.com/mark3labs/mcp-go/mcp"
)

// Tool arguments arrive as decoded JSON. Structured arguments may also
// be sent as a JSON-encoded string by clients that only speak strings.

// parseJSON parses a JSON string into the target type.
func parseJSON(data string, target any) error {
	return json.Unmarshal([]byte(data), target)
}

func argError(key, format string, a ...any) error {
	return fmt.Errorf("%w: %s: %s", service.ErrInvalidInput, key, fmt.Sprintf(format, a...))
}

func getString(args map[string]any, key string) string {
	v, _ := args[key].(string)
	return strings.TrimSpace(v)
}

func requireString(args map[string]any, key string) (string, error) {
	if v := getString(args, key); v != "" {
		return v, nil
	}
	return "", argError(key, "is required")
}

// optString distinguishes an absent argument from an empty one.
func optString(args map[string]any, key string) *string {
	v, ok := args[key].(string)
	if !ok {
		return nil
	}
	return &v
}

// optFloat accepts a JSON number or a numeric string.
func optFloat(args map[string]any, key string) (*float64, error) {
	switch v := args[key].(type) {
	case nil:
		return nil, nil
	case float64:
		return &v, nil
	case int:
		f := float64(v)
		return &f, nil
	case string:
		if strings.TrimSpace(v) == "" {
			return nil, nil
		}
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return nil, argError(key, "%q is not a number", v)
		}
		return &f, nil
	}
	return nil, argError(key, "expected a number")
}

func optInt(args map[string]any, key string) (*int, error) {
	f, err := optFloat(args, key)
	if err != nil || f == nil {
		return nil, err
	}
	if *f != float64(int(*f)) {
		return nil, argError(key, "expected an integer, got %v", *f)
	}
	n := int(*f)
	return &n, nil
}

func optBool(args map[string]any, key string) (*bool, error) {
	switch v := args[key].(type) {
	case nil:
		return nil, nil
	case bool:
		return &v, nil
	case string:
		b, err := strconv.ParseBool(v)
		if err != nil {
			return nil, argError(key, "%q is not a boolean", v)
		}
		return &b, nil
	}
	return nil, argError(key, "expected a boolean")
}

func getBool(args map[string]any, key string, fallback bool) (bool, error) {
	b, err := optBool(args, key)
	if err != nil || b == nil {
		return fallback, err
	}
	return *b, nil
}

// stringList accepts a JSON array of strings, a JSON-encoded array or a
// comma-separated string.
func stringList(args map[string]any, key string) ([]string, error) {
	switch v := args[key].(type) {
	case nil:
		return nil, nil
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, argError(key, "expected strings, got %T", item)
			}
			out = append(out, s)
		}
		return out, nil
	case []string:
		return v, nil
	case string:
		v = strings.TrimSpace(v)
		if v == "" {
			return nil, nil
		}
		if strings.HasPrefix(v, "[") {
			var out []string
			if err := parseJSON(v, &out); err != nil {
				return nil, argError(key, "invalid JSON array: %v", err)
			}
			return out, nil
		}
		var out []string
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
		return out, nil
	}
	return nil, argError(key, "expected a list of strings")
}

// objectArg returns an object argument, decoding it first when it was
// sent as a JSON string.
func objectArg(args map[string]any, key string) (map[string]any, error) {
	switch v := args[key].(type) {
	case nil:
		return nil, nil
	case map[string]any:
		return v, nil
	case string:
		var out map[string]any
		if err := parseJSON(v, &out); err != nil {
			return nil, argError(key, "invalid JSON object: %v", err)
		}
		return out, nil
	}
	return nil, argError(key, "expected an object")
}

// arrayArg is objectArg for arrays.
func arrayArg(args map[string]any, key string) ([]any, error) {
	switch v := args[key].(type) {
	case nil:
		return nil, nil
	case []any:
		return v, nil
	case string:
		var out []any
		if err := parseJSON(v, &out); err != nil {
			return nil, argError(key, "invalid JSON array: %v", err)
		}
		return out, nil
	}
	return nil, argError(key, "expected an array")
}

// textContent converts a placeholder→text object. List values are joined
// with newlines, one paragraph per item.
func textContent(key string, obj map[string]any) (map[string]string, error) {
	out := make(map[string]string, len(obj))
	for k, v := range obj {
		switch t := v.(type) {
		case string:
			out[k] = t
		case []any:
			lines := make([]string, len(t))
			for i, item := range t {
				lines[i] = fmt.Sprint(item)
			}
			out[k] = strings.Join(lines, "\n")
		case nil:
			out[k] = ""
		case map[string]any:
			return nil, argError(key, "value for %q must be text or a list of text", k)
		default:
			out[k] = fmt.Sprint(t)
		}
	}
	return out, nil
}

// stringMap converts an object whose values are all strings.
func stringMap(key string, obj map[string]any) (map[string]string, error) {
	out := make(map[string]string, len(obj))
	for k, v := range obj {
		s, ok := v.(string)
		if !ok {
			return nil, argError(key, "value for %q must be a string", k)
		}
		out[k] = s
	}
	return out, nil
}

func boolPtr(v bool) *bool { return &v }

func readOnlyHint() mcp.ToolOption {
	return mcp.WithToolAnnotation(mcp.ToolAnnotation{ReadOnlyHint: boolPtr(true)})
}
