package json

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/valyala/fastjson"
)

// ReadFile reads a whole payload, "-" meaning standard input.
func ReadFile(path string) ([]byte, error) {
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("couldn't read standard input: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("couldn't read file: %w", err)
	}
	return data, nil
}

// ForEachObject calls fn with every JSON object in the payload, which is either
// a JSON array of objects, as returned by the REST APIs, or newline delimited objects.
// An empty payload has no objects. The value passed to fn is only valid during the call.
func ForEachObject(data []byte, fn func(object *fastjson.Value) error) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil
	}

	var p fastjson.Parser
	if trimmed[0] == '[' {
		v, err := p.ParseBytes(trimmed)
		if err != nil {
			return fmt.Errorf("couldn't parse json: %w", err)
		}
		arr, err := v.Array()
		if err != nil {
			return fmt.Errorf("couldn't read json array: %w", err)
		}
		for i := range arr {
			if arr[i].Type() != fastjson.TypeObject {
				return fmt.Errorf("expected JSON object at index %d, got %s", i, arr[i].Type())
			}
			if err := fn(arr[i]); err != nil {
				return fmt.Errorf("couldn't process object at index %d: %w", i, err)
			}
		}
		return nil
	}

	sc := bufio.NewScanner(bytes.NewReader(trimmed))
	sc.Buffer(nil, 1024*1024)

	line := 0
	for sc.Scan() {
		line++
		if len(bytes.TrimSpace(sc.Bytes())) == 0 {
			continue
		}
		v, err := p.ParseBytes(sc.Bytes())
		if err != nil {
			return fmt.Errorf("couldn't parse json on line %d: %w", line, err)
		}
		if v.Type() != fastjson.TypeObject {
			return fmt.Errorf("expected JSON object on line %d, got '%s'", line, sc.Text())
		}
		if err := fn(v); err != nil {
			return fmt.Errorf("couldn't process object on line %d: %w", line, err)
		}
	}
	return sc.Err()
}

// String returns the string under the given path, or "" if it's missing or not a string.
func String(v *fastjson.Value, keys ...string) string {
	return string(v.GetStringBytes(keys...))
}

// Float returns the number under the given path, or nil if it's missing or null.
func Float(v *fastjson.Value, keys ...string) *float64 {
	field := v.Get(keys...)
	if field == nil || field.Type() != fastjson.TypeNumber {
		return nil
	}
	out, err := field.Float64()
	if err != nil {
		return nil
	}
	return &out
}

// Strings returns the strings of the array under the given path, skipping other elements.
func Strings(v *fastjson.Value, keys ...string) []string {
	arr := v.GetArray(keys...)
	out := make([]string, 0, len(arr))
	for i := range arr {
		if arr[i].Type() == fastjson.TypeString {
			out = append(out, string(arr[i].GetStringBytes()))
		}
	}
	return out
}
