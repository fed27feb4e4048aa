package cascade

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// source supplies flat key/value data. Keys returned by values are lower case; values are string, bool, int, or float64.
type source interface {
	name() string // used to annotate errors
	values() (map[string]any, error)
	providence() Providence
}

type sourceMap struct {
	m map[string]any
}

type sourceJSONFile struct {
	path string
}

type sourceEnv struct {
	keyToEnv map[string]string // ex: {"timeout": "MERGEDIFF_TIMEOUT"}
}

func (s *sourceMap) name() string { return "Defaults" }

func (s *sourceMap) providence() Providence { return Providence{SourceType: "default"} }

func (s *sourceMap) values() (map[string]any, error) {
	out := make(map[string]any, len(s.m))
	for k, v := range s.m {
		switch v.(type) {
		case string, bool, int, float64:
		default:
			return nil, fmt.Errorf("key '%s': type %T is not allowed", k, v)
		}
		if err := put(out, k, v); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (s *sourceJSONFile) name() string { return fmt.Sprintf("JSON File: %s", s.path) }

func (s *sourceJSONFile) providence() Providence {
	return Providence{SourceType: "json_file", SourceIdentifier: ExpandPath(s.path)}
}

func (s *sourceJSONFile) values() (map[string]any, error) {
	if s.path == "" {
		return map[string]any{}, nil
	}
	data, err := os.ReadFile(ExpandPath(s.path))
	if err != nil {
		return nil, fmt.Errorf("read json file: %w", err)
	}
	if strings.TrimSpace(string(data)) == "" {
		return map[string]any{}, nil
	}

	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse json: %w", err)
	}
	obj, ok := raw.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("top-level JSON must be an object")
	}

	out := make(map[string]any, len(obj))
	for k, v := range obj {
		switch v.(type) {
		case nil:
			continue
		case string, bool, float64:
		default:
			return nil, fmt.Errorf("key '%s': only scalar values are supported, got %T", k, v)
		}
		if err := put(out, k, v); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (s *sourceEnv) name() string { return "ENV" }

func (s *sourceEnv) providence() Providence { return Providence{SourceType: "env"} }

func (s *sourceEnv) values() (map[string]any, error) {
	out := map[string]any{}
	for key, env := range s.keyToEnv {
		if env == "" {
			continue
		}
		// An empty variable must not clobber a value from a file.
		if val := os.Getenv(env); val != "" {
			if err := put(out, key, val); err != nil {
				return nil, err
			}
		}
	}
	return out, nil
}

// put stores v under the lower-cased key, rejecting keys that differ only in case.
func put(m map[string]any, key string, v any) error {
	k := strings.ToLower(key)
	if _, dup := m[k]; dup {
		return fmt.Errorf("key conflict: key '%s' was already set", key)
	}
	m[k] = v
	return nil
}
