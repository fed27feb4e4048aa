package cascade

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"
	"time"
)

var (
	durationType   = reflect.TypeOf(time.Duration(0))
	providenceType = reflect.TypeOf(Providence{})
)

// Loader holds a prioritized list of configuration sources. The zero value is ready to use.
type Loader struct {
	sources []source // low to high priority
}

// Providence records where a loaded value came from.
type Providence struct {
	SourceType       string // "default", "json_file", or "env"
	SourceIdentifier string // file path for "json_file"; empty otherwise
}

func (p Providence) IsSet() bool {
	return p.SourceType != ""
}

func (p Providence) Default() bool {
	return p.SourceType == "default"
}

func (p Providence) String() string {
	if p.SourceIdentifier != "" {
		return p.SourceType + " " + p.SourceIdentifier
	}
	return p.SourceType
}

// New returns an empty Loader, for chaining.
func New() *Loader {
	return &Loader{}
}

// WithDefaults registers m as a source of default values. A nil map contributes nothing.
func (c *Loader) WithDefaults(m map[string]any) *Loader {
	c.sources = append(c.sources, &sourceMap{m: m})
	return c
}

// WithJSONFile registers the JSON file at path (expanded with ExpandPath). The file is read by StrictlyLoad, not here.
func (c *Loader) WithJSONFile(path string) *Loader {
	c.sources = append(c.sources, &sourceJSONFile{path: path})
	return c
}

// WithNearestJSONFile searches upward from start (a directory or file; the working directory when empty) for the first non-empty file named fileName and registers it.
// If none is found, the Loader is unchanged. It panics if fileName is absolute.
func (c *Loader) WithNearestJSONFile(fileName string, start string) *Loader {
	if filepath.IsAbs(fileName) {
		panic("fileName shouldn't be absolute")
	}
	if start == "" {
		wd, err := os.Getwd()
		if err != nil {
			return c
		}
		start = wd
	}
	if fi, err := os.Stat(start); err == nil && !fi.IsDir() {
		start = filepath.Dir(start)
	}

	for dir := start; ; {
		candidate := filepath.Join(dir, fileName)
		if data, err := os.ReadFile(candidate); err == nil && strings.TrimSpace(string(data)) != "" {
			c.sources = append(c.sources, &sourceJSONFile{path: candidate})
			return c
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return c
		}
		dir = parent
	}
}

// WithEnv registers environment variables as a source. m maps configuration keys to variable names. Unset and empty variables are ignored.
func (c *Loader) WithEnv(m map[string]string) *Loader {
	c.sources = append(c.sources, &sourceEnv{keyToEnv: m})
	return c
}

// StrictlyLoad applies c's sources to dest, a non-nil pointer to a struct, from low to high priority. Later sources overwrite earlier ones. It fails on the first source
// that cannot be parsed or that supplies a value which cannot be coerced to its field's type; later sources do not get a chance to fix it.
func (c *Loader) StrictlyLoad(dest any) error {
	destVal := reflect.ValueOf(dest)
	if dest == nil || destVal.Kind() != reflect.Pointer || destVal.IsNil() {
		return fmt.Errorf("dest must be a non-nil pointer to struct")
	}
	structVal := destVal.Elem()
	if structVal.Kind() != reflect.Struct {
		return fmt.Errorf("dest must be a pointer to struct, got %s", structVal.Kind())
	}

	fields := fieldsByKey(structVal.Type())
	present := map[string]bool{}

	for _, src := range c.sources {
		m, err := src.values()
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) || errors.Is(err, fs.ErrPermission) {
				continue
			}
			return fmt.Errorf("%s: %w", src.name(), err)
		}
		prov := src.providence()
		for key, raw := range m {
			idx, ok := fields[key]
			if !ok {
				continue
			}
			if err := setField(structVal.Field(idx), raw, key); err != nil {
				return fmt.Errorf("%s: %w", src.name(), err)
			}
			present[key] = true
			if p := structVal.FieldByName(structVal.Type().Field(idx).Name + "Providence"); p.IsValid() && p.Type() == providenceType {
				p.Set(reflect.ValueOf(prov))
			}
		}
	}

	t := structVal.Type()
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if required(f) && !present[fieldKey(f)] {
			return fmt.Errorf("missing required config key: %s", fieldKey(f))
		}
	}
	return nil
}

// fieldsByKey maps each loadable field's key to its index. Providence fields and fields keyed "-" are skipped.
func fieldsByKey(t reflect.Type) map[string]int {
	out := map[string]int{}
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() || f.Type == providenceType {
			continue
		}
		if key := fieldKey(f); key != "-" {
			out[key] = i
		}
	}
	return out
}

func fieldKey(f reflect.StructField) string {
	if name, _, _ := strings.Cut(f.Tag.Get("cascade"), ","); strings.TrimSpace(name) != "" {
		return strings.ToLower(strings.TrimSpace(name))
	}
	// json:"-" does not skip the field; it only means there is no json name.
	if name, _, _ := strings.Cut(f.Tag.Get("json"), ","); name != "" && name != "-" {
		return strings.ToLower(name)
	}
	return strings.ToLower(f.Name)
}

func required(f reflect.StructField) bool {
	_, opts, _ := strings.Cut(f.Tag.Get("cascade"), ",")
	for _, o := range strings.Split(opts, ",") {
		if strings.TrimSpace(o) == "required" {
			return true
		}
	}
	return false
}

// setField coerces raw (a string, bool, int, or float64) into fVal.
func setField(fVal reflect.Value, raw any, key string) error {
	if fVal.Type() == durationType {
		d, err := coerceDuration(raw, key)
		if err != nil {
			return err
		}
		fVal.SetInt(int64(d))
		return nil
	}

	switch fVal.Kind() {
	case reflect.String:
		switch v := raw.(type) {
		case string:
			fVal.SetString(v)
		case int:
			fVal.SetString(strconv.Itoa(v))
		case float64:
			fVal.SetString(strconv.FormatFloat(v, 'f', -1, 64))
		case bool:
			fVal.SetString(strconv.FormatBool(v))
		default:
			return fmt.Errorf("%s: cannot coerce %T to string", key, raw)
		}
	case reflect.Bool:
		switch v := raw.(type) {
		case bool:
			fVal.SetBool(v)
		case string:
			b, err := strconv.ParseBool(strings.TrimSpace(v))
			if err != nil {
				return fmt.Errorf("%s: cannot parse bool from %q", key, v)
			}
			fVal.SetBool(b)
		default:
			return fmt.Errorf("%s: cannot coerce %T to bool", key, raw)
		}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		var n int64
		switch v := raw.(type) {
		case int:
			n = int64(v)
		case float64:
			n = int64(v)
		case string:
			parsed, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
			if err != nil {
				return fmt.Errorf("%s: cannot parse int from %q", key, v)
			}
			n = parsed
		default:
			return fmt.Errorf("%s: cannot coerce %T to int", key, raw)
		}
		if fVal.OverflowInt(n) {
			return fmt.Errorf("%s: %d overflows %s", key, n, fVal.Type())
		}
		fVal.SetInt(n)
	case reflect.Float32, reflect.Float64:
		switch v := raw.(type) {
		case float64:
			fVal.SetFloat(v)
		case int:
			fVal.SetFloat(float64(v))
		case string:
			f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
			if err != nil {
				return fmt.Errorf("%s: cannot parse float from %q", key, v)
			}
			fVal.SetFloat(f)
		default:
			return fmt.Errorf("%s: cannot coerce %T to float", key, raw)
		}
	default:
		return fmt.Errorf("%s: unsupported field kind %s", key, fVal.Kind())
	}
	return nil
}

// coerceDuration reads a duration string ("1.5s") or a number of seconds.
func coerceDuration(raw any, key string) (time.Duration, error) {
	switch v := raw.(type) {
	case string:
		d, err := time.ParseDuration(strings.TrimSpace(v))
		if err != nil {
			return 0, fmt.Errorf("%s: cannot parse duration from %q", key, v)
		}
		return d, nil
	case int:
		return time.Duration(v) * time.Second, nil
	case float64:
		return time.Duration(v * float64(time.Second)), nil
	default:
		return 0, fmt.Errorf("%s: cannot coerce %T to duration", key, raw)
	}
}
