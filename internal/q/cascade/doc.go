// Package cascade loads flat, layered configuration into a Go struct from several sources with predictable precedence.
//
// Register sources from lowest to highest priority with the With* methods, then call StrictlyLoad:
//
//	var cfg Config
//	err := cascade.New().
//	    WithDefaults(map[string]any{"scan_limit": 500}).
//	    WithNearestJSONFile(".mergediff.json", "").
//	    WithEnv(map[string]string{"scan_limit": "MERGEDIFF_SCAN_LIMIT"}).
//	    StrictlyLoad(&cfg)
//
// Keys are case-insensitive and matched against the cascade tag, then the json tag, then the field name. Only scalar fields are supported: strings, bools, signed ints,
// floats, and time.Duration (a string such as "250ms", or a number of seconds). Nested objects are rejected. Unknown keys are ignored.
//
// A field tagged cascade:",required" must be set by some source. A sibling field named <Field>Providence of type Providence records which source set <Field>.
//
// Missing or unreadable files and whitespace-only files contribute nothing. Unparseable files and uncoercible values are errors, annotated with the source's name.
package cascade
