package cas

import (
	"bytes"
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const recordKind = "cas-record-v1"

// Hasher identifies a record by hash.
type Hasher interface {
	// Hash must be filesystem-safe with no path separators.
	Hash() string
}

type stringHasher string

func (h stringHasher) Hash() string { return string(h) }

// NewBytesHasher returns a Hasher for the sequence parts. Each part is length-prefixed, so ("ab", "c") and ("a", "bc") hash differently.
func NewBytesHasher(parts ...[]byte) Hasher {
	h := sha256.New()
	var n [8]byte
	for _, p := range parts {
		binary.LittleEndian.PutUint64(n[:], uint64(len(p)))
		_, _ = h.Write(n[:])
		_, _ = h.Write(p)
	}
	return stringHasher(hex.EncodeToString(h.Sum(nil)))
}

// DB is a record store rooted at AbsRoot.
type DB struct {
	AbsRoot string
}

type record struct {
	Kind     string          `json:"kind"`
	Metadata json.RawMessage `json:"metadata"`
}

// Store writes jsonable (encoded with json.Marshal) for (namespace, hasher.Hash()). The write is atomic: readers see the old record or the new one.
func (db *DB) Store(hasher Hasher, namespace string, jsonable any) error {
	p, err := db.recordPath(hasher, namespace)
	if err != nil {
		return err
	}
	payload, err := json.Marshal(jsonable)
	if err != nil {
		return err
	}
	out, err := json.Marshal(record{Kind: recordKind, Metadata: payload})
	if err != nil {
		return err
	}

	if existing, err := os.ReadFile(p); err == nil && bytes.Equal(existing, out) {
		return nil
	} else if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(p), "cas-tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer func() {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
	}()
	if _, err := tmp.Write(out); err != nil {
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmpName, p)
}

// Retrieve reads the record for (namespace, hasher.Hash()) into target, which is passed to json.Unmarshal. A missing record returns false and no error.
func (db *DB) Retrieve(hasher Hasher, namespace string, target any) (bool, error) {
	p, err := db.recordPath(hasher, namespace)
	if err != nil {
		return false, err
	}
	b, err := os.ReadFile(p)
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	} else if err != nil {
		return false, err
	}

	var rec record
	if err := json.Unmarshal(b, &rec); err != nil {
		return false, err
	}
	if rec.Kind != recordKind {
		return false, fmt.Errorf("unknown record kind %q", rec.Kind)
	}
	if err := json.Unmarshal(rec.Metadata, target); err != nil {
		return false, err
	}
	return true, nil
}

func (db *DB) recordPath(hasher Hasher, namespace string) (string, error) {
	if db.AbsRoot == "" {
		return "", errors.New("DB.AbsRoot is empty")
	}
	if hasher == nil {
		return "", errors.New("hasher is nil")
	}
	if err := validatePathSegment("namespace", namespace); err != nil {
		return "", err
	}
	hash := hasher.Hash()
	if err := validatePathSegment("hash", hash); err != nil {
		return "", err
	}
	if len(hash) < 3 {
		return "", fmt.Errorf("hash %q is too short", hash)
	}
	return filepath.Join(db.AbsRoot, namespace, hash[:2], hash[2:]), nil
}

func validatePathSegment(name, s string) error {
	if s == "" {
		return fmt.Errorf("%s is empty", name)
	}
	if strings.ContainsAny(s, `/\`) || s == "." || s == ".." {
		return fmt.Errorf("%s %q must not contain path separators", name, s)
	}
	return nil
}
