package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"github.com/codalotl/mergediff/internal/chunk"
	"github.com/codalotl/mergediff/internal/diff"
	"github.com/codalotl/mergediff/internal/q/cas"
	"github.com/codalotl/mergediff/internal/q/cascade"
)

// cacheNamespace versions cached chunk lists. Bump it when Build's output changes.
const cacheNamespace = "chunks-v1"

// jsonChunk is the JSON form of a chunk, used by --format json and the cache. Changes are relative to the chunk start, like chunk.Chunk.
type jsonChunk struct {
	FromA   int        `json:"fromA"`
	ToA     int        `json:"toA"`
	FromB   int        `json:"fromB"`
	ToB     int        `json:"toB"`
	Precise bool       `json:"precise"`
	Changes []jsonSpan `json:"changes"`
}

type jsonSpan struct {
	FromA int `json:"fromA"`
	ToA   int `json:"toA"`
	FromB int `json:"fromB"`
	ToB   int `json:"toB"`
}

func toJSON(chunks []chunk.Chunk) []jsonChunk {
	out := make([]jsonChunk, 0, len(chunks))
	for _, c := range chunks {
		jc := jsonChunk{FromA: c.FromA, ToA: c.ToA, FromB: c.FromB, ToB: c.ToB, Precise: c.Precise, Changes: make([]jsonSpan, 0, len(c.Changes))}
		for _, s := range c.Changes {
			jc.Changes = append(jc.Changes, jsonSpan(s))
		}
		out = append(out, jc)
	}
	return out
}

func fromJSON(in []jsonChunk) []chunk.Chunk {
	var out []chunk.Chunk
	for _, jc := range in {
		c := chunk.Chunk{FromA: jc.FromA, ToA: jc.ToA, FromB: jc.FromB, ToB: jc.ToB, Precise: jc.Precise}
		for _, s := range jc.Changes {
			c.Changes = append(c.Changes, diff.Span(s))
		}
		out = append(out, c)
	}
	return out
}

func writeChunksJSON(w io.Writer, chunks []chunk.Chunk) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(toJSON(chunks))
}

// buildChunks is chunk.Build, with results cached in cacheDir when it is set. Only precise results are stored: imprecise ones depend on how fast the machine was.
// Cache failures are logged and otherwise ignored.
func buildChunks(a, b *chunk.Text, dc diff.Config, cacheDir string, logger *slog.Logger) []chunk.Chunk {
	if cacheDir == "" {
		return chunk.Build(a, b, dc)
	}

	db := &cas.DB{AbsRoot: cascade.ExpandPath(cacheDir)}
	settings := fmt.Sprintf("scan_limit=%d timeout=%s", dc.ScanLimit, dc.Timeout)
	h := cas.NewBytesHasher([]byte(a.String()), []byte(b.String()), []byte(settings))

	var cached []jsonChunk
	found, err := db.Retrieve(h, cacheNamespace, &cached)
	if err != nil {
		logger.Warn("read diff cache", "hash", h.Hash(), "err", err)
	} else if found {
		chunks := fromJSON(cached)
		if err := chunk.Validate(chunks, a, b); err != nil {
			logger.Warn("invalid cached diff", "hash", h.Hash(), "err", err)
		} else {
			logger.Debug("diff cache hit", "hash", h.Hash())
			return chunks
		}
	}

	chunks := chunk.Build(a, b, dc)
	for _, c := range chunks {
		if !c.Precise {
			return chunks
		}
	}
	if err := db.Store(h, cacheNamespace, toJSON(chunks)); err != nil {
		logger.Warn("write diff cache", "hash", h.Hash(), "err", err)
	}
	return chunks
}
