// Package cas is a filesystem-backed, content-addressed cache of small JSON records.
//
// Callers hash the content a record was computed from, then store and later retrieve the record under (namespace, hash). When the content changes, so does the
// hash, and the stale record is simply never read again. Namespaces separate kinds and versions of records (ex: "chunks-v1").
//
// Records live at:
//
//	<AbsRoot>/<namespace>/<hash[0:2]>/<hash[2:]>
package cas
