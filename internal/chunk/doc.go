// Package chunk groups the character-level spans produced by package diff into line-aligned chunks, and keeps a chunk list up to date as either document is
// edited.
//
// A Chunk covers whole lines of both documents (FromA/FromB are line starts; ToA/ToB are line starts or the document end) and carries the spans inside it,
// relative to its own start. Chunks in a list are sorted and disjoint, and the text between chunks is identical in both documents.
//
// Build computes chunks from scratch. UpdateA and UpdateB take the previous list and a description of what changed in one document, and return the same list
// Build would. When all of the old chunks sit near the edits, only the text around the edits is diffed.
//
// The rest of the package works on chunk lists: Next and Prev navigate, Accept and Revert compute the replacement that resolves a chunk, Unchanged finds
// collapsible runs of identical lines, and RenderUnified and RenderSideBySide print them.
package chunk
