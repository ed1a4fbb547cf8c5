// Package graphio provides JSON serialization for proof-dependency graphs.
//
// Two wire formats exist: [Document] for raw parser snapshots and
// [FilteredDocument] for engine output. Both are human-readable JSON with
// stable field names, shared by the CLI, the HTTP API, and the cache.
package graphio

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// Marshal converts a document to indented JSON bytes.
func Marshal(doc Document) ([]byte, error) {
	var buf bytes.Buffer
	if err := encode(&buf, doc); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// MarshalFiltered converts a filtered document to indented JSON bytes.
func MarshalFiltered(doc FilteredDocument) ([]byte, error) {
	var buf bytes.Buffer
	if err := encode(&buf, doc); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Unmarshal decodes JSON bytes into a document.
func Unmarshal(data []byte) (Document, error) {
	return Read(bytes.NewReader(data))
}

// UnmarshalFiltered decodes JSON bytes into a filtered document.
func UnmarshalFiltered(data []byte) (FilteredDocument, error) {
	var doc FilteredDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return FilteredDocument{}, fmt.Errorf("decode: %w", err)
	}
	return doc, nil
}

// Read decodes a JSON snapshot from r.
//
// The input must be a JSON object with "nodes" and "edges" arrays:
//
//	{
//	  "nodes": [{"id": "Nat.add_comm", "kind": "theorem"}],
//	  "edges": [{"from": "Nat.add_comm", "to": "Nat.add"}]
//	}
//
// Read does not validate referential integrity; consumers of the document
// tolerate dangling edge endpoints by dropping them.
func Read(r io.Reader) (Document, error) {
	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return Document{}, fmt.Errorf("decode: %w", err)
	}
	return doc, nil
}

// ReadFile reads a JSON snapshot from the file at path.
func ReadFile(path string) (Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return Document{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	doc, err := Read(f)
	if err != nil {
		return Document{}, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// Write writes a document as indented JSON to w.
func Write(doc Document, w io.Writer) error {
	return encode(w, doc)
}

// WriteFiltered writes a filtered document as indented JSON to w.
func WriteFiltered(doc FilteredDocument, w io.Writer) error {
	return encode(w, doc)
}

// WriteFile writes a document to a JSON file created with 0644 permissions.
func WriteFile(doc Document, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return encode(f, doc)
}

func encode(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}
