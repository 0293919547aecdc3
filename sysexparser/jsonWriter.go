package sysexparser

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/giygas/midi-sysex-ids/sysexparser/entities"
	"github.com/google/renameio"
)

const outputFilePermissions os.FileMode = 0o644

// EncodeJSON renders records as one JSON array indented by two spaces.
// DEL and every non-ASCII character are written as \u escapes so the output is plain printable ASCII.
func EncodeJSON(records []entities.ManufacturerID) ([]byte, error) {
	if records == nil {
		records = []entities.ManufacturerID{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(records); err != nil {
		return nil, fmt.Errorf("failed to encode records: %w", err)
	}

	return escapeNonASCII(bytes.TrimSuffix(buf.Bytes(), []byte("\n"))), nil
}

// escapeNonASCII rewrites DEL and every rune above it as \uXXXX, using surrogate pairs outside the BMP.
// encoding/json only emits such runes inside string literals, so escaping them is always valid.
func escapeNonASCII(data []byte) []byte {
	out := make([]byte, 0, len(data))
	for len(data) > 0 {
		r, size := utf8.DecodeRune(data)
		data = data[size:]

		if r < 0x7F {
			out = append(out, byte(r))
			continue
		}
		if r1, r2 := utf16.EncodeRune(r); r1 != utf8.RuneError {
			out = fmt.Appendf(out, `\u%04x\u%04x`, r1, r2)
			continue
		}
		out = fmt.Appendf(out, `\u%04x`, r)
	}
	return out
}

// WriteFileAtomic replaces path with data through a temporary file in the same directory,
// so readers see either the previous content or the complete new one.
func WriteFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	t, err := renameio.TempFile(dir, path)
	if err != nil {
		return newIOError("create", path, err)
	}
	defer func() {
		_ = t.Cleanup()
	}()

	if err := t.Chmod(outputFilePermissions); err != nil {
		return newIOError("chmod", path, err)
	}
	w := bufio.NewWriter(t)
	if _, err := w.Write(data); err != nil {
		return newIOError("write", path, err)
	}
	if err := w.Flush(); err != nil {
		return newIOError("write", path, err)
	}
	if err := t.CloseAtomicallyReplace(); err != nil {
		return newIOError("rename", path, err)
	}
	return nil
}
