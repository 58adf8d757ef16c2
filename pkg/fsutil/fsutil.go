// Package fsutil reads AsciiDoc sources from disk and writes parse dumps.
// Sources are decoded to UTF-8 before the parser sees them; dumps are
// written atomically.
package fsutil

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"golang.org/x/text/encoding/unicode"
)

// Encoding names the byte encoding a source was stored in.
type Encoding string

const (
	EncodingUTF8    Encoding = "utf-8"
	EncodingUTF8BOM Encoding = "utf-8-bom"
	EncodingUTF16LE Encoding = "utf-16le"
	EncodingUTF16BE Encoding = "utf-16be"
)

// FileInfo describes a source file as it was read.
type FileInfo struct {
	// Path is the path the file was read from.
	Path string

	// Mode is the file's permission and mode bits.
	Mode os.FileMode

	// ModTime is the file's modification time.
	ModTime time.Time

	// Size is the size on disk in bytes, before decoding.
	Size int64

	// Encoding is the detected encoding.
	Encoding Encoding
}

// Sentinel errors for error categorization via errors.Is.
var (
	// ErrNotFound indicates the file does not exist.
	ErrNotFound = errors.New("file not found")

	// ErrPermissionDenied indicates a permission error.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrIsDirectory indicates the path is a directory, not a file.
	ErrIsDirectory = errors.New("path is a directory")

	// ErrDecode indicates the content could not be decoded to UTF-8.
	ErrDecode = errors.New("cannot decode source")
)

// ReadSource reads an AsciiDoc file and returns its content as UTF-8.
func ReadSource(ctx context.Context, path string) ([]byte, *FileInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, fmt.Errorf("read source: %w", err)
	}

	stat, err := os.Stat(path)
	if err != nil {
		return nil, nil, classify(path, "stat", err)
	}
	if stat.IsDir() {
		return nil, nil, fmt.Errorf("%w: %s", ErrIsDirectory, path)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, classify(path, "read", err)
	}

	content, encoding, err := Decode(raw)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", path, err)
	}

	return content, &FileInfo{
		Path:     path,
		Mode:     stat.Mode(),
		ModTime:  stat.ModTime(),
		Size:     stat.Size(),
		Encoding: encoding,
	}, nil
}

// Decode converts raw file content to UTF-8. A UTF-8 byte order mark is
// dropped; UTF-16 content is recognized by its byte order mark.
func Decode(raw []byte) ([]byte, Encoding, error) {
	switch {
	case bytes.HasPrefix(raw, []byte{0xEF, 0xBB, 0xBF}):
		return raw[3:], EncodingUTF8BOM, nil
	case bytes.HasPrefix(raw, []byte{0xFF, 0xFE}):
		return decodeUTF16(raw, unicode.LittleEndian, EncodingUTF16LE)
	case bytes.HasPrefix(raw, []byte{0xFE, 0xFF}):
		return decodeUTF16(raw, unicode.BigEndian, EncodingUTF16BE)
	default:
		return raw, EncodingUTF8, nil
	}
}

func decodeUTF16(raw []byte, endian unicode.Endianness, encoding Encoding) ([]byte, Encoding, error) {
	out, err := unicode.UTF16(endian, unicode.ExpectBOM).NewDecoder().Bytes(raw)
	if err != nil {
		return nil, encoding, fmt.Errorf("%w: %s: %w", ErrDecode, encoding, err)
	}
	return out, encoding, nil
}

func classify(path, op string, err error) error {
	switch {
	case os.IsNotExist(err):
		return fmt.Errorf("%w: %s: %w", ErrNotFound, path, err)
	case os.IsPermission(err):
		return fmt.Errorf("%w: %s: %w", ErrPermissionDenied, path, err)
	default:
		return fmt.Errorf("%s %s: %w", op, path, err)
	}
}
