package fsutil_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/yaklabco/adocblocks/pkg/fsutil"
)

func TestReadSource(t *testing.T) {
	t.Parallel()

	t.Run("reads utf-8 content and metadata", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "doc.adoc")
		content := []byte("* item\n")
		if err := os.WriteFile(path, content, 0o644); err != nil {
			t.Fatalf("setup: %v", err)
		}

		got, info, err := fsutil.ReadSource(context.Background(), path)
		if err != nil {
			t.Fatalf("ReadSource() error = %v", err)
		}
		if string(got) != string(content) {
			t.Errorf("content = %q, want %q", got, content)
		}
		if info.Path != path {
			t.Errorf("Path = %q, want %q", info.Path, path)
		}
		if info.Size != int64(len(content)) {
			t.Errorf("Size = %d, want %d", info.Size, len(content))
		}
		if info.Encoding != fsutil.EncodingUTF8 {
			t.Errorf("Encoding = %q, want %q", info.Encoding, fsutil.EncodingUTF8)
		}
	})

	t.Run("decodes utf-16 with byte order mark", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "doc.adoc")
		// "Hi\n" in UTF-16LE with BOM.
		raw := []byte{0xFF, 0xFE, 'H', 0, 'i', 0, '\n', 0}
		if err := os.WriteFile(path, raw, 0o644); err != nil {
			t.Fatalf("setup: %v", err)
		}

		got, info, err := fsutil.ReadSource(context.Background(), path)
		if err != nil {
			t.Fatalf("ReadSource() error = %v", err)
		}
		if string(got) != "Hi\n" {
			t.Errorf("content = %q, want %q", got, "Hi\n")
		}
		if info.Encoding != fsutil.EncodingUTF16LE {
			t.Errorf("Encoding = %q, want %q", info.Encoding, fsutil.EncodingUTF16LE)
		}
	})

	t.Run("returns ErrNotFound for missing file", func(t *testing.T) {
		t.Parallel()

		_, _, err := fsutil.ReadSource(context.Background(), filepath.Join(t.TempDir(), "missing.adoc"))
		if !errors.Is(err, fsutil.ErrNotFound) {
			t.Errorf("error = %v, want ErrNotFound", err)
		}
	})

	t.Run("returns ErrIsDirectory for directory", func(t *testing.T) {
		t.Parallel()

		_, _, err := fsutil.ReadSource(context.Background(), t.TempDir())
		if !errors.Is(err, fsutil.ErrIsDirectory) {
			t.Errorf("error = %v, want ErrIsDirectory", err)
		}
	})

	t.Run("respects context cancellation", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, _, err := fsutil.ReadSource(ctx, "any.adoc")
		if !errors.Is(err, context.Canceled) {
			t.Errorf("error = %v, want context.Canceled", err)
		}
	})
}

func TestDecode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		raw      []byte
		want     string
		encoding fsutil.Encoding
	}{
		{"plain", []byte("text"), "text", fsutil.EncodingUTF8},
		{"utf-8 bom", []byte{0xEF, 0xBB, 0xBF, 'a'}, "a", fsutil.EncodingUTF8BOM},
		{"utf-16be", []byte{0xFE, 0xFF, 0, 'o', 0, 'k'}, "ok", fsutil.EncodingUTF16BE},
		{"empty", nil, "", fsutil.EncodingUTF8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, encoding, err := fsutil.Decode(tt.raw)
			if err != nil {
				t.Fatalf("Decode() error = %v", err)
			}
			if string(got) != tt.want {
				t.Errorf("Decode() = %q, want %q", got, tt.want)
			}
			if encoding != tt.encoding {
				t.Errorf("encoding = %q, want %q", encoding, tt.encoding)
			}
		})
	}
}
