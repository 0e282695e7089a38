package bytesource

import (
	"compress/gzip"
	"os"
	"path/filepath"
	"testing"
)

func writeTempFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write temp file: %v", err)
	}
	return path
}

func TestChunkedFileSource_ReadsAcrossPages(t *testing.T) {
	content := "0123456789abcdefghij"
	path := writeTempFile(t, "input.json", []byte(content))

	src, closeFn, err := Open(path, 4)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer closeFn()

	if src.Len() != len(content) {
		t.Fatalf("Len() = %d, want %d", src.Len(), len(content))
	}

	for i := 0; i < len(content); i++ {
		if got := src.At(i); got != content[i] {
			t.Errorf("At(%d) = %q, want %q", i, got, content[i])
		}
	}
	if got := src.At(len(content)); got != EOF {
		t.Errorf("At(len) = %q, want EOF", got)
	}
}

func TestChunkedFileSource_ClampsSmallChunkLength(t *testing.T) {
	path := writeTempFile(t, "input.json", []byte("ab"))

	src, closeFn, err := Open(path, 0)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer closeFn()

	if src.pageSize != defaultPageSize {
		t.Errorf("pageSize = %d, want default %d", src.pageSize, defaultPageSize)
	}
}

func TestChunkedFileSource_EvictsOldestPageNotJustFetched(t *testing.T) {
	content := make([]byte, 50)
	for i := range content {
		content[i] = byte('a' + i%26)
	}
	path := writeTempFile(t, "input.json", content)

	src, closeFn, err := Open(path, 5)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer closeFn()
	src.maxPages = 2

	// Touch three distinct pages; the cache budget of 2 forces an eviction,
	// but the page just fetched must never be the one evicted.
	_ = src.At(0)  // page 0
	_ = src.At(10) // page 2
	_ = src.At(20) // page 4 - triggers eviction, must not evict page 4 itself

	if _, ok := src.pages[4]; !ok {
		t.Error("just-fetched page 4 was evicted, want it retained")
	}
	if len(src.pages) > src.maxPages {
		t.Errorf("len(pages) = %d, want at most %d", len(src.pages), src.maxPages)
	}
}

func TestChunkedFileSource_GzipTransparentDecompression(t *testing.T) {
	content := []byte(`{"a": 1, "b": [1, 2, 3]}`)
	path := filepath.Join(t.TempDir(), "input.json.gz")

	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	gw := gzip.NewWriter(f)
	if _, err := gw.Write(content); err != nil {
		t.Fatalf("gzip write: %v", err)
	}
	if err := gw.Close(); err != nil {
		t.Fatalf("gzip close: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	src, closeFn, err := Open(path, 8)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer closeFn()

	if src.Len() != len(content) {
		t.Fatalf("Len() = %d, want %d", src.Len(), len(content))
	}
	for i := range content {
		if got := src.At(i); got != content[i] {
			t.Errorf("At(%d) = %q, want %q", i, got, content[i])
		}
	}
}

func TestChunkedFileSource_WriteAtBypassesCache(t *testing.T) {
	path := writeTempFile(t, "input.json", []byte("0123456789"))

	src, closeFn, err := Open(path, 4)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer closeFn()

	if got := src.At(5); got != '5' {
		t.Fatalf("At(5) before write = %q, want '5'", got)
	}

	if err := src.WriteAt(5, []byte("X")); err != nil {
		t.Fatalf("WriteAt: %v", err)
	}

	if got := src.At(5); got != 'X' {
		t.Errorf("At(5) after WriteAt = %q, want 'X'", got)
	}
}

func TestChunkedFileSource_WriteAtUnsupportedOnDecompressedSource(t *testing.T) {
	content := []byte("abc")
	path := filepath.Join(t.TempDir(), "input.json.gz")

	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	gw := gzip.NewWriter(f)
	gw.Write(content)
	gw.Close()
	f.Close()

	src, closeFn, err := Open(path, 4)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer closeFn()

	if err := src.WriteAt(0, []byte("z")); err == nil {
		t.Error("WriteAt on a decompressed source should fail, got nil error")
	}
}

func TestChunkedFileSource_GetRangeSpansPages(t *testing.T) {
	content := "0123456789abcdef"
	path := writeTempFile(t, "input.json", []byte(content))

	src, closeFn, err := Open(path, 4)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer closeFn()

	got := src.GetRange(2, 11)
	want := content[2:11]
	if string(got) != want {
		t.Errorf("GetRange(2, 11) = %q, want %q", got, want)
	}
}
