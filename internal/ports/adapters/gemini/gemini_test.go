package gemini

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

func TestReadVideoBlob(t *testing.T) {
	t.Parallel()

	tmp := t.TempDir()
	in := filepath.Join(tmp, "clip.mp4")
	payload := []byte("not really mp4, close enough")
	if err := os.WriteFile(in, payload, 0o644); err != nil {
		t.Fatalf("write input: %v", err)
	}

	blob, err := readVideoBlob(in)
	if err != nil {
		t.Fatalf("readVideoBlob: %v", err)
	}
	if blob.MIMEType != "video/mp4" {
		t.Fatalf("unexpected mime type %q", blob.MIMEType)
	}
	if !bytes.Equal(blob.Data, payload) {
		t.Fatalf("blob data mismatch")
	}
}

func TestReadVideoBlob_UnknownExtensionDefaultsToMP4(t *testing.T) {
	t.Parallel()

	tmp := t.TempDir()
	in := filepath.Join(tmp, "clip.weird")
	if err := os.WriteFile(in, []byte("x"), 0o644); err != nil {
		t.Fatalf("write input: %v", err)
	}

	blob, err := readVideoBlob(in)
	if err != nil {
		t.Fatalf("readVideoBlob: %v", err)
	}
	if blob.MIMEType != "video/mp4" {
		t.Fatalf("unexpected mime type %q", blob.MIMEType)
	}
}

func TestReadVideoBlob_Missing(t *testing.T) {
	t.Parallel()

	if _, err := readVideoBlob(filepath.Join(t.TempDir(), "nope.mp4")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
