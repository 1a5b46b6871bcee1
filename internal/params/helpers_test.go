package params

import (
	"bytes"
	"encoding/json"
	"io"
	"testing"
)

func mustDecode(t *testing.T, f *File) {
	t.Helper()
	if err := json.Unmarshal(defaultFile, f); err != nil {
		t.Fatalf("decode embedded file: %v", err)
	}
}

func encode(t *testing.T, f *File) io.Reader {
	t.Helper()
	data, err := json.Marshal(f)
	if err != nil {
		t.Fatalf("encode file: %v", err)
	}
	return bytes.NewReader(data)
}
