package imagebutton

import (
	"encoding/base64"
	"errors"
	"strings"
	"testing"
)

// errUpstream stands in for a value rejected by an upload routine.
var errUpstream = errors.New("network down")

// pngHeader is the PNG magic number, enough for content sniffing.
var pngHeader = []byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A}

func TestWithNameMarker(t *testing.T) {
	got := WithNameMarker("data:image/png;base64,AAA", "cat.png")
	want := "data:image/png;name=cat.png;base64,AAA"
	if got != want {
		t.Errorf("WithNameMarker = %q, want %q", got, want)
	}
}

func TestWithNameMarker_NoBase64MarkerUnchanged(t *testing.T) {
	in := "data:text/plain,hello"
	if got := WithNameMarker(in, "a.txt"); got != in {
		t.Errorf("URL without base64 marker changed: %q", got)
	}
}

func TestEncodeDataURL_SniffsContent(t *testing.T) {
	// Content says PNG even though the name says jpg; sniffing wins.
	file := File{Name: "misnamed.jpg", Data: pngHeader}
	got := EncodeDataURL(file)

	if !strings.HasPrefix(got, "data:image/png;name=misnamed.jpg;base64,") {
		t.Errorf("EncodeDataURL = %q, want image/png prefix with name marker", got)
	}

	payload := got[strings.LastIndex(got, ",")+1:]
	decoded, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		t.Fatalf("payload is not valid base64: %v", err)
	}
	if string(decoded) != string(pngHeader) {
		t.Error("payload does not round-trip to the source bytes")
	}
}

func TestEncodeDataURL_ExtensionFallback(t *testing.T) {
	// Content unidentifiable; the extension decides.
	file := File{Name: "tiny.jpeg", Data: []byte{0x00, 0x01}}
	got := EncodeDataURL(file)

	if !strings.HasPrefix(got, "data:image/jpeg;") {
		t.Errorf("EncodeDataURL = %q, want image/jpeg from extension", got)
	}
}

func TestEncodeDataURL_UnknownFallsBackToOctetStream(t *testing.T) {
	file := File{Name: "mystery.bin", Data: []byte{0x00}}
	got := EncodeDataURL(file)

	if !strings.HasPrefix(got, "data:application/octet-stream;") {
		t.Errorf("EncodeDataURL = %q, want octet-stream fallback", got)
	}
}
