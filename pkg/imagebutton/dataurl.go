package imagebutton

import (
	"encoding/base64"
	"strings"

	"github.com/h2non/filetype"
)

// EncodeDataURL converts a file to a data URL with the name marker
// applied: "data:image/png;name=cat.png;base64,...". The MIME type is
// sniffed from the content's magic numbers, falling back to the
// filename extension for content filetype cannot identify.
func EncodeDataURL(file File) string {
	mime := detectMIME(file)
	dataURL := "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(file.Data)
	return WithNameMarker(dataURL, file.Name)
}

// WithNameMarker inserts ";name=<filename>" before the base64 marker of
// a data URL, so consumers can recover the filename from the URL alone.
// A URL without a ";base64" marker is returned unchanged.
func WithNameMarker(dataURL, name string) string {
	const marker = ";base64"
	idx := strings.Index(dataURL, marker)
	if idx < 0 {
		return dataURL
	}
	return dataURL[:idx] + ";name=" + name + dataURL[idx:]
}

// detectMIME sniffs the MIME type from content, with an extension
// fallback for empty or unidentifiable data.
func detectMIME(file File) string {
	if t, err := filetype.Match(file.Data); err == nil && t != filetype.Unknown {
		return t.MIME.Value
	}
	return mimeFromName(file.Name)
}

// mimeFromName maps common image extensions to MIME types.
func mimeFromName(name string) string {
	lower := strings.ToLower(name)
	switch {
	case strings.HasSuffix(lower, ".jpg"), strings.HasSuffix(lower, ".jpeg"):
		return "image/jpeg"
	case strings.HasSuffix(lower, ".png"):
		return "image/png"
	case strings.HasSuffix(lower, ".gif"):
		return "image/gif"
	case strings.HasSuffix(lower, ".webp"):
		return "image/webp"
	default:
		return "application/octet-stream"
	}
}
