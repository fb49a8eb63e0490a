package upload

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/h2non/filetype"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// sniffLen is how many leading bytes the MIME sniffer needs.
const sniffLen = 261

// Config holds configuration for the upload handler.
type Config struct {
	// MaxFileSize is the maximum allowed file size in bytes.
	// Default 5 MiB, matching the component-side validator.
	MaxFileSize int64

	// AllowedTypes lists acceptable MIME types, checked against the
	// sniffed content rather than the client-declared header.
	// Default: image/jpeg and image/png.
	AllowedTypes []string

	// TempExpiry is how long unclaimed files live before Cleanup
	// removes them. Default 1 hour.
	TempExpiry time.Duration

	// Logger receives request-level errors. Defaults to slog.Default.
	Logger *slog.Logger
}

// DefaultConfig returns a Config matching the component defaults.
func DefaultConfig() *Config {
	return &Config{
		MaxFileSize:  5 << 20,
		AllowedTypes: []string{"image/jpeg", "image/png"},
		TempExpiry:   time.Hour,
	}
}

// Handler returns an http.Handler accepting multipart image uploads
// with the default configuration. Mount it on a router:
//
//	r.Post("/upload", upload.Handler(store))
//
// The handler expects a multipart form with a "file" field and
// responds with JSON:
//
//	{"temp_id": "4f1c...", "content_type": "image/png", "size": 1234}
func Handler(store Store) http.Handler {
	return HandlerWithConfig(store, DefaultConfig())
}

// HandlerWithConfig returns an upload handler with custom
// configuration.
func HandlerWithConfig(store Store, config *Config) http.Handler {
	maxSize := config.MaxFileSize
	if maxSize <= 0 {
		maxSize = 5 << 20
	}
	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}
	tracer := otel.Tracer("imago/upload")

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		ctx, span := tracer.Start(r.Context(), "upload.receive")
		defer span.End()

		// Cap the body before parsing so oversized requests fail fast.
		r.Body = http.MaxBytesReader(w, r.Body, maxSize+multipartOverhead)

		if err := r.ParseMultipartForm(32 << 20); err != nil {
			var maxErr *http.MaxBytesError
			if errors.As(err, &maxErr) {
				span.SetStatus(codes.Error, "body too large")
				http.Error(w, "File too large", http.StatusRequestEntityTooLarge)
				return
			}
			span.RecordError(err)
			http.Error(w, "Failed to parse form", http.StatusBadRequest)
			return
		}

		file, header, err := r.FormFile("file")
		if err != nil {
			http.Error(w, "No file provided", http.StatusBadRequest)
			return
		}
		defer file.Close()

		span.SetAttributes(
			attribute.String("upload.filename", header.Filename),
			attribute.Int64("upload.size", header.Size),
		)

		// The body cap leaves slack for multipart framing, so the
		// file itself still needs its own check.
		if header.Size > maxSize {
			span.SetStatus(codes.Error, "file too large")
			http.Error(w, "File too large", http.StatusRequestEntityTooLarge)
			return
		}

		// Sniff the real content type from the leading bytes; the
		// client-declared header is untrusted.
		head := make([]byte, sniffLen)
		n, err := io.ReadFull(file, head)
		if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
			span.RecordError(err)
			http.Error(w, "Failed to read file", http.StatusBadRequest)
			return
		}
		head = head[:n]

		contentType := sniffType(head)
		span.SetAttributes(attribute.String("upload.content_type", contentType))
		if !typeAllowed(contentType, config.AllowedTypes) {
			span.SetStatus(codes.Error, "type not allowed")
			http.Error(w, "Unsupported file type", http.StatusUnsupportedMediaType)
			return
		}

		body := io.MultiReader(bytes.NewReader(head), file)
		tempID, err := store.Save(ctx, header.Filename, contentType, header.Size, body)
		if err != nil {
			if errors.Is(err, ErrTooLarge) {
				http.Error(w, "File too large", http.StatusRequestEntityTooLarge)
				return
			}
			span.RecordError(err)
			logger.Error("upload save failed",
				"filename", header.Filename,
				"size", header.Size,
				"error", err)
			http.Error(w, "Upload failed", http.StatusInternalServerError)
			return
		}

		logger.Info("upload stored",
			"temp_id", tempID,
			"filename", header.Filename,
			"content_type", contentType,
			"size", header.Size)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(Response{
			TempID:      tempID,
			ContentType: contentType,
			Size:        header.Size,
		})
	})
}

// multipartOverhead is slack added to the body cap for multipart
// boundaries and headers around the file field.
const multipartOverhead = 16 << 10

// Response is the JSON body returned for a stored upload.
type Response struct {
	TempID      string `json:"temp_id"`
	ContentType string `json:"content_type,omitempty"`
	Size        int64  `json:"size,omitempty"`
}

func sniffType(head []byte) string {
	kind, err := filetype.Match(head)
	if err != nil || kind == filetype.Unknown {
		return "application/octet-stream"
	}
	return kind.MIME.Value
}

func typeAllowed(contentType string, allowed []string) bool {
	if len(allowed) == 0 {
		return true
	}
	for _, t := range allowed {
		if t == contentType {
			return true
		}
	}
	return false
}
