package upload_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/imago-ui/imago/pkg/upload"
)

func TestDiskStore_SaveAndClaim(t *testing.T) {
	ctx := context.Background()
	store, err := upload.NewDiskStore(t.TempDir(), 10<<20)
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}

	content := []byte("not actually a png")
	tempID, err := store.Save(ctx, "photo.png", "image/png", int64(len(content)), bytes.NewReader(content))
	if err != nil {
		t.Fatalf("failed to save: %v", err)
	}
	if tempID == "" {
		t.Fatal("expected non-empty temp ID")
	}

	file, err := store.Claim(ctx, tempID)
	if err != nil {
		t.Fatalf("failed to claim: %v", err)
	}
	defer file.Close()

	if file.Filename != "photo.png" {
		t.Errorf("filename = %s, want photo.png", file.Filename)
	}
	if file.ContentType != "image/png" {
		t.Errorf("content type = %s, want image/png", file.ContentType)
	}
	if file.Size != int64(len(content)) {
		t.Errorf("size = %d, want %d", file.Size, len(content))
	}

	data, err := io.ReadAll(file.Reader)
	if err != nil {
		t.Fatalf("failed to read: %v", err)
	}
	if !bytes.Equal(data, content) {
		t.Error("content mismatch")
	}
}

func TestDiskStore_ClaimDeletesFile(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	store, _ := upload.NewDiskStore(dir, 0)

	content := []byte("data")
	tempID, _ := store.Save(ctx, "file.png", "image/png", int64(len(content)), bytes.NewReader(content))

	path := filepath.Join(dir, tempID)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Fatal("file should exist before claim")
	}

	file, _ := store.Claim(ctx, tempID)
	file.Close()

	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("file should be deleted after close")
	}
}

func TestDiskStore_ClaimNotFound(t *testing.T) {
	store, _ := upload.NewDiskStore(t.TempDir(), 0)

	_, err := store.Claim(context.Background(), "nonexistent")
	if !errors.Is(err, upload.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestDiskStore_DoubleClaim(t *testing.T) {
	ctx := context.Background()
	store, _ := upload.NewDiskStore(t.TempDir(), 0)

	content := []byte("data")
	tempID, _ := store.Save(ctx, "file.png", "image/png", int64(len(content)), bytes.NewReader(content))

	file, err := store.Claim(ctx, tempID)
	if err != nil {
		t.Fatalf("first claim failed: %v", err)
	}
	file.Close()

	_, err = store.Claim(ctx, tempID)
	if !errors.Is(err, upload.ErrNotFound) {
		t.Errorf("expected ErrNotFound on second claim, got %v", err)
	}
}

func TestDiskStore_SizeLimit(t *testing.T) {
	ctx := context.Background()
	store, _ := upload.NewDiskStore(t.TempDir(), 10)

	content := []byte("well over the ten byte limit")
	_, err := store.Save(ctx, "big.png", "image/png", int64(len(content)), bytes.NewReader(content))
	if !errors.Is(err, upload.ErrTooLarge) {
		t.Errorf("expected ErrTooLarge, got %v", err)
	}

	// A declared size can lie; the limit applies to the bytes
	// actually streamed.
	_, err = store.Save(ctx, "liar.png", "image/png", 5, bytes.NewReader(content))
	if !errors.Is(err, upload.ErrTooLarge) {
		t.Errorf("expected ErrTooLarge for lying size, got %v", err)
	}
}

func TestDiskStore_SizeLimitBoundary(t *testing.T) {
	ctx := context.Background()
	store, _ := upload.NewDiskStore(t.TempDir(), 10)

	content := []byte("0123456789")
	tempID, err := store.Save(ctx, "exact.png", "image/png", 10, bytes.NewReader(content))
	if err != nil {
		t.Fatalf("exact-limit save failed: %v", err)
	}

	file, err := store.Claim(ctx, tempID)
	if err != nil {
		t.Fatalf("claim failed: %v", err)
	}
	defer file.Close()
	if file.Size != 10 {
		t.Errorf("size = %d, want 10", file.Size)
	}
}

func TestDiskStore_ClaimExpired(t *testing.T) {
	ctx := context.Background()
	store, _ := upload.NewDiskStore(t.TempDir(), 0)
	store.WithExpiry(time.Nanosecond)

	content := []byte("data")
	tempID, _ := store.Save(ctx, "old.png", "image/png", int64(len(content)), bytes.NewReader(content))

	time.Sleep(5 * time.Millisecond)

	_, err := store.Claim(ctx, tempID)
	if !errors.Is(err, upload.ErrExpired) {
		t.Errorf("expected ErrExpired, got %v", err)
	}
}

func TestDiskStore_ClaimSurvivesRestart(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	first, _ := upload.NewDiskStore(dir, 0)
	content := []byte("data")
	tempID, _ := first.Save(ctx, "file.png", "image/png", int64(len(content)), bytes.NewReader(content))

	// A fresh store over the same directory finds the file through
	// its metadata sidecar.
	second, _ := upload.NewDiskStore(dir, 0)
	file, err := second.Claim(ctx, tempID)
	if err != nil {
		t.Fatalf("claim after restart failed: %v", err)
	}
	defer file.Close()

	if file.Filename != "file.png" {
		t.Errorf("filename = %s, want file.png", file.Filename)
	}
}

func TestDiskStore_Cleanup(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	store, _ := upload.NewDiskStore(dir, 0)

	content := []byte("temp data")
	tempID, _ := store.Save(ctx, "temp.png", "image/png", int64(len(content)), bytes.NewReader(content))

	path := filepath.Join(dir, tempID)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Fatal("file should exist")
	}

	time.Sleep(10 * time.Millisecond)
	if err := store.Cleanup(ctx, time.Nanosecond); err != nil {
		t.Fatalf("cleanup failed: %v", err)
	}

	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("file should be deleted after cleanup")
	}
}
