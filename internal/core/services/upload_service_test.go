package services

import (
	"context"
	"errors"
	"testing"

	"github.com/TonyDastan/workwave/internal/infrastructure/logger"
)

type fakeBlobStore struct {
	lastFilename string
	lastSize     int
	deleted      []string
	err          error
}

func (f *fakeBlobStore) Upload(ctx context.Context, filename string, data []byte) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.lastFilename = filename
	f.lastSize = len(data)
	return "https://cdn.example.com/" + filename, nil
}

func (f *fakeBlobStore) Delete(ctx context.Context, fileID string) error {
	if f.err != nil {
		return f.err
	}
	f.deleted = append(f.deleted, fileID)
	return nil
}

func TestUpload(t *testing.T) {
	store := &fakeBlobStore{}
	svc := NewUploadService(UploadServiceConfig{
		Store:   store,
		Logger:  logger.NewNop(),
		MaxSize: 1024,
	})
	ctx := context.Background()

	url, err := svc.Upload(ctx, "avatar.png", "image/png", []byte("png-bytes"))
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	if url != "https://cdn.example.com/avatar.png" {
		t.Errorf("url = %q", url)
	}
	if store.lastFilename != "avatar.png" || store.lastSize != 9 {
		t.Errorf("store received %q (%d bytes)", store.lastFilename, store.lastSize)
	}

	// Charset parameters are stripped before the type check.
	if _, err := svc.Upload(ctx, "doc.pdf", "application/pdf; charset=binary", []byte("pdf")); err != nil {
		t.Errorf("pdf with parameter: %v", err)
	}

	if _, err := svc.Upload(ctx, "empty.png", "image/png", nil); !errors.Is(err, ErrValidation) {
		t.Errorf("empty file: err = %v, want ErrValidation", err)
	}
	if _, err := svc.Upload(ctx, "big.png", "image/png", make([]byte, 2048)); !errors.Is(err, ErrValidation) {
		t.Errorf("oversized file: err = %v, want ErrValidation", err)
	}
	if _, err := svc.Upload(ctx, "run.sh", "application/x-sh", []byte("#!/bin/sh")); !errors.Is(err, ErrValidation) {
		t.Errorf("script upload: err = %v, want ErrValidation", err)
	}
}

func TestRemove(t *testing.T) {
	store := &fakeBlobStore{}
	svc := NewUploadService(UploadServiceConfig{
		Store:  store,
		Logger: logger.NewNop(),
	})
	ctx := context.Background()

	if err := svc.Remove(ctx, "uploads/avatar-123"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if len(store.deleted) != 1 || store.deleted[0] != "uploads/avatar-123" {
		t.Errorf("store deleted %v", store.deleted)
	}

	if err := svc.Remove(ctx, "  "); !errors.Is(err, ErrValidation) {
		t.Errorf("blank id: err = %v, want ErrValidation", err)
	}

	store.err = errors.New("storage unreachable")
	if err := svc.Remove(ctx, "uploads/avatar-123"); !errors.Is(err, store.err) {
		t.Errorf("store failure: err = %v, want passthrough", err)
	}
}
