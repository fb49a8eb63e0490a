package upload

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

// S3Store stores uploads in an S3 bucket under a key prefix.
//
//	cfg, _ := config.LoadDefaultConfig(ctx)
//	store := upload.NewS3Store(s3.NewFromConfig(cfg), "my-bucket", "uploads/tmp/", 5<<20)
type S3Store struct {
	client    *s3.Client
	bucket    string
	prefix    string
	maxSize   int64
	urlExpiry time.Duration
}

// NewS3Store creates an S3-backed store. maxSize caps individual files
// in bytes; 0 means no limit.
func NewS3Store(client *s3.Client, bucket, prefix string, maxSize int64) *S3Store {
	return &S3Store{
		client:    client,
		bucket:    bucket,
		prefix:    prefix,
		maxSize:   maxSize,
		urlExpiry: 24 * time.Hour,
	}
}

// WithURLExpiry sets how long presigned URLs returned by Claim stay
// valid.
func (s *S3Store) WithURLExpiry(d time.Duration) *S3Store {
	s.urlExpiry = d
	return s
}

// Save uploads the file to S3 and returns its temp ID.
func (s *S3Store) Save(ctx context.Context, filename, contentType string, size int64, r io.Reader) (string, error) {
	if s.maxSize > 0 && size > s.maxSize {
		return "", ErrTooLarge
	}

	tempID := uuid.NewString()
	key := s.prefix + tempID

	// PutObject wants a seekable body, so buffer; the size cap keeps
	// this bounded.
	var buf bytes.Buffer
	reader := r
	if s.maxSize > 0 {
		reader = io.LimitReader(r, s.maxSize+1)
	}
	n, err := io.Copy(&buf, reader)
	if err != nil {
		return "", err
	}
	if s.maxSize > 0 && n > s.maxSize {
		return "", ErrTooLarge
	}

	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(buf.Bytes()),
		ContentType: aws.String(contentType),
		Metadata: map[string]string{
			"original-filename": filename,
			"upload-time":       time.Now().UTC().Format(time.RFC3339),
		},
	})
	if err != nil {
		return "", fmt.Errorf("s3 put: %w", err)
	}

	return tempID, nil
}

// Claim retrieves and consumes a temp object, returning its contents
// plus a presigned URL for direct access.
func (s *S3Store) Claim(ctx context.Context, tempID string) (*File, error) {
	key := s.prefix + tempID

	head, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, ErrNotFound
	}

	get, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, ErrNotFound
	}

	filename := tempID
	if fn, ok := head.Metadata["original-filename"]; ok {
		filename = fn
	}

	contentType := "application/octet-stream"
	if head.ContentType != nil {
		contentType = *head.ContentType
	}

	var size int64
	if head.ContentLength != nil {
		size = *head.ContentLength
	}

	var url string
	presigned, err := s3.NewPresignClient(s.client).PresignGetObject(ctx,
		&s3.GetObjectInput{
			Bucket: aws.String(s.bucket),
			Key:    aws.String(key),
		},
		s3.WithPresignExpires(s.urlExpiry),
	)
	if err == nil {
		url = presigned.URL
	}

	// Claimed means consumed; delete in the background so a slow
	// bucket doesn't stall the caller.
	go func() {
		s.client.DeleteObject(context.Background(), &s3.DeleteObjectInput{
			Bucket: aws.String(s.bucket),
			Key:    aws.String(key),
		})
	}()

	return &File{
		ID:          tempID,
		Filename:    filename,
		ContentType: contentType,
		Size:        size,
		URL:         url,
		Reader:      get.Body,
	}, nil
}

// Cleanup removes temp objects older than maxAge.
func (s *S3Store) Cleanup(ctx context.Context, maxAge time.Duration) error {
	cutoff := time.Now().Add(-maxAge)

	paginator := s3.NewListObjectsV2Paginator(s.client, &s3.ListObjectsV2Input{
		Bucket: aws.String(s.bucket),
		Prefix: aws.String(s.prefix),
	})

	var toDelete []string
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return err
		}
		for _, obj := range page.Contents {
			if obj.Key != nil && obj.LastModified != nil && obj.LastModified.Before(cutoff) {
				toDelete = append(toDelete, *obj.Key)
			}
		}
	}

	for _, key := range toDelete {
		s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
			Bucket: aws.String(s.bucket),
			Key:    aws.String(key),
		})
	}

	return nil
}
