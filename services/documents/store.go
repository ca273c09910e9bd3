package documents

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"

	"queuedesk/utils"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"go.uber.org/zap"
)

// ErrNoDocument is returned when the requested object does not exist or no
// store is configured.
var ErrNoDocument = errors.New("no document")

// Store reads documents attached to outbound messages.
type Store interface {
	GetDocument(ctx context.Context, name, folder string) ([]byte, error)
}

// S3Store reads documents from one S3 bucket. Objects live under
// <folder>/<name>.
type S3Store struct {
	client *s3.Client
	bucket string
}

// NewS3Store creates an S3Store with static credentials.
func NewS3Store(region, accessKeyID, secretAccessKey, bucket string) *S3Store {
	client := s3.New(s3.Options{
		Region:      region,
		Credentials: aws.NewCredentialsCache(credentials.NewStaticCredentialsProvider(accessKeyID, secretAccessKey, "")),
	})
	return &S3Store{client: client, bucket: bucket}
}

func (s *S3Store) GetDocument(ctx context.Context, name, folder string) ([]byte, error) {
	key := path.Join(folder, name)
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var missing *types.NoSuchKey
		if errors.As(err, &missing) {
			return nil, ErrNoDocument
		}
		return nil, fmt.Errorf("failed to get document %s: %w", key, err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read document %s: %w", key, err)
	}
	return data, nil
}

// NoopStore is used when no bucket is configured.
type NoopStore struct{}

func (NoopStore) GetDocument(_ context.Context, name, folder string) ([]byte, error) {
	utils.GetLogger().Debug("document store not configured", zap.String("folder", folder), zap.String("name", name))
	return nil, ErrNoDocument
}

// MapStore serves documents from memory, keyed by folder/name.
type MapStore map[string][]byte

func (m MapStore) GetDocument(_ context.Context, name, folder string) ([]byte, error) {
	if data, ok := m[path.Join(folder, name)]; ok {
		return data, nil
	}
	return nil, ErrNoDocument
}
