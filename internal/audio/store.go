package audio

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// DefaultOutputDir is where generated tracks land on disk
const DefaultOutputDir = "assets/audio/generated"

// Store persists generated tracks and returns where they can be played from
type Store interface {
	Save(ctx context.Context, name string, data []byte) (string, error)
}

// LocalStore writes tracks under a directory
type LocalStore struct {
	dir string
}

func NewLocalStore(dir string) *LocalStore {
	if dir == "" {
		dir = DefaultOutputDir
	}
	return &LocalStore{dir: dir}
}

func (s *LocalStore) Save(_ context.Context, name string, data []byte) (string, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("audio: couldn't create %s: %w", s.dir, err)
	}
	p := filepath.Join(s.dir, name)
	if err := os.WriteFile(p, data, 0o644); err != nil {
		return "", fmt.Errorf("audio: couldn't write %s: %w", p, err)
	}
	return p, nil
}

// S3Store uploads tracks to a bucket
type S3Store struct {
	key    string
	secret string
	region string
	bucket string
	prefix string
	client *s3.Client
}

// NewS3Store returns a store that must be started before use. Empty key
// and secret fall back to the default AWS credential chain.
func NewS3Store(key, secret, region, bucket, prefix string) *S3Store {
	return &S3Store{
		key:    key,
		secret: secret,
		region: region,
		bucket: bucket,
		prefix: strings.Trim(prefix, "/"),
	}
}

func (s *S3Store) Start(ctx context.Context) error {
	opts := []func(*config.LoadOptions) error{config.WithRegion(s.region)}
	if s.key != "" && s.secret != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(s.key, s.secret, "")))
	}
	cfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return fmt.Errorf("s3: couldn't load aws config: %w", err)
	}
	s.client = s3.NewFromConfig(cfg)

	if _, err := s.client.HeadBucket(ctx, &s3.HeadBucketInput{Bucket: aws.String(s.bucket)}); err != nil {
		return fmt.Errorf("s3: couldn't head bucket %s: %w", s.bucket, err)
	}
	return nil
}

// URL is the public address of an uploaded object
func (s *S3Store) URL(key string) string {
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, key)
}

func (s *S3Store) Save(ctx context.Context, name string, data []byte) (string, error) {
	if s.client == nil {
		return "", fmt.Errorf("s3: store not started")
	}
	key := path.Join(s.prefix, name)
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("audio/mpeg"),
	})
	if err != nil {
		return "", fmt.Errorf("s3: couldn't put object %s: %w", key, err)
	}
	log.Printf("☁️ Uploaded %s to s3://%s", key, s.bucket)
	return s.URL(key), nil
}
