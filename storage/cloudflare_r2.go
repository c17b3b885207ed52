package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/Dosada05/music-league-system/archive"
)

type CloudflareR2FetcherConfig struct {
	AccountID       string
	AccessKeyID     string
	SecretAccessKey string
	BucketName      string
	KeyPrefix       string
}

type cloudflareR2Fetcher struct {
	s3Client   *s3.Client
	bucketName string
	keyPrefix  string
}

// NewCloudflareR2Fetcher fetches archives from a Cloudflare R2 bucket via the
// S3-compatible API.
func NewCloudflareR2Fetcher(cfg CloudflareR2FetcherConfig) (ArchiveFetcher, error) {
	if cfg.AccountID == "" || cfg.AccessKeyID == "" || cfg.SecretAccessKey == "" || cfg.BucketName == "" {
		return nil, errors.New("invalid Cloudflare R2 configuration: account id, credentials and bucket name are required")
	}

	r2Resolver := aws.EndpointResolverWithOptionsFunc(func(service, region string, options ...interface{}) (aws.Endpoint, error) {
		r2Endpoint := fmt.Sprintf("https://%s.r2.cloudflarestorage.com", cfg.AccountID)
		return aws.Endpoint{
			URL:           r2Endpoint,
			SigningRegion: "auto", // R2 uses its own signing logic behind the "auto" region
		}, nil
	})

	sdkCfg, err := config.LoadDefaultConfig(context.TODO(),
		config.WithEndpointResolverWithOptions(r2Resolver),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, "")),
		config.WithRegion("auto"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS SDK config for R2: %w", err)
	}

	return &cloudflareR2Fetcher{
		s3Client:   s3.NewFromConfig(sdkCfg),
		bucketName: cfg.BucketName,
		keyPrefix:  strings.Trim(cfg.KeyPrefix, "/"),
	}, nil
}

func (f *cloudflareR2Fetcher) Fetch(ctx context.Context, fileName string) ([]byte, error) {
	key := fileName
	if f.keyPrefix != "" {
		key = f.keyPrefix + "/" + fileName
	}

	result, err := f.s3Client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(f.bucketName),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %q from R2: %w", ErrFetchFailed, key, err)
	}
	defer result.Body.Close()

	// The declared content length is not trusted on its own; readCapped
	// enforces the raw payload cap on the actual bytes.
	if result.ContentLength != nil && *result.ContentLength > int64(archive.MaxArchiveBytes) {
		return nil, fmt.Errorf("%w: %q declares %d raw bytes", archive.ErrArchiveTooLarge, key, *result.ContentLength)
	}

	return readCapped(result.Body, fileName)
}
