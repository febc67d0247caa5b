package manifest

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// S3Client is the subset of *s3.Client used by S3Source.
type S3Client interface {
	s3.ListObjectsV2APIClient
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// S3Source reads a route tree stored under a key prefix of an S3 bucket.
//
// Example usage:
//
//	client := manifest.NewS3Client(manifest.S3Options{Region: "us-east-1"})
//	src := manifest.NewS3(client, "my-bucket", "sites/docs/")
//	table, err := manifest.Load(ctx, src, registry)
type S3Source struct {
	client S3Client
	bucket string
	prefix string
}

// NewS3 returns a Source over bucket/prefix.
func NewS3(client S3Client, bucket, prefix string) *S3Source {
	prefix = strings.TrimPrefix(prefix, "/")
	if prefix != "" && !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}
	return &S3Source{client: client, bucket: bucket, prefix: prefix}
}

// List returns the keys under the prefix, relative to it. Directory marker
// objects (keys ending in "/") are skipped.
func (s *S3Source) List(ctx context.Context) ([]string, error) {
	paginator := s3.NewListObjectsV2Paginator(s.client, &s3.ListObjectsV2Input{
		Bucket: aws.String(s.bucket),
		Prefix: aws.String(s.prefix),
	})

	var files []string
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("s3 list %s/%s: %w", s.bucket, s.prefix, err)
		}
		for _, obj := range page.Contents {
			key := aws.ToString(obj.Key)
			if key == "" || strings.HasSuffix(key, "/") {
				continue
			}
			files = append(files, strings.TrimPrefix(key, s.prefix))
		}
	}
	return files, nil
}

// ReadFile fetches one object. A missing key reports fs.ErrNotExist.
func (s *S3Source) ReadFile(ctx context.Context, name string) ([]byte, error) {
	key := s.prefix + strings.TrimPrefix(name, "/")
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var nsk *types.NoSuchKey
		if errors.As(err, &nsk) {
			return nil, fmt.Errorf("s3 get %s: %w", key, fs.ErrNotExist)
		}
		return nil, fmt.Errorf("s3 get %s: %w", key, err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("s3 read %s: %w", key, err)
	}
	return data, nil
}

// S3Options configures NewS3Client.
type S3Options struct {
	Region string

	// Endpoint overrides the service endpoint (MinIO, LocalStack).
	Endpoint string

	// PathStyle addresses buckets as endpoint/bucket instead of
	// bucket.endpoint.
	PathStyle bool

	// AccessKeyID and SecretAccessKey are static credentials. When empty,
	// AWS_ACCESS_KEY_ID / AWS_SECRET_ACCESS_KEY / AWS_SESSION_TOKEN are
	// used, and without those requests are sent anonymously.
	AccessKeyID     string
	SecretAccessKey string
}

// NewS3Client builds an S3 client from explicit options.
func NewS3Client(opts S3Options) *s3.Client {
	region := opts.Region
	if region == "" {
		region = "us-east-1"
	}

	o := s3.Options{
		Region:       region,
		UsePathStyle: opts.PathStyle,
		Credentials:  credentials(opts),
	}
	if opts.Endpoint != "" {
		o.BaseEndpoint = aws.String(opts.Endpoint)
	}
	return s3.New(o)
}

func credentials(opts S3Options) aws.CredentialsProvider {
	id, secret, token := opts.AccessKeyID, opts.SecretAccessKey, ""
	if id == "" || secret == "" {
		id = os.Getenv("AWS_ACCESS_KEY_ID")
		secret = os.Getenv("AWS_SECRET_ACCESS_KEY")
		token = os.Getenv("AWS_SESSION_TOKEN")
	}
	if id == "" || secret == "" {
		return aws.AnonymousCredentials{}
	}
	return aws.CredentialsProviderFunc(func(ctx context.Context) (aws.Credentials, error) {
		return aws.Credentials{
			AccessKeyID:     id,
			SecretAccessKey: secret,
			SessionToken:    token,
			Source:          "approuter",
		}, nil
	})
}
