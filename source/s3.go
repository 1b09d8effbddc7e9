package source

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/gobeaver/filesig/signature"
)

// ObjectAPI is the subset of the S3 client used to read objects
type ObjectAPI interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	HeadObject(ctx context.Context, params *s3.HeadObjectInput, optFns ...func(*s3.Options)) (*s3.HeadObjectOutput, error)
}

// S3Config holds the connection settings for NewS3Client
type S3Config struct {
	Region          string
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	ForcePathStyle  bool
}

// NewS3Client creates an S3 client. Explicit credentials override the
// default AWS credential chain when both key and secret are set.
func NewS3Client(ctx context.Context, cfg S3Config) (*s3.Client, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
	)
	if err != nil {
		return nil, err
	}

	if cfg.AccessKeyID != "" && cfg.SecretAccessKey != "" {
		awsCfg.Credentials = credentials.NewStaticCredentialsProvider(
			cfg.AccessKeyID,
			cfg.SecretAccessKey,
			"",
		)
	}

	s3Options := func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		if cfg.ForcePathStyle {
			o.UsePathStyle = true
		}
	}

	return s3.NewFromConfig(awsCfg, s3Options), nil
}

// S3Object reads a single object with ranged GetObject calls. It implements
// io.ReaderAt, so header acquisition fetches only the first bytes and ZIP
// inspection fetches only the central directory and the entries it opens.
//
// io.ReaderAt carries no context; every request uses the context given to
// OpenS3Object.
type S3Object struct {
	ctx    context.Context
	client ObjectAPI
	bucket string
	key    string
	size   int64
	etag   string
}

// OpenS3Object looks up the object's size and ETag
func OpenS3Object(ctx context.Context, client ObjectAPI, bucket, key string) (*S3Object, error) {
	head, err := client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, mapS3Error(err)
	}

	return &S3Object{
		ctx:    ctx,
		client: client,
		bucket: bucket,
		key:    key,
		size:   aws.ToInt64(head.ContentLength),
		etag:   aws.ToString(head.ETag),
	}, nil
}

// Key returns the object key
func (o *S3Object) Key() string { return o.key }

// Size returns the object size in bytes
func (o *S3Object) Size() int64 { return o.size }

// ETag returns the object's entity tag as reported by HeadObject
func (o *S3Object) ETag() string { return o.etag }

// ReadAt implements io.ReaderAt
func (o *S3Object) ReadAt(p []byte, off int64) (int, error) {
	if off < 0 {
		return 0, fmt.Errorf("s3 read %s: negative offset %d", o.key, off)
	}
	if len(p) == 0 {
		return 0, nil
	}
	if off >= o.size {
		return 0, io.EOF
	}

	end := off + int64(len(p)) - 1
	if end >= o.size {
		end = o.size - 1
	}

	resp, err := o.client.GetObject(o.ctx, &s3.GetObjectInput{
		Bucket: aws.String(o.bucket),
		Key:    aws.String(o.key),
		Range:  aws.String(fmt.Sprintf("bytes=%d-%d", off, end)),
	})
	if err != nil {
		return 0, mapS3Error(err)
	}
	defer resp.Body.Close()

	want := int(end - off + 1)
	n, err := io.ReadFull(resp.Body, p[:want])
	if err != nil {
		return n, err
	}
	if want < len(p) {
		return n, io.EOF
	}
	return n, nil
}

// Header reads the leading signature.MaxHeaderSize bytes of the object
func (o *S3Object) Header() ([]byte, error) {
	n := int64(signature.MaxHeaderSize)
	if o.size < n {
		n = o.size
	}
	buf := make([]byte, n)
	read, err := o.ReadAt(buf, 0)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	return buf[:read], nil
}

// Opener returns a container opener reading the object in place
func (o *S3Object) Opener() signature.ContainerOpener {
	return ZipOpener(o, o.size)
}

func mapS3Error(err error) error {
	var nsk *types.NoSuchKey
	var notFound *types.NotFound

	if errors.As(err, &nsk) || errors.As(err, &notFound) {
		return wrap(ErrNotExist, err)
	}
	return err
}
