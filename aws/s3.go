// Package aws defines functions used to interact with S3 compatible object
// storage (AWS S3, Cloudflare R2, MinIO)
package aws

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"
)

type S3Config struct {
	Bucket          string
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	// Endpoint overrides the AWS endpoint, e.g.
	// https://<account>.r2.cloudflarestorage.com for R2
	Endpoint string
}

type S3Client struct {
	C      *s3.Client
	Bucket *string
}

// NewS3 builds a client and makes sure the bucket exists
func NewS3(ctx context.Context, c S3Config) (*S3Client, error) {
	if c.Bucket == "" {
		return nil, errors.New("bucket can't be empty")
	}

	cfg, err := config.LoadDefaultConfig(ctx,
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			c.AccessKeyID,
			c.SecretAccessKey,
			"",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load aws config, %w", err)
	}

	bucket := aws.String(c.Bucket)

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.Region = c.Region
		if o.Region == "" {
			o.Region = "auto"
		}

		if c.Endpoint != "" {
			o.BaseEndpoint = aws.String(c.Endpoint)
			o.UsePathStyle = true
		}
	})

	_, err = client.HeadBucket(ctx, &s3.HeadBucketInput{
		Bucket: bucket,
	})
	if err != nil {
		var apiErr smithy.APIError

		if errors.As(err, &apiErr) {
			if apiErr.ErrorCode() == "NotFound" {
				return nil, fmt.Errorf("bucket '%s' does not exist", c.Bucket)
			}
		}

		return nil, fmt.Errorf("failed to check if bucket exists, %w", err)
	}

	return &S3Client{
		C:      client,
		Bucket: bucket,
	}, nil
}
