// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package storage provides an S3-compatible object storage client for
// product images and avatars. It wraps the AWS SDK v2 and is configured
// for path-style access (required by CEPH/Hetzner/MinIO).
package storage

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/google/uuid"
)

// Client wraps an S3 client for media uploads to a single public bucket.
type Client struct {
	s3        *s3.Client
	bucket    string
	endpoint  string
	publicURL string // optional CDN/direct URL for public files
}

// New creates an S3 storage client with path-style addressing. Returns
// (nil, nil) if endpoint or credentials are empty, allowing the app to
// start without storage; uploads then fail with a clear error.
func New(endpoint, region, accessKey, secretKey, bucket, publicURL string) (*Client, error) {
	if endpoint == "" || accessKey == "" || secretKey == "" {
		return nil, nil
	}

	endpoint = strings.TrimRight(endpoint, "/")

	s3Client := s3.New(s3.Options{
		Region:       region,
		BaseEndpoint: aws.String(endpoint),
		Credentials:  credentials.NewStaticCredentialsProvider(accessKey, secretKey, ""),
		UsePathStyle: true,
	})

	return &Client{
		s3:        s3Client,
		bucket:    bucket,
		endpoint:  endpoint,
		publicURL: strings.TrimRight(publicURL, "/"),
	}, nil
}

// UploadProductImage stores a product image under a key derived from the
// product ID and returns the public URL. The original filename only
// contributes its extension.
func (c *Client) UploadProductImage(ctx context.Context, productID uuid.UUID, filename, contentType string, body io.Reader, size int64) (string, error) {
	key := fmt.Sprintf("products/%s/%s%s", productID, uuid.New(), strings.ToLower(path.Ext(filename)))
	if err := c.upload(ctx, key, contentType, body, size); err != nil {
		return "", err
	}
	return c.FileURL(key), nil
}

// UploadAvatar stores a user avatar and returns the public URL.
func (c *Client) UploadAvatar(ctx context.Context, userID uuid.UUID, filename, contentType string, body io.Reader, size int64) (string, error) {
	key := fmt.Sprintf("avatars/%s%s", userID, strings.ToLower(path.Ext(filename)))
	if err := c.upload(ctx, key, contentType, body, size); err != nil {
		return "", err
	}
	return c.FileURL(key), nil
}

func (c *Client) upload(ctx context.Context, key, contentType string, body io.Reader, size int64) error {
	if c == nil {
		return fmt.Errorf("object storage is not configured")
	}
	_, err := c.s3.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(c.bucket),
		Key:           aws.String(key),
		Body:          body,
		ContentLength: aws.Int64(size),
		ContentType:   aws.String(contentType),
		ACL:           s3types.ObjectCannedACLPublicRead,
	})
	if err != nil {
		return fmt.Errorf("s3 upload %s/%s: %w", c.bucket, key, err)
	}
	return nil
}

// Delete removes an object by its public URL. URLs that don't belong to
// this storage are ignored, so external image links never error.
func (c *Client) Delete(ctx context.Context, rawURL string) error {
	if c == nil {
		return nil
	}
	key, ok := c.extractKey(rawURL)
	if !ok {
		return nil
	}
	_, err := c.s3.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("s3 delete %s/%s: %w", c.bucket, key, err)
	}
	return nil
}

// FileURL returns the public URL for a stored object. Uses the configured
// public URL if set, otherwise builds a path-style URL.
func (c *Client) FileURL(key string) string {
	if c.publicURL != "" {
		return c.publicURL + "/" + key
	}
	return c.endpoint + "/" + c.bucket + "/" + key
}

// extractKey extracts the object key from a public file URL. Returns
// ("", false) if the URL doesn't belong to this storage.
func (c *Client) extractKey(rawURL string) (string, bool) {
	if c.publicURL != "" {
		prefix := c.publicURL + "/"
		if strings.HasPrefix(rawURL, prefix) {
			return rawURL[len(prefix):], true
		}
	}

	prefix := c.endpoint + "/" + c.bucket + "/"
	if strings.HasPrefix(rawURL, prefix) {
		return rawURL[len(prefix):], true
	}

	return "", false
}
