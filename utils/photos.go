// utils/photos.go
package utils

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// Before/after cleanup photos can go to an R2 bucket instead of local
// disk. Storage stays disabled unless the R2 env vars are set, in which
// case the upload endpoint returns CDN URLs.

var photoClient *s3.Client
var photoBucket string
var cdnBaseURL string

// PhotoStorageEnabled reports whether R2 photo storage was configured
func PhotoStorageEnabled() bool {
	return photoClient != nil
}

// InitPhotoStorage wires the R2 client from environment config.
// Returns nil without enabling anything when R2_BUCKET_NAME is unset.
func InitPhotoStorage() error {
	accountID := os.Getenv("CLOUDFLARE_ACCOUNT_ID")
	accessKeyID := os.Getenv("R2_ACCESS_KEY_ID")
	accessKeySecret := os.Getenv("R2_ACCESS_KEY_SECRET")
	photoBucket = os.Getenv("R2_BUCKET_NAME")
	if photoBucket == "" {
		return nil
	}

	cdnBaseURL = os.Getenv("CDN_BASE_URL")
	if cdnBaseURL == "" {
		cdnBaseURL = fmt.Sprintf("https://%s.r2.cloudflarestorage.com", accountID)
	}

	cfg, err := config.LoadDefaultConfig(context.TODO(),
		config.WithRegion("auto"),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			accessKeyID, accessKeySecret, "",
		)),
		config.WithEndpointResolver(aws.EndpointResolverFunc(
			func(service, region string) (aws.Endpoint, error) {
				return aws.Endpoint{
					URL: fmt.Sprintf("https://%s.r2.cloudflarestorage.com", accountID),
				}, nil
			}),
		),
	)
	if err != nil {
		return fmt.Errorf("failed to load R2 config: %w", err)
	}

	photoClient = s3.NewFromConfig(cfg)
	return nil
}

// UploadPhoto pushes a multipart photo to the bucket and returns its
// public URL. key is the object key (e.g. "photos/abc123.png").
func UploadPhoto(fileHeader *multipart.FileHeader, key string) (string, error) {
	file, err := fileHeader.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	buf := new(bytes.Buffer)
	if _, err := io.Copy(buf, file); err != nil {
		return "", fmt.Errorf("failed to read file: %w", err)
	}

	_, err = photoClient.PutObject(context.TODO(), &s3.PutObjectInput{
		Bucket:      aws.String(photoBucket),
		Key:         aws.String(key),
		Body:        buf,
		ContentType: aws.String(fileHeader.Header.Get("Content-Type")),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload photo: %w", err)
	}

	return fmt.Sprintf("%s/%s", cdnBaseURL, key), nil
}
