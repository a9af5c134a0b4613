// Package storage persists uploaded activity images. Two drivers: local
// disk (default) and an S3-compatible bucket, selected by STORAGE_DRIVER.
package storage

import (
	"context"
	"fmt"
	"io"

	"round-tracker/config"
)

// Store writes a blob and returns the path recorded against the image row.
type Store interface {
	Save(ctx context.Context, dir, name, contentType string, r io.Reader, size int64) (string, error)
}

// Default is the process-wide store, set by InitFromEnv.
var Default Store

func InitFromEnv(ctx context.Context) error {
	switch config.STORAGE_DRIVER {
	case "", "disk":
		Default = NewDisk(config.UPLOAD_DIR)
		return nil
	case "s3":
		s, err := NewS3(ctx, S3Config{
			Bucket:    config.S3_BUCKET,
			Region:    config.S3_REGION,
			Endpoint:  config.S3_ENDPOINT,
			PathStyle: config.S3_PATH_STYLE == "true",
		})
		if err != nil {
			return err
		}
		Default = s
		return nil
	default:
		return fmt.Errorf("unknown storage driver %q", config.STORAGE_DRIVER)
	}
}
