// config/storage.go
package config

import (
	"fmt"
	"os"
)

// StorageConfig selects and configures the blob backend.
type StorageConfig struct {
	Type        string // local or s3
	LocalRoot   string // root directory for local storage
	S3AccessKey string
	S3SecretKey string
	S3Region    string
	S3Bucket    string
	S3Endpoint  string // optional, MinIO and friends
}

// LoadStorageConfig reads the storage backend settings from the environment.
func LoadStorageConfig() *StorageConfig {
	storageType := os.Getenv("FILE_STORAGE_TYPE")
	if storageType == "" {
		storageType = "local"
	}

	return &StorageConfig{
		Type:        storageType,
		LocalRoot:   getEnvOrDefault("FILE_STORAGE_ROOT", "/app/data/uploads"),
		S3AccessKey: os.Getenv("S3_ACCESS_KEY"),
		S3SecretKey: os.Getenv("S3_SECRET_KEY"),
		S3Region:    getEnvOrDefault("S3_REGION", "us-east-1"),
		S3Bucket:    os.Getenv("S3_BUCKET"),
		S3Endpoint:  os.Getenv("S3_ENDPOINT"),
	}
}

// Validate checks that the selected backend has what it needs.
func (c *StorageConfig) Validate() error {
	if c.Type == "s3" {
		if c.S3AccessKey == "" {
			return fmt.Errorf("S3_ACCESS_KEY not set")
		}
		if c.S3SecretKey == "" {
			return fmt.Errorf("S3_SECRET_KEY not set")
		}
		if c.S3Bucket == "" {
			return fmt.Errorf("S3_BUCKET not set")
		}
	}
	return nil
}

// IsS3Enabled reports whether the S3 backend is selected.
func (c *StorageConfig) IsS3Enabled() bool {
	return c.Type == "s3"
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
