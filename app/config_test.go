package main

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfig(t *testing.T) {
	tempFile, err := os.CreateTemp("", "config*.env")
	if err != nil {
		t.Fatalf("Failed to create temporary config file: %v", err)
	}
	defer os.Remove(tempFile.Name())

	configData := []byte(`
PORT=:8080
ENVIRONMENT=development
VERSION=1.0.0
POSTGRES_HOST=localhost
POSTGRES_PORT=5432
POSTGRES_USER=testuser
POSTGRES_PASSWORD=testpassword
POSTGRES_DB=testdb
MAIL_HOST=smtp.example.com
MAIL_PORT=587
MAIL_USER=testuser@example.com
MAIL_PASSWORD=testpassword
MAIL_SENDER=sender@example.com
MAIL_NOTIFY=inbox@example.com
RABBITMQ_HOST=rabbitmq.example.com
RABBITMQ_PORT=5672
RABBITMQ_USER=testuser
RABBITMQ_PASSWORD=testpassword
S3_ENDPOINT=http://minio.example.com:9000
S3_ACCESS_KEY=accesskey
S3_SECRET_KEY=secretkey
S3_BUCKET=media
S3_USE_SSL=false
S3_PUBLIC_URL=http://cdn.example.com
DEFAULT_AUTHOR="Arvanweb Team"
READ_WPM=200
ADMIN_USERNAME=admin
ADMIN_EMAIL=admin@example.com
ADMIN_PASSWORD=AdminPass123!
RATE_LIMIT_ENABLED=true
RATE_LIMIT_RPS=10
RATE_LIMIT_BURST=20
`)
	if _, err := tempFile.Write(configData); err != nil {
		t.Fatalf("Failed to write test configuration to temporary file: %v", err)
	}

	config, err := loadConfig(tempFile.Name())
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	assert.Equal(t, ":8080", config.Port)
	assert.Equal(t, "development", config.Environment)
	assert.Equal(t, "1.0.0", config.Version)
	assert.Equal(t, "localhost", config.DB.Host)
	assert.Equal(t, "5432", config.DB.Port)
	assert.Equal(t, "testuser", config.DB.User)
	assert.Equal(t, "testpassword", config.DB.Password)
	assert.Equal(t, "testdb", config.DB.Name)
	assert.Equal(t, "smtp.example.com", config.Mail.Host)
	assert.Equal(t, 587, config.Mail.Port)
	assert.Equal(t, "testuser@example.com", config.Mail.User)
	assert.Equal(t, "sender@example.com", config.Mail.Sender)
	assert.Equal(t, "inbox@example.com", config.Mail.Notify)
	assert.Equal(t, "rabbitmq.example.com", config.RabbitMQ.Host)
	assert.Equal(t, "5672", config.RabbitMQ.Port)
	assert.Equal(t, "http://minio.example.com:9000", config.S3.Endpoint)
	assert.Equal(t, "media", config.S3.Bucket)
	assert.False(t, config.S3.UseSSL)
	assert.Equal(t, "http://cdn.example.com", config.S3.PublicURL)
	assert.Equal(t, "Arvanweb Team", config.Content.DefaultAuthor)
	assert.Equal(t, 200, config.Content.WordsPerMinute)
	assert.Equal(t, "admin", config.Admin.Username)
	assert.Equal(t, "admin@example.com", config.Admin.Email)
	assert.True(t, config.RateLimit.Enabled)
	assert.Equal(t, float64(10), config.RateLimit.RPS)
	assert.Equal(t, 20, config.RateLimit.Burst)
}
