package services

import (
	"fmt"
	"sync"
)

// MockS3Service is a mock implementation of S3Service for testing
type MockS3Service struct {
	storedObjects map[string][]byte // map of S3 key to object content
	mu            sync.RWMutex
}

// NewMockS3Service creates a new mock S3 service
func NewMockS3Service() *MockS3Service {
	return &MockS3Service{
		storedObjects: make(map[string][]byte),
	}
}

// SetAsMockForTesting sets this mock as the global S3 service instance for testing
func (m *MockS3Service) SetAsMockForTesting() {
	SetS3Service(m)
}

// UploadBytes simulates uploading an artifact to S3
func (m *MockS3Service) UploadBytes(key string, content []byte, contentType string) error {
	stored := make([]byte, len(content))
	copy(stored, content)

	m.mu.Lock()
	m.storedObjects[key] = stored
	m.mu.Unlock()

	return nil
}

// GetPresignedURL simulates generating a presigned URL
func (m *MockS3Service) GetPresignedURL(key string) (string, error) {
	if key == "" {
		return "", nil
	}

	// Check if the object exists in mock storage
	m.mu.RLock()
	_, exists := m.storedObjects[key]
	m.mu.RUnlock()

	if !exists {
		return "", fmt.Errorf("object not found in mock S3: %s", key)
	}

	// Return a mock presigned URL
	return fmt.Sprintf("https://test-bucket.s3.us-east-1.amazonaws.com/%s?mock=true", key), nil
}

// DeleteFile simulates deleting an object from S3
func (m *MockS3Service) DeleteFile(key string) error {
	if key == "" {
		return nil
	}

	m.mu.Lock()
	delete(m.storedObjects, key)
	m.mu.Unlock()

	return nil
}

// GetStoredObject returns a stored object's content (for testing assertions)
func (m *MockS3Service) GetStoredObject(key string) ([]byte, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	content, exists := m.storedObjects[key]
	return content, exists
}

// ObjectExists checks if an object exists in mock storage
func (m *MockS3Service) ObjectExists(key string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, exists := m.storedObjects[key]
	return exists
}

// Clear removes all objects from mock storage
func (m *MockS3Service) Clear() {
	m.mu.Lock()
	m.storedObjects = make(map[string][]byte)
	m.mu.Unlock()
}
