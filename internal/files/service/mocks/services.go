// Package mocks provides mock implementations for testing callers of the
// file domain services.
package mocks

import (
	"github.com/stretchr/testify/mock"

	filesDomain "github.com/allisson/trustbox/internal/files/domain"
)

// MockTokenService is a mock implementation of TokenService for testing.
type MockTokenService struct {
	mock.Mock
}

// Generate mocks the Generate method of TokenService.
func (m *MockTokenService) Generate() (string, string, error) {
	args := m.Called()
	return args.String(0), args.String(1), args.Error(2)
}

// Digest mocks the Digest method of TokenService.
func (m *MockTokenService) Digest(plainToken string) string {
	args := m.Called(plainToken)
	return args.String(0)
}

// MockPolicyDecoder is a mock implementation of PolicyDecoder for testing.
type MockPolicyDecoder struct {
	mock.Mock
}

// Decode mocks the Decode method of PolicyDecoder.
func (m *MockPolicyDecoder) Decode(envelopeB64, passphrase string) (filesDomain.Policy, error) {
	args := m.Called(envelopeB64, passphrase)
	return args.Get(0).(filesDomain.Policy), args.Error(1)
}
