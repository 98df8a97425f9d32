// Package mocks provides mock implementations for testing callers of the
// cryptographic services.
package mocks

import (
	"github.com/stretchr/testify/mock"

	cryptoDomain "github.com/allisson/trustbox/internal/crypto/domain"
	cryptoService "github.com/allisson/trustbox/internal/crypto/service"
)

// MockPassphraseCipher is a mock implementation of PassphraseCipher for testing.
type MockPassphraseCipher struct {
	mock.Mock
}

// Encrypt mocks the Encrypt method of PassphraseCipher.
func (m *MockPassphraseCipher) Encrypt(
	plaintext []byte,
	passphrase string,
	suiteID cryptoDomain.SuiteID,
) (cryptoService.Envelope, error) {
	args := m.Called(plaintext, passphrase, suiteID)
	return args.Get(0).(cryptoService.Envelope), args.Error(1)
}

// Decrypt mocks the Decrypt method of PassphraseCipher.
func (m *MockPassphraseCipher) Decrypt(
	envelope cryptoService.Envelope,
	passphrase string,
) ([]byte, error) {
	args := m.Called(envelope, passphrase)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}
