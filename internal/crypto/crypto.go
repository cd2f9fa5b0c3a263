package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"io"
	"log"
	"sync"

	"github.com/documinds/documinds/api/internal/config"
)

var (
	gcm            cipher.AEAD
	once           sync.Once
	initError      error
	encryptEnabled bool
)

// Initialize sets up the encryption with the key from config
func Initialize() error {
	once.Do(func() {
		cfg := config.Get()
		if cfg == nil || cfg.EncryptionKey == "" {
			log.Println("Warning: ENCRYPTION_KEY is not set. Integration secrets and tokens will be stored in plaintext.")
			encryptEnabled = false
			return
		}

		key := []byte(cfg.EncryptionKey)
		if len(key) != 32 {
			initError = errors.New("ENCRYPTION_KEY must be exactly 32 bytes for AES-256")
			encryptEnabled = false
			return
		}

		block, err := aes.NewCipher(key)
		if err != nil {
			initError = err
			encryptEnabled = false
			return
		}

		gcm, err = cipher.NewGCM(block)
		if err != nil {
			initError = err
			encryptEnabled = false
			return
		}

		encryptEnabled = true
		log.Println("Encryption enabled for integration secrets and tokens")
	})
	return initError
}

// IsEnabled returns whether encryption is enabled
func IsEnabled() bool {
	Initialize()
	return encryptEnabled
}

// Encrypt encrypts plaintext using AES-256-GCM
// If encryption is not enabled, returns plaintext as-is
func Encrypt(plaintext string) (string, error) {
	Initialize()
	if !encryptEnabled {
		return plaintext, nil
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", err
	}

	ciphertext := gcm.Seal(nonce, nonce, []byte(plaintext), nil)
	return base64.StdEncoding.EncodeToString(ciphertext), nil
}

// Decrypt decrypts ciphertext using AES-256-GCM
// If encryption is not enabled, returns ciphertext as-is (assumes it's plaintext)
func Decrypt(ciphertext string) (string, error) {
	Initialize()
	if !encryptEnabled {
		return ciphertext, nil
	}

	data, err := base64.StdEncoding.DecodeString(ciphertext)
	if err != nil {
		return "", err
	}

	nonceSize := gcm.NonceSize()
	if len(data) < nonceSize {
		return "", errors.New("ciphertext too short")
	}

	nonce, ciphertextBytes := data[:nonceSize], data[nonceSize:]
	plaintext, err := gcm.Open(nil, nonce, ciphertextBytes, nil)
	if err != nil {
		return "", err
	}

	return string(plaintext), nil
}

// EncryptOptional encrypts a nullable secret column in place
func EncryptOptional(value *string) (*string, error) {
	if value == nil || *value == "" {
		return value, nil
	}
	encrypted, err := Encrypt(*value)
	if err != nil {
		return nil, err
	}
	return &encrypted, nil
}

// DecryptOptional decrypts a nullable secret column
// If decryption fails, the stored value is returned as-is (backward
// compatibility with rows written before encryption was enabled)
func DecryptOptional(value *string) *string {
	if value == nil || *value == "" {
		return value
	}
	decrypted, err := Decrypt(*value)
	if err != nil {
		return value
	}
	return &decrypted
}
