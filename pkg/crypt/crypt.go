// pkg/crypt/crypt.go

package crypt

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"io"

	"github.com/pkg/errors"
	"golang.org/x/crypto/pbkdf2"
)

// Encryptor seals and opens small buffers.
type Encryptor interface {
	Encrypt(plaintext []byte) ([]byte, error)
	Decrypt(ciphertext []byte) ([]byte, error)
}

const (
	saltLen    = 8
	keyLen     = 32 // AES-256-GCM
	pbkdf2Iter = 10000
)

type passphraseEncryptor struct {
	passphrase []byte
}

// NewPassphraseEncryptor derives an AES-256 key from the passphrase
// with PBKDF2-SHA256, using a fresh salt per sealed buffer. The output
// is salt || nonce || ciphertext, so Decrypt needs only the passphrase.
func NewPassphraseEncryptor(passphrase string) Encryptor {
	return &passphraseEncryptor{passphrase: []byte(passphrase)}
}

func (e *passphraseEncryptor) aead(salt []byte) (cipher.AEAD, error) {
	key := pbkdf2.Key(e.passphrase, salt, pbkdf2Iter, keyLen, sha256.New)
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}

func (e *passphraseEncryptor) Encrypt(plaintext []byte) ([]byte, error) {
	salt := make([]byte, saltLen)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return nil, err
	}
	gcm, err := e.aead(salt)
	if err != nil {
		return nil, err
	}
	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, err
	}
	out := make([]byte, 0, saltLen+len(nonce)+len(plaintext)+gcm.Overhead())
	out = append(out, salt...)
	out = append(out, nonce...)
	return gcm.Seal(out, nonce, plaintext, nil), nil
}

func (e *passphraseEncryptor) Decrypt(ciphertext []byte) ([]byte, error) {
	if len(ciphertext) < saltLen {
		return nil, errors.New("sealed payload too short")
	}
	salt, rest := ciphertext[:saltLen], ciphertext[saltLen:]
	gcm, err := e.aead(salt)
	if err != nil {
		return nil, err
	}
	if len(rest) < gcm.NonceSize() {
		return nil, errors.New("sealed payload too short")
	}
	nonce, data := rest[:gcm.NonceSize()], rest[gcm.NonceSize():]
	plain, err := gcm.Open(nil, nonce, data, nil)
	if err != nil {
		return nil, errors.Wrap(err, "open sealed payload")
	}
	return plain, nil
}
