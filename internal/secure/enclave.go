package secure

import (
	"fmt"
	"io"
	"sync"

	"github.com/awnumar/memguard"
)

// SecureBuffer keeps a secret value encrypted in memory until it is needed.
// It wraps memguard.Enclave; an empty value is represented without an
// enclave since memguard refuses zero-length data.
type SecureBuffer struct {
	enclave   *memguard.Enclave
	mu        sync.RWMutex
	destroyed bool
}

// NewSecureBuffer seals data into an enclave. memguard wipes data in the
// process, so callers must not reuse the slice afterwards.
func NewSecureBuffer(data []byte) (*SecureBuffer, error) {
	if len(data) == 0 {
		return &SecureBuffer{}, nil
	}
	enclave := memguard.NewEnclave(data)
	if enclave == nil {
		return nil, fmt.Errorf("failed to seal secret")
	}
	return &SecureBuffer{enclave: enclave}, nil
}

// Open decrypts the sealed value into a locked buffer. The caller must
// Destroy the returned buffer.
func (s *SecureBuffer) Open() (*memguard.LockedBuffer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.destroyed || s.enclave == nil {
		return memguard.NewBufferFromBytes([]byte{}), nil
	}
	return s.enclave.Open()
}

// Destroy drops the enclave. It is idempotent; Open afterwards yields an
// empty buffer.
func (s *SecureBuffer) Destroy() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.destroyed {
		return
	}
	s.enclave = nil
	s.destroyed = true
}

// Reveal writes value to w followed by a newline, keeping the plaintext in
// locked memory for as long as the write takes.
func Reveal(w io.Writer, value string) error {
	buf, err := NewSecureBuffer([]byte(value))
	if err != nil {
		return err
	}
	defer buf.Destroy()

	locked, err := buf.Open()
	if err != nil {
		return fmt.Errorf("failed to open secret: %w", err)
	}
	defer locked.Destroy()

	if _, err := w.Write(locked.Bytes()); err != nil {
		return err
	}
	_, err = io.WriteString(w, "\n")
	return err
}

// Purge wipes every memguard-managed buffer; call it before exit
func Purge() {
	memguard.Purge()
}
