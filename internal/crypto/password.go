// Package crypto implements the password verifier: one-way salted hashing of
// user passwords and constant-time verification of login attempts.
package crypto

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"io"
	"strings"

	"golang.org/x/crypto/argon2"
)

// PasswordHasher produces and verifies salted one-way password digests.
//
// Verify is constant-time with respect to the digest comparison and returns
// false (never an error) for malformed digests, so callers cannot distinguish
// a corrupt stored digest from a wrong password.
type PasswordHasher interface {
	// Hash derives a salted digest from plaintext and returns it in PHC
	// string format. Fails only when the OS CSPRNG is unavailable.
	Hash(plaintext string) (string, error)

	// Verify reports whether plaintext matches digest. Any malformed digest
	// yields false.
	Verify(plaintext, digest string) bool
}

// passwordHasher is the Argon2id implementation of [PasswordHasher].
type passwordHasher struct {
	// Argon2id tuning parameters. Stored in the struct so they can be
	// adjusted per deployment target.
	time    uint32
	memory  uint32
	threads uint8
	keyLen  uint32
	saltLen int
}

// NewPasswordHasher constructs a [PasswordHasher] with the Argon2id
// parameters recommended by OWASP (2024):
//   - time cost:   1 iteration
//   - memory cost: 64 MiB
//   - parallelism: 4 threads
//   - key length:  32 bytes (256 bits)
func NewPasswordHasher() PasswordHasher {
	return &passwordHasher{
		time:    1,
		memory:  64 * 1024, // 64 MiB
		threads: 4,
		keyLen:  32, // 256 bits
		saltLen: 16,
	}
}

// Hash implements [PasswordHasher]. The digest is serialized in PHC format:
//
//	$argon2id$v=19$m=65536,t=1,p=4$<b64 salt>$<b64 key>
func (p *passwordHasher) Hash(plaintext string) (string, error) {
	salt := make([]byte, p.saltLen)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return "", fmt.Errorf("error reading salt from CSPRNG: %w", err)
	}

	key := argon2.IDKey([]byte(plaintext), salt, p.time, p.memory, p.threads, p.keyLen)

	digest := fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version,
		p.memory, p.time, p.threads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	)

	return digest, nil
}

// Verify implements [PasswordHasher]. It re-derives the key with the
// parameters encoded in the digest itself, so digests produced under older
// tuning remain verifiable.
func (p *passwordHasher) Verify(plaintext, digest string) bool {
	params, salt, key, ok := decodeDigest(digest)
	if !ok {
		return false
	}

	derived := argon2.IDKey([]byte(plaintext), salt, params.time, params.memory, params.threads, uint32(len(key)))

	return subtle.ConstantTimeCompare(derived, key) == 1
}

type digestParams struct {
	memory  uint32
	time    uint32
	threads uint8
}

// decodeDigest splits a PHC-format Argon2id digest into its parameters,
// salt, and derived key. ok is false for any structural mismatch.
func decodeDigest(digest string) (digestParams, []byte, []byte, bool) {
	parts := strings.Split(digest, "$")
	if len(parts) != 6 || parts[0] != "" || parts[1] != "argon2id" {
		return digestParams{}, nil, nil, false
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil || version != argon2.Version {
		return digestParams{}, nil, nil, false
	}

	var params digestParams
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &params.memory, &params.time, &params.threads); err != nil {
		return digestParams{}, nil, nil, false
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return digestParams{}, nil, nil, false
	}

	key, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil || len(key) == 0 {
		return digestParams{}, nil, nil, false
	}

	return params, salt, key, true
}
