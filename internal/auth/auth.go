// Package auth implements the operator password gate: Argon2id hashed
// credentials stored in a local file, verified via HTTP Basic Auth. There
// is exactly one operator account; this is a single-user internal tool,
// not an account system.
package auth

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"os"
	"strings"

	"golang.org/x/crypto/argon2"
)

// DefaultCredentialsFile is the credentials file name used when no path is
// configured.
const DefaultCredentialsFile = "auth.secret"

// Argon2id parameters (OWASP recommended).
const (
	argonTime    = 1
	argonMemory  = 64 * 1024 // 64 MB
	argonThreads = 4
	argonKeyLen  = 32
	saltLen      = 16
)

// Credentials is the single operator account parsed from the credentials
// file.
type Credentials struct {
	Username string
	Hash     string
}

// Load reads a credentials file in "username:hash" format. A missing file
// is not an error: it returns (nil, nil) and the caller decides whether to
// run unprotected.
func Load(path string) (*Credentials, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read credentials file: %w", err)
	}

	line := strings.TrimSpace(string(data))
	username, hash, ok := strings.Cut(line, ":")
	if !ok || username == "" || hash == "" {
		return nil, fmt.Errorf("invalid credentials file format (expected username:hash)")
	}

	return &Credentials{Username: username, Hash: hash}, nil
}

// Verify checks a Basic Auth username/password pair against the stored
// credentials using constant-time comparison throughout.
func (c *Credentials) Verify(username, password string) bool {
	userMatch := subtle.ConstantTimeCompare([]byte(username), []byte(c.Username)) == 1

	passMatch, err := VerifyPassword(password, c.Hash)
	if err != nil {
		passMatch = false
	}

	return userMatch && passMatch
}

// HashPassword creates an Argon2id hash of the password in the standard
// $argon2id$v=19$m=...,t=...,p=...$salt$hash encoding.
func HashPassword(password string) (string, error) {
	salt := make([]byte, saltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}

	hash := argon2.IDKey([]byte(password), salt, argonTime, argonMemory, argonThreads, argonKeyLen)

	b64Salt := base64.RawStdEncoding.EncodeToString(salt)
	b64Hash := base64.RawStdEncoding.EncodeToString(hash)

	return fmt.Sprintf("$argon2id$v=19$m=%d,t=%d,p=%d$%s$%s",
		argonMemory, argonTime, argonThreads, b64Salt, b64Hash), nil
}

// VerifyPassword verifies a password against an encoded Argon2id hash. The
// parameters embedded in the hash are honoured, so hashes created with
// older parameter sets keep verifying.
func VerifyPassword(password, encoded string) (bool, error) {
	parts := strings.Split(encoded, "$")
	if len(parts) != 6 {
		return false, fmt.Errorf("invalid hash format")
	}
	if parts[1] != "argon2id" {
		return false, fmt.Errorf("not an argon2id hash")
	}

	var memory, time, threads uint32
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &memory, &time, &threads); err != nil {
		return false, fmt.Errorf("parse hash parameters: %w", err)
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return false, fmt.Errorf("decode salt: %w", err)
	}
	want, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return false, fmt.Errorf("decode hash: %w", err)
	}

	got := argon2.IDKey([]byte(password), salt, time, memory, uint8(threads), uint32(len(want)))

	return subtle.ConstantTimeCompare(want, got) == 1, nil
}

// WriteFile creates a credentials file with mode 0400. An existing file is
// refused unless overwrite is set; the old file is removed first because
// the read-only mode blocks truncation.
func WriteFile(path, username, password string, overwrite bool) error {
	if _, err := os.Stat(path); err == nil {
		if !overwrite {
			return fmt.Errorf("credentials file already exists: %s", path)
		}
		if err := os.Remove(path); err != nil {
			return fmt.Errorf("remove existing credentials file: %w", err)
		}
	}

	hash, err := HashPassword(password)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	content := fmt.Sprintf("%s:%s\n", username, hash)
	if err := os.WriteFile(path, []byte(content), 0400); err != nil {
		return fmt.Errorf("write credentials file: %w", err)
	}
	return nil
}
