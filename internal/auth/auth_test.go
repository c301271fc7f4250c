package auth

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestHashPassword(t *testing.T) {
	password := "CourtsideSecret123"

	hash, err := HashPassword(password)
	if err != nil {
		t.Fatalf("HashPassword() failed: %v", err)
	}

	if !strings.HasPrefix(hash, "$argon2id$v=19$") {
		t.Errorf("hash should start with $argon2id$v=19$, got: %s", hash)
	}

	// A fresh salt each call means a fresh hash each call.
	hash2, err := HashPassword(password)
	if err != nil {
		t.Fatalf("HashPassword() failed on second call: %v", err)
	}
	if hash == hash2 {
		t.Error("two hashes of the same password should differ")
	}
}

func TestVerifyPassword(t *testing.T) {
	password := "CourtsideSecret123"

	hash, err := HashPassword(password)
	if err != nil {
		t.Fatalf("HashPassword() failed: %v", err)
	}

	tests := []struct {
		name     string
		password string
		hash     string
		want     bool
		wantErr  bool
	}{
		{"correct password", password, hash, true, false},
		{"wrong password", "NotThePassword", hash, false, false},
		{"invalid hash format", password, "invalid", false, true},
		{"wrong algorithm", password, "$bcrypt$v=1$m=65536,t=1,p=4$salt$hash", false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := VerifyPassword(tt.password, tt.hash)
			if (err != nil) != tt.wantErr {
				t.Fatalf("VerifyPassword() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("VerifyPassword() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLoadAndVerify(t *testing.T) {
	path := filepath.Join(t.TempDir(), "auth.secret")

	if err := WriteFile(path, "coach", "TopSpin!9", false); err != nil {
		t.Fatalf("WriteFile() failed: %v", err)
	}

	creds, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if creds == nil {
		t.Fatal("Load() returned nil credentials for an existing file")
	}
	if creds.Username != "coach" {
		t.Errorf("Username = %q, want %q", creds.Username, "coach")
	}

	if !creds.Verify("coach", "TopSpin!9") {
		t.Error("Verify() rejected correct credentials")
	}
	if creds.Verify("coach", "wrong") {
		t.Error("Verify() accepted wrong password")
	}
	if creds.Verify("admin", "TopSpin!9") {
		t.Error("Verify() accepted wrong username")
	}
}

func TestLoadMissingFile(t *testing.T) {
	creds, err := Load(filepath.Join(t.TempDir(), "nope.secret"))
	if err != nil {
		t.Fatalf("Load() on missing file should not error, got: %v", err)
	}
	if creds != nil {
		t.Error("Load() on missing file should return nil credentials")
	}
}

func TestWriteFileOverwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "auth.secret")

	if err := WriteFile(path, "coach", "first", false); err != nil {
		t.Fatalf("WriteFile() failed: %v", err)
	}

	if err := WriteFile(path, "coach", "second", false); err == nil {
		t.Error("WriteFile() should refuse to overwrite without the flag")
	}

	if err := WriteFile(path, "coach", "second", true); err != nil {
		t.Fatalf("WriteFile() with overwrite failed: %v", err)
	}

	creds, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if !creds.Verify("coach", "second") {
		t.Error("overwritten file should hold the new password")
	}
}
