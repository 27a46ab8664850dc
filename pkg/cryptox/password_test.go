package cryptox

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	// Set up a temporary pepper file for testing
	tmpDir := os.TempDir()
	pepperPath := filepath.Join(tmpDir, "test-pepper")
	SetPepperPath(pepperPath)

	// Clean up pepper file before and after tests
	os.Remove(pepperPath)
	defer os.Remove(pepperPath)

	os.Exit(m.Run())
}

func TestHashPassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
	}{
		{"simple password", "password123"},
		{"complex password", "P@ssw0rd!#$%^&*()"},
		{"long password", strings.Repeat("a", 100)},
		{"empty password", ""},
		{"unicode password", "пароль🔒密码"},
		{"whitespace password", "   spaces   "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hash, err := HashPassword(tt.password)
			require.NoError(t, err)
			require.NotEmpty(t, hash)

			// Verify PHC format
			require.True(t, strings.HasPrefix(hash, "$argon2id$v=19$"),
				"hash should be in PHC format")

			parts := strings.Split(hash, "$")
			require.Len(t, parts, 6, "PHC hash should have 6 parts")
			require.Equal(t, "argon2id", parts[1])
			require.Contains(t, parts[3], "m=", "should contain memory parameter")
			require.Contains(t, parts[3], "t=", "should contain iterations parameter")
			require.Contains(t, parts[3], "p=", "should contain parallelism parameter")
			require.NotEmpty(t, parts[4], "salt should not be empty")
			require.NotEmpty(t, parts[5], "hash should not be empty")
		})
	}
}

func TestHashPassword_UniqueSalts(t *testing.T) {
	password := "samepassword"

	hash1, err := HashPassword(password)
	require.NoError(t, err)

	hash2, err := HashPassword(password)
	require.NoError(t, err)

	// Each hash should be different due to unique salts
	require.NotEqual(t, hash1, hash2, "hashes should differ due to unique salts")

	// But all should verify the same password
	require.NoError(t, VerifyPassword(password, hash1))
	require.NoError(t, VerifyPassword(password, hash2))
}

func TestVerifyPassword_Mismatch(t *testing.T) {
	hash, err := HashPassword("correct horse battery staple")
	require.NoError(t, err)

	err = VerifyPassword("incorrect horse", hash)
	require.ErrorIs(t, err, ErrMismatch)
}

func TestVerifyPassword_MalformedHash(t *testing.T) {
	tests := []struct {
		name   string
		stored string
	}{
		{"empty", ""},
		{"not a hash", "plaintext"},
		{"truncated PHC", "$argon2id$v=19$m=19456"},
		{"wrong algorithm", "$bcrypt$v=19$m=19456,t=2,p=1$c2FsdA$aGFzaA"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := VerifyPassword("whatever", tt.stored)
			require.Error(t, err)
		})
	}
}

func TestLegacyHash(t *testing.T) {
	// Known SHA-256 vector, lowercase hex.
	require.Equal(t,
		"5e884898da28047151d0e56f8dc6292773603d0d6aabbdd62a11ef721d1542d8",
		LegacyHash("password"))

	// Deterministic: same input, same digest.
	require.Equal(t, LegacyHash("qwerty123"), LegacyHash("qwerty123"))
	require.NotEqual(t, LegacyHash("qwerty123"), LegacyHash("qwerty124"))
}

func TestIsLegacyHash(t *testing.T) {
	require.True(t, IsLegacyHash(LegacyHash("anything")))
	require.False(t, IsLegacyHash("$argon2id$v=19$m=19456,t=2,p=1$c2FsdA$aGFzaA"))
	require.False(t, IsLegacyHash("deadbeef"))                        // too short
	require.False(t, IsLegacyHash(strings.Repeat("z", 64)))          // not hex
	require.False(t, IsLegacyHash(strings.Repeat("ab", 33)))         // too long
}

func TestVerifyPassword_LegacyDispatch(t *testing.T) {
	stored := LegacyHash("monkeybusiness")

	require.NoError(t, VerifyPassword("monkeybusiness", stored))
	require.ErrorIs(t, VerifyPassword("monkeybusines", stored), ErrMismatch)
}
