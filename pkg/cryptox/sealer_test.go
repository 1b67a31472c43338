package cryptox_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/aussiebroadwan/dslauncher/pkg/cryptox"
	"github.com/stretchr/testify/require"
)

func TestSealOpenRoundTrip(t *testing.T) {
	s, err := cryptox.NewSealer([]byte("test-master-key"))
	require.NoError(t, err)

	a, err := s.SealString("eyJ0eXAiOiJNVCJ9.access")
	require.NoError(t, err)
	b, err := s.SealString("eyJ0eXAiOiJNVCJ9.access")
	require.NoError(t, err)
	require.NotEqual(t, a, b, "nonce must differ per seal")

	plain, err := s.OpenString(a)
	require.NoError(t, err)
	require.Equal(t, "eyJ0eXAiOiJNVCJ9.access", plain)
}

func TestEmptyStringSealsToNil(t *testing.T) {
	s, err := cryptox.NewSealer([]byte("k"))
	require.NoError(t, err)

	sealed, err := s.SealString("")
	require.NoError(t, err)
	require.Nil(t, sealed)

	plain, err := s.OpenString(nil)
	require.NoError(t, err)
	require.Empty(t, plain)
}

func TestOpenWithWrongKeyFails(t *testing.T) {
	s1, err := cryptox.NewSealer([]byte("key-one"))
	require.NoError(t, err)
	s2, err := cryptox.NewSealer([]byte("key-two"))
	require.NoError(t, err)

	sealed, err := s1.Seal([]byte("secret"))
	require.NoError(t, err)

	_, err = s2.Open(sealed)
	require.Error(t, err)

	_, err = s1.Open([]byte{1, 2})
	require.ErrorIs(t, err, cryptox.ErrCiphertextTooShort)
}

func TestNewSealerRejectsEmptySecret(t *testing.T) {
	_, err := cryptox.NewSealer(nil)
	require.Error(t, err)
}

func TestLoadSealerSources(t *testing.T) {
	t.Run("file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "master.key")
		require.NoError(t, os.WriteFile(path, []byte("file-secret\n"), 0o600))

		fromFile, ephemeral, err := cryptox.LoadSealer(path, "DS_TEST_MASTER_KEY")
		require.NoError(t, err)
		require.False(t, ephemeral)

		same, err := cryptox.NewSealer([]byte("file-secret"))
		require.NoError(t, err)

		sealed, err := fromFile.Seal([]byte("x"))
		require.NoError(t, err)
		_, err = same.Open(sealed)
		require.NoError(t, err, "trailing newline in key file is ignored")
	})

	t.Run("env", func(t *testing.T) {
		t.Setenv("DS_TEST_MASTER_KEY", "env-secret")
		_, ephemeral, err := cryptox.LoadSealer("", "DS_TEST_MASTER_KEY")
		require.NoError(t, err)
		require.False(t, ephemeral)
	})

	t.Run("ephemeral", func(t *testing.T) {
		_, ephemeral, err := cryptox.LoadSealer("", "DS_TEST_MASTER_KEY_UNSET")
		require.NoError(t, err)
		require.True(t, ephemeral)
	})

	t.Run("missing file", func(t *testing.T) {
		_, _, err := cryptox.LoadSealer(filepath.Join(t.TempDir(), "nope"), "")
		require.Error(t, err)
	})
}
