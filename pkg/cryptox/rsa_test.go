package cryptox_test

import (
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"testing"

	"github.com/aussiebroadwan/dslauncher/pkg/cryptox"
	"github.com/stretchr/testify/require"
)

func TestGenerateRSAKeyEncodings(t *testing.T) {
	tests := []struct {
		name     string
		generate func(int) ([]byte, error)
		pemType  string
		parse    func([]byte) (*rsa.PrivateKey, error)
	}{
		{
			name:     "pkcs1",
			generate: cryptox.GenerateRSAKey,
			pemType:  "RSA PRIVATE KEY",
			parse:    x509.ParsePKCS1PrivateKey,
		},
		{
			name:     "pkcs8",
			generate: cryptox.GenerateRSAKeyPKCS8,
			pemType:  "PRIVATE KEY",
			parse: func(der []byte) (*rsa.PrivateKey, error) {
				k, err := x509.ParsePKCS8PrivateKey(der)
				if err != nil {
					return nil, err
				}
				return k.(*rsa.PrivateKey), nil
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pemBytes, err := tt.generate(2048)
			require.NoError(t, err)

			block, _ := pem.Decode(pemBytes)
			require.NotNil(t, block)
			require.Equal(t, tt.pemType, block.Type)

			key, err := tt.parse(block.Bytes)
			require.NoError(t, err)
			require.Equal(t, 2048, key.N.BitLen())
		})
	}
}

func TestGenerateRSAKeyRejectsSmallKeys(t *testing.T) {
	_, err := cryptox.GenerateRSAKey(1024)
	require.Error(t, err)

	_, err = cryptox.GenerateRSAKeyPKCS8(1024)
	require.Error(t, err)
}
