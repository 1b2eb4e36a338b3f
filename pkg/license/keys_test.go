package license

import (
	"crypto"
	"crypto/ecdsa"
	"crypto/ed25519"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"crypto/x509"
	"encoding/base64"
	"encoding/pem"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/ssh"
)

var (
	testKeysOnce sync.Once
	testRSAKey   *rsa.PrivateKey
	testECKey    *ecdsa.PrivateKey
	testEdKey    ed25519.PrivateKey
	testKeysErr  error
)

func loadTestKeys(t *testing.T) {
	testKeysOnce.Do(func() {
		testRSAKey, testKeysErr = rsa.GenerateKey(rand.Reader, 2048)
		if testKeysErr != nil {
			return
		}
		testECKey, testKeysErr = ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
		if testKeysErr != nil {
			return
		}
		_, testEdKey, testKeysErr = ed25519.GenerateKey(rand.Reader)
	})
	require.NoError(t, testKeysErr)
}

func rsaPKCS1PEM(t *testing.T) []byte {
	loadTestKeys(t)
	return pem.EncodeToMemory(&pem.Block{
		Type:  "RSA PRIVATE KEY",
		Bytes: x509.MarshalPKCS1PrivateKey(testRSAKey),
	})
}

func pkcs8PEM(t *testing.T, key crypto.PrivateKey) []byte {
	der, err := x509.MarshalPKCS8PrivateKey(key)
	require.NoError(t, err)
	return pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: der})
}

func ecSEC1PEM(t *testing.T) []byte {
	loadTestKeys(t)
	der, err := x509.MarshalECPrivateKey(testECKey)
	require.NoError(t, err)
	return pem.EncodeToMemory(&pem.Block{Type: "EC PRIVATE KEY", Bytes: der})
}

func openSSHPEM(t *testing.T, key crypto.PrivateKey) []byte {
	block, err := ssh.MarshalPrivateKey(key, "test")
	require.NoError(t, err)
	return pem.EncodeToMemory(block)
}

// verifySignature checks sig against the canonical bytes of l, the same way a
// license consumer would.
func verifySignature(t *testing.T, pub crypto.PublicKey, l License, sig string) bool {
	sigBytes, err := base64.StdEncoding.DecodeString(sig)
	require.NoError(t, err)

	payload, err := l.Canonical()
	require.NoError(t, err)
	digest := sha256.Sum256(payload)

	switch key := pub.(type) {
	case *rsa.PublicKey:
		return rsa.VerifyPKCS1v15(key, crypto.SHA256, digest[:], sigBytes) == nil
	case *ecdsa.PublicKey:
		return ecdsa.VerifyASN1(key, digest[:], sigBytes)
	default:
		t.Fatalf("unexpected public key type %T", pub)
		return false
	}
}

func assertSamePublicKey(t *testing.T, exp, actual crypto.PublicKey) {
	key, ok := exp.(interface{ Equal(crypto.PublicKey) bool })
	require.True(t, ok)
	assert.True(t, key.Equal(actual))
}
