package license

import (
	"crypto"
	"crypto/ecdsa"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"encoding/base64"

	"github.com/spf13/afero"
	"golang.org/x/crypto/ssh"

	"github.com/kelda/licensegen/pkg/errors"
)

var fs = afero.NewOsFs()

// Signer signs licenses with an RSA (PKCS #1 v1.5) or ECDSA (ASN.1) private
// key over a SHA-256 digest.
type Signer struct {
	key crypto.Signer
}

// LoadSigner reads a PEM encoded private key from path.
func LoadSigner(path string) (*Signer, error) {
	keyBytes, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, newError(KindKeyLoad, errors.WithContext("read private key",
			errors.NewFriendlyError("Error loading private key %s: %s\n"+
				"Make sure the private key exists, or pass its location with --privkey", path, err)))
	}
	return NewSigner(keyBytes)
}

// NewSigner parses a PKCS #1, PKCS #8, SEC 1 or OpenSSH PEM private key.
func NewSigner(pemBytes []byte) (*Signer, error) {
	rawKey, err := ssh.ParseRawPrivateKey(pemBytes)
	if err != nil {
		return nil, newError(KindSign, errors.WithContext("parse private key", err))
	}

	switch key := rawKey.(type) {
	case *rsa.PrivateKey:
		return &Signer{key: key}, nil
	case *ecdsa.PrivateKey:
		return &Signer{key: key}, nil
	default:
		return nil, newError(KindSign, errors.New("unsupported private key type %T", rawKey))
	}
}

// Public returns the public half of the signing key.
func (s *Signer) Public() crypto.PublicKey {
	return s.key.Public()
}

func (s *Signer) Sign(l License) (SignedLicense, error) {
	payload, err := l.Canonical()
	if err != nil {
		return SignedLicense{}, newError(KindSign, errors.WithContext("canonicalize license", err))
	}

	digest := sha256.Sum256(payload)
	signature, err := s.key.Sign(rand.Reader, digest[:], crypto.SHA256)
	if err != nil {
		return SignedLicense{}, newError(KindSign, errors.WithContext("sign license", err))
	}

	return SignedLicense{
		License:   l,
		Signature: base64.StdEncoding.EncodeToString(signature),
	}, nil
}
