package license

import (
	"io"
	"time"

	log "github.com/sirupsen/logrus"
)

// Issuer validates a license request, signs it and writes the result.
type Issuer struct {
	PrivateKeyPath string
	OutputPath     string

	// Stdout receives a copy of the written license. It may be nil.
	Stdout io.Writer

	// Now is the clock used for the expiry check. Defaults to time.Now.
	Now func() time.Time
}

// Issue runs the whole pipeline on the raw (email, domain, expires)
// arguments. Nothing is read or written until the arguments are valid.
func (issuer Issuer) Issue(args []string) (SignedLicense, error) {
	l, err := NewValidator(issuer.Now).Validate(args)
	if err != nil {
		return SignedLicense{}, err
	}

	log.WithFields(log.Fields{
		"email":   l.LicensedTo,
		"domain":  l.Domain,
		"expires": l.Expires,
	}).Info("Generating license")

	signer, err := LoadSigner(issuer.PrivateKeyPath)
	if err != nil {
		return SignedLicense{}, err
	}
	log.WithField("path", issuer.PrivateKeyPath).Debug("Loaded private key")

	signed, err := signer.Sign(l)
	if err != nil {
		return SignedLicense{}, err
	}

	if err := Write(issuer.OutputPath, signed, issuer.Stdout); err != nil {
		return SignedLicense{}, err
	}
	log.WithField("path", issuer.OutputPath).Info("License saved")
	return signed, nil
}
