package license

import (
	"bytes"
	"encoding/json"

	"github.com/kelda/licensegen/pkg/errors"
)

// License is the unsigned license record. The field order is part of the
// signing contract: see Canonical.
type License struct {
	LicensedTo string `json:"licensed_to"`
	Domain     string `json:"domain"`
	Expires    string `json:"expires"`
}

type SignedLicense struct {
	License
	// Signature is the base64 (standard encoding, padded) signature of the
	// SHA-256 digest of License.Canonical().
	Signature string `json:"signature"`
}

// Canonical returns the exact bytes that are signed:
//
//	{"licensed_to":"...","domain":"...","expires":"..."}
//
// Keys are in that order, there is no whitespace or trailing newline, and
// '<', '>' and '&' are not HTML escaped. Verifiers must rebuild the same bytes
// from the three fields.
func (l License) Canonical() ([]byte, error) {
	return marshalJSON(l, "")
}

// Pretty returns the signed license as two-space indented JSON without a
// trailing newline.
func (sl SignedLicense) Pretty() ([]byte, error) {
	return marshalJSON(sl, "  ")
}

func marshalJSON(v interface{}, indent string) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if indent != "" {
		enc.SetIndent("", indent)
	}

	if err := enc.Encode(v); err != nil {
		return nil, errors.WithContext("marshal", err)
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}
