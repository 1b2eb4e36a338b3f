package license

import (
	"fmt"
	"io"

	"github.com/spf13/afero"

	"github.com/kelda/licensegen/pkg/errors"
)

// Write saves the signed license to path, replacing any existing file, and
// echoes the same JSON to stdout when it is non-nil.
func Write(path string, sl SignedLicense, stdout io.Writer) error {
	content, err := sl.Pretty()
	if err != nil {
		return newError(KindWrite, errors.WithContext("marshal license", err))
	}

	if err := afero.WriteFile(fs, path, content, 0644); err != nil {
		return newError(KindWrite, errors.WithContext(fmt.Sprintf("write license %s", path), err))
	}

	if stdout == nil {
		return nil
	}

	if _, err := fmt.Fprintf(stdout, "%s\n", content); err != nil {
		return newError(KindWrite, errors.WithContext("echo license", err))
	}
	return nil
}
