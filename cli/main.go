package main

import (
	"github.com/kelda/licensegen/cli/generate"
	"github.com/kelda/licensegen/pkg/errors"
)

func main() {
	if err := generate.New().Execute(); err != nil {
		errors.HandleFatalError(err)
	}
}
