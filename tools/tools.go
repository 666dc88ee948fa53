// +build tools

package tools

// Tracks dependencies on binaries not otherwise referenced in the codebase.
// https://github.com/golang/go/wiki/Modules#how-can-i-track-tool-dependencies-for-a-module
import (
	_ "github.com/ory/go-acc"
	_ "golang.org/x/tools/cmd/stringer"
)
