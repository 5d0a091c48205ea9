package test

import (
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// DecodeHexString is a helper function for tests that decodes hex strings. It doesn't return
// an error value, which makes it usable inline.
func DecodeHexString(hexData string) []byte {
	// Strip off any leading/trailing whitespace in hex string
	hexData = strings.TrimSpace(hexData)
	decoded, err := hex.DecodeString(hexData)
	if err != nil {
		panic(fmt.Sprintf("error decoding hex: %s", err))
	}
	return decoded
}

// ReadTestdata returns the contents of a file under internal/testdata. It panics if the
// file cannot be read
func ReadTestdata(name string) []byte {
	_, thisFile, _, ok := runtime.Caller(0)
	if !ok {
		panic("unable to determine test helper location")
	}
	path := filepath.Join(filepath.Dir(thisFile), "..", "testdata", name)
	content, err := os.ReadFile(path)
	if err != nil {
		panic(fmt.Sprintf("error reading test data %s: %s", name, err))
	}
	return content
}
