package domain

import (
	"errors"
	"fmt"
	"regexp"
)

var (
	ErrDriverDisabled   = errors.New("driver is disabled")
	ErrChecksumMismatch = errors.New("driver checksum mismatch")
	ErrDriverTimeout    = errors.New("driver timeout")
	ErrDriverNotFound   = errors.New("driver not found")
)

var sha256Pattern = regexp.MustCompile(`^[a-f0-9]{64}$`)

// BuiltinSimulator is the driver name reserved for the in-process simulated
// sensor; it never appears in the manifest file.
const BuiltinSimulator = "sim"

// Manifest describes one external sensor driver binary. Drivers run out of
// process and speak the senscal driver protocol over grpc.
type Manifest struct {
	Name    string `json:"name"`
	Version string `json:"version"`
	Binary  string `json:"binary"`
	SHA256  string `json:"sha256"`
	Enabled bool   `json:"enabled"`
}

func (m Manifest) Validate() error {
	if m.Name == "" {
		return fmt.Errorf("driver name is required")
	}
	if m.Name == BuiltinSimulator {
		return fmt.Errorf("driver name %q is reserved", BuiltinSimulator)
	}
	if m.Version == "" {
		return fmt.Errorf("driver version is required")
	}
	if m.Binary == "" {
		return fmt.Errorf("driver binary path is required")
	}
	if !sha256Pattern.MatchString(m.SHA256) {
		return fmt.Errorf("driver sha256 must be lowercase 64-char hex")
	}
	return nil
}

// Info is what a running driver reports about itself.
type Info struct {
	Name     string
	Version  string
	GridSize int
}

func (i Info) Validate() error {
	if i.Name == "" {
		return fmt.Errorf("driver info name is required")
	}
	if i.GridSize <= 0 {
		return fmt.Errorf("driver grid size must be positive")
	}
	return nil
}

// ReadRequest asks the driver for one pressure reading at a grid cell.
type ReadRequest struct {
	X        int
	Y        int
	Distance float64
}

func (r ReadRequest) Validate() error {
	if r.X < 0 || r.Y < 0 {
		return fmt.Errorf("read coordinates must be non-negative")
	}
	return nil
}
