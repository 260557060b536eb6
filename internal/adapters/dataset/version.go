package dataset

import (
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// DefaultVersion is assumed for datasets that carry no version field
const DefaultVersion = "1.0.0"

// SupportedVersions is the dataset format range this reader understands
const SupportedVersions = ">=1.0.0, <2.0.0"

var supportedConstraint = mustConstraint(SupportedVersions)

// UnsupportedVersionError indicates a dataset whose format version is
// unparseable or outside SupportedVersions
type UnsupportedVersionError struct {
	Version string
	Reason  string
}

func (e *UnsupportedVersionError) Error() string {
	return fmt.Sprintf("unsupported dataset version %q: %s", e.Version, e.Reason)
}

// checkVersion normalizes the raw version and verifies it is supported
func checkVersion(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		raw = DefaultVersion
	}

	v, err := semver.NewVersion(raw)
	if err != nil {
		return "", &UnsupportedVersionError{Version: raw, Reason: err.Error()}
	}
	if !supportedConstraint.Check(v) {
		return "", &UnsupportedVersionError{Version: raw, Reason: "must satisfy " + SupportedVersions}
	}
	return v.String(), nil
}

func mustConstraint(raw string) *semver.Constraints {
	c, err := semver.NewConstraint(raw)
	if err != nil {
		panic(fmt.Sprintf("dataset: invalid version constraint %q: %v", raw, err))
	}
	return c
}
