package bridge

import (
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// ProtocolVersion is the bridge protocol this server speaks. The major
// version changes when a command or its arguments change incompatibly; the
// minor version changes when commands are added.
const ProtocolVersion = "1.0.0"

// CheckProtocol reports whether a client speaking the given protocol can talk
// to this server: same major version, and not newer than the server.
func CheckProtocol(client string) error {
	cv, err := parseSemver(client)
	if err != nil {
		return fmt.Errorf("parsing client protocol %q: %w", client, err)
	}
	sv := semver.MustParse(ProtocolVersion)

	c, err := semver.NewConstraint(fmt.Sprintf(">= %d.0.0, <= %s", sv.Major(), sv.String()))
	if err != nil {
		return fmt.Errorf("building protocol constraint: %w", err)
	}
	if !c.Check(cv) {
		return fmt.Errorf("client protocol %s is not compatible with server protocol %s", cv, sv)
	}
	return nil
}

// parseSemver strips a leading "v" and parses the version string.
func parseSemver(version string) (*semver.Version, error) {
	version = strings.TrimPrefix(strings.TrimSpace(version), "v")
	return semver.NewVersion(version)
}
