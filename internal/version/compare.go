package version

import (
	"strings"

	"github.com/Masterminds/semver/v3"

	"github.com/rxtech-lab/argo-signal/pkg/errors"
)

// CheckConfigCompatibility reports whether a config file written for
// configVersion can be loaded by a binary at binaryVersion.
//
// Rules:
//   - "main" on either side (development build) or an empty config version skips the check
//   - major versions must match
//   - the config minor version must not be newer than the binary's
//   - patch versions may differ
//
// Examples:
//   - binary 1.2.0, config 1.2.3 -> OK
//   - binary 1.3.0, config 1.2.0 -> OK
//   - binary 1.2.0, config 1.3.0 -> ERROR (config needs newer fields)
//   - binary 2.0.0, config 1.2.0 -> ERROR (major differs)
func CheckConfigCompatibility(binaryVersion, configVersion string) error {
	binaryVersion = strings.TrimPrefix(binaryVersion, "v")
	configVersion = strings.TrimPrefix(configVersion, "v")

	if configVersion == "" || binaryVersion == "main" || configVersion == "main" {
		return nil
	}

	binary, err := semver.NewVersion(binaryVersion)
	if err != nil {
		return errors.Wrapf(errors.ErrCodeInvalidVersion, err, "invalid binary version '%s'", binaryVersion)
	}

	config, err := semver.NewVersion(configVersion)
	if err != nil {
		return errors.Wrapf(errors.ErrCodeInvalidVersion, err, "invalid config version '%s'", configVersion)
	}

	if binary.Major() != config.Major() {
		return errors.Newf(errors.ErrCodeVersionMismatch,
			"major version mismatch: binary is %d.x.x but config requires %d.x.x",
			binary.Major(), config.Major())
	}

	if config.Minor() > binary.Minor() {
		return errors.Newf(errors.ErrCodeVersionMismatch,
			"minor version mismatch: binary is %d.%d.x but config requires %d.%d.x",
			binary.Major(), binary.Minor(), config.Major(), config.Minor())
	}

	return nil
}
