package yammer

import (
	"fmt"

	"golang.org/x/mod/semver"

	"github.com/bft-labs/yampost/pkg/log"
	"github.com/bft-labs/yampost/pkg/loginform"
	"github.com/bft-labs/yampost/pkg/sender"
	"github.com/bft-labs/yampost/pkg/token"
)

// Version is the client library version, sent in the User-Agent header.
const Version = "1.0.0"

// validateModuleVersions checks that all module versions are compatible.
func validateModuleVersions() error {
	modules := map[string]struct {
		version    string
		minVersion string
	}{
		"log":       {log.Version, log.MinCompatibleVersion},
		"loginform": {loginform.Version, loginform.MinCompatibleVersion},
		"sender":    {sender.Version, sender.MinCompatibleVersion},
		"token":     {token.Version, token.MinCompatibleVersion},
	}

	for name, m := range modules {
		if !isVersionCompatible(m.version, m.minVersion) {
			return fmt.Errorf("module %s version %s is below minimum compatible version %s",
				name, m.version, m.minVersion)
		}
	}
	return nil
}

// isVersionCompatible reports whether version >= minVersion.
// Versions are "major.minor.patch" without the "v" prefix.
func isVersionCompatible(version, minVersion string) bool {
	v, m := "v"+version, "v"+minVersion
	if !semver.IsValid(v) || !semver.IsValid(m) {
		return false
	}
	return semver.Compare(v, m) >= 0
}
