// Package version provides version information for the oracle-script tooling.
package version

// Version is the current version of the oracle script.
const Version = "0.1.0"

// AgentString returns the full agent string with versioning.
// Format: oracle-script/v{version}
func AgentString() string {
	return "oracle-script/v" + Version
}
