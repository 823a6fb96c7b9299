package version

// Set at build time using -ldflags "-X github.com/genegraph/cyphergen/pkg/version.version=...".
var version = "dev"

func Version() string {
	return version
}
