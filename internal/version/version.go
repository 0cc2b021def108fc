package version

// Version is the CLI version, overridable at build time with
// -ldflags "-X github.com/mtnworks/gt-client/internal/version.Version=...".
var Version = "0.1.0-dev"
