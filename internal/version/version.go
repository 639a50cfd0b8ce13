// Package version carries build identity, overridable via -ldflags.
package version

var (
	AppName     = "Tooly"
	AppFullName = "Tooly Community Bot"
	Version     = "dev"
)
