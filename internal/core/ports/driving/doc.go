// Package driving defines the inbound port interfaces consumers (the CLI,
// the HTTP layer) use to operate the core: bootstrap, library access, and
// search.
package driving
