// Package config holds configuration for the Wayback Tweets CLI.
//
// Configuration comes from three places, in increasing precedence:
//   - Documented defaults (constants in this package)
//   - The optional .waybacktweets YAML file (per-username overrides)
//   - CLI flags
//
// Design decision: The Config struct is populated once after flag parsing
// and passed through the application via dependency injection rather than
// global state. Validation happens in one place, before any work begins.
package config
