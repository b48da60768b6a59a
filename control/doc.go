// Package control
// Author: momentics <momentics@gmail.com>
//
// Configuration, metrics and debug introspection layer around record pools.
//
// Provides:
//   - viper-backed configuration with DISPOSIFY_* environment overrides
//   - a prometheus collector over pool statistics
//   - named debug probes for state dumps
package control
