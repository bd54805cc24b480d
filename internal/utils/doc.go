// Package utils exposes reusable helpers shared by the CLI entrypoint and the
// scan command.
//
// It houses the Viper-backed ConfigurationLoader, the zap LoggerFactory, and
// the CommandContextAccessor that threads resolved configuration through
// command contexts. Flag usage formatting and path sanitization live in the
// flags and path subpackages.
package utils
