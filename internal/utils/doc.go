// Package utils exposes reusable helpers consumed by multiple bundlekit commands.
//
// ConfigurationLoader layers the embedded defaults, a YAML configuration file,
// and BUNDLEKIT_* environment variables through Viper. LoggerFactory builds the
// zap diagnostic logger. FlushingWriter keeps console output visible while
// build subprocesses share the terminal, and LoadEnvironmentFile reads the
// project's .env variables for those subprocesses.
package utils
