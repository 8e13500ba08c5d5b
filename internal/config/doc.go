// Package config manages user-level settings stored at ~/.bimo/config.yaml.
// It provides functions to load, read, and write configuration keys such as
// the default projects directory and the log level, with BIMO_* environment
// variables taking precedence over the file.
package config
