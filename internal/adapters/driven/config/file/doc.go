// Package file provides the TOML file implementation of the configuration
// store. Settings live in config.toml inside the ocrhl config directory
// (~/.ocrhl by default) and are exposed with dot-notation keys.
package file
