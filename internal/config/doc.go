// Package config loads maskpii configuration from local and global YAML files.
// It is internal; CLI code maps flags and files into masker and engine
// configuration with CLI > local > global precedence.
package config
