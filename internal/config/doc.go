// Package config reads the runner's config file so the viewer can find the
// runner's API and its log directory. Missing files degrade to defaults;
// a malformed file is an error.
package config
