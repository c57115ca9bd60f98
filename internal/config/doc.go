// Package config defines the release settings (manifest location, repository
// coordinates, branch and commit conventions, download hosts) and helpers to
// load and validate them from YAML.
//
// Every field has a default matching the rules_java release layout, so the
// YAML file is optional.
package config
