// Package configs embeds the configuration template written by
// `installcheck config init`.
package configs

import _ "embed"

// ProjectConfigTemplate is a commented .installcheck.yaml with every default.
//
//go:embed installcheck.example.yaml
var ProjectConfigTemplate string
