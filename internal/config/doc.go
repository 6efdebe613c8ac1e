// Package config manages user-level settings stored at
// ~/.go-cli-template/config.yaml. Values are layered by Viper: command-line
// flags win over GO_CLI_TEMPLATE_* environment variables, which win over the
// config file, which wins over built-in defaults. Writes are validated
// against an embedded JSON schema before they reach disk.
package config
