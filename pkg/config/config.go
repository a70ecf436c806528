// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package config reads user preferences from ~/.wasm-deploy/cli.json and
// WASM_DEPLOY_* environment variables.
package config

import (
	"strings"

	"github.com/spf13/viper"

	"github.com/luxfi/wasm-deploy/pkg/constants"
)

type Config struct{}

// Bind maps WASM_DEPLOY_<KEY> onto every key, dashes becoming underscores.
func Bind() {
	viper.SetEnvPrefix(constants.EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
}

func New() *Config {
	return &Config{}
}

// Workspace is the workspace root to use when --workspace is not given.
func (c *Config) Workspace() string {
	return c.GetConfigStringValue(constants.ConfigWorkspaceKey)
}

// ChunkSize overrides the store code chunk size of the workspace when positive.
func (*Config) ChunkSize() int {
	return viper.GetInt(constants.ConfigChunkSizeKey)
}

func (c *Config) NonInteractive() bool {
	return c.GetConfigBoolValue(constants.ConfigNonInteractive)
}

// Toolchain is the rustup toolchain used to build contracts.
func (c *Config) Toolchain() string {
	if v := c.GetConfigStringValue(constants.ConfigToolchainKey); v != "" {
		return v
	}
	return constants.DefaultRustToolchain
}

// TargetDir, ArtifactsDir and StateFile relocate parts of the workspace. Relative
// values are resolved against the workspace root.
func (c *Config) TargetDir() string {
	return c.GetConfigStringValue(constants.ConfigTargetDirKey)
}

func (c *Config) ArtifactsDir() string {
	return c.GetConfigStringValue(constants.ConfigArtifactsDirKey)
}

func (c *Config) StateFile() string {
	return c.GetConfigStringValue(constants.ConfigStateFileKey)
}

func (*Config) GetConfigStringValue(key string) string {
	return viper.GetString(key)
}

func (*Config) ConfigValueIsSet(key string) bool {
	return viper.IsSet(key)
}

func (*Config) ConfigFileExists() bool {
	return viper.ConfigFileUsed() != ""
}

func (*Config) GetConfigBoolValue(key string) bool {
	return viper.GetBool(key)
}

// SetConfigValue stores value and writes cli.json, creating it when missing.
func (*Config) SetConfigValue(key string, value interface{}) error {
	viper.Set(key, value)
	if viper.ConfigFileUsed() == "" {
		return viper.SafeWriteConfig()
	}
	return viper.WriteConfig()
}

// GetConfigPath returns the path to the configuration file
func (*Config) GetConfigPath() string {
	return viper.ConfigFileUsed()
}
