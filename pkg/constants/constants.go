// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package constants

import (
	"time"
)

const (
	AppName = "wasm-deploy"

	DefaultPerms755        = 0o755
	WriteReadReadPerms     = 0o644
	WriteReadUserOnlyPerms = 0o600

	// per user, holds cli.json preferences
	BaseDirName = ".wasm-deploy"
	// per workspace, holds config.json, the lock and logs
	WorkspaceDirName = ".wasm-deploy"
	LogDir           = "logs"
	LogFileName      = "wasm-deploy.log"
	LockFileName     = "config.lock"

	ConfigFileName        = "config.json"
	ManifestFileName      = "deployment.yaml"
	TargetDirName         = "target"
	DeploymentDirName     = "deployment"
	ArtifactsDirName      = "artifacts"
	WasmExtension         = ".wasm"
	GzipExtension         = ".gz"
	WasmTarget            = "wasm32-unknown-unknown"
	DefaultRustToolchain  = "stable"
	CargoReleaseSubdir    = "release"
	MinCargoVersion       = "v1.70.0"
	MinWasmOptVersion     = "v110"
	DefaultContractSubdir = "contracts"

	// ConfigVersion is written on every save and drives internal/migrations
	ConfigVersion = "v0.7.0"

	DefaultStoreCodeChunkSize = 2
	DefaultGasAdjustment      = 1.3
	DefaultDerivationPath     = "m/44'/118'/0'/0/0"
	DefaultMemo               = "wasm_deploy"
	KeyringServiceName        = "wasm-deploy"

	MaxLogFileSize   = 4
	MaxNumOfLogFiles = 5
	RetainOldFiles   = 0 // retain all old log files

	RequestTimeout    = 3 * time.Minute
	APIRequestTimeout = 30 * time.Second

	ChainRegistryURL = "https://raw.githubusercontent.com/cosmos/chain-registry/master"

	// viper keys and env bindings for cli.json
	DefaultConfigFileName = "cli"
	DefaultConfigFileType = "json"
	EnvPrefix             = "WASM_DEPLOY"
	ConfigWorkspaceKey    = "workspace"
	ConfigChunkSizeKey    = "store-code-chunk-size"
	ConfigNonInteractive  = "non-interactive"
	ConfigToolchainKey    = "rust-toolchain"
	ConfigTargetDirKey    = "target-dir"
	ConfigArtifactsDirKey = "artifacts-dir"
	ConfigStateFileKey    = "state-file"

	DefaultTemplateURL = "https://github.com/cosmwasm/cw-template"
)
