// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"fmt"
	"io"
	"os"
	"os/user"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/luxfi/wasm-deploy/cmd/chaincmd"
	"github.com/luxfi/wasm-deploy/cmd/configcmd"
	"github.com/luxfi/wasm-deploy/cmd/contractcmd"
	"github.com/luxfi/wasm-deploy/cmd/deploycmd"
	"github.com/luxfi/wasm-deploy/cmd/envcmd"
	"github.com/luxfi/wasm-deploy/cmd/keycmd"
	"github.com/luxfi/wasm-deploy/cmd/newcmd"
	"github.com/luxfi/wasm-deploy/internal/migrations"
	"github.com/luxfi/wasm-deploy/pkg/application"
	"github.com/luxfi/wasm-deploy/pkg/config"
	"github.com/luxfi/wasm-deploy/pkg/constants"
	"github.com/luxfi/wasm-deploy/pkg/contract"
	"github.com/luxfi/wasm-deploy/pkg/prompts"
	"github.com/luxfi/wasm-deploy/pkg/ux"
)

var (
	app *application.WasmDeploy

	// displayLevel is the console log level, adjusted by the verbosity flags
	displayLevel = zap.NewAtomicLevelAt(zap.WarnLevel)

	logLevel       string
	Version        = "0.7.0"
	cfgFile        string
	workspaceDir   string
	nonInteractive bool
)

func NewRootCmd() *cobra.Command {
	// rootCmd represents the base command when called without any subcommands
	rootCmd := &cobra.Command{
		Use: constants.AppName,
		Long: `wasm-deploy builds, stores, instantiates and migrates CosmWasm contracts.

Contracts are listed in the workspace deployment.yaml. Code ids and addresses are
recorded per environment in .wasm-deploy/config.json, so every stage can be rerun on
its own after a failure.

QUICK START:

  wasm-deploy new my-contracts && cd my-contracts
  wasm-deploy config init
  wasm-deploy deploy

For detailed command help, use: wasm-deploy <command> --help`,
		PersistentPreRunE: createApp,
		Version:           Version,
		SilenceUsage:      true,
		SilenceErrors:     true,
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "cli preferences file (default is $HOME/.wasm-deploy/cli.json)")
	rootCmd.PersistentFlags().StringVarP(&workspaceDir, "workspace", "w", "", "workspace root (default is the current directory)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "console log level: debug, info, warn or error")
	rootCmd.PersistentFlags().BoolVar(&nonInteractive, constants.ConfigNonInteractive, false,
		"Disable prompts; fail if required values are missing (also enabled when stdin is not a TTY or CI=1)")
	rootCmd.PersistentFlags().Bool("verbose", false, "Show verbose output (info level logs)")
	rootCmd.PersistentFlags().Bool("debug", false, "Show debug output (debug level logs)")
	rootCmd.PersistentFlags().Bool("quiet", false, "Show only errors (quiet mode)")

	// deployment stages and contract calls live at the top level
	for _, c := range deploycmd.NewCmds(app) {
		rootCmd.AddCommand(c)
	}
	rootCmd.AddCommand(newcmd.NewCmd(app))
	rootCmd.AddCommand(configcmd.NewCmd(app, rootCmd))
	rootCmd.AddCommand(chaincmd.NewCmd(app))
	rootCmd.AddCommand(keycmd.NewCmd(app))
	rootCmd.AddCommand(envcmd.NewCmd(app))
	rootCmd.AddCommand(contractcmd.NewCmd(app))

	return rootCmd
}

func createApp(cmd *cobra.Command, _ []string) error {
	baseDir, err := setupEnv()
	if err != nil {
		return err
	}
	initConfig()
	cf := config.New()

	ws, err := workspaceSettings(cf)
	if err != nil {
		return err
	}
	log, err := setupLogging(filepath.Join(ws.StateDir(), constants.LogDir))
	if err != nil {
		return err
	}
	setDisplayLevel(cmd)
	if used := viper.ConfigFileUsed(); used != "" {
		log.Debug("using config file", zap.String("config-file", used))
	}

	// Interactive by default on TTY, non-interactive when:
	// WASM_DEPLOY_NON_INTERACTIVE=1, CI=1, --non-interactive flag, or stdin is piped
	prompts.SetNonInteractive(nonInteractive || cf.NonInteractive())
	app.Setup(baseDir, log, cf, prompts.NewPrompterForMode(), ws)

	return migrations.RunMigrations(app)
}

func setupEnv() (string, error) {
	usr, err := user.Current()
	if err != nil {
		// no logger here yet
		fmt.Printf("unable to get system user %s\n", err)
		return "", err
	}
	baseDir := filepath.Join(usr.HomeDir, constants.BaseDirName)
	if err := os.MkdirAll(baseDir, 0o750); err != nil {
		fmt.Printf("failed creating the basedir %s: %s\n", baseDir, err)
		return "", err
	}
	return baseDir, nil
}

// workspaceSettings resolves the workspace from --workspace, then the preferences,
// then the current directory.
func workspaceSettings(cf *config.Config) (application.WorkspaceSettings, error) {
	root := workspaceDir
	if root == "" {
		root = cf.Workspace()
	}
	if root == "" {
		wd, err := os.Getwd()
		if err != nil {
			return application.WorkspaceSettings{}, err
		}
		root = wd
	}
	ws, err := application.NewWorkspaceSettings(root)
	if err != nil {
		return ws, err
	}
	if v := cf.StateFile(); v != "" {
		ws = ws.WithConfigPath(v)
	}
	if v := cf.TargetDir(); v != "" {
		ws = ws.WithTargetDir(v)
	}
	if v := cf.ArtifactsDir(); v != "" {
		ws = ws.WithArtifactsDir(v)
	}
	return ws, nil
}

// setupLogging writes every level as JSON to a rotated file and the display level to
// stderr.
func setupLogging(logDir string) (*zap.Logger, error) {
	if err := os.MkdirAll(logDir, constants.DefaultPerms755); err != nil {
		return nil, fmt.Errorf("failed creating log directory: %w", err)
	}
	rotated := &lumberjack.Logger{
		Filename:   filepath.Join(logDir, constants.LogFileName),
		MaxSize:    constants.MaxLogFileSize,
		MaxBackups: constants.MaxNumOfLogFiles,
		MaxAge:     constants.RetainOldFiles,
	}
	fileEncoder := zap.NewProductionEncoderConfig()
	fileEncoder.EncodeTime = zapcore.ISO8601TimeEncoder
	consoleEncoder := zap.NewDevelopmentEncoderConfig()
	consoleEncoder.EncodeLevel = zapcore.CapitalColorLevelEncoder

	core := zapcore.NewTee(
		zapcore.NewCore(zapcore.NewJSONEncoder(fileEncoder), zapcore.AddSync(rotated), zap.DebugLevel),
		zapcore.NewCore(zapcore.NewConsoleEncoder(consoleEncoder), zapcore.Lock(os.Stderr), displayLevel),
	)
	log := zap.New(core, zap.AddCaller()).Named(constants.AppName)
	// create the user facing logger as a global var
	ux.NewUserLog(log, os.Stdout)
	return log, nil
}

func setDisplayLevel(cmd *cobra.Command) {
	switch {
	case cmd.Flags().Changed("debug"):
		displayLevel.SetLevel(zap.DebugLevel)
	case cmd.Flags().Changed("verbose"):
		displayLevel.SetLevel(zap.InfoLevel)
	case cmd.Flags().Changed("quiet"):
		displayLevel.SetLevel(zap.ErrorLevel)
	case logLevel != "":
		if level, err := zapcore.ParseLevel(logLevel); err == nil {
			displayLevel.SetLevel(level)
		}
	}
}

// initConfig reads in config file and ENV variables if set.
// Priority: flags > env vars > config file > defaults
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)
		viper.AddConfigPath(filepath.Join(home, constants.BaseDirName))
		viper.SetConfigType(constants.DefaultConfigFileType)
		viper.SetConfigName(constants.DefaultConfigFileName) // cli.json
	}
	config.Bind()
	// No config file is normal, most users don't have one
	_ = viper.ReadInConfig()
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	ExecuteWith(nil)
}

// ExecuteWith runs the CLI over contracts defined in Go instead of the workspace
// deployment.yaml. A nil list falls back to the manifest.
func ExecuteWith(contracts []contract.Contract) {
	app = application.New()
	app.Contracts = contracts
	rootCmd := NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		reportError(os.Stderr, app.Log, err)
		os.Exit(1)
	}
}

// reportError prints err for the user and records it in the log file, when logging
// got set up before the failure.
func reportError(w io.Writer, log *zap.Logger, err error) {
	ux.New(log, w).PrintError("%s", err)
}
