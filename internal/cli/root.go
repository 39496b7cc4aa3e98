// Package cli implements the mdlist command line.
package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/shodgson/mdlist/internal/config"
)

type ctxKey string

const appKey ctxKey = "app"

// app is the resolved configuration shared by subcommands.
type app struct {
	v   *viper.Viper
	cfg config.Config
	log *slog.Logger
}

// flagOverrides maps command flags onto config keys.
var flagOverrides = map[string]string{
	"indent-unit": "render.indent_unit",
	"key-attr":    "render.key_attr",
	"role-attr":   "render.role_attr",
	"addr":        "server.addr",
	"log-level":   "log.level",
}

// Execute builds the root command and runs it.
func Execute() error {
	return NewRootCmd().Execute()
}

// NewRootCmd constructs the Cobra root command and wires dependencies.
func NewRootCmd() *cobra.Command {
	var cfgPath string

	cmd := &cobra.Command{
		Use:           "mdlist",
		Short:         "mdlist renders markdown lists to HTML",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			v := viper.New()
			if cfgPath != "" {
				v.SetConfigFile(cfgPath)
			}
			if err := config.Load(cmd.Context(), v); err != nil {
				return err
			}
			applyConfigFlagOverrides(cmd, v, flagOverrides)
			if err := config.CheckConfigValidity(v); err != nil {
				return fmt.Errorf("invalid configuration: %w", err)
			}

			cfg := config.FromViper(v)
			a := &app{v: v, cfg: cfg, log: cfg.Log.NewLogger(cmd.ErrOrStderr())}
			a.log.Debug("configuration loaded", "file", v.ConfigFileUsed())
			cmd.SetContext(context.WithValue(cmd.Context(), appKey, a))
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&cfgPath, "config", "", "path to config file (yaml|toml|json)")
	cmd.PersistentFlags().String("log-level", "", "log level (debug|info|warn|error)")

	cmd.AddCommand(newRenderCmd())
	cmd.AddCommand(newServeCmd())
	cmd.AddCommand(newConfigCmd())

	cmd.Run = func(cmd *cobra.Command, args []string) { _ = cmd.Help() }

	return cmd
}

func getApp(cmd *cobra.Command) (*app, error) {
	a, ok := cmd.Context().Value(appKey).(*app)
	if !ok {
		return nil, fmt.Errorf("internal error: app not initialized")
	}
	return a, nil
}

func applyConfigFlagOverrides(cmd *cobra.Command, v *viper.Viper, overrides map[string]string) {
	for flagName, key := range overrides {
		flag := cmd.Flags().Lookup(flagName)
		if flag == nil || !flag.Changed {
			continue
		}
		setFromFlag(cmd, v, flagName, key)
	}
}

func setFromFlag(cmd *cobra.Command, v *viper.Viper, flagName, key string) {
	switch cmd.Flags().Lookup(flagName).Value.Type() {
	case "int":
		if val, err := cmd.Flags().GetInt(flagName); err == nil {
			v.Set(key, val)
		}
	default:
		if val, err := cmd.Flags().GetString(flagName); err == nil {
			v.Set(key, val)
		}
	}
}
