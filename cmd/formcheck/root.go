package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/goliatone/go-formcheck/internal/config"
	"github.com/goliatone/go-formcheck/internal/logger"
	"github.com/goliatone/go-formcheck/pkg/i18n"
	"github.com/goliatone/go-formcheck/pkg/inventory"
	"github.com/goliatone/go-formcheck/pkg/orchestrator"
	"github.com/goliatone/go-formcheck/pkg/prompt"
	"github.com/goliatone/go-formcheck/pkg/ruleset"
)

// app carries what every subcommand needs once flags are parsed.
type app struct {
	cfg  *config.Config
	log  *zap.SugaredLogger
	orch *orchestrator.Orchestrator
	// driver overrides the terminal prompt driver used by fill.
	driver prompt.Driver
}

type rootFlags struct {
	configFile string
	envFile    string
	rulesDir   string
	locale     string
	logLevel   string
}

func newRootCmd() *cobra.Command {
	return newRootCmdFor(&app{})
}

func newRootCmdFor(a *app) *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:           "formcheck",
		Short:         "Validate inventory form snapshots",
		Long:          `formcheck validates purchase order, GRN, issue, return and requisition snapshots against declarative rule sets.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(flags)
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if a.log != nil {
				_ = a.log.Sync()
			}
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&flags.configFile, "config", "", "YAML configuration file")
	pf.StringVar(&flags.envFile, "env-file", ".env", "optional .env file")
	pf.StringVar(&flags.rulesDir, "rules", "", "directory of rule documents layered over the built-in forms")
	pf.StringVar(&flags.locale, "locale", "", "message locale (defaults to i18n.locale)")
	pf.StringVar(&flags.logLevel, "log-level", "", "log level override")

	cmd.AddCommand(
		newFormsCmd(a),
		newValidateCmd(a),
		newFillCmd(a),
		newDeriveCmd(a),
		newServeCmd(a),
	)
	return cmd
}

func (a *app) init(flags *rootFlags) error {
	cfg, err := config.Load(config.Options{File: flags.configFile, DotEnv: flags.envFile})
	if err != nil {
		return err
	}
	if flags.rulesDir != "" {
		cfg.Rules.Dir = flags.rulesDir
	}
	if flags.locale != "" {
		cfg.I18n.Locale = flags.locale
	}
	if flags.logLevel != "" {
		cfg.Log.Level = flags.logLevel
	}

	log, err := logger.New(logger.Options{Level: cfg.Log.Level, Format: cfg.Log.Format, File: cfg.Log.File})
	if err != nil {
		return err
	}

	store, err := buildStore(cfg.Rules)
	if err != nil {
		return err
	}
	translator, err := buildTranslator(cfg.I18n)
	if err != nil {
		return err
	}

	a.cfg = cfg
	a.log = log
	a.orch = orchestrator.New(
		orchestrator.WithStore(store),
		orchestrator.WithTranslator(translator),
		orchestrator.WithDefaultLocale(cfg.I18n.Locale),
		orchestrator.WithLogger(log),
		orchestrator.WithTransformers(orchestrator.TrimSpace()),
	)
	log.Debugw("formcheck ready", "forms", store.Forms(), "locale", cfg.I18n.Locale)
	return nil
}

func buildStore(cfg config.RulesConfig) (*ruleset.Store, error) {
	var base *ruleset.Store
	if cfg.UseBuiltIn() {
		base = inventory.Store()
	}
	dir := strings.TrimSpace(cfg.Dir)
	if dir == "" {
		if base == nil {
			return nil, fmt.Errorf("formcheck: built-in forms disabled and no rules directory configured")
		}
		return base, nil
	}
	extra, err := ruleset.LoadFS(os.DirFS(dir))
	if err != nil {
		return nil, err
	}
	return ruleset.Overlay(base, extra), nil
}

func buildTranslator(cfg config.I18nConfig) (i18n.Translator, error) {
	dir := strings.TrimSpace(cfg.Catalog)
	if dir == "" {
		return inventory.Catalog(), nil
	}
	extra, err := i18n.LoadCatalogFS(cfg.Locale, os.DirFS(dir))
	if err != nil {
		return nil, err
	}
	return i18n.Chain(extra, inventory.Catalog()), nil
}
