package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/jot"
	"github.com/aretw0/jot/internal/config"
	"github.com/aretw0/jot/pkg/adapters/fs"
)

var (
	verbose   bool
	vaultPath string
	adapter   string
	language  string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "jot",
	Short: "Notas rápidas, digitadas ou ditadas",
	Long: `jot guarda notas curtas num cofre local.
As notas podem ser digitadas ou ditadas, ficam em ordem da mais recente e podem ser buscadas pelo conteúdo.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}

		opts := &slog.HandlerOptions{
			Level: level,
		}
		logger := slog.New(slog.NewTextHandler(os.Stderr, opts))
		slog.SetDefault(logger)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Ativa logs detalhados")
	rootCmd.PersistentFlags().StringVar(&vaultPath, "vault", "", "Diretório do cofre (padrão: o cofre mais próximo acima do diretório atual)")
	rootCmd.PersistentFlags().StringVar(&adapter, "adapter", "", "Adaptador de armazenamento: fs ou sqlite (padrão: config, depois fs)")
	rootCmd.PersistentFlags().StringVar(&language, "lang", "", "Idioma do ditado (padrão: config, depois pt-BR)")
}

// resolveRoot returns the vault directory: --vault when given, otherwise the
// nearest vault above the working directory.
func resolveRoot() (string, error) {
	if vaultPath != "" {
		return vaultPath, nil
	}
	wd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("não foi possível obter o diretório atual: %w", err)
	}
	root, err := jot.FindVaultRoot(wd)
	if err != nil {
		return "", fmt.Errorf("não é um cofre jot (execute 'jot init'): %w", err)
	}
	return root, nil
}

// settings merges the vault config file with command-line overrides.
func settings(root string) (config.Config, error) {
	cfg, err := config.Load(root, fs.DefaultSystemDir)
	if err != nil {
		return config.Config{}, err
	}
	return cfg.Merge(config.Config{Adapter: adapter, Language: language}), nil
}

// openStore opens the store of the current vault.
func openStore() (*jot.Store, config.Config, error) {
	root, err := resolveRoot()
	if err != nil {
		return nil, config.Config{}, err
	}
	cfg, err := settings(root)
	if err != nil {
		return nil, config.Config{}, err
	}

	opts := []jot.Option{
		jot.WithMustExist(true),
		jot.WithLogger(slog.Default()),
	}
	if cfg.Adapter != "" {
		opts = append(opts, jot.WithAdapter(cfg.Adapter))
	}
	if cfg.Slot != "" {
		opts = append(opts, jot.WithSlotName(cfg.Slot))
	}

	store, err := jot.New(root, opts...)
	if err != nil {
		return nil, config.Config{}, err
	}
	return store, cfg, nil
}
