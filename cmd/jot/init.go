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

// initCmd represents the init command
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Inicializa um cofre jot",
	Long:  `Inicializa um novo cofre jot no diretório atual (ou em --vault). Cria o diretório .jot, o arquivo de configuração e um slot de notas vazio.`,
	Run: func(cmd *cobra.Command, args []string) {
		root := vaultPath
		if root == "" {
			cwd, err := os.Getwd()
			if err != nil {
				fatal("Não foi possível obter o diretório atual", err)
			}
			root = cwd
		}

		cfg, err := config.Load(root, fs.DefaultSystemDir)
		if err != nil {
			fatal("Erro ao ler a configuração", err)
		}
		cfg = cfg.Merge(config.Config{Adapter: adapter, Language: language})
		if cfg.Adapter == "" {
			cfg.Adapter = "fs"
		}

		slot, err := jot.Init(root, jot.WithAdapter(cfg.Adapter), jot.WithLogger(slog.Default()))
		if err != nil {
			fatal("Erro ao inicializar o cofre", err)
		}
		if closer, ok := slot.(interface{ Close() error }); ok {
			defer closer.Close()
		}

		if err := config.Save(root, fs.DefaultSystemDir, cfg); err != nil {
			fatal("Erro ao gravar a configuração", err)
		}

		fmt.Println("Cofre jot vazio inicializado em", root)
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
