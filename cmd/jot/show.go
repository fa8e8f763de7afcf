package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	showJSON bool
)

var showCmd = &cobra.Command{
	Use:   "show [id]",
	Short: "Mostra uma nota",
	Long:  `Mostra uma nota pelo ID. Exibe o conteúdo bruto por padrão, ou um objeto JSON com --json.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		id := args[0]

		store, _, err := openStore()
		if err != nil {
			fatal("Erro ao abrir o cofre", err)
		}
		defer store.Close()

		note, ok := store.Get(id)
		if !ok {
			fmt.Fprintf(os.Stderr, "Erro ao ler a nota: nenhuma nota com id %s\n", id)
			os.Exit(1)
		}

		if showJSON {
			encoder := json.NewEncoder(os.Stdout)
			encoder.SetIndent("", "  ")
			if err := encoder.Encode(note); err != nil {
				fmt.Fprintf(os.Stderr, "Erro ao gerar JSON: %v\n", err)
				os.Exit(1)
			}
			return
		}

		fmt.Println(note.Content)
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
	showCmd.Flags().BoolVar(&showJSON, "json", false, "Saída em formato JSON")
}
