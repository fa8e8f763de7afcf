package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:   "delete [id]",
	Short: "Exclui uma nota do cofre",
	Long:  `Remove uma nota do cofre de forma permanente. Excluir um ID desconhecido não é um erro.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		id := args[0]

		store, _, err := openStore()
		if err != nil {
			fatal("Erro ao abrir o cofre", err)
		}
		defer store.Close()

		_, existed := store.Get(id)
		if err := store.Delete(context.Background(), id); err != nil {
			fatal("Erro ao excluir a nota", err)
		}

		if !existed {
			fmt.Printf("Nenhuma nota com id %s\n", id)
			return
		}
		fmt.Printf("Nota excluída: %s\n", id)
	},
}

func init() {
	rootCmd.AddCommand(deleteCmd)
}
