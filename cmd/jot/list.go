package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/aretw0/jot/pkg/core"
)

const previewWidth = 60

var (
	listJSON   bool
	listSearch string
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Lista as notas, da mais recente para a mais antiga",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		store, _, err := openStore()
		if err != nil {
			fatal("Erro ao abrir o cofre", err)
		}
		defer store.Close()

		notes := store.Search(listSearch)

		if listJSON {
			if err := renderJSON(os.Stdout, notes); err != nil {
				fatal("Erro ao gerar JSON", err)
			}
			return
		}
		if err := renderTable(os.Stdout, notes, time.Local); err != nil {
			fatal("Erro ao listar as notas", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Saída em formato JSON")
	listCmd.Flags().StringVarP(&listSearch, "search", "s", "", "Apenas notas que contêm este texto (sem diferenciar maiúsculas)")
}

func renderJSON(w io.Writer, notes []core.Note) error {
	if notes == nil {
		notes = []core.Note{}
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(notes)
}

// renderTable prints one line per note: id, creation time and a one-line preview.
func renderTable(w io.Writer, notes []core.Note, loc *time.Location) error {
	if len(notes) == 0 {
		_, err := fmt.Fprintln(w, "Nenhuma nota encontrada.")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, n := range notes {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", n.ID, n.CreatedAt.In(loc).Format("2006-01-02 15:04"), preview(n.Content))
	}
	return tw.Flush()
}

func preview(content string) string {
	line := strings.Join(strings.Fields(content), " ")
	runes := []rune(line)
	if len(runes) > previewWidth {
		return string(runes[:previewWidth-1]) + "…"
	}
	return line
}
