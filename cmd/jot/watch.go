package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/aretw0/lifecycle"
	"github.com/spf13/cobra"

	lcadapter "github.com/aretw0/jot/pkg/adapters/lifecycle"
	"github.com/aretw0/jot/pkg/core"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Mostra os eventos das notas à medida que acontecem, inclusive mudanças feitas por outros processos",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		store, _, err := openStore()
		if err != nil {
			fatal("Erro ao abrir o cofre", err)
		}
		defer store.Close()

		source := lcadapter.NewSource(store)
		if err := source.Start(ctx); err != nil {
			fatal("Erro ao iniciar a fonte de eventos", err)
		}

		lifecycle.Go(ctx, func(ctx context.Context) error {
			err := store.Follow(ctx)
			if errors.Is(err, core.ErrNotWatchable) {
				slog.Warn("adapter cannot report external changes, only local events are shown")
				return nil
			}
			if err != nil && !errors.Is(err, context.Canceled) {
				slog.Error("watch stopped", "error", err)
			}
			return nil
		})

		fmt.Printf("Observando %d notas (Ctrl+C para parar)\n", store.Len())
		for e := range source.Events() {
			fmt.Println(e.String())
			if ev, ok := e.(core.Event); ok && ev.Type == core.EventReload {
				fmt.Printf("  %d notas\n", store.Len())
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
}
