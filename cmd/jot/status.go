package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/aretw0/introspection"
	"github.com/spf13/cobra"

	"github.com/aretw0/jot/pkg/adapters/fs"
	"github.com/aretw0/jot/pkg/adapters/memory"
	"github.com/aretw0/jot/pkg/adapters/sqlite"
	"github.com/aretw0/jot/pkg/core"
)

var statusDiagram bool

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Mostra o estado do store e do slot de armazenamento do cofre",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		store, _, err := openStore()
		if err != nil {
			fatal("Erro ao abrir o cofre", err)
		}
		defer store.Close()

		storeState := store.State().(core.StoreState)
		var slotState any
		if intro, ok := store.Slot().(introspection.Introspectable); ok {
			slotState = intro.State()
		}

		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(map[string]any{"store": storeState, "slot": slotState}); err != nil {
			fatal("Erro ao gerar o estado", err)
		}

		if statusDiagram {
			config := introspection.DefaultDiagramConfig()
			config.SecondaryID = "vault"
			config.SecondaryLabel = "Vault Topology"
			fmt.Println()
			fmt.Println(introspection.TreeDiagram(buildStatusTree(storeState, slotState), config))
		}
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
	statusCmd.Flags().BoolVar(&statusDiagram, "diagram", true, "Também imprime um diagrama Mermaid")
}

type statusNode struct {
	Name     string
	Status   string
	Metadata map[string]string
	Children []statusNode
}

// Status values must match classes in introspection.DefaultStyles().
func buildStatusTree(store core.StoreState, slot any) statusNode {
	storeStatus := "running"
	if !store.Initialized {
		storeStatus = "pending"
	}
	if store.MalformedDropped {
		storeStatus = "failed"
	}

	storeNode := statusNode{
		Name:   "Store",
		Status: storeStatus,
		Metadata: map[string]string{
			"type":        "process",
			"notes":       fmt.Sprintf("%d", store.Notes),
			"subscribers": fmt.Sprintf("%d", store.Subscribers),
		},
	}

	slotNode := statusNode{
		Name:     "Slot",
		Status:   "running",
		Metadata: map[string]string{"type": store.SlotType},
	}
	switch st := slot.(type) {
	case fs.SlotState:
		slotNode.Metadata["path"] = st.Path
		slotNode.Metadata["writes"] = fmt.Sprintf("%d", st.Writes)
		watcherStatus := "suspended"
		if st.WatcherActive {
			watcherStatus = "running"
		}
		slotNode.Children = []statusNode{{
			Name:     "Watcher",
			Status:   watcherStatus,
			Metadata: map[string]string{"type": "goroutine"},
		}}
	case sqlite.SlotState:
		slotNode.Metadata["path"] = st.Path
		slotNode.Metadata["row"] = st.Name
		if !st.Open {
			slotNode.Status = "stopped"
		}
	case memory.SlotState:
		slotNode.Metadata["writes"] = fmt.Sprintf("%d", st.Writes)
	}

	storeNode.Children = []statusNode{slotNode}
	return statusNode{
		Name:     "Vault",
		Status:   "running",
		Metadata: map[string]string{"type": "container"},
		Children: []statusNode{storeNode},
	}
}
