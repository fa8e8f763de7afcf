package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/aretw0/jot"
)

// bench measures how the whole-collection rewrite scales: every Create encodes and
// writes all notes, so create cost grows with the vault.
func main() {
	count := flag.Int("count", 1000, "Number of notes to create")
	adapter := flag.String("adapter", "fs", "Storage adapter: fs or sqlite")
	keep := flag.Bool("keep", false, "Keep the benchmark vault after running")
	flag.Parse()

	benchDir, err := os.MkdirTemp("", "jot_bench_")
	if err != nil {
		panic(err)
	}
	defer func() {
		if !*keep {
			os.RemoveAll(benchDir)
		} else {
			fmt.Printf("Keeping bench dir: %s\n", benchDir)
		}
	}()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelWarn}))
	ctx := context.Background()

	store, err := jot.New(benchDir, jot.WithAdapter(*adapter), jot.WithLogger(logger))
	if err != nil {
		panic(err)
	}

	fmt.Printf("Creating %d notes in %s (%s)...\n", *count, benchDir, *adapter)
	start := time.Now()
	for i := 0; i < *count; i++ {
		if _, err := store.Create(ctx, fmt.Sprintf("Benchmark note %d: lembrar de comprar pão", i)); err != nil {
			panic(err)
		}
	}
	elapsed := time.Since(start)
	fmt.Printf("Create: %v total, %v/note\n", elapsed, elapsed/time.Duration(max(*count, 1)))
	if err := store.Close(); err != nil {
		panic(err)
	}

	start = time.Now()
	reopened, err := jot.New(benchDir, jot.WithAdapter(*adapter), jot.WithLogger(logger))
	if err != nil {
		panic(err)
	}
	defer reopened.Close()
	fmt.Printf("Hydrate: %v (Items: %d)\n", time.Since(start), reopened.Len())

	start = time.Now()
	hits := reopened.Search("PÃO 99")
	fmt.Printf("Search: %v (Hits: %d)\n", time.Since(start), len(hits))
}
