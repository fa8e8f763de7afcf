// Package jot is the composition root for jot, a small local notes engine.
//
// It wires the note store (pkg/core) to a storage adapter (pkg/adapters/*)
// using the same hexagonal layout the rest of the module follows.
//
// Notes are short pieces of text, typed or dictated, kept newest first. The
// whole collection is rewritten to a single storage slot after every change,
// so a vault is just one JSON document (or one SQLite row).
//
// Usage:
//
//	store, err := jot.New("./vault", jot.WithLogger(logger))
//	if err != nil {
//		return err
//	}
//	note, err := store.Create(ctx, "buy bread")
//	matches := store.Search("bread")
//
// The note entry flow (onboarding, typing, dictating, submitting) lives in
// pkg/entry and is independent of the store: it hands finished content to a
// callback.
package jot
