// Package commands defines the cribbage CLI, an offline companion to the
// Nakama module that shares its engine.
//
// Commands
//
//   - score      Score four cards against a starter and print the breakdown
//   - simulate   Play a full game between two computer players in memory
//
// # Implementation
//
// The root command loads the game config once before any subcommand runs.
// simulate drives the same app.Service the RPCs use, backed by the in-memory
// game store, so every move passes the server's validation.
package commands
