// Package cli provides the interactive journal client.
//
// It wires configuration, local storage, the API client, the auth service
// and a journal session behind a line-oriented REPL. The client works
// without an account on local storage; signing in switches every read and
// write to the server, and an unreachable server falls back to the
// credentials cached on this device.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
