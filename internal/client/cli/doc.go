// Package cli provides the interactive folio terminal client.
//
// It wires configuration, the persisted session, the API client and the
// screen services, then runs a REPL. Public commands browse the portfolio
// and the blog; admin commands pass through the route gate and edit the
// content. The REPL is started via App.Run(ctx), which blocks until the
// user exits.
package cli
