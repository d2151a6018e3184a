// Package msg defines the message types of the wizard's Bubbletea event loop and
// the command factories that produce them.
//
// Remote work never runs inside Update. A view-model prepares a request on the
// Update goroutine, a command from this package runs it, and the resulting
// message carries the response back to be applied.
package msg
