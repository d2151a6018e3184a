// Package view renders the pieces of the wizard screen: the step tabs, form
// fields, activity lists, the total breakdown and the status line.
//
// Renderers take plain state structs and a *styles.Styles, never the Model,
// so they can be tested without a running program.
package view
