// Package settings implements the declarative settings engine.
//
// A Schema holds, per namespace, an ordered list of setting Definitions.
// Register seeds the persisted Store from the schema, Assemble turns the
// schema plus the current values into a Form for the host to render, and
// Submit writes a decoded form submission back to the store, reporting one
// aggregated Result to a Notifier once every write has settled.
package settings
