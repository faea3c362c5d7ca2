// Package blueprint provides the Go model of a scaffgo blueprint: the option
// schema, the derivation table, and the artifact index.
//
// # Core Concepts
//
// The model is built around a few key structures:
//
//   - Option: a single user-configurable field, with a type, default, choice
//     list, validator expression and visibility rule.
//
//   - Derived: a value computed from the resolved answer set. Derived values
//     are never settable by the user and are recomputed on every run.
//
//   - Artifact: a candidate output file or directory, carrying the inclusion
//     predicate that decides whether it appears in a given generation.
//
//   - Group: a declared exactly-one-of-N constraint over artifacts, used for
//     selections like "WSGI or ASGI entrypoint" where zero or two members
//     would produce a broken project.
//
// Why a separate model package?
//
// The loader decodes raw HCL into schema structs and translates them here,
// so that the resolver, planner and renderer operate on one predictable
// structure and never see parser-level types beyond the retained predicate
// expressions. Structural errors (duplicate keys, dangling group references,
// malformed artifact bodies) are caught during translation, before any
// answer is evaluated.
package blueprint
