// Package graph reproduces the node/transition contract of the host's
// decision-graph engine: parameter nodes carrying mount-option names,
// prompts and display flags, ordered transitions matched against the
// supplied option stream, and a strictly sequential walker.
//
// Graphs are owned collections of nodes addressed by stable string IDs,
// built once at module initialization, so several table variants can
// coexist without link-time address tricks. The per-traversal context
// is a type parameter, keeping handlers free of blind downcasts.
package graph
