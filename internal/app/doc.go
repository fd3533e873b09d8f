// Package app wires application dependencies for the server.
//
// It loads Config from the environment and builds the concrete registry,
// directory, stores and services into the Wire struct for commands to use.
// Nothing here persists: by design the whole graph is reconstructed empty on
// every process start.
package app
