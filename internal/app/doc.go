// Package app wires application dependencies for the client CLI.
//
// It connects to the relay, builds the key exchange coordinator and the
// session pipeline, and runs the single-reader event loop that feeds
// inbound events through the pipeline in arrival order.
package app
