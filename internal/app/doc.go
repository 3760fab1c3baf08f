// Package app wires configuration, the library store, the download service
// and the state tracker together and implements the CLI command entry points.
package app
