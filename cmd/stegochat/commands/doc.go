// Package commands implements the stegochat CLI.
//
// chat opens a live encrypted conversation through a relay; embed and
// extract expose the steganographic codec for inspection without any
// network or crypto involved.
package commands
