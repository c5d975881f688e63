// Package relay implements both ends of the store-and-forward relay.
//
// The server side authenticates connections, tracks presence, and routes
// events: an event for an online principal goes straight to its live
// handle, anything else is queued and flushed, in order, the moment the
// principal reconnects. Events between principals who are not mutual
// friends are dropped silently; the sender gets no feedback.
//
// The client side dials the server, authenticates with a token, and
// exposes a send method plus an ordered stream of inbound events for the
// session pipeline.
//
// Frames are newline-delimited JSON. The first frame of a connection must
// be the auth request; the server answers with an auth reply before any
// event flows. The relay never sees plaintext or private keys; it only
// moves exported public keys and carrier images.
package relay
