package app

// Config holds runtime wiring options for building the client.
type Config struct {
	RelayAddr string // relay host:port, e.g. 127.0.0.1:7465
	Token     string // connection credential issued out of band
}
