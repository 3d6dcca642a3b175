package ports

// Identity is a verified player reference supplied by the transport.
type Identity struct {
	PlayerID string
	Display  string
}
