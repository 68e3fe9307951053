package catalog

import (
	gonanoid "github.com/matoous/go-nanoid/v2"
)

// IDLength is the length of every generated book id.
const IDLength = 16

// IDGenerator produces a new random book id.
type IDGenerator func() (string, error)

// NanoID generates url-safe ids of IDLength characters.
func NanoID() (string, error) {
	return gonanoid.New(IDLength)
}
