package types

import (
	"time"

	"github.com/fkcurrie/keyled/internal/colors"
)

// Message is a piece of text to show on the keys
type Message struct {
	Text string
	// Color overrides the palette's on color when set
	Color    *colors.Triplet
	Received time.Time
}
