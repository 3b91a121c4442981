package service

import (
	"crypto/rand"
	"fmt"
	"strings"
	"time"
)

const trackingPrefix = "PKG"

// GenerateTrackingID returns a human-readable shipment code of the form
// PKG-20240521-9F3A2C: a fixed prefix, the current date and 24 bits of
// randomness in hex. Collision-resistant in practice but not guaranteed
// globally unique; it is a tracking label, not a primary key. Safe for
// concurrent use.
func GenerateTrackingID() string {
	var suffix [3]byte
	// rand.Read on the crypto source never fails on supported platforms.
	_, _ = rand.Read(suffix[:])

	return fmt.Sprintf("%s-%s-%s",
		trackingPrefix,
		time.Now().UTC().Format("20060102"),
		strings.ToUpper(fmt.Sprintf("%x", suffix)),
	)
}
