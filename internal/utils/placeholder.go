package utils

import (
	"fmt"

	"github.com/segmentio/ksuid"
)

// PlaceholderEmail synthesizes a unique email address for members who
// register with a phone number only. The users table requires email to be
// unique when present, so the local part carries a fresh KSUID.
func PlaceholderEmail() string {
	return fmt.Sprintf("user_%s@placeholder.com", ksuid.New().String())
}
