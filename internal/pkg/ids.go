package pkg

import "github.com/google/uuid"

// GenerateNewSessionID - generates a new unique session id, also used as the game id.
func GenerateNewSessionID() string {
	return uuid.NewString()
}

// IsValidSessionID reports whether id looks like one produced by GenerateNewSessionID.
func IsValidSessionID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
