package core

import "github.com/google/uuid"

// NewIdentifier returns a random identifier used to tell scene objects apart in logs.
func NewIdentifier() string {
	return uuid.NewString()
}

// ParseIdentifier validates an identifier read back from a scene file or a log line.
func ParseIdentifier(id string) (string, error) {
	u, err := uuid.Parse(id)
	if err != nil {
		return "", err
	}
	return u.String(), nil
}
