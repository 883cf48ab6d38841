package services

import (
	"regexp"

	"reviewz/internal/models"
	"reviewz/internal/storage"
)

var (
	emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	linkPattern  = regexp.MustCompile(`^https?://[^\s]+$`)
)

// UniqueAttribute selects which user attribute a uniqueness check compares.
type UniqueAttribute int

const (
	UniqueEmail UniqueAttribute = iota
	UniqueUsername
)

// attributeUnique reports whether no existing user carries value in the
// selected attribute. The scan covers all users regardless of role.
func attributeUnique(users storage.Store[models.User], value string, attribute UniqueAttribute) (bool, error) {
	all, err := users.Scan()
	if err != nil {
		return false, err
	}
	for _, user := range all {
		switch attribute {
		case UniqueEmail:
			if user.Email == value {
				return false, nil
			}
		case UniqueUsername:
			if user.Username == value {
				return false, nil
			}
		}
	}
	return true, nil
}
