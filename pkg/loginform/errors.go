package loginform

import (
	"errors"
	"fmt"
)

// ErrLinkNotFound is returned by FollowLink when no link matches the label.
var ErrLinkNotFound = errors.New("loginform: link not found")

// StatusError is returned when a page answers with an error status.
type StatusError struct {
	URL    string
	Status int
	Body   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("loginform: %s returned %d: %s", e.URL, e.Status, e.Body)
}
