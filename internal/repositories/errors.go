package repositories

import "errors"

var (
	// ErrSlugTaken indicates the requested wedding slug is already reserved.
	ErrSlugTaken = errors.New("wedding repository: slug already taken")
	// ErrRSVPClosed indicates the wedding no longer accepts attendance replies.
	ErrRSVPClosed = errors.New("rsvp repository: submissions closed")
)
