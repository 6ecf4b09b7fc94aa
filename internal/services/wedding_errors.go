package services

import "errors"

var (
	// ErrWeddingRepositoryMissing indicates the wedding repository dependency is absent.
	ErrWeddingRepositoryMissing = errors.New("wedding service: repository is not configured")
	// ErrWeddingNotFound indicates no wedding exists for the given slug.
	ErrWeddingNotFound = errors.New("wedding service: wedding not found")
	// ErrWeddingForbidden signals the caller does not own the wedding.
	ErrWeddingForbidden = errors.New("wedding service: forbidden")
	// ErrSlugUnavailable indicates the requested slug is already reserved.
	ErrSlugUnavailable = errors.New("wedding service: slug unavailable")
	// ErrSlugInvalid indicates the requested slug does not match the permitted alphabet.
	ErrSlugInvalid = errors.New("wedding service: invalid slug")
	// ErrCoupleNamesRequired indicates neither partner name was provided.
	ErrCoupleNamesRequired = errors.New("wedding service: at least one partner name is required")

	// ErrUnknownSection indicates the section id is not part of the registry.
	ErrUnknownSection = errors.New("customizer service: unknown section")
	// ErrNothingToSave signals a save produced no persistable changes.
	ErrNothingToSave = errors.New("customizer service: nothing to save")
	// ErrInvalidVideoURL indicates the video URL is not a recognised YouTube link.
	ErrInvalidVideoURL = errors.New("customizer service: invalid video url")

	// ErrRSVPClosed indicates the attendance deadline has passed.
	ErrRSVPClosed = errors.New("guest service: rsvp deadline has passed")
	// ErrWishesDisabled indicates the couple turned the guestbook off.
	ErrWishesDisabled = errors.New("guest service: wishes are disabled")
	// ErrSubmissionInvalid indicates a guest submission failed validation.
	ErrSubmissionInvalid = errors.New("guest service: invalid submission")
)
