// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package sefaria

import (
	"errors"
	"fmt"
)

// Kind classifies a fetch failure.
type Kind string

const (
	// KindTransport means the server could not be reached or the body
	// could not be read.
	KindTransport Kind = "transport"

	// KindTimeout means the request exceeded the client timeout or the
	// context deadline.
	KindTimeout Kind = "timeout"

	// KindRemoteStatus means the server answered with a non-success
	// status, or with an error document in place of text.
	KindRemoteStatus Kind = "remote_status"

	// KindParse means the body was not JSON of the expected shape.
	KindParse Kind = "parse"

	// KindMetadataUnavailable means the chapter count of a book could not
	// be determined.
	KindMetadataUnavailable Kind = "metadata_unavailable"
)

// Error is the failure returned by every Client operation.
type Error struct {
	Kind Kind
	Book string
	// Chapter is zero for book-level (metadata) requests.
	Chapter int
	// Status is the HTTP status code for KindRemoteStatus, otherwise zero.
	Status int
	Err    error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.ref(), e.describe())
}

func (e *Error) Unwrap() error { return e.Err }

func (e *Error) ref() string {
	if e.Chapter > 0 {
		return fmt.Sprintf("%s %d", e.Book, e.Chapter)
	}
	return e.Book
}

func (e *Error) describe() string {
	var what string
	switch e.Kind {
	case KindTransport:
		what = "network error"
	case KindTimeout:
		what = "request timed out"
	case KindRemoteStatus:
		what = "server error"
	case KindParse:
		what = "unexpected response"
	case KindMetadataUnavailable:
		what = "could not determine chapter count"
	default:
		what = string(e.Kind)
	}
	if e.Err == nil {
		return what
	}
	return fmt.Sprintf("%s: %v", what, e.Err)
}

// KindOf returns the Kind of the first *Error in err's chain, or "" when
// there is none.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}
