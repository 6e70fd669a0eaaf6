package hemesh

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput is wrapped by every error Build returns for malformed soup.
	ErrInvalidInput = errors.New("invalid polygon soup")
	// ErrBoundaryVertex is returned when a one-ring walk around a vertex
	// reaches a half-edge with no twin.
	ErrBoundaryVertex = errors.New("vertex touches mesh boundary, one-ring undefined")
	// ErrRingNotClosed is returned when a one-ring walk does not return to
	// its seed within the step budget.
	ErrRingNotClosed = errors.New("one-ring walk did not close")
	// ErrIsolatedVertex is returned when walking the ring of a vertex no face uses.
	ErrIsolatedVertex = errors.New("vertex is not referenced by any face")
	// ErrDegenerateFace is returned for faces whose first three vertices
	// do not span a plane.
	ErrDegenerateFace = errors.New("degenerate face, normal undefined")
)

// InputError describes a malformed polygon soup entity.
type InputError struct {
	// Face is the offending face index, or -1 if the error is not about a face.
	Face int
	// Vertex is the offending position index, or -1.
	Vertex int
	Reason string
}

func (e *InputError) Error() string {
	switch {
	case e.Face >= 0:
		return fmt.Sprintf("face %d: %s", e.Face, e.Reason)
	case e.Vertex >= 0:
		return fmt.Sprintf("position %d: %s", e.Vertex, e.Reason)
	}
	return e.Reason
}

func (e *InputError) Unwrap() error { return ErrInvalidInput }

// VertexError reports a failure of a per-vertex operation.
type VertexError struct {
	Vertex VertexID
	Err    error
}

func (e *VertexError) Error() string {
	return fmt.Sprintf("vertex %d: %s", e.Vertex, e.Err)
}

func (e *VertexError) Unwrap() error { return e.Err }

// FaceError reports a failure of a per-face operation.
type FaceError struct {
	Face FaceID
	Err  error
}

func (e *FaceError) Error() string {
	return fmt.Sprintf("face %d: %s", e.Face, e.Err)
}

func (e *FaceError) Unwrap() error { return e.Err }
