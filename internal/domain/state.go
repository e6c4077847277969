package domain

import "fmt"

type FetchStatus int

const (
	StatusLoading FetchStatus = iota
	StatusError
	StatusReady
)

func (s FetchStatus) String() string {
	switch s {
	case StatusLoading:
		return "loading"
	case StatusError:
		return "error"
	case StatusReady:
		return "ready"
	}
	return fmt.Sprintf("FetchStatus(%d)", int(s))
}

// FetchState is exactly one of Loading, Error(message) or Ready(data).
// The zero value is Loading.
type FetchState[T any] struct {
	status FetchStatus
	msg    string
	data   T
}

func Loading[T any]() FetchState[T] { return FetchState[T]{status: StatusLoading} }

func Failed[T any](msg string) FetchState[T] {
	return FetchState[T]{status: StatusError, msg: msg}
}

func Ready[T any](v T) FetchState[T] { return FetchState[T]{status: StatusReady, data: v} }

func (s FetchState[T]) Status() FetchStatus { return s.status }
func (s FetchState[T]) IsLoading() bool     { return s.status == StatusLoading }
func (s FetchState[T]) IsReady() bool       { return s.status == StatusReady }

// Err is the user-facing message; empty unless the state is Error.
func (s FetchState[T]) Err() string { return s.msg }

// Data returns the payload and whether the state is Ready.
func (s FetchState[T]) Data() (T, bool) {
	if s.status != StatusReady {
		var zero T
		return zero, false
	}
	return s.data, true
}

// GalleryState is a circular cursor over an image sequence of fixed length.
// When Open, 0 <= Index < Count.
type GalleryState struct {
	Open  bool
	Index int
	Count int
}

func NewGallery(count int) GalleryState { return GalleryState{Count: count} }

func (g GalleryState) OpenAt(i int) (GalleryState, error) {
	if g.Count <= 0 {
		return g, ErrNoImages
	}
	if i < 0 || i >= g.Count {
		return g, fmt.Errorf("%w: %d not in [0,%d)", ErrImageIndex, i, g.Count)
	}
	return GalleryState{Open: true, Index: i, Count: g.Count}, nil
}

func (g GalleryState) Next() GalleryState {
	if !g.Open {
		return g
	}
	g.Index = (g.Index + 1) % g.Count
	return g
}

func (g GalleryState) Prev() GalleryState {
	if !g.Open {
		return g
	}
	g.Index = (g.Index - 1 + g.Count) % g.Count
	return g
}

func (g GalleryState) Close() GalleryState {
	return GalleryState{Count: g.Count}
}

// Counter renders the "3 / 7" position label; empty when closed.
func (g GalleryState) Counter() string {
	if !g.Open {
		return ""
	}
	return fmt.Sprintf("%d / %d", g.Index+1, g.Count)
}

// ModalState tracks the edit modal. Open implies SelectedID is set; both
// fields change together.
type ModalState struct {
	Open       bool
	SelectedID PropertyID
}

func (ModalState) OpenFor(id PropertyID) (ModalState, error) {
	if id == "" {
		return ModalState{}, ErrEmptyID
	}
	return ModalState{Open: true, SelectedID: id}, nil
}

func (ModalState) Close() ModalState { return ModalState{} }
