package domain_test

import (
	"errors"
	"math/rand"
	"testing"

	"listing_portal/internal/domain"
)

func TestFetchState_ExactlyOneTag(t *testing.T) {
	l := domain.Loading[[]int]()
	if !l.IsLoading() || l.IsReady() || l.Err() != "" {
		t.Fatalf("loading state leaked other tags: %+v", l)
	}
	if _, ok := l.Data(); ok {
		t.Fatalf("loading state must not expose data")
	}

	e := domain.Failed[[]int]("boom")
	if e.Status() != domain.StatusError || e.Err() != "boom" {
		t.Fatalf("unexpected error state: %+v", e)
	}
	if _, ok := e.Data(); ok {
		t.Fatalf("error state must not expose data")
	}

	r := domain.Ready([]int{1, 2})
	got, ok := r.Data()
	if !ok || len(got) != 2 || r.Err() != "" {
		t.Fatalf("unexpected ready state: %+v", r)
	}

	var zero domain.FetchState[string]
	if !zero.IsLoading() {
		t.Fatalf("zero value should be loading, got %s", zero.Status())
	}
}

func TestGallery_Circularity(t *testing.T) {
	g, err := domain.NewGallery(3).OpenAt(2)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if g = g.Next(); g.Index != 0 {
		t.Fatalf("next from last should wrap to 0, got %d", g.Index)
	}
	if g = g.Prev(); g.Index != 2 {
		t.Fatalf("prev from 0 should wrap to N-1, got %d", g.Index)
	}
	if g.Counter() != "3 / 3" {
		t.Fatalf("counter: %q", g.Counter())
	}
}

func TestGallery_IndexAlwaysInRange(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for n := 1; n <= 9; n++ {
		g, err := domain.NewGallery(n).OpenAt(0)
		if err != nil {
			t.Fatalf("open n=%d: %v", n, err)
		}
		for step := 0; step < 500; step++ {
			if rng.Intn(2) == 0 {
				g = g.Next()
			} else {
				g = g.Prev()
			}
			if g.Index < 0 || g.Index >= n {
				t.Fatalf("n=%d step=%d: index %d out of range", n, step, g.Index)
			}
		}
	}
}

func TestGallery_EmptyNeverOpens(t *testing.T) {
	g, err := domain.NewGallery(0).OpenAt(0)
	if !errors.Is(err, domain.ErrNoImages) {
		t.Fatalf("expected ErrNoImages, got %v", err)
	}
	if g.Open {
		t.Fatalf("gallery opened with no images")
	}
	if g.Next().Open || g.Prev().Open {
		t.Fatalf("navigation must not open a closed gallery")
	}
}

func TestGallery_OutOfRangeOpen(t *testing.T) {
	if _, err := domain.NewGallery(2).OpenAt(2); !errors.Is(err, domain.ErrImageIndex) {
		t.Fatalf("expected ErrImageIndex, got %v", err)
	}
	if _, err := domain.NewGallery(2).OpenAt(-1); !errors.Is(err, domain.ErrImageIndex) {
		t.Fatalf("expected ErrImageIndex, got %v", err)
	}
}

func TestGallery_CloseKeepsCount(t *testing.T) {
	g, _ := domain.NewGallery(4).OpenAt(3)
	g = g.Close()
	if g.Open || g.Index != 0 || g.Count != 4 || g.Counter() != "" {
		t.Fatalf("unexpected closed gallery: %+v", g)
	}
}

func TestModal_OpenRequiresID(t *testing.T) {
	var m domain.ModalState
	if _, err := m.OpenFor(""); !errors.Is(err, domain.ErrEmptyID) {
		t.Fatalf("expected ErrEmptyID, got %v", err)
	}
	m, err := m.OpenFor("x")
	if err != nil || !m.Open || m.SelectedID != "x" {
		t.Fatalf("unexpected modal: %+v %v", m, err)
	}
	m = m.Close()
	if m.Open || m.SelectedID != "" {
		t.Fatalf("close must clear both fields: %+v", m)
	}
}
