package tui

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"listing_portal/internal/app"
	"listing_portal/internal/domain"
)

type stubClient struct {
	recs      []domain.PropertyRecord
	err       error
	listCalls atomic.Int32
}

func (s *stubClient) ListProperties(context.Context) ([]domain.PropertyRecord, error) {
	s.listCalls.Add(1)
	return s.recs, s.err
}

func (s *stubClient) GetProperty(_ context.Context, id domain.PropertyID) (domain.PropertyRecord, error) {
	if s.err != nil {
		return domain.PropertyRecord{}, s.err
	}
	for _, r := range s.recs {
		if r.ID == id {
			return r, nil
		}
	}
	return domain.PropertyRecord{}, &domain.HTTPError{Status: 404}
}

func twoListings() []domain.PropertyRecord {
	return []domain.PropertyRecord{
		{
			ID: "1", Description: "Corner house", Address: "1 Main St", City: "Austin", State: "TX", Country: "USA",
			Bedrooms: 3, Bathrooms: 2, Area: 1500,
			Images: []domain.ImageRef{{URL: "http://img/1a.jpg"}, {URL: "http://img/1b.jpg"}, {URL: "http://img/1c.jpg"}},
		},
		{ID: "2", Description: "Loft", Address: "2 Oak Ave", City: "Dallas", State: "TX", Country: "USA"},
	}
}

func newTestModel(c *stubClient, opts ...app.Option) Model {
	return New(context.Background(), Config{
		Client: c,
		Loader: app.NewCollectionLoader(c, opts...),
		Summary: func(domain.PropertyRecord) domain.ListingSummary {
			return domain.ListingSummary{Price: 1234.5, ForSale: true}
		},
		Options: opts,
	})
}

// drive runs cmd to completion, feeding every resulting message back into
// the model. Spinner ticks are dropped so the loop terminates.
func drive(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	if cmd == nil {
		return m
	}
	switch msg := cmd().(type) {
	case nil, tea.QuitMsg, spinner.TickMsg:
		return m
	case tea.BatchMsg:
		for _, c := range msg {
			m = drive(t, m, c)
		}
		return m
	default:
		next, c := m.Update(msg)
		return drive(t, next.(Model), c)
	}
}

func press(t *testing.T, m Model, k tea.KeyMsg) Model {
	t.Helper()
	next, cmd := m.Update(k)
	return drive(t, next.(Model), cmd)
}

func runes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

func started(t *testing.T, c *stubClient) Model {
	m := newTestModel(c)
	return drive(t, m, m.Init())
}

func TestModel_LoadingThenCards(t *testing.T) {
	c := &stubClient{recs: twoListings()}
	m := newTestModel(c)

	if !strings.Contains(m.View(), "Loading...") {
		t.Fatalf("expected loading indicator, got:\n%s", m.View())
	}

	m = drive(t, m, m.Init())
	out := m.View()
	for _, want := range []string{"1 Main St", "2 Oak Ave", "Austin, TX, USA", "No images available", "Property ID: 2", "Area: 1500 sq ft"} {
		if !strings.Contains(out, want) {
			t.Errorf("view missing %q:\n%s", want, out)
		}
	}
	if got := c.listCalls.Load(); got != 1 {
		t.Errorf("expected one list call, got %d", got)
	}
}

func TestModel_ErrorMessage(t *testing.T) {
	c := &stubClient{err: &domain.HTTPError{Status: 500}}
	m := started(t, c)
	if !strings.Contains(m.View(), "Error: Failed to load properties") {
		t.Fatalf("expected error line, got:\n%s", m.View())
	}
}

func TestModel_CursorClamps(t *testing.T) {
	m := started(t, &stubClient{recs: twoListings()})

	m = press(t, m, tea.KeyMsg{Type: tea.KeyUp})
	if m.cursor != 0 {
		t.Errorf("cursor moved above first card: %d", m.cursor)
	}
	m = press(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m = press(t, m, tea.KeyMsg{Type: tea.KeyDown})
	if m.cursor != 1 {
		t.Errorf("cursor moved past last card: %d", m.cursor)
	}
}

func TestModel_CardGallery(t *testing.T) {
	m := started(t, &stubClient{recs: twoListings()})

	m = press(t, m, runes("g"))
	if !m.cardGallery.Open || m.cardGallery.Index != 0 {
		t.Fatalf("expected gallery at index 0, got %+v", m.cardGallery)
	}
	if !strings.Contains(m.View(), "1 / 3") {
		t.Errorf("expected counter 1 / 3:\n%s", m.View())
	}

	m = press(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	if !strings.Contains(m.View(), "3 / 3") {
		t.Errorf("prev from first image should wrap to last:\n%s", m.View())
	}
	m = press(t, m, tea.KeyMsg{Type: tea.KeyRight})
	if m.cardGallery.Index != 0 {
		t.Errorf("next from last image should wrap to 0, got %d", m.cardGallery.Index)
	}

	m = press(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.cardGallery.Open {
		t.Error("esc should close the gallery")
	}

	// second card has no images
	m = press(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m = press(t, m, runes("g"))
	if m.cardGallery.Open {
		t.Error("gallery opened for a card without images")
	}
}

func TestModel_DetailOverlay(t *testing.T) {
	m := started(t, &stubClient{recs: twoListings()})

	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.detail == nil {
		t.Fatal("enter should open the detail overlay")
	}
	out := m.View()
	for _, want := range []string{"Corner house", "Price: $1234.50", "Status: For Sale", "Available From: Invalid Date", "[3] http://img/1c.jpg"} {
		if !strings.Contains(out, want) {
			t.Errorf("detail view missing %q:\n%s", want, out)
		}
	}

	m = press(t, m, runes("2"))
	if !strings.Contains(m.View(), "2 / 3 images") {
		t.Errorf("thumbnail 2 should open the gallery at index 1:\n%s", m.View())
	}

	p := m.detail
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.detail == nil || p.Gallery().Open {
		t.Fatal("first esc closes only the gallery")
	}
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.detail != nil || !p.Closed() {
		t.Fatal("second esc closes the overlay")
	}
}

func TestModel_DetailOverlayClosesGalleryWithIt(t *testing.T) {
	m := started(t, &stubClient{recs: twoListings()})
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m = press(t, m, runes("g"))
	p := m.detail
	if !p.Gallery().Open {
		t.Fatal("gallery should be open")
	}
	p.Close()
	if p.Gallery().Open {
		t.Error("closing the overlay must close its gallery")
	}
}

func TestModel_DetailError(t *testing.T) {
	c := &stubClient{recs: twoListings()}
	m := started(t, c)
	c.err = errors.New("boom")
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if !strings.Contains(m.View(), "Error: Failed to load property details") {
		t.Fatalf("expected detail error:\n%s", m.View())
	}
	m = press(t, m, runes("g"))
	if m.detail.Gallery().Open {
		t.Error("gallery must not open on error")
	}
}

func TestModel_EditModal(t *testing.T) {
	c := &stubClient{recs: twoListings()}
	m := started(t, c)

	m = press(t, m, runes("e"))
	modal := m.loader.Modal()
	if !modal.Open || modal.SelectedID != "1" {
		t.Fatalf("expected modal for 1, got %+v", modal)
	}
	if !strings.Contains(m.View(), "Edit property 1") {
		t.Errorf("modal not rendered:\n%s", m.View())
	}

	m = press(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.loader.Modal().Open {
		t.Fatal("esc should close the modal")
	}
	if got := c.listCalls.Load(); got != 1 {
		t.Errorf("plain close must not refetch, list calls = %d", got)
	}

	m = press(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m = press(t, m, runes("e"))
	if id := m.loader.Modal().SelectedID; id != "2" {
		t.Fatalf("expected modal for 2, got %q", id)
	}
	m = press(t, m, runes("s"))
	if m.loader.Modal().Open {
		t.Error("save should close the modal")
	}
	if got := c.listCalls.Load(); got != 2 {
		t.Errorf("save should reload the list, list calls = %d", got)
	}
}

func TestModel_DeleteWithoutHook(t *testing.T) {
	m := started(t, &stubClient{recs: twoListings()})
	m = press(t, m, runes("x"))
	if !strings.Contains(m.View(), "Delete is not available for property 1") {
		t.Fatalf("expected unsupported delete message:\n%s", m.View())
	}
}

func TestModel_DeleteWithHook(t *testing.T) {
	c := &stubClient{recs: twoListings()}
	var deleted domain.PropertyID
	hook := app.WithDeleteHook(func(_ context.Context, id domain.PropertyID) error {
		deleted = id
		c.recs = c.recs[1:]
		return nil
	})
	m := newTestModel(c, hook)
	m = drive(t, m, m.Init())

	m = press(t, m, runes("x"))
	if deleted != "1" {
		t.Fatalf("hook not called for 1, got %q", deleted)
	}
	if strings.Contains(m.View(), "1 Main St") {
		t.Errorf("deleted listing still shown:\n%s", m.View())
	}
}

func TestModel_Quit(t *testing.T) {
	m := started(t, &stubClient{recs: twoListings()})
	_, cmd := m.Update(runes("q"))
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q should quit")
	}
}
