// Package tui renders the property collection, the detail overlay and the
// edit modal in the terminal. All state lives in the app controllers; the
// model only routes keys to them and redraws when a fetch completes.
package tui

import (
	"context"
	"errors"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"listing_portal/internal/app"
	"listing_portal/internal/domain"
)

// SummaryFunc supplies price, status and availability for a listing's
// detail overlay. Those values are not part of the property record.
type SummaryFunc func(domain.PropertyRecord) domain.ListingSummary

type Config struct {
	Client  domain.PropertyClient
	Loader  *app.CollectionLoader
	Summary SummaryFunc
	Options []app.Option
}

type (
	collectionMsg struct{}
	detailMsg     struct{ p *app.DetailPresenter }
	deleteMsg     struct {
		id  domain.PropertyID
		err error
	}
)

type Model struct {
	ctx     context.Context
	client  domain.PropertyClient
	loader  *app.CollectionLoader
	summary SummaryFunc
	opts    []app.Option

	keys    keyMap
	styles  styles
	spinner spinner.Model

	cursor      int
	cardGallery domain.GalleryState // gallery opened from a card in the list
	detail      *app.DetailPresenter
	status      string
	statusErr   bool
	quitting    bool
	width       int
	height      int
}

var _ tea.Model = Model{}

func New(ctx context.Context, cfg Config) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = defaultStyles().Counter
	if cfg.Summary == nil {
		cfg.Summary = func(domain.PropertyRecord) domain.ListingSummary { return domain.ListingSummary{} }
	}
	return Model{
		ctx:     ctx,
		client:  cfg.Client,
		loader:  cfg.Loader,
		summary: cfg.Summary,
		opts:    cfg.Options,
		keys:    defaultKeys(),
		styles:  defaultStyles(),
		spinner: sp,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.loadCmd(false))
}

func (m Model) loadCmd(reload bool) tea.Cmd {
	ctx, l := m.ctx, m.loader
	return func() tea.Msg {
		if reload {
			l.Reload(ctx)
		} else {
			l.Load(ctx)
		}
		return collectionMsg{}
	}
}

func (m Model) editSavedCmd() tea.Cmd {
	ctx, l := m.ctx, m.loader
	return func() tea.Msg {
		l.EditSaved(ctx)
		return collectionMsg{}
	}
}

func (m Model) showCmd(p *app.DetailPresenter, id domain.PropertyID) tea.Cmd {
	ctx := m.ctx
	return func() tea.Msg {
		p.Show(ctx, id)
		return detailMsg{p: p}
	}
}

func (m Model) deleteCmd(id domain.PropertyID) tea.Cmd {
	ctx, l := m.ctx, m.loader
	return func() tea.Msg {
		return deleteMsg{id: id, err: l.RequestDelete(ctx, id)}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil

	case spinner.TickMsg:
		if !m.busy() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case collectionMsg:
		if n := len(m.loader.Cards()); m.cursor >= n {
			m.cursor = max(n-1, 0)
		}
		return m, nil

	case detailMsg:
		// a presenter that was closed or replaced has nothing to show
		return m, nil

	case deleteMsg:
		switch {
		case errors.Is(msg.err, domain.ErrDeleteUnsupported):
			m.setStatus("Delete is not available for property "+msg.id.String(), true)
		case msg.err != nil:
			m.setStatus("Failed to delete property "+msg.id.String(), true)
		default:
			m.setStatus("Deleted property "+msg.id.String(), false)
			return m, m.loadCmd(true)
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *Model) setStatus(s string, isErr bool) {
	m.status, m.statusErr = s, isErr
}

func (m Model) busy() bool {
	if m.loader.State().IsLoading() {
		return true
	}
	return m.detail != nil && m.detail.State().IsLoading()
}

func (m Model) selected() (app.CardView, bool) {
	cards := m.loader.Cards()
	if m.cursor < 0 || m.cursor >= len(cards) {
		return app.CardView{}, false
	}
	return cards[m.cursor], true
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		m.quitting = true
		m.loader.Unmount()
		if m.detail != nil {
			m.detail.Close()
		}
		return m, tea.Quit
	}
	m.status = ""

	switch {
	case m.loader.Modal().Open:
		return m.handleModalKey(msg)
	case m.detail != nil:
		return m.handleDetailKey(msg)
	case m.cardGallery.Open:
		return m.handleCardGalleryKey(msg)
	}
	return m.handleListKey(msg)
}

func (m Model) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.loader.Cards())-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Reload):
		return m, tea.Batch(m.spinner.Tick, m.loadCmd(true))
	case key.Matches(msg, m.keys.Gallery):
		c, ok := m.selected()
		if !ok {
			return m, nil
		}
		g, err := c.Gallery().OpenAt(0)
		if err != nil {
			m.setStatus(c.ImagesPlaceholder(), true)
			return m, nil
		}
		m.cardGallery = g
	case key.Matches(msg, m.keys.Open):
		c, ok := m.selected()
		if !ok {
			return m, nil
		}
		rec := m.recordFor(c.ID)
		m.detail = app.NewDetailPresenter(m.client, m.summary(rec), m.opts...)
		return m, tea.Batch(m.spinner.Tick, m.showCmd(m.detail, c.ID))
	case key.Matches(msg, m.keys.Edit):
		if c, ok := m.selected(); ok {
			if err := m.loader.OpenEdit(c.ID); err != nil {
				m.setStatus(err.Error(), true)
			}
		}
	case key.Matches(msg, m.keys.Delete):
		if c, ok := m.selected(); ok {
			return m, m.deleteCmd(c.ID)
		}
	}
	return m, nil
}

func (m Model) recordFor(id domain.PropertyID) domain.PropertyRecord {
	recs, _ := m.loader.State().Data()
	for _, r := range recs {
		if r.ID == id {
			return r
		}
	}
	return domain.PropertyRecord{ID: id}
}

func (m Model) handleCardGalleryKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Next):
		m.cardGallery = m.cardGallery.Next()
	case key.Matches(msg, m.keys.Prev):
		m.cardGallery = m.cardGallery.Prev()
	case key.Matches(msg, m.keys.Back):
		m.cardGallery = m.cardGallery.Close()
	}
	return m, nil
}

func (m Model) handleDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	p := m.detail
	switch {
	case key.Matches(msg, m.keys.Back):
		if p.Gallery().Open {
			p.CloseGallery()
			return m, nil
		}
		p.Close()
		m.detail = nil
	case key.Matches(msg, m.keys.Gallery):
		if err := p.OpenGallery(0); err != nil {
			m.setStatus(noImagesStatus, true)
		}
	case key.Matches(msg, m.keys.Thumb):
		i := int(msg.Runes[0] - '1')
		if err := p.OpenGallery(i); err != nil {
			m.setStatus(noImagesStatus, true)
		}
	case key.Matches(msg, m.keys.Next):
		p.NextImage()
	case key.Matches(msg, m.keys.Prev):
		p.PrevImage()
	}
	return m, nil
}

const noImagesStatus = "No image to show"

func (m Model) handleModalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		m.loader.CloseEdit()
	case key.Matches(msg, m.keys.Save):
		return m, tea.Batch(m.spinner.Tick, m.editSavedCmd())
	}
	return m, nil
}
