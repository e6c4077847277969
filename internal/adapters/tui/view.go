package tui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"listing_portal/internal/app"
	"listing_portal/internal/domain"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	var body string
	switch {
	case m.loader.Modal().Open:
		body = m.modalView()
	case m.detail != nil:
		body = m.detailView()
	case m.cardGallery.Open:
		body = m.cardGalleryView()
	default:
		body = m.listView()
	}

	var sb strings.Builder
	sb.WriteString(m.styles.Header.Render("My Properties"))
	sb.WriteString("\n")
	sb.WriteString(body)
	if m.status != "" {
		sb.WriteString("\n")
		if m.statusErr {
			sb.WriteString(m.styles.Error.Render(m.status))
		} else {
			sb.WriteString(m.styles.Muted.Render(m.status))
		}
	}
	sb.WriteString("\n")
	sb.WriteString(m.styles.Help.Render(m.helpText()))
	return sb.String()
}

func (m Model) helpText() string {
	k := m.keys
	switch {
	case m.loader.Modal().Open:
		return helpLine(k.Save, k.Back)
	case m.detail != nil && m.detail.Gallery().Open:
		return helpLine(k.Prev, k.Next, k.Back)
	case m.detail != nil:
		return helpLine(k.Gallery, k.Thumb, k.Back, k.Quit)
	case m.cardGallery.Open:
		return helpLine(k.Prev, k.Next, k.Back)
	}
	return helpLine(k.Up, k.Down, k.Open, k.Gallery, k.Edit, k.Delete, k.Reload, k.Quit)
}

func (m Model) loadingLine() string {
	return m.spinner.View() + " Loading..."
}

func (m Model) errorLine(msg string) string {
	return m.styles.Error.Render("Error: " + msg)
}

func (m Model) listView() string {
	st := m.loader.State()
	switch st.Status() {
	case domain.StatusLoading:
		return m.loadingLine()
	case domain.StatusError:
		return m.errorLine(st.Err())
	}
	cards := m.loader.Cards()
	if len(cards) == 0 {
		return m.styles.Muted.Render("No properties found.")
	}
	out := make([]string, 0, len(cards))
	for i, c := range cards {
		style := m.styles.Card
		if i == m.cursor {
			style = m.styles.Selected
		}
		out = append(out, style.Render(m.cardBody(c)))
	}
	return lipgloss.JoinVertical(lipgloss.Left, out...)
}

func (m Model) cardBody(c app.CardView) string {
	lines := []string{
		m.styles.Title.Render(c.Address),
		c.Location,
	}
	if c.HasImages() {
		lines = append(lines, "Images: "+strconv.Itoa(len(c.ImageURLs))+"  "+c.ImageURLs[0])
	} else {
		lines = append(lines, m.styles.Muted.Render(c.ImagesPlaceholder()))
	}
	lines = append(lines, strings.Join(c.Details, "  "))
	lines = append(lines, m.styles.Muted.Render(c.IDLabel))
	return strings.Join(lines, "\n")
}

func (m Model) cardGalleryView() string {
	c, ok := m.selected()
	if !ok || m.cardGallery.Index >= len(c.ImageURLs) {
		return ""
	}
	return m.styles.Overlay.Render(strings.Join([]string{
		m.styles.Title.Render(c.Address),
		c.ImageURLs[m.cardGallery.Index],
		m.styles.Counter.Render(m.cardGallery.Counter()),
	}, "\n"))
}

func (m Model) detailView() string {
	st := m.detail.State()
	switch st.Status() {
	case domain.StatusLoading:
		return m.styles.Overlay.Render(m.loadingLine())
	case domain.StatusError:
		return m.styles.Overlay.Render(m.errorLine(st.Err()))
	}
	v, ok := m.detail.View()
	if !ok {
		return ""
	}
	if v.Gallery.Open {
		return m.styles.Overlay.Render(strings.Join([]string{
			v.Gallery.ImageURL,
			m.styles.Muted.Render(v.Gallery.Alt),
			m.styles.Counter.Render(v.Gallery.Counter),
		}, "\n"))
	}

	var sb strings.Builder
	sb.WriteString(m.styles.Title.Render(v.Title))
	sb.WriteString("\n")
	if v.HasImages() {
		sb.WriteString(v.RepresentativeImage)
		for i, u := range v.ImageURLs {
			sb.WriteString("\n  [" + strconv.Itoa(i+1) + "] " + u)
		}
	} else {
		sb.WriteString(m.styles.Muted.Render("No images available"))
	}
	for _, s := range v.Sections {
		sb.WriteString("\n\n")
		sb.WriteString(m.styles.Title.Render(s.Title))
		for _, l := range s.Lines {
			sb.WriteString("\n" + l)
		}
	}
	return m.styles.Overlay.Render(sb.String())
}

func (m Model) modalView() string {
	id := m.loader.Modal().SelectedID
	body := m.styles.Title.Render("Edit property "+id.String()) + "\n" +
		m.styles.Muted.Render("Save to refresh the list, esc to discard.")
	return m.styles.Modal.Render(body)
}
