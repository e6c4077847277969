package app

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"listing_portal/internal/adapters/observability"
	"listing_portal/internal/domain"
)

const detailErrMsg = "Failed to load property details"

// DetailPresenter drives the listing overlay: the detail fetch for the
// current listing id and the gallery over that listing's images.
//
// Show may be called again with a new id; only the response for the most
// recent id is ever committed. Close cancels whatever is in flight.
type DetailPresenter struct {
	client domain.PropertyClient
	log    zerolog.Logger
	locale string

	mu      sync.Mutex
	summary domain.ListingSummary
	id      domain.PropertyID
	started bool
	state   domain.FetchState[domain.PropertyRecord]
	gallery domain.GalleryState
	gen     uint64
	cancel  context.CancelFunc
	closed  bool
}

func NewDetailPresenter(c domain.PropertyClient, s domain.ListingSummary, opts ...Option) *DetailPresenter {
	o := buildOptions("detail", opts)
	return &DetailPresenter{
		client:  c,
		log:     o.log,
		locale:  o.locale,
		summary: s,
		state:   domain.Loading[domain.PropertyRecord](),
	}
}

// Show fetches the listing id unless it is already the current one.
func (p *DetailPresenter) Show(ctx context.Context, id domain.PropertyID) domain.FetchState[domain.PropertyRecord] {
	p.mu.Lock()
	if p.closed || (p.started && id == p.id) {
		s := p.state
		p.mu.Unlock()
		return s
	}
	p.started = true
	p.id = id
	p.gen++
	gen := p.gen
	if p.cancel != nil {
		p.cancel()
	}
	fctx, cancel := context.WithCancel(ctx)
	p.cancel = cancel
	p.state = domain.Loading[domain.PropertyRecord]()
	p.gallery = domain.NewGallery(0)
	p.mu.Unlock()
	defer cancel()

	done := observability.StartFetch("detail")
	rec, err := p.client.GetProperty(fctx, id)

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed || gen != p.gen {
		done("stale")
		p.log.Debug().Str("id", id.String()).Str("current", p.id.String()).Msg("dropping superseded detail result")
		return p.state
	}
	p.cancel = nil
	if err != nil {
		done("error")
		p.log.Error().Err(err).Str("id", id.String()).Str("kind", observability.LabelErr(err)).Msg("get property failed")
		p.state = domain.Failed[domain.PropertyRecord](detailErrMsg)
		return p.state
	}
	done("ready")
	p.state = domain.Ready(rec)
	p.gallery = domain.NewGallery(rec.ImageCount())
	return p.state
}

func (p *DetailPresenter) ListingID() domain.PropertyID {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.id
}

func (p *DetailPresenter) State() domain.FetchState[domain.PropertyRecord] {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// SetSummary replaces the caller-supplied price/status/date without refetching.
func (p *DetailPresenter) SetSummary(s domain.ListingSummary) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.summary = s
}

/********** gallery **********/

// OpenGallery opens the gallery at image i (0 for the representative image).
// It fails with domain.ErrNoImages unless a listing with images is loaded.
func (p *DetailPresenter) OpenGallery(i int) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return domain.ErrNoImages
	}
	g, err := p.gallery.OpenAt(i)
	if err != nil {
		return err
	}
	p.gallery = g
	return nil
}

func (p *DetailPresenter) NextImage() domain.GalleryState {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.gallery = p.gallery.Next()
	return p.gallery
}

func (p *DetailPresenter) PrevImage() domain.GalleryState {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.gallery = p.gallery.Prev()
	return p.gallery
}

func (p *DetailPresenter) CloseGallery() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.gallery = p.gallery.Close()
}

func (p *DetailPresenter) Gallery() domain.GalleryState {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.gallery
}

// Close dismisses the overlay. The gallery closes with it and any
// in-flight fetch is canceled.
func (p *DetailPresenter) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closed = true
	p.gallery = p.gallery.Close()
	if p.cancel != nil {
		p.cancel()
		p.cancel = nil
	}
}

func (p *DetailPresenter) Closed() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.closed
}

// View formats the loaded listing. ok is false while loading, on error, or
// after Close; callers render the loading/error text instead.
func (p *DetailPresenter) View() (DetailView, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	rec, ok := p.state.Data()
	if !ok || p.closed {
		return DetailView{}, false
	}
	return buildDetailView(rec, p.summary, p.gallery, p.locale), true
}
