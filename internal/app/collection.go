package app

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"listing_portal/internal/adapters/observability"
	"listing_portal/internal/domain"
)

const collectionErrMsg = "Failed to load properties"

// CollectionLoader owns the "my properties" screen state: the tri-state
// result of listing the user's properties and the edit modal. It is safe
// for concurrent use; fetch results are committed only if no newer fetch
// or unmount happened in between.
type CollectionLoader struct {
	client   domain.PropertyClient
	log      zerolog.Logger
	onDelete DeleteHook

	mu        sync.Mutex
	state     domain.FetchState[[]domain.PropertyRecord]
	modal     domain.ModalState
	mounted   bool
	unmounted bool
	gen       uint64
	cancel    context.CancelFunc
}

func NewCollectionLoader(c domain.PropertyClient, opts ...Option) *CollectionLoader {
	o := buildOptions("collection", opts)
	return &CollectionLoader{
		client:   c,
		log:      o.log,
		onDelete: o.onDelete,
		state:    domain.Loading[[]domain.PropertyRecord](),
	}
}

// Load issues the list request once per mount. Later calls return the
// current state without touching the network; use Reload to refetch.
func (l *CollectionLoader) Load(ctx context.Context) domain.FetchState[[]domain.PropertyRecord] {
	l.mu.Lock()
	if l.mounted || l.unmounted {
		s := l.state
		l.mu.Unlock()
		return s
	}
	l.mounted = true
	l.mu.Unlock()
	return l.fetch(ctx)
}

// Reload re-enters Loading and fetches again, superseding any in-flight load.
func (l *CollectionLoader) Reload(ctx context.Context) domain.FetchState[[]domain.PropertyRecord] {
	l.mu.Lock()
	if l.unmounted {
		s := l.state
		l.mu.Unlock()
		return s
	}
	l.mounted = true
	l.mu.Unlock()
	return l.fetch(ctx)
}

func (l *CollectionLoader) fetch(ctx context.Context) domain.FetchState[[]domain.PropertyRecord] {
	l.mu.Lock()
	l.gen++
	gen := l.gen
	if l.cancel != nil {
		l.cancel()
	}
	fctx, cancel := context.WithCancel(ctx)
	l.cancel = cancel
	l.state = domain.Loading[[]domain.PropertyRecord]()
	l.mu.Unlock()
	defer cancel()

	done := observability.StartFetch("collection")
	recs, err := l.client.ListProperties(fctx)

	l.mu.Lock()
	defer l.mu.Unlock()
	if l.unmounted || gen != l.gen {
		done("stale")
		l.log.Debug().Uint64("gen", gen).Msg("dropping superseded list result")
		return l.state
	}
	l.cancel = nil
	if err != nil {
		done("error")
		l.log.Error().Err(err).Str("kind", observability.LabelErr(err)).Msg("list properties failed")
		l.state = domain.Failed[[]domain.PropertyRecord](collectionErrMsg)
		return l.state
	}
	if recs == nil {
		recs = []domain.PropertyRecord{}
	}
	done("ready")
	l.log.Debug().Int("count", len(recs)).Msg("properties loaded")
	l.state = domain.Ready(recs)
	return l.state
}

func (l *CollectionLoader) State() domain.FetchState[[]domain.PropertyRecord] {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state
}

// Cards is the rendered list; nil unless the state is Ready.
func (l *CollectionLoader) Cards() []CardView {
	recs, ok := l.State().Data()
	if !ok {
		return nil
	}
	out := make([]CardView, 0, len(recs))
	for _, p := range recs {
		out = append(out, NewCardView(p))
	}
	return out
}

// Unmount cancels any in-flight fetch; nothing is committed afterwards.
func (l *CollectionLoader) Unmount() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.unmounted = true
	l.modal = l.modal.Close()
	if l.cancel != nil {
		l.cancel()
		l.cancel = nil
	}
}

/********** edit modal **********/

func (l *CollectionLoader) OpenEdit(id domain.PropertyID) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	m, err := l.modal.OpenFor(id)
	if err != nil {
		return err
	}
	l.modal = m
	return nil
}

func (l *CollectionLoader) CloseEdit() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.modal = l.modal.Close()
}

// EditSaved is the edit form's close-after-save callback: it closes the
// modal and refetches so the list reflects the change.
func (l *CollectionLoader) EditSaved(ctx context.Context) domain.FetchState[[]domain.PropertyRecord] {
	l.CloseEdit()
	return l.Reload(ctx)
}

func (l *CollectionLoader) Modal() domain.ModalState {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.modal
}

/********** delete **********/

// RequestDelete runs the configured delete hook and reloads on success.
func (l *CollectionLoader) RequestDelete(ctx context.Context, id domain.PropertyID) error {
	if id == "" {
		return domain.ErrEmptyID
	}
	if l.onDelete == nil {
		l.log.Info().Str("id", id.String()).Msg("delete requested but no delete hook is configured")
		return domain.ErrDeleteUnsupported
	}
	if err := l.onDelete(ctx, id); err != nil {
		l.log.Error().Err(err).Str("id", id.String()).Msg("delete failed")
		return err
	}
	l.Reload(ctx)
	return nil
}
