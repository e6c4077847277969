package app_test

import (
	"context"
	"sync"
	"sync/atomic"

	"listing_portal/internal/domain"
)

// ---- fakes ----

type fakeClient struct {
	list    []domain.PropertyRecord
	listErr error
	byID    map[domain.PropertyID]domain.PropertyRecord
	getErr  error

	// gates block a call until closed (or the context ends); keyed by id,
	// "" gates ListProperties.
	mu    sync.Mutex
	gates map[domain.PropertyID]chan struct{}

	listCalls atomic.Int32
	getCalls  atomic.Int32
}

func (f *fakeClient) gate(id domain.PropertyID) chan struct{} {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.gates == nil {
		f.gates = map[domain.PropertyID]chan struct{}{}
	}
	ch, ok := f.gates[id]
	if !ok {
		ch = make(chan struct{})
		f.gates[id] = ch
	}
	return ch
}

func (f *fakeClient) hold(id domain.PropertyID) { f.gate(id) }

func (f *fakeClient) release(id domain.PropertyID) { close(f.gate(id)) }

func (f *fakeClient) wait(ctx context.Context, id domain.PropertyID) error {
	f.mu.Lock()
	ch, ok := f.gates[id]
	f.mu.Unlock()
	if !ok {
		return nil
	}
	select {
	case <-ch:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (f *fakeClient) ListProperties(ctx context.Context) ([]domain.PropertyRecord, error) {
	f.listCalls.Add(1)
	if err := f.wait(ctx, ""); err != nil {
		return nil, err
	}
	return f.list, f.listErr
}

func (f *fakeClient) GetProperty(ctx context.Context, id domain.PropertyID) (domain.PropertyRecord, error) {
	f.getCalls.Add(1)
	if err := f.wait(ctx, id); err != nil {
		return domain.PropertyRecord{}, err
	}
	if f.getErr != nil {
		return domain.PropertyRecord{}, f.getErr
	}
	p, ok := f.byID[id]
	if !ok {
		return domain.PropertyRecord{}, &domain.HTTPError{Status: 404}
	}
	return p, nil
}

func images(n int) []domain.ImageRef {
	out := make([]domain.ImageRef, n)
	for i := range out {
		out[i] = domain.ImageRef{URL: "http://img/" + string(rune('a'+i)) + ".jpg"}
	}
	return out
}

// stubbornClient holds GetProperty("A") until release regardless of context,
// then answers successfully.
type stubbornClient struct {
	release chan struct{}
	recs    map[domain.PropertyID]domain.PropertyRecord
	started atomic.Bool
}

func (s *stubbornClient) ListProperties(context.Context) ([]domain.PropertyRecord, error) {
	return nil, nil
}

func (s *stubbornClient) GetProperty(_ context.Context, id domain.PropertyID) (domain.PropertyRecord, error) {
	if id == "A" {
		s.started.Store(true)
		<-s.release
	}
	return s.recs[id], nil
}
