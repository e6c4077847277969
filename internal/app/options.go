package app

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"listing_portal/internal/domain"
)

// DeleteHook performs the actual delete for a listing. Without one, delete
// requests are refused with domain.ErrDeleteUnsupported.
type DeleteHook func(ctx context.Context, id domain.PropertyID) error

type options struct {
	log      zerolog.Logger
	locale   string
	onDelete DeleteHook
}

type Option func(*options)

func WithLogger(l zerolog.Logger) Option { return func(o *options) { o.log = l } }

// WithLocale sets the viewer locale used for dates ("en-US", "de_DE.UTF-8").
func WithLocale(loc string) Option { return func(o *options) { o.locale = loc } }

func WithDeleteHook(h DeleteHook) Option { return func(o *options) { o.onDelete = h } }

func buildOptions(component string, opts []Option) options {
	o := options{log: log.Logger, locale: "en-US"}
	for _, fn := range opts {
		fn(&o)
	}
	o.log = o.log.With().Str("component", component).Logger()
	return o
}
