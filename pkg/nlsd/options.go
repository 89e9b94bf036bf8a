package nlsd

import "github.com/shapestone/shape-nlsd/internal/engine"

// Option configures a Decode or Encode call. Functional options, not a
// config struct or a parsed config file, since spec §6 scopes NLSD's
// external interface to in-process decode/encode calls — there is no CLI
// or persisted configuration to own.
type Option func(*options)

type options struct {
	strictEOF   bool
	trace       func(event string, fields map[string]any)
	mapOrdering engine.MapOrdering
}

func buildOptions(opts []Option) *options {
	o := &options{}
	for _, apply := range opts {
		apply(o)
	}
	return o
}

// WithStrictEOF makes Decode fail with ErrTrailingInput if non-whitespace
// input remains after the document's single top-level value parses.
func WithStrictEOF() Option {
	return func(o *options) { o.strictEOF = true }
}

// WithTrace installs a diagnostic hook called for each notable decode
// decision (a rollback, a henceforth scope opening or match, a list/object
// completing) with an event name and a set of structured fields describing
// it. It is nil by default, so tracing costs nothing unless asked for; see
// trace.go for the logrus-backed convenience constructor.
func WithTrace(fn func(event string, fields map[string]any)) Option {
	return func(o *options) { o.trace = fn }
}

// MapOrdering selects how Encode walks an object's entries. Spec §5 only
// requires NLSD to commit to one documented, deterministic ordering, not
// which one; OrderSorted (the default) matches the key-sorted order every
// other package in this module assumes when it talks about "the" map
// ordering, OrderInsertion instead mirrors struct field declaration / Go
// map literal order.
type MapOrdering = engine.MapOrdering

const (
	OrderSorted    = engine.OrderSorted
	OrderInsertion = engine.OrderInsertion
)

// WithMapOrdering overrides Encode's default key-sorted object ordering.
// It has no effect on Decode: a decoded Object is always addressable by
// key regardless of how it was written.
func WithMapOrdering(o MapOrdering) Option {
	return func(opt *options) { opt.mapOrdering = o }
}
