package mode

// Option adjusts how an estimator treats its input.
type Option func(*options)

type options struct {
	removeMissing bool
	firstKnown    bool
}

func newOptions(opts []Option) options {
	o := options{firstKnown: true}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}

// RemoveMissing drops missing slots before estimating. Default false.
func RemoveMissing(v bool) Option {
	return func(o *options) { o.removeMissing = v }
}

// FirstKnown makes First accept the first value known to be a mode even when
// an earlier value could end up tied with it. Default true. Ignored by All
// and Single.
func FirstKnown(v bool) Option {
	return func(o *options) { o.firstKnown = v }
}
