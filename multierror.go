package subprocrun

import "github.com/hashicorp/go-multierror"

// multiErrorBuilder accumulates errors from a sequence of fallible cleanup
// steps (closing several file descriptors during an aborted Launch) into a
// single aggregated error, so no failure is silently dropped on the way to
// reporting the first one.
type multiErrorBuilder struct {
	err *multierror.Error
}

func (b *multiErrorBuilder) append(err error) *multiErrorBuilder {
	if err == nil {
		return b
	}
	if b == nil {
		b = &multiErrorBuilder{}
	}
	b.err = multierror.Append(b.err, err)
	return b
}

func (b *multiErrorBuilder) build() error {
	if b == nil || b.err == nil {
		return nil
	}
	return b.err.ErrorOrNil()
}
