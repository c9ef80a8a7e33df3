package core

import (
	"context"
	"net/netip"
)

type contextKey struct{}

// RequestMeta identifies the client behind an operation for the audit log.
type RequestMeta struct {
	IPAddress string
	UserAgent string
}

// ContextWithRequestMeta attaches m to ctx.
func ContextWithRequestMeta(ctx context.Context, m RequestMeta) context.Context {
	return context.WithValue(ctx, contextKey{}, m)
}

// RequestMetaFromContext returns the attached RequestMeta, or the zero value.
func RequestMetaFromContext(ctx context.Context) RequestMeta {
	m, _ := ctx.Value(contextKey{}).(RequestMeta)
	return m
}

// addr parses IPAddress for the inet column. Unparseable addresses are nil.
func (m RequestMeta) addr() *netip.Addr {
	a, err := netip.ParseAddr(m.IPAddress)
	if err != nil {
		return nil
	}
	return &a
}
