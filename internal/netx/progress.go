// Package netx holds http.RoundTripper stages used by the resource fetcher.
package netx

import "net/http"

// ProgressListener is the download progress callback shape expected by callers
// that install a ProgressInterceptor.
type ProgressListener interface {
	OnProgress(bytesRead, contentLength int64, done bool)
}

// ProgressListenerFunc adapts a function to ProgressListener.
type ProgressListenerFunc func(bytesRead, contentLength int64, done bool)

// OnProgress implements ProgressListener
func (f ProgressListenerFunc) OnProgress(bytesRead, contentLength int64, done bool) {
	f(bytesRead, contentLength, done)
}

// ProgressInterceptor is a pass-through stage that keeps the progress-reporting
// slot of the transport chain without tracking anything. The request goes to
// Next untouched and Next's response and error come back untouched; the
// listener is held but never called.
type ProgressInterceptor struct {
	Next     http.RoundTripper
	listener ProgressListener
}

// NewProgressInterceptor wraps next, or http.DefaultTransport when next is nil.
func NewProgressInterceptor(next http.RoundTripper, listener ProgressListener) *ProgressInterceptor {
	if next == nil {
		next = http.DefaultTransport
	}
	return &ProgressInterceptor{Next: next, listener: listener}
}

// Listener returns the listener passed at construction.
func (p *ProgressInterceptor) Listener() ProgressListener {
	return p.listener
}

// RoundTrip implements http.RoundTripper
func (p *ProgressInterceptor) RoundTrip(req *http.Request) (*http.Response, error) {
	return p.Next.RoundTrip(req)
}
