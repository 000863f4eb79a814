package handler

import (
	"net/http"

	"github.com/starfederation/datastar-go/datastar"
)

// SSEHandler runs for the lifetime of a Server-Sent Events connection.
// The connection closes when it returns.
//
//	handler.SSE(func(stream handler.StreamContext) error {
//		for {
//			select {
//			case <-stream.Done():
//				return nil
//			case n := <-updates:
//				if err := stream.SendComponent(Toast(n), handler.WithTarget("#toasts")); err != nil {
//					return err
//				}
//			}
//		}
//	})
type SSEHandler func(ctx StreamContext) error

type sseResponse struct {
	handler SSEHandler
}

// Render opens the SSE connection and runs the handler.
func (s sseResponse) Render(w http.ResponseWriter, r *http.Request) error {
	if !IsDataStar(r) {
		return ErrNotAcceptable
	}

	ctx := &streamContext{
		Context: NewContext(w, r),
		sse:     datastar.NewSSE(w, r),
		rc:      http.NewResponseController(w),
	}
	return s.handler(ctx)
}

// SSE creates a response that streams through the given handler.
// Status and headers are committed as soon as it renders, so anything that
// may still fail with an HTTP error belongs before it.
func SSE(fn SSEHandler) Response {
	return sseResponse{handler: fn}
}
