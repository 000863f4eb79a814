package handler

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/starfederation/datastar-go/datastar"
)

// StreamContext extends Context with SSE streaming capabilities.
type StreamContext interface {
	Context

	// SendComponent patches a templ component into the page.
	//
	//	err := stream.SendComponent(
	//		Toast(n),
	//		handler.WithTarget("#toasts"),
	//		handler.WithPatchMode(handler.PatchAppend),
	//	)
	SendComponent(component TemplComponent, opts ...TemplOption) error

	// SendSignal updates a single frontend signal.
	SendSignal(name string, value any) error

	// SendSignals updates multiple frontend signals at once.
	SendSignals(signals map[string]any) error

	// Heartbeat writes an SSE comment so idle proxies keep the connection open.
	Heartbeat() error
}

type streamContext struct {
	Context
	sse *datastar.ServerSentEventGenerator
	rc  *http.ResponseController
}

func (c *streamContext) SendComponent(component TemplComponent, opts ...TemplOption) error {
	if c.sse == nil {
		return ErrSSENotInitialized
	}
	return c.sse.PatchElementTempl(component, opts...)
}

func (c *streamContext) SendSignal(name string, value any) error {
	return c.SendSignals(map[string]any{name: value})
}

func (c *streamContext) SendSignals(signals map[string]any) error {
	if c.sse == nil {
		return ErrSSENotInitialized
	}
	data, err := json.Marshal(signals)
	if err != nil {
		return err
	}
	return c.sse.PatchSignals(data)
}

func (c *streamContext) Heartbeat() error {
	if _, err := io.WriteString(c.ResponseWriter(), ": heartbeat\n\n"); err != nil {
		return err
	}
	return c.rc.Flush()
}
