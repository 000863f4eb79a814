package events

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/opensearch-project/opensearch-go/v2/opensearchapi"
)

// DefaultIndex is the OpenSearch index events are mirrored to.
const DefaultIndex = "events"

// OpenSearchStorage indexes events for search and dashboards.
// *opensearch.Client satisfies opensearchapi.Transport.
type OpenSearchStorage struct {
	transport opensearchapi.Transport
	index     string
}

// NewOpenSearchStorage creates a storage indexing into index.
// An empty index name falls back to DefaultIndex.
func NewOpenSearchStorage(transport opensearchapi.Transport, index string) *OpenSearchStorage {
	if index == "" {
		index = DefaultIndex
	}
	return &OpenSearchStorage{transport: transport, index: index}
}

func (s *OpenSearchStorage) Store(ctx context.Context, event Event) error {
	body, err := json.Marshal(event)
	if err != nil {
		return errors.Join(ErrIndexFailed, err)
	}

	req := opensearchapi.IndexRequest{
		Index:      s.index,
		DocumentID: event.ID,
		Body:       bytes.NewReader(body),
	}

	res, err := req.Do(ctx, s.transport)
	if err != nil {
		return errors.Join(ErrStorageNotAvailable, err)
	}
	defer res.Body.Close()

	if res.IsError() {
		msg, _ := io.ReadAll(io.LimitReader(res.Body, 512))
		return fmt.Errorf("%w: %s: %s", ErrIndexFailed, res.Status(), bytes.TrimSpace(msg))
	}
	_, _ = io.Copy(io.Discard, res.Body)

	return nil
}
