// Package opensearch connects to the OpenSearch cluster that mirrors the event
// log for search and dashboards.
//
// The mirror is optional. With no addresses configured New returns ErrDisabled
// and callers run with the primary store only:
//
//	client, err := opensearch.New(ctx, cfg)
//	switch {
//	case errors.Is(err, opensearch.ErrDisabled):
//	    // no mirror
//	case err != nil:
//	    return err
//	}
//
// Healthcheck returns a check suitable for readiness endpoints.
package opensearch
