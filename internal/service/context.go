package service

import "context"

// correlationID reads the request correlation ID that the API
// middleware stores in the context. Empty outside of a request.
func correlationID(ctx context.Context) string {
	id, _ := ctx.Value("correlation_id").(string)
	return id
}
