// Package generation implements the contract between glossa and the
// hosted language model: prompt construction, the HTTP client, response
// decoding, and the six operations the application exposes.
package generation

import "context"

// Client is the minimal completion surface the service needs. Both
// methods are one-shot request/response; multi-turn context is
// reconstructed by the caller on every call.
type Client interface {
	// Complete sends a prompt and returns the raw completion text.
	Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error)

	// CompleteWithSchema sends a prompt and asks the service to enforce
	// the given JSON schema on the response.
	CompleteWithSchema(ctx context.Context, systemPrompt, userPrompt, jsonSchema string) (string, error)
}
