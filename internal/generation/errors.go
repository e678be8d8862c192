package generation

import "errors"

// Failure taxonomy for the model-capability boundary. Every failure a
// caller can see maps to exactly one of these, so the UI can show a
// distinct message instead of a generic "generation failed".
var (
	// ErrNoAPIKey means no credential was configured at all.
	ErrNoAPIKey = errors.New("no API key configured")

	// ErrUnauthorized means the service rejected the credential (401/403).
	ErrUnauthorized = errors.New("the model service rejected the API key")

	// ErrRateLimited means the service returned 429 even after the retry.
	ErrRateLimited = errors.New("the model service is rate limiting requests")

	// ErrUnavailable covers transport failures and 5xx responses.
	ErrUnavailable = errors.New("the model service is unavailable")

	// ErrEmptyResponse means the call succeeded but carried no content.
	ErrEmptyResponse = errors.New("the model returned an empty response")

	// ErrMalformedResponse means the content did not match the declared
	// response shape.
	ErrMalformedResponse = errors.New("the model returned output in an unexpected shape")
)

// Describe maps an error to the user-facing notification text.
func Describe(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrNoAPIKey):
		return "No API key is configured. Set GLOSSA_API_KEY or add llm.api_key to your config."
	case errors.Is(err, ErrUnauthorized):
		return "The model service rejected your API key. Check the credential and try again."
	case errors.Is(err, ErrRateLimited):
		return "The model service is rate limiting requests. Wait a moment and try again."
	case errors.Is(err, ErrUnavailable):
		return "The model service could not be reached. Check your connection and try again."
	case errors.Is(err, ErrEmptyResponse):
		return "The model returned an empty response. Try again."
	case errors.Is(err, ErrMalformedResponse):
		return "The model returned output glossa could not understand. Try again."
	default:
		return err.Error()
	}
}
