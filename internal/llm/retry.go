package llm

import "time"

// RetryPolicy controls how rate-limited requests are retried. Only HTTP 429
// responses are retried; transport failures and other status codes surface
// immediately.
type RetryPolicy struct {
	// MaxAttempts is the total number of requests issued before giving up.
	MaxAttempts int

	// Backoff maps the 1-based attempt number to the pause taken after a
	// rate-limited response.
	Backoff func(attempt int) time.Duration
}

// DefaultRetryPolicy retries twice after the initial attempt, pausing 10s,
// 20s, then 40s.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts: 3,
		Backoff: func(attempt int) time.Duration {
			return time.Duration(1<<attempt) * 5 * time.Second
		},
	}
}
