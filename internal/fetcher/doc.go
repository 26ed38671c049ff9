// Package fetcher retrieves result pages and parses them into goquery documents.
//
// A Fetcher retries every failed attempt (timeouts, transport errors and
// non-2xx responses) with a fixed delay taken from its RetryPolicy. Each
// attempt is logged and counted; once the policy is exhausted Fetch returns a
// *FetchError and callers treat the source as unavailable. A Fetcher holds no
// per-call state and may be used from several goroutines at once.
package fetcher
