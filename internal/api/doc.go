// Package api implements the HTTP layer: request decoding and validation,
// handler orchestration over the service layer and the mapping from store
// sentinel errors to response status codes.
//
// Status code policy: domain-level failures (missing entities, duplicates,
// broken references, exhausted identifier retries) all answer 400 with a
// human-readable message; malformed or invalid request payloads answer 422
// with a per-field error map; anything unrecognized answers 500.
package api
