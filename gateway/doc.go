// Package gateway provides a typed client for the external commerce API.
//
// Every operation returns either a decoded payload or an *APIError wrapping
// one of the core sentinel errors; no raw transport error and no panic ever
// crosses this boundary. Response bodies are decoded against explicit typed
// envelopes and fail closed with core.ErrMalformedResponse on shape mismatch.
//
// The gateway performs network I/O only. It never mutates client state;
// optimistic projection and reconciliation live in the state package.
package gateway
