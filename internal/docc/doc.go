// Package docc provides the HTTP client for the remote documentation
// service.
//
// The service exposes one JSON document per topic path: a request for
// "documentation/Widgets/Gadget" is translated to
// "<base-url>/documentation/Widgets/Gadget.json". The client treats the
// service as a black box; it does not interpret document content beyond
// checking that the payload is valid JSON.
//
// Failures are split into two reportable outcomes so the crawler can tally
// them without unwinding the crawl:
//   - ErrNotFound for a 404 response (the topic does not exist)
//   - *TransportError for everything else (network failure, timeout,
//     unexpected status, malformed JSON)
package docc
