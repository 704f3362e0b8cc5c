// Package httpclient provides the timed HTTP client every harness call goes
// through. Requests and responses travel in small envelopes: a Request holds
// the path, query, per-call headers and an optional JSON body; a Response
// carries the status, headers, raw body and the wall-clock duration of the
// call.
//
// Failures are classified into kinds so scenarios can assert on the failure
// mode rather than parse error strings:
//
//   - client_error: HTTP 4xx, the Response is attached and also returned
//   - server_error: HTTP 5xx, same shape as client_error
//   - timeout: the per-call deadline elapsed, no response available
//   - network: any other transport failure, no response available
//   - validation: the call was rejected before dispatch (nil request,
//     empty path, unencodable body)
//
// Notes:
//   - Per-call headers are merged over the client defaults; on collision the
//     per-call value wins.
//   - Write verbs with a nil body send an empty JSON object.
//   - A shared client is safe for concurrent calls; SetDefaultHeader and
//     SetBearerToken are not safe to call with requests in flight.
package httpclient
