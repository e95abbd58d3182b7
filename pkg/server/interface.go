/*
Package server implements msgpack IPC for the catalog search and
recommendation services.

The protocol is request/response over stdin/stdout with binary msgpack
encoding. Each message carries an ID the client uses to pair responses with
requests, and an op selecting the operation.

Search request:

	{"id": "req_001", "op": "title", "q": "solaris", "s": 0, "l": 10}

ops "title", "author" and "text" run the relevance search over the
corresponding fields. "suggest" completes a single term from the prefix
index. "browse" pages the catalog under a sort key ("none", "date",
"rating") with an ascending flag. "recommend" needs a user id:

	{"id": "req_002", "op": "recommend", "u": 42, "s": 0, "l": 10}

Responses carry the matched books in rank order plus timing info:

	{"id": "req_001", "b": [{"id": 7, "title": "Solaris", ...}], "c": 1, "t": 2}

Failed validation or an unknown op produces an error message with a 400
status; internal failures use 500.
*/
package server

// Request is an incoming IPC message.
type Request struct {
	ID    string `msgpack:"id"`
	Op    string `msgpack:"op"`
	Query string `msgpack:"q,omitempty"`
	User  int64  `msgpack:"u,omitempty"`
	Skip  int    `msgpack:"s,omitempty"`
	Limit int    `msgpack:"l,omitempty"`
	Sort  string `msgpack:"sort,omitempty"`
	Asc   bool   `msgpack:"asc,omitempty"`
}

// ResponseBook is one catalog record in a response.
type ResponseBook struct {
	ID     int64   `msgpack:"id"`
	Title  string  `msgpack:"title"`
	Author string  `msgpack:"author"`
	Rating float64 `msgpack:"rating"`
}

// Response answers a search, browse, suggest or recommend request.
type Response struct {
	ID        string         `msgpack:"id"`
	Books     []ResponseBook `msgpack:"b"`
	Count     int            `msgpack:"c"`
	TimeTaken int64          `msgpack:"t"`
}

// StatusResponse answers health requests and signals readiness.
type StatusResponse struct {
	ID     string `msgpack:"id,omitempty"`
	Status string `msgpack:"status"`
}

// ErrorResponse reports a failed request.
type ErrorResponse struct {
	ID    string `msgpack:"id"`
	Error string `msgpack:"e"`
	Code  int    `msgpack:"c"`
}
