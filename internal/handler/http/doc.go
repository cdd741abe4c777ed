// Package http implements the HTTP transport layer of the account service.
//
// It exposes route wiring, request handlers and middleware for the REST API.
// Request tracing, access logging, metrics and the session cookie gate are
// handled here before requests are delegated to the service layer.
package http
