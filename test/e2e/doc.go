// Package e2e holds the end-to-end suites for the Lost & Found API.
//
// With API_BASE_URL set the suites run against that live server using the
// configured admin account. Without it they start the in-memory reference
// server on a loopback listener and seed the configured admin into it, so
// `go test ./...` is hermetic.
package e2e
