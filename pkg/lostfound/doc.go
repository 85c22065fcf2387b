// Package lostfound provides the wire model, response envelope and error
// taxonomy shared by the Lost & Found API test harness.
//
// # Overview
//
// Every endpoint of the Lost & Found service answers with the same JSON
// envelope: successful calls carry a "data" member, failed calls carry an
// "error" member. Envelope decodes that shape once and lets callers check it
// structurally instead of walking untyped maps:
//
//	env, err := lostfound.ParseEnvelope(resp.Body)
//	if err != nil { return err }
//
//	var item lostfound.LostItem
//	if err := env.DecodeData(&item); err != nil { return err }
//
// # Errors
//
// The harness distinguishes two failure classes. TransportError means the
// request never produced an HTTP response (DNS, connection refused, timeout,
// malformed request). AuthenticationError means sign-in completed at the
// transport level but no usable token came back. HTTP error statuses are
// never errors; they are ordinary responses that tests assert against.
package lostfound
