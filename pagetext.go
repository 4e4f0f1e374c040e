// Package pagetext fetches many web pages concurrently and reduces them to
// clean, normalized text. Fetches run in bounded waves with a per-request
// timeout, and every input address yields exactly one Outcome in input order.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., http/, goquery/, rod/).
package pagetext
