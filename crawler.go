// Package crawler provides a bounded, polite, deduplicating concurrent
// web crawler. It crawls one or more seed URLs breadth-first up to a
// configurable depth, fetching each page at most once, pacing requests
// per host, and rejecting spider traps before they enter the frontier.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., crawl/, goquery/, sqlite/).
package crawler
