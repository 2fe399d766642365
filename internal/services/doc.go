// Package services implements HTTP clients for the video-triage backend.
//
// [APIService] is a thin raw client (GET/POST/DELETE with JSON detection)
// and [TriageService] layers the backend's typed endpoints on top of it:
// inbox/saved/discarded listings, single and bulk save/discard transitions,
// URL and channel imports, exports, and purging.
//
// The [Service] interface abstracts TriageService so engines and the TUI can
// be exercised against test doubles.
package services
