// Package domain defines the core entities for docdesk.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Document: A file stored by the document server
//   - SearchQuery / SearchResults: A keyword search and its ranked hits
//   - ChatMessage / Transcript: The chat conversation held by the client
//   - Notification: A transient, auto-dismissing outcome banner
//   - Settings: Client configuration and input policies
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
