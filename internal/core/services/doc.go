// Package services implements the driving port interfaces.
// Services contain the core business logic: the content hasher, the
// extraction coordinator, the page worker pool and the corpus search.
//
// Services are pure Go with no CGO or external dependencies.
package services
