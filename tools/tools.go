//go:build tools
// +build tools

// Package tools documents development tool dependencies.
// These tools are installed via `go install` or run through `go run` and are
// not tracked as runtime dependencies.
package tools

// Development tools:
//
// mockgen - Mock generation for the ports interfaces
//   Run via: go generate ./internal/mocks
//   Pinned in the go:generate directive (go.uber.org/mock/mockgen@v0.6.0)
//
// Air - Live reload for Go apps
//   Install: go install github.com/air-verse/air@v1.63.0
//   Version: v1.63.0 (pinned 2025-01-01)
//   Docs: https://github.com/air-verse/air
