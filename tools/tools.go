//go:build tools
// +build tools

// Package tools documents development tool dependencies.
// These tools are installed via `go install` (or run with `go run`) and are
// not tracked in go.mod since they are development tools, not runtime dependencies.
package tools

// Development tools:
//
// Air - Live reload while editing templates and handlers (pair with DEV=true)
//   Install: go install github.com/air-verse/air@v1.63.0
//   Docs: https://github.com/air-verse/air
//
// mockgen - Regenerates internal/mocks
//   Run: go generate ./internal/mocks
//   Docs: https://github.com/uber-go/mock
