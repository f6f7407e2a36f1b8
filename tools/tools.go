//go:build tools
// +build tools

// Package tools documents development tool dependencies.
// These tools are installed globally via `go install` and are not tracked in go.mod
// since they are development tools, not runtime dependencies.
package tools

// Development tools (install via `go install`):
//
// mockgen - regenerates internal/mocks from internal/core interfaces
//   Install: go install go.uber.org/mock/mockgen@v0.6.0
//   Run:     go generate ./internal/mocks
//   Docs: https://github.com/uber-go/mock
//
// Air - Live reload while working on the HTTP API
//   Install: go install github.com/air-verse/air@v1.63.0
//   Run:     air --build.cmd "go build -o ./tmp/skipdispatch ./cmd/skipdispatch" --build.bin ./tmp/skipdispatch
//   Docs: https://github.com/air-verse/air
