//go:build tools

// Package tools lists the development tools used by this repository. They are
// installed with `go install` and are not tracked in go.mod.
package tools

// mockgen regenerates internal/mocks; generate.go runs a pinned version
// through `go run`, so nothing needs installing:
//
//	go generate ./internal/mocks
//
// air reloads the server on Go changes; pair it with DEV=true so templates and
// static files are also read from disk:
//
//	go install github.com/air-verse/air@v1.63.0
//	DEV=true SESSION_STORE=memory air --build.cmd "go build -o ./tmp/gigglit-web ./cmd/gigglit-web" --build.bin ./tmp/gigglit-web
