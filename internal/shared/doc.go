// Package shared holds cross-cutting helpers that belong to no single
// domain layer.
//
// Its only current member is testutil, the slog capture helpers used by
// loader and portfolio tests to assert on structured log output.
package shared
