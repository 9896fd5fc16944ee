// Package shared holds helpers used across loadpv packages that do not
// belong to any single domain layer.
//
// The testutil subpackage provides:
//
//   - a buffered slog handler for asserting on structured log output
//   - workbook fixture builders that write .xlsx files into t.TempDir()
//
// Nothing here may import business packages; the fixtures only depend on
// excelize so any package can generate source files in its tests.
package shared
