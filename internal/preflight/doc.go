// Package preflight provides readiness checks for the files, directories,
// and services lafter depends on.
//
// These checks run in two contexts:
//   - The batch command calls RunAll before a pass so a broken model or an
//     unreachable LLM stops the run before any row is touched.
//   - The CLI "lafter doctor" command renders every result as a table.
//
// The LLM check is skipped when no API key is configured.
package preflight
