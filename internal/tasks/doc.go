// Package tasks runs long note operations with real-time progress reporting.
//
// # Bulk Export
//
// [ExportEngine.BulkExport] exports many notes at once:
//
//  1. Lists note ids when none are given
//  2. Fetches each note through the session gateway, paced by a rate limiter
//  3. Hands fetched notes to a pool of workers that write them with the formatter
//  4. Writes export_manifest.json describing every note's outcome
//
// A note that fails to fetch or write is recorded in the result and the run continues.
//
// # Progress Reporting
//
// Operations accept a send-only [ProgressUpdate] channel. Updates use select with
// default so a slow or absent reader never blocks an export. A nil channel is allowed.
package tasks
