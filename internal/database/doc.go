// Package database provides SQLite-based storage for docfetch crawl history.
//
// Every crawl run is recorded as one row in the runs table plus one row
// per processed topic path in the nodes table. The history is an audit
// log: the crawler never reads it, so crawls stay non-resumable and
// re-running a crawl remains the recovery mechanism for failures.
//
// Design decision: We use SQLite (via modernc.org/sqlite) because:
//  1. No external dependencies - the database is a single file
//  2. CGO-free implementation allows easy cross-compilation
//  3. Sufficient performance for an append-mostly audit log
//  4. WAL mode provides good concurrent read performance
package database
