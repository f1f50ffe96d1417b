// Package crawler implements the documentation graph traversal.
//
// # Architecture
//
// The Crawler owns the crawl state: a FIFO frontier of topic paths, the
// visited set, and the optional visit budget. It consumes two collaborators
// through small interfaces: a Fetcher that retrieves a topic's JSON
// document and a Store that persists it. Reference extraction lives in this
// package because which references to follow is a traversal decision, not
// a transport one.
//
// # Traversal
//
// The crawl is breadth-first: the frontier is seeded with
// "documentation/<module>" and newly discovered references are appended to
// the tail. A path is marked visited when it is dequeued, before its fetch
// is attempted, which is what prevents cycles and duplicate fetches. The
// same path may transiently sit in the frontier twice when two documents
// reference it before either is processed; the visited check at dequeue
// time is the sole deduplication guarantee.
//
// # Failure isolation
//
// A node that cannot be fetched or stored is reported and tallied, and the
// crawl continues. Nothing a single node does can abort the run; only
// context cancellation and the visit budget end a crawl early.
//
// # Concurrency
//
// Execution is strictly sequential: one fetch in flight at a time. The
// remote service is not guaranteed to tolerate concurrent load, and
// ordering and deduplication are easiest to reason about sequentially, so
// no locking discipline is needed.
package crawler
