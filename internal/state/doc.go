// Package state collects the results of one search.
//
// # Overview
//
// Session is the point where the decoded record stream meets the store. Each
// match record observed gets the next ordinal, starting at 0, and its
// (path, line number) is appended to the entries that will be saved. Begin,
// End and Summary records get no ordinal.
//
// Ordinals are stable: the n-th entry saved is the n-th match printed, which
// is what lets `vg n` open the line the user saw next to n.
//
// # Concurrency Model
//
// Session uses a readers-writer lock. The search loop is the only writer;
// Snapshot may be called from another goroutine, for example to commit what
// was collected when the search is interrupted. Snapshot returns copies, so
// callers may keep or modify them freely.
//
// # Usage Example
//
//	session := state.NewSession(true)
//	for search.Next() {
//		session.Observe(search.Record())
//	}
//	snap := session.Snapshot()
//	lines, err := renderer.Batch(snap.Items)
//	_, err = backend.Save(snap.Entries)
package state
