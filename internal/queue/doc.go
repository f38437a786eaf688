// Package queue defines render job records and the stores that persist them.
//
// A Job is owned exclusively by the render queue for its whole life: created
// pending, advanced through processing and encoding by a single background
// task, and immutable once terminal. Stores only hold snapshots: every Save
// persists a full copy of the record so concurrent readers never observe a
// partially updated job.
package queue
