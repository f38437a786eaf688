// Package projects owns project and clip data: storage, mutation rules, and
// effect attachment.
//
// The Service is the only writer. The render queue reads immutable snapshots
// through the Store interface and never mutates project data. Stores follow
// the same snapshot discipline as the job stores: Get and List hand out deep
// copies.
package projects
