// Package media holds the core editing domain model: projects, clips,
// effects, output settings, and the derived timeline.
//
// Everything here is pure data and computation. Persistence lives in
// internal/projects, mutation rules in the projects service, and render
// execution in internal/render.
package media
