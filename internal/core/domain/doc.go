// Package domain contains the core business entities for the guide archive:
// guides, games, their child annotations, import progress state, and search
// result types. Types here have no dependencies on storage or transport
// concerns.
package domain
