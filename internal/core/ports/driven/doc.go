// Package driven defines the outbound port interfaces the core services
// depend on: persistence, full-text search, archive acquisition, and guide
// parsing. Adapters under internal/adapters/driven implement them.
package driven
