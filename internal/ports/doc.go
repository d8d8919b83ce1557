// Package ports defines the interfaces that connect the catalog to
// infrastructure adapters.
//
// # Port Interfaces
//
//   - [Store]: loads and saves the full list of records
//   - [Quarantiner]: optional; moves an unreadable store aside
//   - [Logger]: structured logging abstraction
//
// The catalog (internal/catalog) depends only on these interfaces. Adapters
// (internal/adapters) implement them with the file system and zerolog.
package ports
