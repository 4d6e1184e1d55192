// Package catalog persists the library catalog and match outcomes in SQLite.
//
// The store serves two roles around the matching engine: it is the snapshot
// provider (LoadSnapshot reads every catalog entry in one consistent query)
// and the persistence sink (RecordOutcome appends one row per resolved
// request, keyed by batch). Catalog entries are maintained by hand via the
// CLI or imported in bulk by scanning library roots.
package catalog
