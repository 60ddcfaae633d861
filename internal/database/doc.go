// Package database provides SQLite-based storage for check-run history.
//
// Every check run can be recorded with its coverage counts and missing
// entries, keyed by project root. The history command reads this store to
// list past runs and to diff the latest two, showing which pages regressed
// and which were fixed between runs.
package database
