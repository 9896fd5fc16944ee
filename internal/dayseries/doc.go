// Package dayseries turns a loaded sheet into the readings of one calendar
// day.
//
// Extract validates the column mapping, parses every datetime cell
// leniently, keeps the rows whose own wall-clock date equals the target,
// labels them "HH:MM", coerces values to finite numbers and sorts stably by
// label. Duplicated labels are kept.
//
// Outcomes:
//
//   - no row on the target date: empty series, nil error
//   - a mapped column absent: COLUMN_MISSING
//   - rows present but none with a parseable datetime: DATA_UNPARSEABLE
//   - a malformed target date string (ExtractDay): DATE_UNPARSEABLE
//
// Timestamps that carry a UTC offset are compared on the date as written;
// they are never converted to another zone first.
package dayseries
