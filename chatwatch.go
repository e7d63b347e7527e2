// Package chatwatch watches a chat feed that can only be re-read in full and
// dispatches the messages that are new since the previous read.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., rod/, goquery/, sqlite/).
package chatwatch
