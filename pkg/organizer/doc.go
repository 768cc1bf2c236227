// Package organizer runs one organize pass: it checks the source, takes a
// snapshot of the files to process, plans and executes (or simulates) each
// move, and optionally removes the directories left empty in the source.
//
// Failures on a single file are recorded in the run statistics and never
// stop the pass. Only an unusable source or destination, or a cancelled
// context, end a run early.
package organizer
