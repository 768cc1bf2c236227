// Package paths resolves the directories organizer keeps its own state in.
//
// State lives under $XDG_STATE_HOME/organizer unless ORGANIZER_STATE_DIR
// points elsewhere. It holds the run lock files and, when enabled, the
// default log file.
package paths
