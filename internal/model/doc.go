package model

// Package model defines domain data structures used across the app: the
// repository manifest and its app entries, staged files awaiting attachment,
// activity log entries and saved links. Manifest types keep unknown JSON keys
// so that an export never loses data the editor does not understand.
