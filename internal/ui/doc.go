package ui

// Package ui contains the Fyne-based desktop user interface for the application.
// It wires user interactions to the repository session and the link manager and
// renders the manifest, staged files, the activity log and the link list. All UI
// strings are localized via Localization.
