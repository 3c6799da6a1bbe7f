// Package repository implements the repository editor session: loading and
// exporting manifests, staging files, attaching them to app entries as data
// URLs, resetting the manifest and searching its apps. Every operation records
// its outcome in the session's activity log; failures never leave the session
// in a half-updated state beyond attachments that already completed.
package repository
