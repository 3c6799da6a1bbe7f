// Package platform contains OS-specific helpers: staging local files, encoding
// file contents as data URLs, clipboard access and revealing exported files.
package platform
