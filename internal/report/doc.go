// Package report formats analysis results as plain-text posts that can be
// pasted into chat groups or forums.
package report
