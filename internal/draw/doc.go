// Package draw provides the typed lottery records and the date-aligned merge.
//
// Parsers produce one series per source, newest first: DigitsResult for the
// Điện Toán 123 game, SweepstakeResult for the Thần Tài number, and plain
// 5-digit strings for the special and first prize streams, which carry no
// date of their own. Merge joins them into a Table keyed by the digits
// series' dates. The paired prize streams are joined by position, so their
// alignment is only as good as the synchrony of the source pages;
// CheckAlignment reports when the series disagree in length.
package draw
