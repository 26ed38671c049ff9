// Package scraper extracts lottery results from the public result pages.
//
// Three page layouts are supported: the Điện Toán 123 and Thần Tài archives
// on ketqua04.net (one dated block per draw) and the congcuxoso weekly
// "phôi cầu" grids that list special and first prize numbers without dates.
// Parsers validate every row and drop the ones that do not match the expected
// shape. A source that cannot be fetched or parsed yields an empty series,
// never an error; FetchAll runs all four sources concurrently and returns
// once every one of them has finished.
package scraper
