// Package storage provides JSON-based persistence for master table snapshots.
//
// Each fetch depth is stored in its own file (snapshot_60.json) and the most
// recent save is also written to snapshot.json. Snapshots let the CLI run
// offline against the last table it fetched. The default location is
// ~/.local/share/xoso-stats/snapshots/.
package storage
