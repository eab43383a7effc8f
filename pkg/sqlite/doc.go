// Package sqlite stores beacon identity and session counters in an embedded
// SQLite file using the pure Go modernc.org/sqlite driver.
//
// Open applies production pragmas (WAL journal, busy timeout, NORMAL sync)
// and creates the beacon_kv table. Store adapts the handle to kvstore.Store
// and retries writes that hit SQLITE_BUSY.
//
//	db, err := sqlite.Open(ctx, cfg)
//	if err != nil {
//	    return err
//	}
//	defer db.Close()
//
//	store := sqlite.NewStore(db)
package sqlite
