// Package pg stores beacon identity and session counters in PostgreSQL
// using the pgx/v5 driver.
//
// Connect opens a *pgxpool.Pool with retries, Migrate applies the embedded
// goose migrations that create the beacon_kv table and Store adapts the pool
// to kvstore.Store. Store.Ping doubles as the readiness check.
//
//	pool, err := pg.Connect(ctx, cfg)
//	if err != nil {
//	    return err
//	}
//	defer pool.Close()
//
//	if err := pg.Migrate(ctx, pool, cfg, log); err != nil {
//	    return err
//	}
//	store := pg.NewStore(pool)
//
// Configuration is read from PG_* environment variables. Refer to the field
// tags in Config for exact variable names and defaults.
package pg
