// Package mongo stores beacon identity and session counters in MongoDB.
//
// Connect pings the server with retries and Store keeps one document per
// key, upserted on every write. Store.Ping doubles as the readiness check.
//
//	db, err := mongo.ConnectDatabase(ctx, cfg)
//	if err != nil {
//	    return err
//	}
//	defer db.Client().Disconnect(context.Background())
//
//	store := mongo.NewStore(db, cfg)
//
// Configuration is read from MONGODB_* environment variables.
package mongo
