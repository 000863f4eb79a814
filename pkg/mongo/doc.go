// Package mongo connects to MongoDB, the document store behind notification
// and event records.
//
// # Usage
//
//	var cfg mongo.Config
//	config.MustLoad(&cfg)
//	db, err := mongo.Open(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	defer db.Client().Disconnect(context.Background())
//
//	check := mongo.Healthcheck(db.Client())
//
// New retries the initial ping RetryAttempts times, waiting RetryInterval
// between attempts, and gives up early when ctx is done. A malformed URL fails
// immediately. Failures wrap ErrFailedToConnectToMongo.
package mongo
