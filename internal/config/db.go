package config

import (
	"context"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ConnectDB establishes a connection to MongoDB and returns the application database
func ConnectDB(cfg *Config) (*mongo.Client, *mongo.Database, error) {
	var client *mongo.Client
	var err error

	// Retry connecting to the database a few times
	maxRetries := 5
	retryInterval := 5 * time.Second

	for i := 0; i < maxRetries; i++ {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		client, err = mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
		if err == nil {
			// Try to ping the database
			err = client.Ping(ctx, nil)
			if err == nil {
				cancel()
				log.Println("Successfully connected to MongoDB!")
				return client, client.Database(cfg.MongoDB), nil
			}
		}
		cancel()
		log.Printf("Failed to connect to database (attempt %d/%d): %v. Retrying in %v...", i+1, maxRetries, err, retryInterval)
		time.Sleep(retryInterval)
	}
	return nil, nil, fmt.Errorf("unable to connect to database after %d attempts: %w", maxRetries, err)
}

// EnsureIndexes creates the indexes the application relies on: a unique index
// on usernames and a descending createdAt index for newest-first item listings
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection("users").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "username", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("unable to create username index: %w", err)
	}

	_, err = db.Collection("items").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "createdAt", Value: -1}},
	})
	if err != nil {
		return fmt.Errorf("unable to create item createdAt index: %w", err)
	}

	log.Println("Database indexes ensured")
	return nil
}
