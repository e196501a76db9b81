package config

import (
	"context"
	"log"
	"os"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

var (
	db     *mongo.Database
	client *mongo.Client
	once   sync.Once
)

const defaultDatabase = "societypro"

// ConnectDB initializes and returns the MongoDB database connection. The
// connection is established once; later calls return the same handle.
func ConnectDB() *mongo.Database {
	once.Do(func() {
		mongoURI := os.Getenv("MONGODB_URI")
		if mongoURI == "" {
			log.Fatal("Please define the MONGODB_URI environment variable")
		}

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		c, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoURI))
		if err != nil {
			log.Fatalf("Failed to connect to MongoDB: %v", err)
		}
		if err := c.Ping(ctx, readpref.Primary()); err != nil {
			log.Fatalf("Failed to reach MongoDB: %v", err)
		}

		name := os.Getenv("MONGODB_DATABASE")
		if name == "" {
			name = defaultDatabase
		}

		client = c
		db = client.Database(name)
	})

	return db
}

// GetCollection returns a MongoDB collection by name
func GetCollection(name string) *mongo.Collection {
	return ConnectDB().Collection(name)
}
