package database

import (
	"context"
	"log"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Connect opens a MongoDB client, verifies it with a ping and returns the
// client together with the database named in the URI. Handles are returned to
// the caller instead of stored in package globals; main wires them into the
// services explicitly.
func Connect(mongoURI string) (*mongo.Client, *mongo.Database, error) {
	// Longer timeout to cover Atlas connections
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	clientOptions := options.Client().ApplyURI(mongoURI)
	clientOptions.SetServerSelectionTimeout(10 * time.Second)

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, nil, err
	}

	pingCtx, pingCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer pingCancel()

	if err := client.Ping(pingCtx, nil); err != nil {
		client.Disconnect(context.Background())
		return nil, nil, err
	}

	db := client.Database(databaseName(mongoURI))

	log.Println("✅ Connected to MongoDB")
	return client, db, nil
}

// databaseName extracts the database name from the connection string,
// falling back to "udhekryqi".
// Format: mongodb://host/database_name?options
func databaseName(mongoURI string) string {
	name := "udhekryqi"
	parts := strings.Split(mongoURI, "/")
	if len(parts) > 3 {
		dbPart := strings.Split(parts[len(parts)-1], "?")[0]
		if dbPart != "" {
			name = dbPart
		}
	}
	return name
}

// EnsureIndexes creates the unique indexes the stores rely on. Called on
// startup from main after Mongo has connected.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	unique := func(field string) mongo.IndexModel {
		return mongo.IndexModel{
			Keys:    bson.D{{Key: field, Value: 1}},
			Options: options.Index().SetUnique(true),
		}
	}

	for col, models := range map[string][]mongo.IndexModel{
		"users":         {unique("email")},
		"verify_tokens": {unique("token")},
		"subscribers":   {unique("email"), unique("unsubscribeToken")},
	} {
		if _, err := db.Collection(col).Indexes().CreateMany(ctx, models); err != nil {
			return err
		}
	}
	return nil
}

// Disconnect closes the MongoDB client with a bounded timeout.
func Disconnect(client *mongo.Client) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return client.Disconnect(ctx)
}
