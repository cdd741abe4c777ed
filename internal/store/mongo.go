package store

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"

	"github.com/MKhiriev/go-user-service/internal/logger"
)

const (
	defaultMongoDatabase = "myappdb"
	emailIndexName       = "email_unique"
)

// MongoDB holds a connected client and the database named in the DSN.
type MongoDB struct {
	client   *mongo.Client
	database *mongo.Database
	logger   *logger.Logger
}

// NewConnectMongo connects to MongoDB, verifies the connection against the
// primary and ensures the unique email index on the users collection.
func NewConnectMongo(ctx context.Context, dsn string, log *logger.Logger) (*MongoDB, error) {
	client, err := mongo.Connect(options.Client().
		ApplyURI(dsn).
		SetServerSelectionTimeout(10 * time.Second))
	if err != nil {
		log.Err(err).Str("func", "NewConnectMongo").Msg("error creating mongo client")
		return nil, fmt.Errorf("error creating mongo client: %w", err)
	}

	if err = client.Ping(ctx, readpref.Primary()); err != nil {
		log.Err(err).Str("func", "NewConnectMongo").Msg("error connecting mongo (ping)")
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("error connecting mongo: %w", err)
	}

	db := &MongoDB{
		client:   client,
		database: client.Database(mongoDatabaseName(dsn)),
		logger:   log,
	}

	if err = db.ensureIndexes(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	log.Info().Str("func", "NewConnectMongo").Str("database", db.database.Name()).Msg("connected to mongo successfully")

	return db, nil
}

// ensureIndexes makes email unique at the storage level so two concurrent
// registrations of one email cannot both succeed.
func (m *MongoDB) ensureIndexes(ctx context.Context) error {
	_, err := m.users().Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true).SetName(emailIndexName),
	})
	if err != nil {
		m.logger.Err(err).Str("func", "*MongoDB.ensureIndexes").Msg("error creating email index")
		return fmt.Errorf("error creating email index: %w", err)
	}

	return nil
}

func (m *MongoDB) users() *mongo.Collection {
	return m.database.Collection(usersCollection)
}

// Close disconnects the client.
func (m *MongoDB) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return m.client.Disconnect(ctx)
}

// mongoDatabaseName extracts the database from the DSN path, falling back
// to the default used by a bare mongodb://host DSN.
func mongoDatabaseName(dsn string) string {
	u, err := url.Parse(dsn)
	if err != nil {
		return defaultMongoDatabase
	}

	name := strings.Trim(u.Path, "/")
	if name == "" {
		return defaultMongoDatabase
	}

	return name
}
