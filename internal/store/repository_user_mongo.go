package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/MKhiriev/go-user-service/internal/logger"
	"github.com/MKhiriev/go-user-service/models"
)

const usersCollection = "users"

// userDocument is the BSON shape of a user in the users collection.
type userDocument struct {
	ID        bson.ObjectID `bson:"_id,omitempty"`
	FirstName string        `bson:"firstName"`
	LastName  string        `bson:"lastName"`
	Email     string        `bson:"email"`
	Password  string        `bson:"password"`
	Token     string        `bson:"token"`
	CreatedAt time.Time     `bson:"createdAt"`
	UpdatedAt time.Time     `bson:"updatedAt"`
}

func newUserDocument(user models.User) userDocument {
	return userDocument{
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Email:     user.Email,
		Password:  user.PasswordHash,
		Token:     user.Token,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}

func (d userDocument) toModel() models.User {
	return models.User{
		ID:           d.ID.Hex(),
		FirstName:    d.FirstName,
		LastName:     d.LastName,
		Email:        d.Email,
		PasswordHash: d.Password,
		Token:        d.Token,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}

// mongoUserRepository is the MongoDB implementation of [UserRepository].
type mongoUserRepository struct {
	collection *mongo.Collection
	logger     *logger.Logger
	now        func() time.Time
}

// NewMongoUserRepository constructs a [UserRepository] over the users
// collection of db.
func NewMongoUserRepository(db *MongoDB, logger *logger.Logger) UserRepository {
	logger.Debug().Msg("creating mongo user repository")
	return &mongoUserRepository{
		collection: db.users(),
		logger:     logger,
		// BSON dates carry millisecond precision
		now: func() time.Time { return time.Now().UTC().Truncate(time.Millisecond) },
	}
}

func (r *mongoUserRepository) Create(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	now := r.now()
	user.CreatedAt = now
	user.UpdatedAt = now

	doc := newUserDocument(user)
	doc.ID = bson.NewObjectID()

	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return models.User{}, ErrEmailAlreadyExists
		}
		log.Err(err).Str("func", "*mongoUserRepository.Create").Msg("error inserting user")
		return models.User{}, fmt.Errorf("error inserting user: %w", err)
	}

	return doc.toModel(), nil
}

func (r *mongoUserRepository) FindByEmail(ctx context.Context, email string) (models.User, error) {
	return r.findOne(ctx, bson.D{{Key: "email", Value: email}})
}

func (r *mongoUserRepository) FindByID(ctx context.Context, id string) (models.User, error) {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return models.User{}, ErrNoUserWasFound
	}

	return r.findOne(ctx, bson.D{{Key: "_id", Value: objectID}})
}

func (r *mongoUserRepository) Update(ctx context.Context, id string, changes models.UserChanges) (models.User, error) {
	log := logger.FromContext(ctx)

	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return models.User{}, ErrNoUserWasFound
	}

	var doc userDocument
	err = r.collection.FindOneAndUpdate(ctx,
		bson.D{{Key: "_id", Value: objectID}},
		buildMongoUpdate(changes, r.now()),
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)

	switch {
	case errors.Is(err, mongo.ErrNoDocuments):
		return models.User{}, ErrNoUserWasFound
	case mongo.IsDuplicateKeyError(err):
		return models.User{}, ErrEmailAlreadyExists
	case err != nil:
		log.Err(err).Str("func", "*mongoUserRepository.Update").Msg("error updating user")
		return models.User{}, fmt.Errorf("error updating user: %w", err)
	}

	return doc.toModel(), nil
}

func (r *mongoUserRepository) findOne(ctx context.Context, filter bson.D) (models.User, error) {
	log := logger.FromContext(ctx)

	var doc userDocument
	err := r.collection.FindOne(ctx, filter).Decode(&doc)
	switch {
	case errors.Is(err, mongo.ErrNoDocuments):
		return models.User{}, ErrNoUserWasFound
	case err != nil:
		log.Err(err).Str("func", "*mongoUserRepository.findOne").Msg("error finding user")
		return models.User{}, fmt.Errorf("%w: %w", ErrDecodingDocument, err)
	}

	return doc.toModel(), nil
}

// buildMongoUpdate returns a $set document holding the non-nil fields of
// changes and the new updatedAt.
func buildMongoUpdate(changes models.UserChanges, now time.Time) bson.D {
	set := bson.D{}

	if changes.FirstName != nil {
		set = append(set, bson.E{Key: "firstName", Value: *changes.FirstName})
	}
	if changes.LastName != nil {
		set = append(set, bson.E{Key: "lastName", Value: *changes.LastName})
	}
	if changes.Email != nil {
		set = append(set, bson.E{Key: "email", Value: *changes.Email})
	}
	if changes.PasswordHash != nil {
		set = append(set, bson.E{Key: "password", Value: *changes.PasswordHash})
	}
	if changes.Token != nil {
		set = append(set, bson.E{Key: "token", Value: *changes.Token})
	}
	set = append(set, bson.E{Key: "updatedAt", Value: now})

	return bson.D{{Key: "$set", Value: set}}
}
