package handlers

import (
	"context"

	"github.com/ecosnap/ecosnap/internal/database"
	"github.com/ecosnap/ecosnap/internal/models"
	"go.mongodb.org/mongo-driver/bson"
)

// Storage seams for the handlers. Production uses the Mongo-backed
// implementations below; tests swap in mocks.

type UserStore interface {
	// FindByEmail returns mongo.ErrNoDocuments when the email is unknown.
	FindByEmail(ctx context.Context, email string) (models.User, error)
	Insert(ctx context.Context, user models.User) error
	// UpdateEmailUsername returns the number of documents modified.
	UpdateEmailUsername(ctx context.Context, email, newEmail, username string) (int64, error)
}

type ImageStore interface {
	// FindByRequestID returns mongo.ErrNoDocuments when no record carries
	// the request id.
	FindByRequestID(ctx context.Context, requestID string) (models.ScanRecord, error)
	Insert(ctx context.Context, record models.ScanRecord) error
	FindByOwner(ctx context.Context, owner string) ([]models.ScanRecord, error)
	FindAll(ctx context.Context) ([]models.ScanRecord, error)
}

var (
	userStore  UserStore  = mongoUserStore{}
	imageStore ImageStore = mongoImageStore{}
)

type mongoUserStore struct{}

func (mongoUserStore) FindByEmail(ctx context.Context, email string) (models.User, error) {
	var user models.User
	err := database.DB.Collection(database.UsersCollection).FindOne(ctx, bson.M{"email": email}).Decode(&user)
	return user, err
}

func (mongoUserStore) Insert(ctx context.Context, user models.User) error {
	_, err := database.DB.Collection(database.UsersCollection).InsertOne(ctx, user)
	return err
}

func (mongoUserStore) UpdateEmailUsername(ctx context.Context, email, newEmail, username string) (int64, error) {
	result, err := database.DB.Collection(database.UsersCollection).UpdateOne(ctx,
		bson.M{"email": email},
		bson.M{"$set": bson.M{"email": newEmail, "username": username}},
	)
	if err != nil {
		return 0, err
	}
	return result.ModifiedCount, nil
}

type mongoImageStore struct{}

func (mongoImageStore) FindByRequestID(ctx context.Context, requestID string) (models.ScanRecord, error) {
	var record models.ScanRecord
	err := database.DB.Collection(database.ImagesCollection).FindOne(ctx, bson.M{"request_id": requestID}).Decode(&record)
	return record, err
}

func (mongoImageStore) Insert(ctx context.Context, record models.ScanRecord) error {
	_, err := database.DB.Collection(database.ImagesCollection).InsertOne(ctx, record)
	return err
}

func (mongoImageStore) FindByOwner(ctx context.Context, owner string) ([]models.ScanRecord, error) {
	cursor, err := database.DB.Collection(database.ImagesCollection).Find(ctx, bson.M{"owner": owner})
	if err != nil {
		return nil, err
	}
	var records []models.ScanRecord
	if err := cursor.All(ctx, &records); err != nil {
		return nil, err
	}
	return records, nil
}

func (mongoImageStore) FindAll(ctx context.Context) ([]models.ScanRecord, error) {
	cursor, err := database.DB.Collection(database.ImagesCollection).Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	var records []models.ScanRecord
	if err := cursor.All(ctx, &records); err != nil {
		return nil, err
	}
	return records, nil
}
