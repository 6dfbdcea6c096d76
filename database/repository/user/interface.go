package userRepo

import (
	"context"
	"errors"
	"log"

	"hrbridge/database"
	"hrbridge/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// ErrNotFound is returned when no user matches the query.
var ErrNotFound = errors.New("user not found")

// UserRepository defines methods for user-directory data access.
type UserRepository interface {
	// GetByID retrieves a user by its unique ID.
	GetByID(ctx context.Context, id string) (*models.User, error)
	// GetByEmail retrieves a user by its email address.
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	// GetByUsername retrieves a user by its username.
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	// Create inserts a new user record.
	Create(ctx context.Context, user *models.User) error
	// SetTokenHash stores the hash of the user's current auth token.
	SetTokenHash(ctx context.Context, id, tokenHash string) error
}

type mongoUserRepo struct {
	coll *mongo.Collection
}

// NewMongoUserRepo constructs a new MongoDB UserRepository.
func NewMongoUserRepo() UserRepository {
	r := &mongoUserRepo{
		coll: database.DB().Collection("users"),
	}
	if err := r.EnsureIndexes(); err != nil {
		log.Printf("user repository: %v", err)
	}
	return r
}
