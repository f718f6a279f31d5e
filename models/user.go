package models

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/crypto/bcrypt"
)

// UserRole enum
type UserRole string

const (
	RoleReporter UserRole = "reporter"
	RoleAdmin    UserRole = "admin"
)

// User represents a citizen or administrator account.
// Coins is the off-chain reward counter and is only ever mutated with
// atomic $inc updates. RealBalance mirrors the last observed on-chain
// balance and is refreshed by the profile endpoint; the two values are
// allowed to diverge.
type User struct {
	ID            primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Name          string               `bson:"name" json:"name"`
	Email         string               `bson:"email" json:"email"`
	Password      string               `bson:"password,omitempty" json:"-"`
	Role          UserRole             `bson:"role" json:"role"`
	WalletAddress string               `bson:"walletAddress,omitempty" json:"walletAddress,omitempty"`
	Coins         int64                `bson:"coins" json:"coins"`
	RealBalance   string               `bson:"realBalance" json:"realBalance"`
	Reports       []primitive.ObjectID `bson:"reports" json:"reports"`
	Validations   []primitive.ObjectID `bson:"validations" json:"validations"`
	CreatedAt     time.Time            `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time            `bson:"updatedAt" json:"updatedAt"`
}

func (u *User) HashPassword() error {
	hashed, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.Password = string(hashed)
	return nil
}

func (u *User) ComparePassword(candidate string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(candidate))
	return err == nil
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// EnsureUserIndexes creates the unique email index and a partial unique
// index on walletAddress (uniqueness only applies once a wallet is linked).
func EnsureUserIndexes(collection *mongo.Collection) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "walletAddress", Value: 1}},
			Options: options.Index().SetUnique(true).SetPartialFilterExpression(bson.M{
				"walletAddress": bson.M{"$type": "string", "$gt": ""},
			}),
		},
	}

	_, err := collection.Indexes().CreateMany(ctx, indexes)
	return err
}
