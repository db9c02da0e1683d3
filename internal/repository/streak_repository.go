package repository

import (
	"context"
	"fmt"
	"time"

	"streak-service/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type StreakRepository struct {
	Col *mongo.Collection
}

func NewStreakRepository(db *mongo.Database) *StreakRepository {
	return &StreakRepository{Col: db.Collection("streaks")}
}

// EnsureIndexes creates the unique userId index. One streak document per user.
func (r *StreakRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.Col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "userId", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("failed to create userId index: %w", err)
	}
	return nil
}

// FindByUser returns mongo.ErrNoDocuments when the user has no record yet.
func (r *StreakRepository) FindByUser(ctx context.Context, userID string) (*models.Streak, error) {
	var streak models.Streak
	err := r.Col.FindOne(ctx, bson.M{"userId": userID}).Decode(&streak)
	if err != nil {
		return nil, err
	}
	return &streak, nil
}

func (r *StreakRepository) Create(ctx context.Context, streak *models.Streak) (*models.Streak, error) {
	if streak.ID.IsZero() {
		streak.ID = primitive.NewObjectID()
	}
	now := time.Now()
	if streak.CreatedAt.IsZero() {
		streak.CreatedAt = now
	}
	streak.UpdatedAt = now

	if _, err := r.Col.InsertOne(ctx, streak); err != nil {
		return nil, fmt.Errorf("failed to insert streak: %w", err)
	}
	return streak, nil
}

// Update replaces the whole document. The service owns the full record during
// a report cycle, so a replace keeps the write path simple.
func (r *StreakRepository) Update(ctx context.Context, streak *models.Streak) error {
	streak.UpdatedAt = time.Now()

	result, err := r.Col.ReplaceOne(ctx, bson.M{"_id": streak.ID}, streak)
	if err != nil {
		return fmt.Errorf("failed to update streak: %w", err)
	}
	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
