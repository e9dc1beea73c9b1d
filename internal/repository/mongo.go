package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"exercisetracker/internal/model"
)

// Collection names used by the Mongo backend.
const (
	UsersCollection     = "users"
	ExercisesCollection = "exercises"
)

type mongoUserRepository struct {
	col *mongo.Collection
}

// NewMongoUserRepository stores users in the users collection.
func NewMongoUserRepository(db *mongo.Database) UserRepository {
	return &mongoUserRepository{col: db.Collection(UsersCollection)}
}

func (r *mongoUserRepository) Create(ctx context.Context, user *model.User) error {
	user.EnsureID()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}
	if _, err := r.col.InsertOne(ctx, user); err != nil {
		return fmt.Errorf("mongo insert user: %w", err)
	}
	return nil
}

func (r *mongoUserRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	var user model.User
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&user); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *mongoUserRepository) List(ctx context.Context) ([]model.User, error) {
	opts := options.Find().SetProjection(bson.M{"_id": 1, "username": 1})
	cur, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	users := []model.User{}
	if err := cur.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

type mongoExerciseRepository struct {
	col *mongo.Collection
}

// NewMongoExerciseRepository stores entries in the exercises collection.
func NewMongoExerciseRepository(db *mongo.Database) ExerciseRepository {
	return &mongoExerciseRepository{col: db.Collection(ExercisesCollection)}
}

func (r *mongoExerciseRepository) Create(ctx context.Context, exercise *model.Exercise) error {
	prepareExercise(exercise)
	if _, err := r.col.InsertOne(ctx, exercise); err != nil {
		return fmt.Errorf("mongo insert exercise: %w", err)
	}
	return nil
}

func (r *mongoExerciseRepository) CreateBatch(ctx context.Context, exercises []model.Exercise) error {
	if len(exercises) == 0 {
		return nil
	}
	docs := make([]interface{}, len(exercises))
	for i := range exercises {
		prepareExercise(&exercises[i])
		docs[i] = exercises[i]
	}
	if _, err := r.col.InsertMany(ctx, docs); err != nil {
		return fmt.Errorf("mongo insert exercises: %w", err)
	}
	return nil
}

func (r *mongoExerciseRepository) Find(ctx context.Context, filter LogFilter) ([]model.Exercise, error) {
	opts := options.Find()
	if filter.Limit > 0 {
		opts.SetLimit(int64(filter.Limit))
	}
	cur, err := r.col.Find(ctx, logFilterDocument(filter), opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	exercises := []model.Exercise{}
	if err := cur.All(ctx, &exercises); err != nil {
		return nil, err
	}
	return exercises, nil
}

// EnsureMongoIndexes creates the compound index the log query relies on.
func EnsureMongoIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(ExercisesCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "date", Value: 1}},
	})
	if err != nil {
		return fmt.Errorf("mongo create index: %w", err)
	}
	return nil
}

func prepareExercise(exercise *model.Exercise) {
	exercise.EnsureID()
	if exercise.CreatedAt.IsZero() {
		exercise.CreatedAt = time.Now().UTC()
	}
}

func logFilterDocument(filter LogFilter) bson.M {
	doc := bson.M{"user_id": filter.UserID}
	if filter.From == nil && filter.To == nil {
		return doc
	}
	date := bson.M{}
	if filter.From != nil {
		date["$gte"] = *filter.From
	}
	if filter.To != nil {
		date["$lte"] = *filter.To
	}
	doc["date"] = date
	return doc
}
