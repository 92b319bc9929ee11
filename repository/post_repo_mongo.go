package repository

import (
	"context"
	"time"

	"studenthub/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MongoPostRepo struct {
	DB *mongo.Client
}

func NewMongoPostRepo(db *mongo.Client) *MongoPostRepo {
	return &MongoPostRepo{DB: db}
}

func (r *MongoPostRepo) posts() *mongo.Collection {
	return r.DB.Database(mongoDatabase).Collection("posts")
}

func (r *MongoPostRepo) CreatePost(p *models.Post) error {
	ctx := context.Background()

	if p.ID == "" {
		p.ID = models.NewID()
	}
	now := time.Now().UTC()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	p.UpdatedAt = now

	_, err := r.posts().InsertOne(ctx, p)
	return err
}

func (r *MongoPostRepo) GetPostByID(id string) (*models.Post, error) {
	ctx := context.Background()
	post := &models.Post{}

	err := r.posts().FindOne(ctx, bson.M{"_id": id}).Decode(post)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	r.populateAuthor(ctx, post)
	return post, nil
}

func (r *MongoPostRepo) ListPosts(q PostQuery) ([]*models.Post, int64, error) {
	ctx := context.Background()

	filter := bson.M{}
	if q.UserID != "" {
		filter["user_id"] = q.UserID
	}

	total, err := r.posts().CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip((q.Page - 1) * q.Limit).
		SetLimit(q.Limit)

	cur, err := r.posts().Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cur.Close(ctx)

	var out []*models.Post
	for cur.Next(ctx) {
		var p models.Post
		if err := cur.Decode(&p); err != nil {
			return nil, 0, err
		}
		r.populateAuthor(ctx, &p)
		out = append(out, &p)
	}
	return out, total, cur.Err()
}

// UpdatePost rewrites the post's content and image. The owner reference and
// creation time are never touched.
func (r *MongoPostRepo) UpdatePost(p *models.Post) error {
	ctx := context.Background()

	p.UpdatedAt = time.Now().UTC()
	res, err := r.posts().UpdateOne(ctx,
		bson.M{"_id": p.ID},
		bson.M{"$set": bson.M{
			"content":    p.Content,
			"image_url":  p.ImageURL,
			"updated_at": p.UpdatedAt,
		}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoPostRepo) DeletePost(id string) error {
	ctx := context.Background()

	res, err := r.posts().DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoPostRepo) DeletePostsByUser(userID string) error {
	ctx := context.Background()
	_, err := r.posts().DeleteMany(ctx, bson.M{"user_id": userID})
	return err
}

func (r *MongoPostRepo) populateAuthor(ctx context.Context, p *models.Post) {
	var u models.User
	err := r.DB.Database(mongoDatabase).Collection("users").
		FindOne(ctx, bson.M{"_id": p.UserID}).Decode(&u)
	if err != nil {
		return
	}
	author := u.Public()
	p.Author = &author
}
