package repository

import (
	"context"
	"regexp"
	"strings"
	"time"

	"studenthub/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const mongoDatabase = "studenthub"

type MongoUserRepo struct {
	DB *mongo.Client
}

func NewMongoUserRepo(db *mongo.Client) *MongoUserRepo {
	return &MongoUserRepo{DB: db}
}

func (r *MongoUserRepo) users() *mongo.Collection {
	return r.DB.Database(mongoDatabase).Collection("users")
}

func (r *MongoUserRepo) CreateUser(user *models.User) error {
	ctx := context.Background()

	user.Email = strings.ToLower(user.Email)
	if user.ID == "" {
		user.ID = models.NewID()
	}
	if user.Role == "" {
		user.Role = models.RoleUser
	}
	if user.Status == "" {
		user.Status = models.StatusPending
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}

	existing, err := r.GetUserByEmail(user.Email)
	if err != nil {
		return err
	}
	if existing != nil {
		return ErrDuplicateEmail
	}

	_, err = r.users().InsertOne(ctx, user)
	if mongo.IsDuplicateKeyError(err) {
		// unique index on email closes the lookup/insert race
		return ErrDuplicateEmail
	}
	return err
}

func (r *MongoUserRepo) GetUserByEmail(email string) (*models.User, error) {
	ctx := context.Background()
	user := &models.User{}

	err := r.users().FindOne(ctx, bson.M{"email": strings.ToLower(email)}).Decode(user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return user, nil
}

func (r *MongoUserRepo) GetUserByID(id string) (*models.User, error) {
	ctx := context.Background()
	user := &models.User{}

	err := r.users().FindOne(ctx, bson.M{"_id": id}).Decode(user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return user, nil
}

// containsPattern builds a case-insensitive substring match.
func containsPattern(s string) primitive.Regex {
	return primitive.Regex{Pattern: regexp.QuoteMeta(s), Options: "i"}
}

func (r *MongoUserRepo) ListUsers(q UserQuery) ([]*models.User, int64, error) {
	ctx := context.Background()

	filter := bson.M{}
	if q.PublicOnly {
		filter["status"] = models.StatusApproved
		if q.Search != "" {
			filter["$or"] = bson.A{
				bson.M{"name": containsPattern(q.Search)},
				bson.M{"bio": containsPattern(q.Search)},
			}
		}
	} else {
		if q.Status != "" && q.Status != "all" {
			filter["status"] = q.Status
		}
		if q.Search != "" {
			filter["$or"] = bson.A{
				bson.M{"name": containsPattern(q.Search)},
				bson.M{"email": containsPattern(q.Search)},
			}
		}
	}

	total, err := r.users().CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip((q.Page - 1) * q.Limit).
		SetLimit(q.Limit)

	cur, err := r.users().Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cur.Close(ctx)

	var out []*models.User
	for cur.Next(ctx) {
		var u models.User
		if err := cur.Decode(&u); err != nil {
			return nil, 0, err
		}
		out = append(out, &u)
	}
	return out, total, cur.Err()
}

func (r *MongoUserRepo) findOneAndUpdate(id string, update bson.M) (*models.User, error) {
	ctx := context.Background()
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	user := &models.User{}
	err := r.users().FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return user, nil
}

func (r *MongoUserRepo) UpdateProfile(id, name, bio string) (*models.User, error) {
	return r.findOneAndUpdate(id, bson.M{"$set": bson.M{"name": name, "bio": bio}})
}

func (r *MongoUserRepo) UpdateProfileImage(id, imageURL string) (*models.User, error) {
	return r.findOneAndUpdate(id, bson.M{"$set": bson.M{"profile_image": imageURL}})
}

func (r *MongoUserRepo) UpdateStatus(id, status, reason string) (*models.User, error) {
	set := bson.M{"status": status}
	if status == models.StatusRejected {
		set["rejection_reason"] = reason
	}
	return r.findOneAndUpdate(id, bson.M{"$set": set})
}

func (r *MongoUserRepo) UpdateRole(id, role string) (*models.User, error) {
	return r.findOneAndUpdate(id, bson.M{"$set": bson.M{"role": role}})
}

// BulkUpdateStatus applies one multi-document update; ids with no matching
// record are skipped, and the count of modified records is returned.
func (r *MongoUserRepo) BulkUpdateStatus(ids []string, status, reason string) (int64, error) {
	ctx := context.Background()

	set := bson.M{"status": status}
	if status == models.StatusRejected {
		set["rejection_reason"] = reason
	}

	res, err := r.users().UpdateMany(ctx,
		bson.M{"_id": bson.M{"$in": ids}},
		bson.M{"$set": set},
	)
	if err != nil {
		return 0, err
	}
	return res.ModifiedCount, nil
}

func (r *MongoUserRepo) DeleteUser(id string) error {
	ctx := context.Background()

	res, err := r.users().DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoUserRepo) Stats() (*models.UserStats, error) {
	ctx := context.Background()
	stats := &models.UserStats{}

	count := func(filter bson.M) (int64, error) {
		return r.users().CountDocuments(ctx, filter)
	}

	var err error
	if stats.TotalUsers, err = count(bson.M{}); err != nil {
		return nil, err
	}
	if stats.PendingUsers, err = count(bson.M{"status": models.StatusPending}); err != nil {
		return nil, err
	}
	if stats.ApprovedUsers, err = count(bson.M{"status": models.StatusApproved}); err != nil {
		return nil, err
	}
	if stats.RejectedUsers, err = count(bson.M{"status": models.StatusRejected}); err != nil {
		return nil, err
	}
	if stats.AdminUsers, err = count(bson.M{"role": models.RoleAdmin}); err != nil {
		return nil, err
	}

	sevenDaysAgo := time.Now().UTC().AddDate(0, 0, -7)
	if stats.RecentSignups, err = count(bson.M{"created_at": bson.M{"$gte": sevenDaysAgo}}); err != nil {
		return nil, err
	}
	return stats, nil
}
