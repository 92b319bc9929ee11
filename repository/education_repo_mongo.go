package repository

import (
	"context"
	"time"

	"studenthub/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MongoEducationRepo struct {
	DB *mongo.Client
}

func NewMongoEducationRepo(db *mongo.Client) *MongoEducationRepo {
	return &MongoEducationRepo{DB: db}
}

func (r *MongoEducationRepo) educations() *mongo.Collection {
	return r.DB.Database(mongoDatabase).Collection("educations")
}

func (r *MongoEducationRepo) CreateEducation(e *models.Education) error {
	ctx := context.Background()

	if e.ID == "" {
		e.ID = models.NewID()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}

	existing, err := r.GetEducationByUser(e.UserID)
	if err != nil {
		return err
	}
	if existing != nil {
		return ErrProfileExists
	}

	_, err = r.educations().InsertOne(ctx, e)
	if mongo.IsDuplicateKeyError(err) {
		// unique index on user_id closes the lookup/insert race
		return ErrProfileExists
	}
	return err
}

func (r *MongoEducationRepo) GetEducationByUser(userID string) (*models.Education, error) {
	ctx := context.Background()
	edu := &models.Education{}

	err := r.educations().FindOne(ctx, bson.M{"user_id": userID}).Decode(edu)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	r.populateOwner(ctx, edu)
	return edu, nil
}

// UpdateEducationByUser replaces the profile's mutable fields. The owner
// reference and creation time are never touched.
func (r *MongoEducationRepo) UpdateEducationByUser(userID string, e *models.Education) (*models.Education, error) {
	ctx := context.Background()
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	update := bson.M{"$set": bson.M{
		"degree":                e.Degree,
		"dob":                   e.DOB,
		"department":            e.Department,
		"batch_year":            e.BatchYear,
		"end_date":              e.EndDate,
		"current_college":       e.CurrentCollege,
		"description":           e.Description,
		"percentage_10th":       e.Percentage10th,
		"percentage_12th":       e.Percentage12th,
		"graduation_percentage": e.GraduationPercentage,
	}}

	updated := &models.Education{}
	err := r.educations().FindOneAndUpdate(ctx, bson.M{"user_id": userID}, update, opts).Decode(updated)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	r.populateOwner(ctx, updated)
	return updated, nil
}

func (r *MongoEducationRepo) DeleteEducationByUser(userID string) error {
	ctx := context.Background()

	res, err := r.educations().DeleteOne(ctx, bson.M{"user_id": userID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoEducationRepo) ListEducations(q EducationQuery) ([]*models.Education, int64, error) {
	ctx := context.Background()

	filter := bson.M{}
	if q.Department != "" {
		filter["department"] = containsPattern(q.Department)
	}
	if q.Degree != "" {
		filter["degree"] = containsPattern(q.Degree)
	}
	if q.BatchYear != "" {
		filter["batch_year"] = q.BatchYear
	}

	total, err := r.educations().CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip((q.Page - 1) * q.Limit).
		SetLimit(q.Limit)

	cur, err := r.educations().Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cur.Close(ctx)

	var out []*models.Education
	for cur.Next(ctx) {
		var e models.Education
		if err := cur.Decode(&e); err != nil {
			return nil, 0, err
		}
		r.populateOwner(ctx, &e)
		if q.ApprovedOnly && (e.Owner == nil || e.Owner.Status != models.StatusApproved) {
			continue
		}
		out = append(out, &e)
	}
	return out, total, cur.Err()
}

// populateOwner loads the owning user's public fields onto the record.
func (r *MongoEducationRepo) populateOwner(ctx context.Context, e *models.Education) {
	var u models.User
	err := r.DB.Database(mongoDatabase).Collection("users").
		FindOne(ctx, bson.M{"_id": e.UserID}).Decode(&u)
	if err != nil {
		return
	}
	owner := u.Public()
	owner.Status = u.Status
	e.Owner = &owner
}

func (r *MongoEducationRepo) Stats() (*models.EducationStats, error) {
	ctx := context.Background()
	stats := &models.EducationStats{}

	var err error
	stats.TotalProfiles, err = r.educations().CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, err
	}

	groupBy := func(field string, sortByKey bool) ([]models.GroupCount, error) {
		sortField := "count"
		sortDir := -1
		if sortByKey {
			sortField = "_id"
		}
		pipeline := mongo.Pipeline{
			{{Key: "$group", Value: bson.M{"_id": "$" + field, "count": bson.M{"$sum": 1}}}},
			{{Key: "$sort", Value: bson.D{{Key: sortField, Value: sortDir}}}},
		}
		cur, err := r.educations().Aggregate(ctx, pipeline)
		if err != nil {
			return nil, err
		}
		defer cur.Close(ctx)

		var groups []models.GroupCount
		for cur.Next(ctx) {
			var g models.GroupCount
			if err := cur.Decode(&g); err != nil {
				return nil, err
			}
			groups = append(groups, g)
		}
		return groups, cur.Err()
	}

	if stats.DepartmentStats, err = groupBy("department", false); err != nil {
		return nil, err
	}
	if stats.BatchStats, err = groupBy("batch_year", true); err != nil {
		return nil, err
	}
	if stats.DegreeStats, err = groupBy("degree", false); err != nil {
		return nil, err
	}
	return stats, nil
}
