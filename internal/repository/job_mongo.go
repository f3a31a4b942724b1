package repository

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"jobboard/internal/query"
	"jobboard/model"
)

type mongoJobStore struct {
	col *mongo.Collection
}

func NewMongoJobStore(db *mongo.Database) JobStore {
	return &mongoJobStore{col: db.Collection("jobs")}
}

func (s *mongoJobStore) Insert(ctx context.Context, job *model.Job) error {
	res, err := s.col.InsertOne(ctx, job)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(bson.ObjectID); ok {
		job.ID = oid
	}
	return nil
}

func (s *mongoJobStore) FindByID(ctx context.Context, id bson.ObjectID) (*model.Job, error) {
	var job model.Job
	err := s.col.FindOne(ctx, bson.M{"_id": id}).Decode(&job)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &job, nil
}

func (s *mongoJobStore) FindPage(ctx context.Context, q query.JobQuery) ([]model.Job, int64, error) {
	total, err := s.col.CountDocuments(ctx, q.Filter)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().
		SetSort(q.Sort()).
		SetSkip(q.Skip()).
		SetLimit(q.Limit)
	if q.ByRelevance {
		// textScore meta sort needs the score projected alongside.
		opts.SetProjection(bson.M{"score": bson.M{"$meta": "textScore"}})
	}

	cur, err := s.col.Find(ctx, q.Filter, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cur.Close(ctx)

	var jobs []model.Job
	if err := cur.All(ctx, &jobs); err != nil {
		return nil, 0, err
	}
	return jobs, total, nil
}

func (s *mongoJobStore) UpdateFields(ctx context.Context, id bson.ObjectID, set bson.M) (*model.Job, error) {
	var job model.Job
	err := s.col.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&job)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &job, nil
}

func (s *mongoJobStore) Delete(ctx context.Context, id bson.ObjectID) error {
	res, err := s.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *mongoJobStore) AppendApplication(ctx context.Context, id bson.ObjectID, app model.Application) (bool, error) {
	res, err := s.col.UpdateOne(ctx,
		bson.M{
			"_id":                  id,
			"applications.user_id": bson.M{"$ne": app.UserID},
		},
		bson.M{
			"$push": bson.M{"applications": app},
			"$set":  bson.M{"updated_at": app.AppliedAt},
		},
	)
	if err != nil {
		return false, err
	}
	return res.MatchedCount > 0, nil
}

func (s *mongoJobStore) FindByOwner(ctx context.Context, owner bson.ObjectID) ([]model.Job, error) {
	return s.findSorted(ctx, bson.M{"posted_by": owner})
}

func (s *mongoJobStore) FindByApplicant(ctx context.Context, applicant bson.ObjectID) ([]model.Job, error) {
	return s.findSorted(ctx, bson.M{"applications.user_id": applicant})
}

func (s *mongoJobStore) findSorted(ctx context.Context, filter bson.M) ([]model.Job, error) {
	cur, err := s.col.Find(ctx, filter,
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var jobs []model.Job
	if err := cur.All(ctx, &jobs); err != nil {
		return nil, err
	}
	return jobs, nil
}
