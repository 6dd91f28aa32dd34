package mongostore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"intervai/internal/models"
	"intervai/internal/store"
)

// Store wraps the interviews and feedback collections.
type Store struct {
	client     *Client
	interviews *mongo.Collection
	feedback   *mongo.Collection
}

// NewStore binds the collections and ensures the lookup indexes exist.
func NewStore(ctx context.Context, c *Client, dbName string) (*Store, error) {
	db, err := c.DB(dbName)
	if err != nil {
		return nil, err
	}

	s := &Store{
		client:     c,
		interviews: db.Collection(store.InterviewsCollection),
		feedback:   db.Collection(store.FeedbackCollection),
	}

	if err := s.ensureIndexes(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) ensureIndexes(ctx context.Context) error {
	if _, err := s.interviews.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "createdAt", Value: -1}}},
		{Keys: bson.D{{Key: "finalized", Value: 1}, {Key: "createdAt", Value: -1}}},
	}); err != nil {
		return fmt.Errorf("failed to create interview indexes: %w", err)
	}
	if _, err := s.feedback.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "interviewId", Value: 1}, {Key: "userId", Value: 1}},
	}); err != nil {
		return fmt.Errorf("failed to create feedback indexes: %w", err)
	}
	return nil
}

func (s *Store) CreateInterview(ctx context.Context, interview *models.Interview) (string, error) {
	if interview.ID == "" {
		interview.ID = uuid.New().String()
	}
	if interview.CreatedAt.IsZero() {
		interview.CreatedAt = time.Now().UTC()
	}
	if interview.Questions == nil {
		interview.Questions = []string{}
	}
	if _, err := s.interviews.InsertOne(ctx, interview); err != nil {
		return "", err
	}
	return interview.ID, nil
}

func (s *Store) GetInterview(ctx context.Context, id string) (*models.Interview, error) {
	var interview models.Interview
	if err := s.interviews.FindOne(ctx, bson.M{"_id": id}).Decode(&interview); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	return &interview, nil
}

func (s *Store) FinalizeInterview(ctx context.Context, id string) error {
	res, err := s.interviews.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"finalized": true}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *Store) ListInterviewsByUser(ctx context.Context, userID string) ([]models.Interview, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	return s.findInterviews(ctx, bson.M{"userId": userID}, opts)
}

func (s *Store) ListLatestInterviews(ctx context.Context, excludeUserID string, limit int) ([]models.Interview, error) {
	if limit <= 0 {
		limit = models.DefaultLatestLimit
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(int64(limit))
	filter := bson.M{"finalized": true, "userId": bson.M{"$ne": excludeUserID}}
	return s.findInterviews(ctx, filter, opts)
}

func (s *Store) findInterviews(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]models.Interview, error) {
	cur, err := s.interviews.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []models.Interview{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Store) DeleteInterviewsByUser(ctx context.Context, userID string) (int64, error) {
	res, err := s.interviews.DeleteMany(ctx, bson.M{"userId": userID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

func (s *Store) DeleteStaleDrafts(ctx context.Context, before time.Time) (int64, error) {
	res, err := s.interviews.DeleteMany(ctx, bson.M{"finalized": false, "createdAt": bson.M{"$lt": before}})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

func (s *Store) CreateFeedback(ctx context.Context, feedback *models.Feedback) (string, error) {
	if feedback.ID == "" {
		feedback.ID = uuid.New().String()
	}
	if feedback.CreatedAt.IsZero() {
		feedback.CreatedAt = time.Now().UTC()
	}
	if _, err := s.feedback.InsertOne(ctx, feedback); err != nil {
		return "", err
	}
	return feedback.ID, nil
}

func (s *Store) PutFeedback(ctx context.Context, id string, feedback *models.Feedback) error {
	feedback.ID = id
	if feedback.CreatedAt.IsZero() {
		feedback.CreatedAt = time.Now().UTC()
	}
	_, err := s.feedback.ReplaceOne(ctx, bson.M{"_id": id}, feedback, options.Replace().SetUpsert(true))
	return err
}

func (s *Store) GetFeedbackByInterview(ctx context.Context, interviewID, userID string) (*models.Feedback, error) {
	var feedback models.Feedback
	err := s.feedback.FindOne(ctx, bson.M{"interviewId": interviewID, "userId": userID}).Decode(&feedback)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	return &feedback, nil
}

func (s *Store) DeleteFeedbackByUser(ctx context.Context, userID string) (int64, error) {
	res, err := s.feedback.DeleteMany(ctx, bson.M{"userId": userID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

func (s *Store) Ping(ctx context.Context) error {
	return s.client.raw.Ping(ctx, readpref.Primary())
}

func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

var _ store.Store = (*Store)(nil)
