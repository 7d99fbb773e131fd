package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/helpdesk/faq-portal/internal/core/domain"
	"github.com/helpdesk/faq-portal/internal/core/ports"
)

const collectionQuestions = "user_questions"

type QuestionRepository struct {
	col *mongo.Collection
}

func NewQuestionRepository(db *mongo.Database) *QuestionRepository {
	return &QuestionRepository{col: db.Collection(collectionQuestions)}
}

type questionDoc struct {
	ID             primitive.ObjectID    `bson:"_id,omitempty"`
	Name           string                `bson:"name"`
	Email          string                `bson:"email"`
	Question       string                `bson:"question"`
	UserID         string                `bson:"user_id"`
	Status         domain.QuestionStatus `bson:"status"`
	Answer         string                `bson:"answer"`
	AnsweredBy     string                `bson:"answered_by,omitempty"`
	AnsweredAt     *time.Time            `bson:"answered_at,omitempty"`
	Category       string                `bson:"category,omitempty"`
	Tags           []string              `bson:"tags"`
	ConvertedToFAQ string                `bson:"converted_to_faq,omitempty"`
	CreatedAt      time.Time             `bson:"created_at"`
}

func (d questionDoc) toDomain() *domain.UserQuestion {
	tags := d.Tags
	if tags == nil {
		tags = []string{}
	}
	q := &domain.UserQuestion{
		ID:             d.ID.Hex(),
		Name:           d.Name,
		Email:          d.Email,
		Question:       d.Question,
		UserID:         d.UserID,
		Status:         d.Status,
		Answer:         d.Answer,
		AnsweredBy:     d.AnsweredBy,
		Category:       d.Category,
		Tags:           tags,
		ConvertedToFAQ: d.ConvertedToFAQ,
		CreatedAt:      d.CreatedAt.UTC(),
	}
	if d.AnsweredAt != nil {
		t := d.AnsweredAt.UTC()
		q.AnsweredAt = &t
	}
	return q
}

// Create inserts a new question document and returns it with the generated id.
func (r *QuestionRepository) Create(ctx context.Context, q *domain.UserQuestion) (*domain.UserQuestion, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := questionDoc{
		Name:      q.Name,
		Email:     q.Email,
		Question:  q.Question,
		UserID:    q.UserID,
		Status:    q.Status,
		Answer:    q.Answer,
		Category:  q.Category,
		Tags:      q.Tags,
		CreatedAt: q.CreatedAt,
	}

	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		return nil, err
	}

	doc.ID = res.InsertedID.(primitive.ObjectID)
	return doc.toDomain(), nil
}

// FindByID retrieves a question by its hex id. A malformed id is treated as not found.
func (r *QuestionRepository) FindByID(ctx context.Context, id string) (*domain.UserQuestion, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrQuestionNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc questionDoc
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrQuestionNotFound
		}
		return nil, err
	}
	return doc.toDomain(), nil
}

// FindByEmail returns all questions submitted with the given email, newest first.
func (r *QuestionRepository) FindByEmail(ctx context.Context, email string) ([]*domain.UserQuestion, error) {
	return r.find(ctx, bson.M{"email": email})
}

// List returns questions matching the filter, newest first.
func (r *QuestionRepository) List(ctx context.Context, filter ports.ListQuestionsFilter) ([]*domain.UserQuestion, error) {
	query := bson.M{}
	if filter.Status != "" {
		query["status"] = filter.Status
	}
	if filter.UserID != "" {
		query["user_id"] = filter.UserID
	}
	return r.find(ctx, query)
}

func (r *QuestionRepository) find(ctx context.Context, query bson.M) ([]*domain.UserQuestion, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := r.col.Find(ctx, query, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []*domain.UserQuestion{}
	for cur.Next(ctx) {
		var doc questionDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		out = append(out, doc.toDomain())
	}
	return out, cur.Err()
}

// SetAnswer stores the answer and moves the question to answered. Category and
// tags are only written when supplied.
func (r *QuestionRepository) SetAnswer(ctx context.Context, id string, upd ports.AnswerUpdate) (*domain.UserQuestion, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrQuestionNotFound
	}

	set := bson.M{
		"answer":      upd.Answer,
		"answered_by": upd.AnsweredBy,
		"answered_at": upd.AnsweredAt,
		"status":      domain.StatusAnswered,
	}
	if upd.Category != nil {
		set["category"] = *upd.Category
	}
	if upd.Tags != nil {
		set["tags"] = *upd.Tags
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc questionDoc
	err = r.col.FindOneAndUpdate(
		ctx,
		bson.M{"_id": oid},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrQuestionNotFound
		}
		return nil, err
	}
	return doc.toDomain(), nil
}

// MarkConverted flips the question from answered to converted with a
// compare-and-swap on status. A missing document yields ErrQuestionNotFound;
// a document no longer in answered yields ErrConversionConflict so concurrent
// converts cannot double-create FAQs.
func (r *QuestionRepository) MarkConverted(ctx context.Context, id, faqID string) (*domain.UserQuestion, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrQuestionNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc questionDoc
	err = r.col.FindOneAndUpdate(
		ctx,
		bson.M{"_id": oid, "status": domain.StatusAnswered},
		bson.M{"$set": bson.M{"status": domain.StatusConverted, "converted_to_faq": faqID}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err == nil {
		return doc.toDomain(), nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, err
	}

	// The swap missed: distinguish a vanished question from a lost race.
	if _, findErr := r.FindByID(ctx, id); findErr != nil {
		return nil, findErr
	}
	return nil, domain.ErrConversionConflict
}

// EnsureIndexes creates the indexes backing the question listing filters.
func (r *QuestionRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "user_id", Value: 1}}},
		{Keys: bson.D{{Key: "email", Value: 1}}},
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
