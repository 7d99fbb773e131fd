package mongo

import (
	"context"
	"errors"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/helpdesk/faq-portal/internal/core/domain"
	"github.com/helpdesk/faq-portal/internal/core/ports"
)

const collectionFAQs = "faqs"

type FAQRepository struct {
	col *mongo.Collection
}

func NewFAQRepository(db *mongo.Database) *FAQRepository {
	return &FAQRepository{col: db.Collection(collectionFAQs)}
}

type faqDoc struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	Question   string             `bson:"question"`
	Answer     string             `bson:"answer"`
	Category   string             `bson:"category"`
	Tags       []string           `bson:"tags"`
	Views      int64              `bson:"views"`
	HelpfulYes int64              `bson:"helpful_yes"`
	HelpfulNo  int64              `bson:"helpful_no"`
	CreatedBy  string             `bson:"created_by,omitempty"`
	CreatedAt  time.Time          `bson:"created_at"`
}

func (d faqDoc) toDomain() *domain.FAQ {
	tags := d.Tags
	if tags == nil {
		tags = []string{}
	}
	return &domain.FAQ{
		ID:         d.ID.Hex(),
		Question:   d.Question,
		Answer:     d.Answer,
		Category:   d.Category,
		Tags:       tags,
		Views:      d.Views,
		HelpfulYes: d.HelpfulYes,
		HelpfulNo:  d.HelpfulNo,
		CreatedBy:  d.CreatedBy,
		CreatedAt:  d.CreatedAt.UTC(),
	}
}

// Create inserts a new FAQ document and returns it with the generated id.
func (r *FAQRepository) Create(ctx context.Context, f *domain.FAQ) (*domain.FAQ, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := faqDoc{
		Question:   f.Question,
		Answer:     f.Answer,
		Category:   f.Category,
		Tags:       f.Tags,
		CreatedBy:  f.CreatedBy,
		CreatedAt:  f.CreatedAt,
		Views:      f.Views,
		HelpfulYes: f.HelpfulYes,
		HelpfulNo:  f.HelpfulNo,
	}

	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		return nil, err
	}

	doc.ID = res.InsertedID.(primitive.ObjectID)
	return doc.toDomain(), nil
}

// FindByID retrieves a FAQ by its hex id. A malformed id is treated as not found.
func (r *FAQRepository) FindByID(ctx context.Context, id string) (*domain.FAQ, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrFAQNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc faqDoc
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrFAQNotFound
		}
		return nil, err
	}
	return doc.toDomain(), nil
}

// FindByIDs retrieves the FAQs whose ids appear in ids. Malformed or unknown
// ids are silently skipped.
func (r *FAQRepository) FindByIDs(ctx context.Context, ids []string) ([]*domain.FAQ, error) {
	oids := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		if oid, err := primitive.ObjectIDFromHex(id); err == nil {
			oids = append(oids, oid)
		}
	}
	if len(oids) == 0 {
		return []*domain.FAQ{}, nil
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{"_id": bson.M{"$in": oids}})
	if err != nil {
		return nil, err
	}
	return decodeAll(ctx, cur)
}

// List returns one page of FAQs matching the filter plus the total match count.
func (r *FAQRepository) List(ctx context.Context, filter ports.ListFAQsFilter) ([]*domain.FAQ, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := bson.M{}
	if filter.Search != "" {
		re := primitive.Regex{Pattern: regexp.QuoteMeta(filter.Search), Options: "i"}
		query["$or"] = bson.A{
			bson.M{"question": re},
			bson.M{"answer": re},
			bson.M{"tags": re},
		}
	}
	if filter.Category != "" {
		query["category"] = filter.Category
	}
	if filter.Tag != "" {
		query["tags"] = filter.Tag
	}

	total, err := r.col.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().
		SetSort(sortOrder(filter.Sort)).
		SetSkip(int64((filter.Page - 1) * filter.Limit)).
		SetLimit(int64(filter.Limit))

	cur, err := r.col.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, err
	}

	faqs, err := decodeAll(ctx, cur)
	if err != nil {
		return nil, 0, err
	}
	return faqs, total, nil
}

// sortOrder resolves the sort key to a total order; unknown keys fall back to
// newest first.
func sortOrder(sort string) bson.D {
	switch sort {
	case "helpful":
		return bson.D{{Key: "helpful_yes", Value: -1}}
	case "views":
		return bson.D{{Key: "views", Value: -1}}
	default:
		return bson.D{{Key: "created_at", Value: -1}}
	}
}

// Facets returns the distinct categories and tags over the whole collection.
func (r *FAQRepository) Facets(ctx context.Context) ([]string, []string, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	categories, err := r.distinctStrings(ctx, "category")
	if err != nil {
		return nil, nil, err
	}
	tags, err := r.distinctStrings(ctx, "tags")
	if err != nil {
		return nil, nil, err
	}
	return categories, tags, nil
}

func (r *FAQRepository) distinctStrings(ctx context.Context, field string) ([]string, error) {
	values, err := r.col.Distinct(ctx, field, bson.M{})
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(values))
	for _, v := range values {
		if s, ok := v.(string); ok && s != "" {
			out = append(out, s)
		}
	}
	return out, nil
}

// Update applies the non-nil fields of upd and returns the updated FAQ.
func (r *FAQRepository) Update(ctx context.Context, id string, upd ports.FAQUpdate) (*domain.FAQ, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrFAQNotFound
	}

	set := bson.M{}
	if upd.Question != nil {
		set["question"] = *upd.Question
	}
	if upd.Answer != nil {
		set["answer"] = *upd.Answer
	}
	if upd.Category != nil {
		set["category"] = *upd.Category
	}
	if upd.Tags != nil {
		set["tags"] = *upd.Tags
	}
	if len(set) == 0 {
		return r.FindByID(ctx, id)
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc faqDoc
	err = r.col.FindOneAndUpdate(
		ctx,
		bson.M{"_id": oid},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrFAQNotFound
		}
		return nil, err
	}
	return doc.toDomain(), nil
}

// Delete removes a FAQ document.
func (r *FAQRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrFAQNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domain.ErrFAQNotFound
	}
	return nil
}

// IncrementViews bumps the view counter by one.
func (r *FAQRepository) IncrementViews(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrFAQNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$inc": bson.M{"views": 1}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrFAQNotFound
	}
	return nil
}

// IncrementVote bumps the helpful yes/no counter and returns the updated FAQ.
func (r *FAQRepository) IncrementVote(ctx context.Context, id string, helpful bool) (*domain.FAQ, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrFAQNotFound
	}

	field := "helpful_no"
	if helpful {
		field = "helpful_yes"
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc faqDoc
	err = r.col.FindOneAndUpdate(
		ctx,
		bson.M{"_id": oid},
		bson.M{"$inc": bson.M{field: 1}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrFAQNotFound
		}
		return nil, err
	}
	return doc.toDomain(), nil
}

// EnsureIndexes creates the indexes backing the listing filters and sorts.
func (r *FAQRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "category", Value: 1}}},
		{Keys: bson.D{{Key: "tags", Value: 1}}},
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}

func decodeAll(ctx context.Context, cur *mongo.Cursor) ([]*domain.FAQ, error) {
	defer cur.Close(ctx)

	out := []*domain.FAQ{}
	for cur.Next(ctx) {
		var doc faqDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		out = append(out, doc.toDomain())
	}
	return out, cur.Err()
}
