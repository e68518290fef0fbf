package mongo

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/cipco/cms-backend/internal/core/domain"
	"github.com/cipco/cms-backend/internal/core/ports"
)

const collectionBlogs = "blogs"

type BlogRepository struct {
	col *mongo.Collection
}

func NewBlogRepository(db *mongo.Database) *BlogRepository {
	return &BlogRepository{col: db.Collection(collectionBlogs)}
}

type mongoBlog struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Title       string             `bson:"title"`
	Content     string             `bson:"content"`
	Author      string             `bson:"author"`
	Category    string             `bson:"category"`
	Image       string             `bson:"image"`
	Summary     string             `bson:"summary"`
	Tags        []string           `bson:"tags"`
	IsPublished bool               `bson:"isPublished"`
	Views       int64              `bson:"views"`
	Likes       int64              `bson:"likes"`
	CreatedAt   time.Time          `bson:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt"`
}

func toMongoBlog(b *domain.Blog) mongoBlog {
	tags := b.Tags
	if tags == nil {
		tags = []string{}
	}
	return mongoBlog{
		Title:       b.Title,
		Content:     b.Content,
		Author:      b.Author,
		Category:    b.Category,
		Image:       b.Image,
		Summary:     b.Summary,
		Tags:        tags,
		IsPublished: b.IsPublished,
		Views:       b.Views,
		Likes:       b.Likes,
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}
}

func (m mongoBlog) toDomain() *domain.Blog {
	tags := m.Tags
	if tags == nil {
		tags = []string{}
	}
	return &domain.Blog{
		ID:          m.ID.Hex(),
		Title:       m.Title,
		Content:     m.Content,
		Author:      m.Author,
		Category:    m.Category,
		Image:       m.Image,
		Summary:     m.Summary,
		Tags:        tags,
		IsPublished: m.IsPublished,
		Views:       m.Views,
		Likes:       m.Likes,
		CreatedAt:   m.CreatedAt.UTC(),
		UpdatedAt:   m.UpdatedAt.UTC(),
	}
}

// Create inserts a new blog document.
func (r *BlogRepository) Create(ctx context.Context, b *domain.Blog) (*domain.Blog, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := toMongoBlog(b)
	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert blog: %w", err)
	}
	doc.ID, _ = res.InsertedID.(primitive.ObjectID)
	return doc.toDomain(), nil
}

func (r *BlogRepository) FindByID(ctx context.Context, id string) (*domain.Blog, error) {
	oid, err := objectID(id, domain.ErrBlogNotFound)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc mongoBlog
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrBlogNotFound
		}
		return nil, fmt.Errorf("find blog: %w", err)
	}
	return doc.toDomain(), nil
}

// Update replaces every editable field. views and likes are left to their
// own counters so a concurrent view hit is not overwritten.
func (r *BlogRepository) Update(ctx context.Context, b *domain.Blog) (*domain.Blog, error) {
	oid, err := objectID(b.ID, domain.ErrBlogNotFound)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := toMongoBlog(b)
	update := bson.M{"$set": bson.M{
		"title":       doc.Title,
		"content":     doc.Content,
		"author":      doc.Author,
		"category":    doc.Category,
		"image":       doc.Image,
		"summary":     doc.Summary,
		"tags":        doc.Tags,
		"isPublished": doc.IsPublished,
		"updatedAt":   doc.UpdatedAt,
	}}

	var updated mongoBlog
	err = r.col.FindOneAndUpdate(ctx, bson.M{"_id": oid}, update,
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&updated)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrBlogNotFound
		}
		return nil, fmt.Errorf("update blog: %w", err)
	}
	return updated.toDomain(), nil
}

func (r *BlogRepository) Delete(ctx context.Context, id string) error {
	oid, err := objectID(id, domain.ErrBlogNotFound)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete blog: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrBlogNotFound
	}
	return nil
}

// List returns blogs newest first. Search is matched literally.
func (r *BlogRepository) List(ctx context.Context, f ports.BlogFilter) ([]*domain.Blog, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{}
	if f.PublishedOnly {
		filter["isPublished"] = true
	}
	if f.Search != "" {
		re := primitive.Regex{Pattern: regexp.QuoteMeta(f.Search), Options: "i"}
		filter["$or"] = bson.A{
			bson.M{"title": re},
			bson.M{"content": re},
		}
	}

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	if f.Skip > 0 {
		opts.SetSkip(f.Skip)
	}
	if f.Limit > 0 {
		opts.SetLimit(f.Limit)
	}

	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("list blogs: %w", err)
	}
	var docs []mongoBlog
	if err := cur.All(ctx, &docs); err != nil {
		return nil, 0, fmt.Errorf("decode blogs: %w", err)
	}

	total, err := r.col.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("count blogs: %w", err)
	}

	blogs := make([]*domain.Blog, len(docs))
	for i, d := range docs {
		blogs[i] = d.toDomain()
	}
	return blogs, total, nil
}

func (r *BlogRepository) Count(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	return r.col.CountDocuments(ctx, bson.M{})
}

// IncrementViews adds delta to the view counter in a single atomic update.
func (r *BlogRepository) IncrementViews(ctx context.Context, id string, delta int64) error {
	oid, err := objectID(id, domain.ErrBlogNotFound)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err = r.col.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$inc": bson.M{"views": delta}})
	return err
}

// EnsureIndexes creates necessary indexes on the blogs collection.
func (r *BlogRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, indexTimeout)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "category", Value: 1}, {Key: "isPublished", Value: 1}}},
		{Keys: bson.D{{Key: "isPublished", Value: 1}, {Key: "createdAt", Value: -1}}},
		{Keys: bson.D{{Key: "createdAt", Value: -1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
