package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/cipco/cms-backend/internal/core/domain"
)

const collectionTeams = "teams"

type TeamRepository struct {
	col *mongo.Collection
}

func NewTeamRepository(db *mongo.Database) *TeamRepository {
	return &TeamRepository{col: db.Collection(collectionTeams)}
}

type mongoTeamMember struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Name        string             `bson:"name"`
	Designation string             `bson:"designation"`
	Image       string             `bson:"image"`
	CreatedAt   time.Time          `bson:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt"`
}

func (m mongoTeamMember) toDomain() *domain.TeamMember {
	return &domain.TeamMember{
		ID:          m.ID.Hex(),
		Name:        m.Name,
		Designation: m.Designation,
		Image:       m.Image,
		CreatedAt:   m.CreatedAt.UTC(),
		UpdatedAt:   m.UpdatedAt.UTC(),
	}
}

func (r *TeamRepository) Create(ctx context.Context, m *domain.TeamMember) (*domain.TeamMember, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoTeamMember{
		Name:        m.Name,
		Designation: m.Designation,
		Image:       m.Image,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert team member: %w", err)
	}
	doc.ID, _ = res.InsertedID.(primitive.ObjectID)
	return doc.toDomain(), nil
}

func (r *TeamRepository) FindByID(ctx context.Context, id string) (*domain.TeamMember, error) {
	oid, err := objectID(id, domain.ErrTeamMemberNotFound)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc mongoTeamMember
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrTeamMemberNotFound
		}
		return nil, fmt.Errorf("find team member: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *TeamRepository) Update(ctx context.Context, m *domain.TeamMember) (*domain.TeamMember, error) {
	oid, err := objectID(m.ID, domain.ErrTeamMemberNotFound)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"name":        m.Name,
		"designation": m.Designation,
		"image":       m.Image,
		"updatedAt":   m.UpdatedAt,
	}}

	var doc mongoTeamMember
	err = r.col.FindOneAndUpdate(ctx, bson.M{"_id": oid}, update,
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrTeamMemberNotFound
		}
		return nil, fmt.Errorf("update team member: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *TeamRepository) Delete(ctx context.Context, id string) error {
	oid, err := objectID(id, domain.ErrTeamMemberNotFound)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete team member: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrTeamMemberNotFound
	}
	return nil
}

func (r *TeamRepository) List(ctx context.Context) ([]*domain.TeamMember, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("list team members: %w", err)
	}
	var docs []mongoTeamMember
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode team members: %w", err)
	}

	out := make([]*domain.TeamMember, len(docs))
	for i, d := range docs {
		out[i] = d.toDomain()
	}
	return out, nil
}

func (r *TeamRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, indexTimeout)
	defer cancel()

	_, err := r.col.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "createdAt", Value: -1}}},
	})
	return err
}
