package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/johnquangdev/meeting-summarizer/internal/domain/entities"
	repo "github.com/johnquangdev/meeting-summarizer/internal/domain/repositories"
)

// SummaryCollection is the Mongo collection holding summary documents
const SummaryCollection = "summaries"

type summaryDocument struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	Transcript string             `bson:"transcript"`
	Prompt     string             `bson:"prompt"`
	Generated  string             `bson:"generated"`
	Edited     string             `bson:"edited"`
	Model      string             `bson:"model,omitempty"`
	CreatedAt  time.Time          `bson:"createdAt"`
	UpdatedAt  time.Time          `bson:"updatedAt"`
}

func (d *summaryDocument) toEntity() *entities.Summary {
	return &entities.Summary{
		ID:         d.ID.Hex(),
		Transcript: d.Transcript,
		Prompt:     d.Prompt,
		Generated:  d.Generated,
		Edited:     d.Edited,
		Model:      d.Model,
		CreatedAt:  d.CreatedAt,
		UpdatedAt:  d.UpdatedAt,
	}
}

type mongoSummaryRepository struct {
	coll *mongo.Collection
}

// NewMongoSummaryRepository creates a summary repository on a Mongo database
func NewMongoSummaryRepository(db *mongo.Database) repo.SummaryRepository {
	return &mongoSummaryRepository{coll: db.Collection(SummaryCollection)}
}

func (r *mongoSummaryRepository) Create(ctx context.Context, s *entities.Summary) error {
	if s == nil {
		return errors.New("summary cannot be nil")
	}
	doc := summaryDocument{
		ID:         primitive.NewObjectID(),
		Transcript: s.Transcript,
		Prompt:     s.Prompt,
		Generated:  s.Generated,
		Edited:     s.Edited,
		Model:      s.Model,
		CreatedAt:  s.CreatedAt,
		UpdatedAt:  s.UpdatedAt,
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return err
	}
	s.ID = doc.ID.Hex()
	return nil
}

func (r *mongoSummaryRepository) GetByID(ctx context.Context, id string) (*entities.Summary, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, entities.ErrSummaryNotFound
	}

	var doc summaryDocument
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, entities.ErrSummaryNotFound
		}
		return nil, err
	}
	return doc.toEntity(), nil
}

func (r *mongoSummaryRepository) UpdateEdited(ctx context.Context, id, edited string, at time.Time) (*entities.Summary, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, entities.ErrSummaryNotFound
	}

	var doc summaryDocument
	err = r.coll.FindOneAndUpdate(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": bson.M{"edited": edited, "updatedAt": at}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, entities.ErrSummaryNotFound
		}
		return nil, err
	}
	return doc.toEntity(), nil
}
