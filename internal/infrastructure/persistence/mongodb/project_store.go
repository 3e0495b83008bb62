package mongodb

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/s4084228/toc-backend/internal/application/ports"
	"github.com/s4084228/toc-backend/internal/domain"
)

// projectDoc is the persisted shape of a Theory-of-Change document. ownerId is
// the account uuid in string form; projectId is the per-owner numeric string.
type projectDoc struct {
	ID          bson.ObjectID               `bson:"_id,omitempty"`
	OwnerID     string                      `bson:"ownerId"`
	ProjectID   string                      `bson:"projectId"`
	Title       string                      `bson:"title"`
	Status      string                      `bson:"status"`
	Content     map[string]any              `bson:"content"`
	ColorConfig map[string]domain.ColorPair `bson:"colorConfig"`
	CreatedAt   time.Time                   `bson:"createdAt"`
	UpdatedAt   time.Time                   `bson:"updatedAt"`
}

// ProjectStore implements ports.ProjectStore over a MongoDB collection.
type ProjectStore struct {
	coll *mongo.Collection
}

func NewProjectStore(client *mongo.Client, database, collection string) *ProjectStore {
	return &ProjectStore{coll: client.Database(database).Collection(collection)}
}

func (s *ProjectStore) Find(ctx context.Context, ownerID domain.UserID, projectID string) (*domain.Project, error) {
	filter := bson.D{{Key: "ownerId", Value: ownerID.String()}, {Key: "projectId", Value: projectID}}
	var doc projectDoc
	if err := s.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return docToDomain(&doc), nil
}

func (s *ProjectStore) TitleExists(ctx context.Context, ownerID domain.UserID, title, excludeID string) (bool, error) {
	// Case-insensitive compare happens in Go; owner project counts are small.
	filter := bson.D{{Key: "ownerId", Value: ownerID.String()}}
	opts := options.Find().SetProjection(bson.D{{Key: "projectId", Value: 1}, {Key: "title", Value: 1}})
	cur, err := s.coll.Find(ctx, filter, opts)
	if err != nil {
		return false, err
	}
	defer cur.Close(ctx)
	want := strings.TrimSpace(title)
	for cur.Next(ctx) {
		var doc projectDoc
		if err := cur.Decode(&doc); err != nil {
			return false, err
		}
		if doc.ProjectID == excludeID {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(doc.Title), want) {
			return true, nil
		}
	}
	return false, cur.Err()
}

func (s *ProjectStore) Insert(ctx context.Context, p *domain.Project) error {
	_, err := s.coll.InsertOne(ctx, domainToDoc(p))
	return err
}

func (s *ProjectStore) Replace(ctx context.Context, p *domain.Project) error {
	filter := bson.D{{Key: "ownerId", Value: p.OwnerID.String()}, {Key: "projectId", Value: p.ProjectID}}
	_, err := s.coll.ReplaceOne(ctx, filter, domainToDoc(p))
	return err
}

func (s *ProjectStore) ListByOwner(ctx context.Context, ownerID domain.UserID) ([]*domain.Project, error) {
	filter := bson.D{{Key: "ownerId", Value: ownerID.String()}}
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cur, err := s.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var out []*domain.Project
	for cur.Next(ctx) {
		var doc projectDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		out = append(out, docToDomain(&doc))
	}
	return out, cur.Err()
}

func (s *ProjectStore) Delete(ctx context.Context, ownerID domain.UserID, projectID string) (bool, error) {
	filter := bson.D{{Key: "ownerId", Value: ownerID.String()}, {Key: "projectId", Value: projectID}}
	res, err := s.coll.DeleteOne(ctx, filter)
	if err != nil {
		return false, err
	}
	return res.DeletedCount > 0, nil
}

func domainToDoc(p *domain.Project) *projectDoc {
	content := make(map[string]any, len(p.Content))
	for sec, v := range p.Content {
		content[string(sec)] = v
	}
	colors := make(map[string]domain.ColorPair, len(p.ColorConfig))
	for sec, pair := range p.ColorConfig {
		colors[string(sec)] = pair
	}
	return &projectDoc{
		OwnerID:     p.OwnerID.String(),
		ProjectID:   p.ProjectID,
		Title:       p.Title,
		Status:      string(p.Status),
		Content:     content,
		ColorConfig: colors,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func docToDomain(doc *projectDoc) *domain.Project {
	content := domain.NewContent()
	for k, v := range doc.Content {
		if sec, ok := domain.ParseSection(k); ok {
			content[sec] = v
		}
	}
	colors := domain.NewColorConfig()
	for k, pair := range doc.ColorConfig {
		if sec, ok := domain.ParseSection(k); ok {
			colors[sec] = pair
		}
	}
	ownerID, _ := parseUserID(doc.OwnerID)
	return &domain.Project{
		ProjectID:   doc.ProjectID,
		OwnerID:     ownerID,
		Title:       doc.Title,
		Status:      domain.ProjectStatus(doc.Status),
		Content:     content,
		ColorConfig: colors,
		CreatedAt:   doc.CreatedAt,
		UpdatedAt:   doc.UpdatedAt,
	}
}

func parseUserID(s string) (domain.UserID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return domain.UserID{}, err
	}
	return domain.NewUserID(id), nil
}

var _ ports.ProjectStore = (*ProjectStore)(nil)
