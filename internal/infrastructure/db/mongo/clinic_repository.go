package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/medcollect/pickup-api/internal/core/domain"
)

const collectionClinics = "clinics"

// ClinicRepository implements ports.ClinicRepository on a MongoDB collection.
type ClinicRepository struct {
	col *mongo.Collection
}

func NewClinicRepository(db *mongo.Database) *ClinicRepository {
	return &ClinicRepository{col: db.Collection(collectionClinics)}
}

type clinicDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	CNPJ      int64              `bson:"cnpj"`
	Name      string             `bson:"name"`
	Address   domain.Address     `bson:"address,omitempty"`
	Phone     int64              `bson:"phone,omitempty"`
	Contact   string             `bson:"contact,omitempty"`
	CreatedAt time.Time          `bson:"created_at,omitempty"`
	UpdatedAt time.Time          `bson:"updated_at,omitempty"`
}

func clinicToDoc(c *domain.Clinic) clinicDoc {
	return clinicDoc{
		CNPJ:      c.CNPJ,
		Name:      c.Name,
		Address:   c.Address,
		Phone:     c.Phone,
		Contact:   c.Contact,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func (d clinicDoc) toDomain() *domain.Clinic {
	return &domain.Clinic{
		ID:        d.ID.Hex(),
		CNPJ:      d.CNPJ,
		Name:      d.Name,
		Address:   d.Address,
		Phone:     d.Phone,
		Contact:   d.Contact,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

func (r *ClinicRepository) Create(ctx context.Context, clinic *domain.Clinic) (*domain.Clinic, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.InsertOne(ctx, clinicToDoc(clinic))
	if err != nil {
		return nil, fmt.Errorf("insert clinic: %w", err)
	}

	created := *clinic
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *ClinicRepository) FindByID(ctx context.Context, id string) (*domain.Clinic, error) {
	objID, err := oid(id)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc clinicDoc
	if err := r.col.FindOne(ctx, bson.M{"_id": objID}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("find clinic: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *ClinicRepository) List(ctx context.Context) ([]*domain.Clinic, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("list clinics: %w", err)
	}
	defer cur.Close(ctx)

	clinics := make([]*domain.Clinic, 0)
	for cur.Next(ctx) {
		var doc clinicDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode clinic: %w", err)
		}
		clinics = append(clinics, doc.toDomain())
	}
	return clinics, cur.Err()
}

func (r *ClinicRepository) Update(ctx context.Context, clinic *domain.Clinic) error {
	objID, err := oid(clinic.ID)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": objID}, clinicToDoc(clinic))
	if err != nil {
		return fmt.Errorf("update clinic: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *ClinicRepository) Delete(ctx context.Context, id string) error {
	objID, err := oid(id)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": objID})
	if err != nil {
		return fmt.Errorf("delete clinic: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *ClinicRepository) DeleteMany(ctx context.Context, ids []string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteMany(ctx, bson.M{"_id": bson.M{"$in": oids(ids)}})
	if err != nil {
		return 0, fmt.Errorf("delete clinics: %w", err)
	}
	return res.DeletedCount, nil
}
