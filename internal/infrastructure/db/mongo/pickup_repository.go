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

	"github.com/medcollect/pickup-api/internal/core/domain"
)

const collectionPickups = "pickups"

// projNoPhoto keeps the photo blob out of every default read; it is only
// reachable through the dedicated photo methods.
var projNoPhoto = bson.M{"photo": 0}

// PickupRepository implements ports.PickupRepository on a MongoDB collection.
type PickupRepository struct {
	col *mongo.Collection
}

func NewPickupRepository(db *mongo.Database) *PickupRepository {
	return &PickupRepository{col: db.Collection(collectionPickups)}
}

type pickupDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	ClinicID  primitive.ObjectID `bson:"clinic"`
	DriverID  primitive.ObjectID `bson:"driver"`
	Date      time.Time          `bson:"date"`
	Note      string             `bson:"note,omitempty"`
	Done      bool               `bson:"done"`
	Photo     []byte             `bson:"photo,omitempty"`
	CreatedAt time.Time          `bson:"created_at,omitempty"`
	UpdatedAt time.Time          `bson:"updated_at,omitempty"`
}

func (d pickupDoc) toDomain() *domain.Pickup {
	return &domain.Pickup{
		ID:        d.ID.Hex(),
		ClinicID:  d.ClinicID.Hex(),
		DriverID:  d.DriverID.Hex(),
		Date:      d.Date,
		Note:      d.Note,
		Done:      d.Done,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

func (r *PickupRepository) Create(ctx context.Context, pickup *domain.Pickup) (*domain.Pickup, error) {
	clinicID, err := oid(pickup.ClinicID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid clinic reference", domain.ErrValidation)
	}
	driverID, err := oid(pickup.DriverID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid driver reference", domain.ErrValidation)
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := pickupDoc{
		ClinicID:  clinicID,
		DriverID:  driverID,
		Date:      pickup.Date,
		Note:      pickup.Note,
		Done:      pickup.Done,
		CreatedAt: pickup.CreatedAt,
		UpdatedAt: pickup.UpdatedAt,
	}
	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert pickup: %w", err)
	}

	created := *pickup
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *PickupRepository) FindByID(ctx context.Context, id string) (*domain.Pickup, error) {
	objID, err := oid(id)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc pickupDoc
	opts := options.FindOne().SetProjection(projNoPhoto)
	if err := r.col.FindOne(ctx, bson.M{"_id": objID}, opts).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("find pickup: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *PickupRepository) List(ctx context.Context, driverID string) ([]*domain.Pickup, error) {
	filter := bson.M{}
	if driverID != "" {
		objID, err := oid(driverID)
		if err != nil {
			return []*domain.Pickup{}, nil
		}
		filter["driver"] = objID
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, filter, options.Find().SetProjection(projNoPhoto))
	if err != nil {
		return nil, fmt.Errorf("list pickups: %w", err)
	}
	defer cur.Close(ctx)

	pickups := make([]*domain.Pickup, 0)
	for cur.Next(ctx) {
		var doc pickupDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode pickup: %w", err)
		}
		pickups = append(pickups, doc.toDomain())
	}
	return pickups, cur.Err()
}

// Update writes the mutable fields only; the photo blob is never touched here.
func (r *PickupRepository) Update(ctx context.Context, pickup *domain.Pickup) error {
	objID, err := oid(pickup.ID)
	if err != nil {
		return err
	}
	clinicID, err := oid(pickup.ClinicID)
	if err != nil {
		return fmt.Errorf("%w: invalid clinic reference", domain.ErrValidation)
	}
	driverID, err := oid(pickup.DriverID)
	if err != nil {
		return fmt.Errorf("%w: invalid driver reference", domain.ErrValidation)
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"clinic":     clinicID,
		"driver":     driverID,
		"date":       pickup.Date,
		"note":       pickup.Note,
		"done":       pickup.Done,
		"updated_at": pickup.UpdatedAt,
	}}
	res, err := r.col.UpdateOne(ctx, bson.M{"_id": objID}, update)
	if err != nil {
		return fmt.Errorf("update pickup: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *PickupRepository) Delete(ctx context.Context, id string) error {
	objID, err := oid(id)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": objID})
	if err != nil {
		return fmt.Errorf("delete pickup: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *PickupRepository) DeleteMany(ctx context.Context, ids []string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteMany(ctx, bson.M{"_id": bson.M{"$in": oids(ids)}})
	if err != nil {
		return 0, fmt.Errorf("delete pickups: %w", err)
	}
	return res.DeletedCount, nil
}

func (r *PickupRepository) GetPhoto(ctx context.Context, id string) ([]byte, error) {
	objID, err := oid(id)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc pickupDoc
	opts := options.FindOne().SetProjection(bson.M{"photo": 1})
	if err := r.col.FindOne(ctx, bson.M{"_id": objID}, opts).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("find pickup photo: %w", err)
	}
	if len(doc.Photo) == 0 {
		return nil, domain.ErrNotFound
	}
	return doc.Photo, nil
}

func (r *PickupRepository) SetPhoto(ctx context.Context, id string, photo []byte) error {
	objID, err := oid(id)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	update := bson.M{"$set": bson.M{"photo": photo, "updated_at": time.Now().UTC()}}
	res, err := r.col.UpdateOne(ctx, bson.M{"_id": objID}, update)
	if err != nil {
		return fmt.Errorf("set pickup photo: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *PickupRepository) ClearPhoto(ctx context.Context, id string) error {
	objID, err := oid(id)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"_id": objID, "photo": bson.M{"$exists": true}}
	update := bson.M{"$unset": bson.M{"photo": ""}, "$set": bson.M{"updated_at": time.Now().UTC()}}
	res, err := r.col.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("clear pickup photo: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// EnsureIndexes creates lookup indexes for the two reference fields.
func (r *PickupRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "driver", Value: 1}}},
		{Keys: bson.D{{Key: "clinic", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
