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

const collectionDrivers = "drivers"

// DriverRepository implements ports.DriverRepository on a MongoDB collection.
type DriverRepository struct {
	col *mongo.Collection
}

func NewDriverRepository(db *mongo.Database) *DriverRepository {
	return &DriverRepository{col: db.Collection(collectionDrivers)}
}

type driverDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	UserID    primitive.ObjectID `bson:"user"`
	Region    domain.Region      `bson:"region"`
	CreatedAt time.Time          `bson:"created_at,omitempty"`
	UpdatedAt time.Time          `bson:"updated_at,omitempty"`
}

func (d driverDoc) toDomain() *domain.Driver {
	return &domain.Driver{
		ID:        d.ID.Hex(),
		UserID:    d.UserID.Hex(),
		Region:    d.Region,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

func (r *DriverRepository) Create(ctx context.Context, driver *domain.Driver) (*domain.Driver, error) {
	userID, err := oid(driver.UserID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid user reference", domain.ErrValidation)
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := driverDoc{
		UserID:    userID,
		Region:    driver.Region,
		CreatedAt: driver.CreatedAt,
		UpdatedAt: driver.UpdatedAt,
	}
	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrDuplicate
		}
		return nil, fmt.Errorf("insert driver: %w", err)
	}

	created := *driver
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *DriverRepository) FindByID(ctx context.Context, id string) (*domain.Driver, error) {
	objID, err := oid(id)
	if err != nil {
		return nil, err
	}
	return r.findOne(ctx, bson.M{"_id": objID})
}

func (r *DriverRepository) FindByUserID(ctx context.Context, userID string) (*domain.Driver, error) {
	objID, err := oid(userID)
	if err != nil {
		return nil, err
	}
	return r.findOne(ctx, bson.M{"user": objID})
}

func (r *DriverRepository) findOne(ctx context.Context, filter bson.M) (*domain.Driver, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc driverDoc
	if err := r.col.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("find driver: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *DriverRepository) List(ctx context.Context) ([]*domain.Driver, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("list drivers: %w", err)
	}
	defer cur.Close(ctx)

	drivers := make([]*domain.Driver, 0)
	for cur.Next(ctx) {
		var doc driverDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode driver: %w", err)
		}
		drivers = append(drivers, doc.toDomain())
	}
	return drivers, cur.Err()
}

func (r *DriverRepository) Update(ctx context.Context, driver *domain.Driver) error {
	objID, err := oid(driver.ID)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"region":     driver.Region,
		"updated_at": driver.UpdatedAt,
	}}
	res, err := r.col.UpdateOne(ctx, bson.M{"_id": objID}, update)
	if err != nil {
		return fmt.Errorf("update driver: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *DriverRepository) Delete(ctx context.Context, id string) error {
	objID, err := oid(id)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": objID})
	if err != nil {
		return fmt.Errorf("delete driver: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *DriverRepository) DeleteMany(ctx context.Context, ids []string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteMany(ctx, bson.M{"_id": bson.M{"$in": oids(ids)}})
	if err != nil {
		return 0, fmt.Errorf("delete drivers: %w", err)
	}
	return res.DeletedCount, nil
}

func (r *DriverRepository) DeleteByUserIDs(ctx context.Context, userIDs []string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteMany(ctx, bson.M{"user": bson.M{"$in": oids(userIDs)}})
	if err != nil {
		return 0, fmt.Errorf("delete drivers by user: %w", err)
	}
	return res.DeletedCount, nil
}

// EnsureIndexes enforces one driver record per user.
func (r *DriverRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "user", Value: 1}}, Options: options.Index().SetUnique(true)},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
