package repository

import (
	"context"
	"errors"

	"randomusers/internal/randomuser/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// userDocument is the stored shape. Location is bson.M so nested documents
// decode as maps rather than ordered D slices.
type userDocument struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Gender    string             `bson:"gender"`
	FirstName string             `bson:"first_name"`
	LastName  string             `bson:"last_name"`
	Location  bson.M             `bson:"location"`
	Email     string             `bson:"email"`
	Phone     string             `bson:"phone"`
	Picture   string             `bson:"picture"`
}

// MongoUserRepository stores users in one collection. InsertBatch needs a
// replica set or sharded cluster because it runs inside a transaction.
type MongoUserRepository struct {
	Users  *mongo.Collection
	Client *mongo.Client
}

func NewMongoUserRepository(db *mongo.Database, collectionName string) *MongoUserRepository {
	return &MongoUserRepository{
		Users:  db.Collection(collectionName),
		Client: db.Client(),
	}
}

func (r *MongoUserRepository) EnsureSchema(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetName("idx_email"),
		},
		{
			Keys: bson.D{
				{Key: "last_name", Value: 1},
				{Key: "first_name", Value: 1},
			},
			Options: options.Index().SetName("idx_name"),
		},
	}
	_, err := r.Users.Indexes().CreateMany(ctx, indexes)
	return err
}

func (r *MongoUserRepository) Ping(ctx context.Context) error {
	return r.Client.Ping(ctx, readpref.Primary())
}

func (r *MongoUserRepository) InsertBatch(ctx context.Context, users []*model.User) (int, error) {
	if len(users) == 0 {
		return 0, nil
	}

	docs := make([]interface{}, 0, len(users))
	for _, u := range users {
		docs = append(docs, toDocument(u))
	}

	session, err := r.Client.StartSession()
	if err != nil {
		return 0, err
	}
	defer session.EndSession(ctx)

	callback := func(sessCtx mongo.SessionContext) (interface{}, error) {
		res, err := r.Users.InsertMany(sessCtx, docs, options.InsertMany().SetOrdered(true))
		if err != nil {
			return nil, err
		}
		return res.InsertedIDs, nil
	}

	out, err := session.WithTransaction(ctx, callback)
	if err != nil {
		return 0, err
	}

	insertedIDs, _ := out.([]interface{})
	for i, id := range insertedIDs {
		if oid, ok := id.(primitive.ObjectID); ok && i < len(users) {
			users[i].ID = oid.Hex()
		}
	}
	return len(insertedIDs), nil
}

func (r *MongoUserRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}

	var doc userDocument
	if err := r.Users.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return fromDocument(&doc), nil
}

func (r *MongoUserRepository) FindPage(ctx context.Context, page, size int) ([]*model.User, int64, error) {
	total, err := r.Users.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, 0, err
	}

	findOptions := options.Find().
		SetSort(bson.D{{Key: "_id", Value: -1}}).
		SetSkip(offset(page, size)).
		SetLimit(int64(size))

	cursor, err := r.Users.Find(ctx, bson.M{}, findOptions)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	var docs []userDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, 0, err
	}

	out := make([]*model.User, 0, len(docs))
	for i := range docs {
		out = append(out, fromDocument(&docs[i]))
	}
	return out, total, nil
}

func (r *MongoUserRepository) FindRandom(ctx context.Context) (*model.User, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$sample", Value: bson.D{{Key: "size", Value: 1}}}},
	}
	cursor, err := r.Users.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []userDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		return nil, ErrNotFound
	}
	return fromDocument(&docs[0]), nil
}

func (r *MongoUserRepository) Count(ctx context.Context) (int64, error) {
	return r.Users.CountDocuments(ctx, bson.M{})
}

func (r *MongoUserRepository) DeleteAll(ctx context.Context) (int64, error) {
	res, err := r.Users.DeleteMany(ctx, bson.M{})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

func toDocument(u *model.User) *userDocument {
	location := bson.M{}
	for k, v := range u.Location {
		location[k] = v
	}
	return &userDocument{
		Gender:    u.Gender,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Location:  location,
		Email:     u.Email,
		Phone:     u.Phone,
		Picture:   u.Picture,
	}
}

func fromDocument(doc *userDocument) *model.User {
	location, _ := plainValue(doc.Location).(map[string]any)
	if location == nil {
		location = map[string]any{}
	}
	return &model.User{
		ID:        doc.ID.Hex(),
		Gender:    doc.Gender,
		FirstName: doc.FirstName,
		LastName:  doc.LastName,
		Location:  location,
		Email:     doc.Email,
		Phone:     doc.Phone,
		Picture:   doc.Picture,
	}
}

// plainValue converts decoded bson containers into plain Go maps and slices.
func plainValue(v any) any {
	switch val := v.(type) {
	case bson.M:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[k] = plainValue(item)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[k] = plainValue(item)
		}
		return out
	case bson.D:
		out := make(map[string]any, len(val))
		for _, e := range val {
			out[e.Key] = plainValue(e.Value)
		}
		return out
	case bson.A:
		out := make([]any, 0, len(val))
		for _, item := range val {
			out = append(out, plainValue(item))
		}
		return out
	default:
		return v
	}
}
