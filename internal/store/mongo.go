package store

import (
	"context"
	"errors"
	"time"

	"github.com/teresa-solution/site-builder-service/internal/model"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

const tenantsCollection = "tenants"

// MongoStore keeps one document per tenant in the "tenants" collection,
// with components and pages embedded.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

type mongoTenant struct {
	ID           bson.ObjectID `bson:"_id"`
	model.Tenant `bson:",inline"`
}

// NewMongoStore creates the client. The driver connects lazily, so no round
// trip happens until the first operation.
func NewMongoStore(ctx context.Context, uri, database string) (*MongoStore, error) {
	client, err := mongo.Connect(options.Client().ApplyURI(uri))
	if err != nil {
		return nil, wrap("connect", err)
	}
	return &MongoStore{
		client: client,
		coll:   client.Database(database).Collection(tenantsCollection),
	}, nil
}

// EnsureIndexes creates the lookup indexes used by public resolution.
func (s *MongoStore) EnsureIndexes(ctx context.Context) error {
	_, err := s.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "domain", Value: 1}},
			Options: options.Index().SetName("idx_domain"),
		},
		{
			Keys:    bson.D{{Key: "subdomain", Value: 1}},
			Options: options.Index().SetName("idx_subdomain"),
		},
	})
	return wrap("ensure indexes", err)
}

func (s *MongoStore) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.client.Disconnect(ctx)
}

func (s *MongoStore) Ping(ctx context.Context) error {
	return wrap("ping", s.client.Ping(ctx, nil))
}

func (s *MongoStore) FindAll(ctx context.Context) ([]model.Tenant, error) {
	cur, err := s.coll.Find(ctx, bson.D{})
	if err != nil {
		return nil, wrap("find all", err)
	}
	var docs []mongoTenant
	if err := cur.All(ctx, &docs); err != nil {
		return nil, wrap("find all", err)
	}
	tenants := make([]model.Tenant, 0, len(docs))
	for i := range docs {
		tenants = append(tenants, *fromMongo(&docs[i]))
	}
	return tenants, nil
}

func (s *MongoStore) FindByID(ctx context.Context, id string) (*model.Tenant, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}
	return s.findOne(ctx, "find by id", bson.D{{Key: "_id", Value: oid}})
}

func (s *MongoStore) FindByDomainOrSubdomain(ctx context.Context, key string) (*model.Tenant, error) {
	filter := bson.D{{Key: "$or", Value: bson.A{
		bson.D{{Key: "domain", Value: key}},
		bson.D{{Key: "subdomain", Value: key}},
	}}}
	return s.findOne(ctx, "find by domain", filter)
}

func (s *MongoStore) findOne(ctx context.Context, op string, filter bson.D) (*model.Tenant, error) {
	var doc mongoTenant
	err := s.coll.FindOne(ctx, filter).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, wrap(op, err)
	}
	return fromMongo(&doc), nil
}

func (s *MongoStore) Insert(ctx context.Context, tenant *model.Tenant) (string, error) {
	ts := now()
	doc := mongoTenant{ID: bson.NewObjectID(), Tenant: *tenant}
	doc.Tenant.CreatedAt = ts
	doc.Tenant.UpdatedAt = ts
	doc.Tenant.Normalize()

	if _, err := s.coll.InsertOne(ctx, doc); err != nil {
		return "", wrap("insert", err)
	}
	*tenant = doc.Tenant
	tenant.ID = doc.ID.Hex()
	return tenant.ID, nil
}

func (s *MongoStore) UpdatePartial(ctx context.Context, id string, patch model.TenantPatch) (bool, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return false, nil
	}
	set := bson.M{}
	for k, v := range patch.Fields() {
		set[k] = v
	}
	set["updatedAt"] = now()

	res, err := s.coll.UpdateOne(ctx, bson.D{{Key: "_id", Value: oid}}, bson.D{{Key: "$set", Value: set}})
	if err != nil {
		return false, wrap("update", err)
	}
	return res.MatchedCount > 0, nil
}

func (s *MongoStore) Delete(ctx context.Context, id string) (bool, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return false, nil
	}
	res, err := s.coll.DeleteOne(ctx, bson.D{{Key: "_id", Value: oid}})
	if err != nil {
		return false, wrap("delete", err)
	}
	return res.DeletedCount > 0, nil
}

func fromMongo(doc *mongoTenant) *model.Tenant {
	tenant := doc.Tenant
	tenant.ID = doc.ID.Hex()
	tenant.Normalize()
	for i := range tenant.Components {
		tenant.Components[i].Data = normalizeData(tenant.Components[i].Data)
	}
	return &tenant
}

// normalizeData turns nested bson.D / bson.A values decoded into the open
// data map back into plain maps and slices.
func normalizeData(d model.ComponentData) model.ComponentData {
	out := make(model.ComponentData, len(d))
	for k, v := range d {
		out[k] = normalizeValue(v)
	}
	return out
}

func normalizeValue(v any) any {
	switch t := v.(type) {
	case bson.D:
		m := make(map[string]any, len(t))
		for _, e := range t {
			m[e.Key] = normalizeValue(e.Value)
		}
		return m
	case bson.M:
		m := make(map[string]any, len(t))
		for k, e := range t {
			m[k] = normalizeValue(e)
		}
		return m
	case map[string]any:
		m := make(map[string]any, len(t))
		for k, e := range t {
			m[k] = normalizeValue(e)
		}
		return m
	case bson.A:
		s := make([]any, len(t))
		for i, e := range t {
			s[i] = normalizeValue(e)
		}
		return s
	case []any:
		s := make([]any, len(t))
		for i, e := range t {
			s[i] = normalizeValue(e)
		}
		return s
	default:
		return v
	}
}
