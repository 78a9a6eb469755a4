// internal/persistence/mongo.go
//
// Gateway over documents written by the first builder.
//
// Context
// -------
// Each site is one document in the `sites` collection:
//
//	{ _id, userId, name, domain, isPublished, publishedAt, updatedAt,
//	  components: [ { id, type, content, styles, isSelected, position } ] }
//
// There are no separate pages; the site's component list is its home page,
// so FetchPage only answers slug "/" and the page id equals the site id.
// Components are converted through document.FromLegacy and written back with
// document.ToLegacy, which drops selection flags and positions.
package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/yanizio/sitebuilder/internal/document"
	"github.com/yanizio/sitebuilder/internal/routing"
)

const sitesCollection = "sites"

type mongoSite struct {
	ID          string                     `bson:"_id"`
	OwnerID     string                     `bson:"userId"`
	Name        string                     `bson:"name"`
	Domain      string                     `bson:"domain"`
	IsPublished bool                       `bson:"isPublished"`
	PublishedAt *time.Time                 `bson:"publishedAt,omitempty"`
	UpdatedAt   time.Time                  `bson:"updatedAt"`
	Components  []document.LegacyComponent `bson:"components"`
}

// MongoGateway reads and writes legacy site documents.
type MongoGateway struct {
	client *mongo.Client
	sites  *mongo.Collection
	now    func() time.Time
}

// DialMongo connects to uri and pings the server.
func DialMongo(ctx context.Context, uri, dbName string) (*MongoGateway, error) {
	client, err := mongo.Connect(options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongo: %w", err)
	}
	return &MongoGateway{
		client: client,
		sites:  client.Database(dbName).Collection(sitesCollection),
		now:    func() time.Time { return time.Now().UTC() },
	}, nil
}

// Close disconnects the client.
func (g *MongoGateway) Close(ctx context.Context) error { return g.client.Disconnect(ctx) }

func (g *MongoGateway) load(ctx context.Context, op, siteID string) (*mongoSite, error) {
	var doc mongoSite
	err := g.sites.FindOne(ctx, bson.M{"_id": siteID}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &doc, nil
}

func (g *MongoGateway) FetchPage(ctx context.Context, siteID, slug string) (*Page, error) {
	if routing.NormalizePageSlug(slug) != "/" {
		return nil, fmt.Errorf("fetch page: %w", ErrNotFound)
	}
	doc, err := g.load(ctx, "fetch page", siteID)
	if err != nil {
		return nil, err
	}
	return doc.page(), nil
}

func (d *mongoSite) page() *Page {
	for i := range d.Components {
		d.Components[i].Content = normalizeMap(d.Components[i].Content)
		d.Components[i].Styles = normalizeMap(d.Components[i].Styles)
	}
	return &Page{
		ID:        d.ID,
		SiteID:    d.ID,
		Slug:      "/",
		Title:     d.Name,
		Body:      document.Body{Components: document.FromLegacy(d.Components)},
		UpdatedAt: d.UpdatedAt,
	}
}

func (g *MongoGateway) SavePage(ctx context.Context, pageID string, body document.Body, updatedAt time.Time) error {
	res, err := g.sites.UpdateOne(ctx, bson.M{"_id": pageID}, bson.M{"$set": bson.M{
		"components": document.ToLegacy(body.Components),
		"updatedAt":  updatedAt,
	}})
	return updateResult("save page", res, err)
}

func (g *MongoGateway) FetchSite(ctx context.Context, siteID string) (*Site, error) {
	doc, err := g.load(ctx, "fetch site", siteID)
	if err != nil {
		return nil, err
	}
	return &Site{
		ID:          doc.ID,
		OwnerID:     doc.OwnerID,
		Title:       doc.Name,
		Domain:      doc.Domain,
		IsPublished: doc.IsPublished,
		PublishedAt: doc.PublishedAt,
	}, nil
}

func (g *MongoGateway) PublishSite(ctx context.Context, siteID string) error {
	now := g.now()
	res, err := g.sites.UpdateOne(ctx, bson.M{"_id": siteID}, bson.M{"$set": bson.M{
		"isPublished": true,
		"publishedAt": now,
		"updatedAt":   now,
	}})
	return updateResult("publish site", res, err)
}

// OwnerOf returns a site's owner id.
func (g *MongoGateway) OwnerOf(ctx context.Context, siteID string) (string, error) {
	s, err := g.FetchSite(ctx, siteID)
	if err != nil {
		return "", err
	}
	return s.OwnerID, nil
}

func updateResult(op string, res *mongo.UpdateResult, err error) error {
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	return nil
}

// normalizeMap rewrites BSON container types into plain maps and slices so
// the rest of the code only ever sees JSON-shaped values.
func normalizeMap(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}
	out := make(map[string]any, len(m))
	for k, v := range m {
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
		return normalizeMap(t)
	case map[string]any:
		return normalizeMap(t)
	case bson.A:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = normalizeValue(e)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = normalizeValue(e)
		}
		return out
	default:
		return v
	}
}
