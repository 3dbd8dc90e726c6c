package mongostore

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/shopstack/notifykit/pkg/notifier"
)

// Storage is a MongoDB implementation of notifier.Storage and
// notifier.PreferenceStorage.
type Storage struct {
	notifications *mongo.Collection
	preferences   *mongo.Collection
}

// New creates a Storage on the given database, using the
// "notifications" and "notification_preferences" collections.
func New(db *mongo.Database) *Storage {
	return &Storage{
		notifications: db.Collection("notifications"),
		preferences:   db.Collection("notification_preferences"),
	}
}

// EnsureIndexes creates the indexes the queries rely on. Call once at
// startup; creation is idempotent.
func (s *Storage) EnsureIndexes(ctx context.Context) error {
	_, err := s.notifications.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "identity", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "identity", Value: 1}, {Key: "read", Value: 1}}},
	})
	return err
}

type notificationDoc struct {
	ID        string    `bson:"_id"`
	Identity  string    `bson:"identity"`
	Type      string    `bson:"type"`
	Category  string    `bson:"category"`
	Priority  string    `bson:"priority,omitempty"`
	Title     string    `bson:"title"`
	Message   string    `bson:"message"`
	Read      bool      `bson:"read"`
	CreatedAt time.Time `bson:"created_at"`
}

func toDoc(identity string, n notifier.Notification) notificationDoc {
	return notificationDoc{
		ID:        n.ID,
		Identity:  identity,
		Type:      string(n.Type),
		Category:  string(n.Category),
		Priority:  string(n.Priority),
		Title:     n.Title,
		Message:   n.Message,
		Read:      n.Read,
		CreatedAt: n.CreatedAt,
	}
}

func (d notificationDoc) toNotification() notifier.Notification {
	return notifier.Notification{
		ID:        d.ID,
		Type:      notifier.Type(d.Type),
		Category:  notifier.Category(d.Category),
		Priority:  notifier.Priority(d.Priority),
		Title:     d.Title,
		Message:   d.Message,
		Read:      d.Read,
		CreatedAt: d.CreatedAt,
	}
}

func (s *Storage) Create(ctx context.Context, identity string, n notifier.Notification) error {
	if identity == "" {
		return notifier.ErrMissingIdentity
	}
	if n.ID == "" {
		return notifier.ErrMissingID
	}

	_, err := s.notifications.InsertOne(ctx, toDoc(identity, n))
	return err
}

func (s *Storage) List(ctx context.Context, identity string, opts notifier.ListOptions) ([]notifier.Notification, error) {
	filter := bson.M{"identity": identity}
	if opts.OnlyUnread {
		filter["read"] = false
	}

	findOpts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	if opts.Limit > 0 {
		findOpts = findOpts.SetLimit(int64(opts.Limit))
	}

	cursor, err := s.notifications.Find(ctx, filter, findOpts)
	if err != nil {
		return nil, err
	}

	var docs []notificationDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	out := make([]notifier.Notification, len(docs))
	for i, d := range docs {
		out[i] = d.toNotification()
	}
	return out, nil
}

func (s *Storage) MarkRead(ctx context.Context, identity string, ids ...string) error {
	if len(ids) == 0 {
		return nil
	}
	_, err := s.notifications.UpdateMany(ctx,
		bson.M{"identity": identity, "_id": bson.M{"$in": ids}},
		bson.M{"$set": bson.M{"read": true}},
	)
	return err
}

func (s *Storage) MarkAllRead(ctx context.Context, identity string) error {
	_, err := s.notifications.UpdateMany(ctx,
		bson.M{"identity": identity, "read": false},
		bson.M{"$set": bson.M{"read": true}},
	)
	return err
}

func (s *Storage) Delete(ctx context.Context, identity string, ids ...string) error {
	if len(ids) == 0 {
		return nil
	}
	_, err := s.notifications.DeleteMany(ctx,
		bson.M{"identity": identity, "_id": bson.M{"$in": ids}},
	)
	return err
}

func (s *Storage) DeleteAll(ctx context.Context, identity string) error {
	_, err := s.notifications.DeleteMany(ctx, bson.M{"identity": identity})
	return err
}

func (s *Storage) CountUnread(ctx context.Context, identity string) (int, error) {
	count, err := s.notifications.CountDocuments(ctx, bson.M{"identity": identity, "read": false})
	return int(count), err
}

type preferencesDoc struct {
	Identity  string               `bson:"_id"`
	Prefs     notifier.Preferences `bson:"prefs"`
	UpdatedAt time.Time            `bson:"updated_at"`
}

func (s *Storage) LoadPreferences(ctx context.Context, identity string) (notifier.Preferences, bool, error) {
	var doc preferencesDoc
	err := s.preferences.FindOne(ctx, bson.M{"_id": identity}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return notifier.Preferences{}, false, nil
	}
	if err != nil {
		return notifier.Preferences{}, false, err
	}
	return doc.Prefs, true, nil
}

func (s *Storage) SavePreferences(ctx context.Context, identity string, prefs notifier.Preferences) error {
	if identity == "" {
		return notifier.ErrMissingIdentity
	}

	doc := preferencesDoc{
		Identity:  identity,
		Prefs:     prefs,
		UpdatedAt: time.Now(),
	}
	_, err := s.preferences.ReplaceOne(ctx,
		bson.M{"_id": identity},
		doc,
		options.Replace().SetUpsert(true),
	)
	return err
}
