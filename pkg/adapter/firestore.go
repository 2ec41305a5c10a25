package adapter

import (
	"context"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// DefaultFirestoreCollection is the collection used when none is configured
const DefaultFirestoreCollection = "kith"

// Firestore stores each key as a document in one collection
type Firestore struct {
	client     *firestore.Client
	collection string
}

type firestoreEntry struct {
	Value string `firestore:"value"`
}

// FirestoreOption is a functional option for Firestore
type FirestoreOption func(*firestoreSettings)

type firestoreSettings struct {
	collection string
	clientOpts []option.ClientOption
}

// WithFirestoreCollection sets the collection holding the key documents
func WithFirestoreCollection(name string) FirestoreOption {
	return func(s *firestoreSettings) {
		s.collection = name
	}
}

// WithFirestoreClientOptions passes options (credentials, endpoint) to the client
func WithFirestoreClientOptions(opts ...option.ClientOption) FirestoreOption {
	return func(s *firestoreSettings) {
		s.clientOpts = append(s.clientOpts, opts...)
	}
}

// NewFirestore creates a Firestore-backed KVS
func NewFirestore(ctx context.Context, projectID, databaseID string, opts ...FirestoreOption) (*Firestore, error) {
	settings := &firestoreSettings{collection: DefaultFirestoreCollection}
	for _, opt := range opts {
		opt(settings)
	}

	client, err := firestore.NewClientWithDatabase(ctx, projectID, databaseID, settings.clientOpts...)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create firestore client",
			goerr.V("project", projectID),
			goerr.V("database", databaseID))
	}

	return &Firestore{
		client:     client,
		collection: settings.collection,
	}, nil
}

func (f *Firestore) Get(ctx context.Context, key string) (string, bool, error) {
	doc, err := f.client.Collection(f.collection).Doc(key).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return "", false, nil
	}
	if err != nil {
		return "", false, goerr.Wrap(err, "failed to get document", goerr.V("key", key))
	}

	var entry firestoreEntry
	if err := doc.DataTo(&entry); err != nil {
		return "", false, goerr.Wrap(err, "failed to decode document", goerr.V("key", key))
	}
	return entry.Value, true, nil
}

func (f *Firestore) Set(ctx context.Context, key, value string) error {
	if _, err := f.client.Collection(f.collection).Doc(key).Set(ctx, firestoreEntry{Value: value}); err != nil {
		return goerr.Wrap(err, "failed to set document", goerr.V("key", key))
	}
	return nil
}

func (f *Firestore) Delete(ctx context.Context, key string) error {
	if _, err := f.client.Collection(f.collection).Doc(key).Delete(ctx); err != nil {
		return goerr.Wrap(err, "failed to delete document", goerr.V("key", key))
	}
	return nil
}

func (f *Firestore) Close() error {
	return f.client.Close()
}
