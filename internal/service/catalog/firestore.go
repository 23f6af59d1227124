package catalog

import (
	"context"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
)

const categoriesCollection = "categories"

// firestoreCategory maps to the Firestore document structure.
type firestoreCategory struct {
	Name string `firestore:"name"`
	Slug string `firestore:"slug"`
	Icon string `firestore:"icon"`
}

// FirestoreStore implements Service over the categories collection.
type FirestoreStore struct {
	client *firestore.Client
}

// NewFirestoreStore creates a new Firestore-backed catalog reader.
func NewFirestoreStore(client *firestore.Client) *FirestoreStore {
	return &FirestoreStore{client: client}
}

// List returns all categories.
func (s *FirestoreStore) List(ctx context.Context) ([]Category, error) {
	it := s.client.Collection(categoriesCollection).OrderBy("name", firestore.Asc).Documents(ctx)
	defer it.Stop()

	var out []Category
	for {
		doc, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}
		var fc firestoreCategory
		if err := doc.DataTo(&fc); err != nil {
			return nil, err
		}
		out = append(out, Category{
			ID:   doc.Ref.ID,
			Name: fc.Name,
			Slug: fc.Slug,
			Icon: fc.Icon,
		})
	}
	return out, nil
}

// BySlug resolves a category by its slug.
func (s *FirestoreStore) BySlug(ctx context.Context, slug string) (*Category, error) {
	it := s.client.Collection(categoriesCollection).
		Where("slug", "==", slug).
		Limit(1).
		Documents(ctx)
	defer it.Stop()

	doc, err := it.Next()
	if err == iterator.Done {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	var fc firestoreCategory
	if err := doc.DataTo(&fc); err != nil {
		return nil, err
	}
	return &Category{
		ID:   doc.Ref.ID,
		Name: fc.Name,
		Slug: fc.Slug,
		Icon: fc.Icon,
	}, nil
}

// Compile-time interface check
var _ Service = (*FirestoreStore)(nil)
