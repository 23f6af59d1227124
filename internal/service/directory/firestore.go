package directory

import (
	"context"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
)

const (
	detailsCollection    = "provider_details"
	profilesCollection   = "profiles"
	linksCollection      = "provider_categories"
	categoriesCollection = "categories"
)

// inQueryLimit is the maximum number of values Firestore accepts in a single
// "in" filter; larger id sets are chunked.
const inQueryLimit = 30

// firestoreDetails maps to the provider_details document structure.
type firestoreDetails struct {
	UserID          string   `firestore:"user_id"`
	Description     string   `firestore:"description"`
	ExperienceYears int      `firestore:"experience_years"`
	LocationLat     *float64 `firestore:"location_lat"`
	LocationLng     *float64 `firestore:"location_lng"`
	IsAvailable     *bool    `firestore:"is_available"`
}

func (fd firestoreDetails) toDetails(docID string) Details {
	userID := fd.UserID
	if userID == "" {
		userID = docID
	}
	return Details{
		UserID:          userID,
		Description:     fd.Description,
		ExperienceYears: fd.ExperienceYears,
		Lat:             fd.LocationLat,
		Lng:             fd.LocationLng,
		Available:       fd.IsAvailable,
	}
}

// firestoreProfile maps the profile fields joined into listings.
type firestoreProfile struct {
	UserID   string `firestore:"user_id"`
	FullName string `firestore:"full_name"`
	Phone    string `firestore:"phone"`
}

// firestoreLink maps a provider_categories join document.
type firestoreLink struct {
	UserID     string `firestore:"user_id"`
	CategoryID string `firestore:"category_id"`
}

// FirestoreStore implements Store with flat reads; provider_details and
// profiles documents are keyed by user id, provider_categories uses
// auto-generated ids.
type FirestoreStore struct {
	client *firestore.Client
}

// NewFirestoreStore creates a new Firestore-backed directory store.
func NewFirestoreStore(client *firestore.Client) *FirestoreStore {
	return &FirestoreStore{client: client}
}

// ProviderIDsByCategory returns the user ids linked to a category.
func (s *FirestoreStore) ProviderIDsByCategory(ctx context.Context, categoryID string) ([]string, error) {
	it := s.client.Collection(linksCollection).
		Where("category_id", "==", categoryID).
		Documents(ctx)
	defer it.Stop()

	var ids []string
	seen := make(map[string]struct{})
	for {
		doc, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}
		var link firestoreLink
		if err := doc.DataTo(&link); err != nil {
			return nil, err
		}
		if link.UserID == "" {
			continue
		}
		if _, ok := seen[link.UserID]; ok {
			continue
		}
		seen[link.UserID] = struct{}{}
		ids = append(ids, link.UserID)
	}
	return ids, nil
}

// AllDetails returns every provider_details row.
func (s *FirestoreStore) AllDetails(ctx context.Context) ([]Details, error) {
	it := s.client.Collection(detailsCollection).Documents(ctx)
	defer it.Stop()

	var out []Details
	for {
		doc, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}
		var fd firestoreDetails
		if err := doc.DataTo(&fd); err != nil {
			return nil, err
		}
		out = append(out, fd.toDetails(doc.Ref.ID))
	}
	return out, nil
}

// DetailsByIDs fetches provider_details rows for exactly the given id set.
// Documents are keyed by user id, so this is a batch document get.
func (s *FirestoreStore) DetailsByIDs(ctx context.Context, userIDs []string) ([]Details, error) {
	if len(userIDs) == 0 {
		return nil, nil
	}
	refs := make([]*firestore.DocumentRef, len(userIDs))
	for i, id := range userIDs {
		refs[i] = s.client.Collection(detailsCollection).Doc(id)
	}
	docs, err := s.client.GetAll(ctx, refs)
	if err != nil {
		return nil, err
	}

	out := make([]Details, 0, len(docs))
	for _, doc := range docs {
		if !doc.Exists() {
			continue
		}
		var fd firestoreDetails
		if err := doc.DataTo(&fd); err != nil {
			return nil, err
		}
		out = append(out, fd.toDetails(doc.Ref.ID))
	}
	return out, nil
}

// ProfilesByIDs batch-resolves profiles keyed by user id.
func (s *FirestoreStore) ProfilesByIDs(ctx context.Context, userIDs []string) (map[string]Profile, error) {
	out := make(map[string]Profile, len(userIDs))
	if len(userIDs) == 0 {
		return out, nil
	}
	refs := make([]*firestore.DocumentRef, len(userIDs))
	for i, id := range userIDs {
		refs[i] = s.client.Collection(profilesCollection).Doc(id)
	}
	docs, err := s.client.GetAll(ctx, refs)
	if err != nil {
		return nil, err
	}

	for _, doc := range docs {
		if !doc.Exists() {
			continue
		}
		var fp firestoreProfile
		if err := doc.DataTo(&fp); err != nil {
			return nil, err
		}
		userID := fp.UserID
		if userID == "" {
			userID = doc.Ref.ID
		}
		out[userID] = Profile{UserID: userID, FullName: fp.FullName, Phone: fp.Phone}
	}
	return out, nil
}

// CategoryNamesByIDs resolves declared category names per user id: one
// chunked in-query over the join collection, then a batch get of the
// referenced categories.
func (s *FirestoreStore) CategoryNamesByIDs(ctx context.Context, userIDs []string) (map[string][]string, error) {
	out := make(map[string][]string, len(userIDs))
	if len(userIDs) == 0 {
		return out, nil
	}

	var links []firestoreLink
	for start := 0; start < len(userIDs); start += inQueryLimit {
		end := min(start+inQueryLimit, len(userIDs))
		chunk, err := s.linksForUsers(ctx, userIDs[start:end])
		if err != nil {
			return nil, err
		}
		links = append(links, chunk...)
	}
	if len(links) == 0 {
		return out, nil
	}

	names, err := s.categoryNames(ctx, links)
	if err != nil {
		return nil, err
	}

	for _, link := range links {
		name, ok := names[link.CategoryID]
		if !ok {
			continue
		}
		out[link.UserID] = append(out[link.UserID], name)
	}
	return out, nil
}

func (s *FirestoreStore) linksForUsers(ctx context.Context, userIDs []string) ([]firestoreLink, error) {
	ids := make([]any, len(userIDs))
	for i, id := range userIDs {
		ids[i] = id
	}
	it := s.client.Collection(linksCollection).
		Where("user_id", "in", ids).
		Documents(ctx)
	defer it.Stop()

	var links []firestoreLink
	for {
		doc, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}
		var link firestoreLink
		if err := doc.DataTo(&link); err != nil {
			return nil, err
		}
		links = append(links, link)
	}
	return links, nil
}

func (s *FirestoreStore) categoryNames(ctx context.Context, links []firestoreLink) (map[string]string, error) {
	seen := make(map[string]struct{})
	var refs []*firestore.DocumentRef
	for _, link := range links {
		if link.CategoryID == "" {
			continue
		}
		if _, ok := seen[link.CategoryID]; ok {
			continue
		}
		seen[link.CategoryID] = struct{}{}
		refs = append(refs, s.client.Collection(categoriesCollection).Doc(link.CategoryID))
	}
	if len(refs) == 0 {
		return map[string]string{}, nil
	}

	docs, err := s.client.GetAll(ctx, refs)
	if err != nil {
		return nil, err
	}

	names := make(map[string]string, len(docs))
	for _, doc := range docs {
		if !doc.Exists() {
			continue
		}
		name, err := doc.DataAt("name")
		if err != nil {
			continue
		}
		if n, ok := name.(string); ok {
			names[doc.Ref.ID] = n
		}
	}
	return names, nil
}

// Compile-time interface check
var _ Store = (*FirestoreStore)(nil)
