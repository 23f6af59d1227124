package provider

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"go.uber.org/zap"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/homefix/homefix-api/internal/platform/logging"
)

const (
	detailsCollection    = "provider_details"
	profilesCollection   = "profiles"
	linksCollection      = "provider_categories"
	categoriesCollection = "categories"
)

// firestoreDetails maps to the provider_details document structure.
type firestoreDetails struct {
	UserID          string    `firestore:"user_id"`
	Description     string    `firestore:"description"`
	ExperienceYears int       `firestore:"experience_years"`
	LocationLat     *float64  `firestore:"location_lat"`
	LocationLng     *float64  `firestore:"location_lng"`
	IsAvailable     bool      `firestore:"is_available"`
	CreatedAt       time.Time `firestore:"created_at"`
}

type firestoreProfile struct {
	UserID    string `firestore:"user_id"`
	FullName  string `firestore:"full_name"`
	Phone     string `firestore:"phone"`
	AvatarURL string `firestore:"avatar_url"`
}

type firestoreLink struct {
	UserID     string `firestore:"user_id"`
	CategoryID string `firestore:"category_id"`
}

// FirestoreStore implements Service; provider_details documents are keyed by
// user id.
type FirestoreStore struct {
	client *firestore.Client
}

// NewFirestoreStore creates a new Firestore-backed provider store.
func NewFirestoreStore(client *firestore.Client) *FirestoreStore {
	return &FirestoreStore{client: client}
}

// Get returns the joined public profile for a provider.
func (s *FirestoreStore) Get(ctx context.Context, userID string) (*PublicProfile, error) {
	profDoc, err := s.client.Collection(profilesCollection).Doc(userID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}
	detDoc, err := s.client.Collection(detailsCollection).Doc(userID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}

	var fp firestoreProfile
	if err := profDoc.DataTo(&fp); err != nil {
		return nil, err
	}
	var fd firestoreDetails
	if err := detDoc.DataTo(&fd); err != nil {
		return nil, err
	}

	names, err := s.categoryNames(ctx, userID)
	if err != nil {
		// The page renders without labels rather than failing.
		logging.LogWarn(ctx, "category names fetch failed", zap.String("user_id", userID), zap.Error(err))
		names = nil
	}

	return &PublicProfile{
		UserID:    userID,
		FullName:  fp.FullName,
		Phone:     fp.Phone,
		AvatarURL: fp.AvatarURL,
		Details: Details{
			UserID:          userID,
			Description:     fd.Description,
			ExperienceYears: fd.ExperienceYears,
			Lat:             fd.LocationLat,
			Lng:             fd.LocationLng,
			Available:       fd.IsAvailable,
			CreatedAt:       fd.CreatedAt,
		},
		Categories: names,
	}, nil
}

// EnsureDetails creates an empty details row inside a transaction to avoid
// clobbering an existing one.
func (s *FirestoreStore) EnsureDetails(ctx context.Context, userID string) error {
	docRef := s.client.Collection(detailsCollection).Doc(userID)

	err := s.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		doc, err := tx.Get(docRef)
		if err == nil && doc.Exists() {
			return nil
		}
		if err != nil && status.Code(err) != codes.NotFound {
			return err
		}
		return tx.Set(docRef, firestoreDetails{
			UserID:      userID,
			IsAvailable: true,
			CreatedAt:   time.Now().UTC(),
		})
	})
	if err != nil {
		logging.LogAuditEvent(ctx, "create", userID, "provider_details", userID, "failure", nil)
		return err
	}
	logging.LogAuditEvent(ctx, "create", userID, "provider_details", userID, "success", nil)
	return nil
}

// Setup writes the service profile fields and replaces the provider's
// category links.
func (s *FirestoreStore) Setup(ctx context.Context, userID string, params SetupParams) error {
	docRef := s.client.Collection(detailsCollection).Doc(userID)
	_, err := docRef.Update(ctx, []firestore.Update{
		{Path: "description", Value: params.Description},
		{Path: "experience_years", Value: params.ExperienceYears},
		{Path: "location_lat", Value: params.Lat},
		{Path: "location_lng", Value: params.Lng},
		{Path: "is_available", Value: true},
	})
	if err != nil {
		logging.LogAuditEvent(ctx, "update", userID, "provider_details", userID, "failure", nil)
		if status.Code(err) == codes.NotFound {
			return ErrNotFound
		}
		return err
	}

	if err := s.replaceCategoryLinks(ctx, userID, params.CategoryIDs); err != nil {
		logging.LogAuditEvent(ctx, "update", userID, "provider_categories", userID, "failure", nil)
		return err
	}
	logging.LogAuditEvent(ctx, "update", userID, "provider_details", userID, "success", nil)
	return nil
}

// SetAvailability persists the online/offline flag.
func (s *FirestoreStore) SetAvailability(ctx context.Context, userID string, available bool) error {
	docRef := s.client.Collection(detailsCollection).Doc(userID)
	_, err := docRef.Update(ctx, []firestore.Update{
		{Path: "is_available", Value: available},
	})
	if err != nil {
		logging.LogAuditEvent(ctx, "update", userID, "provider_details", userID, "failure",
			map[string]any{"field": "is_available"})
		if status.Code(err) == codes.NotFound {
			return ErrNotFound
		}
		return err
	}
	logging.LogAuditEvent(ctx, "update", userID, "provider_details", userID, "success",
		map[string]any{"field": "is_available", "value": available})
	return nil
}

// Toggle flips the availability flag in a transaction and returns the new
// value; the flip is never applied locally before the write commits.
func (s *FirestoreStore) Toggle(ctx context.Context, userID string) (bool, error) {
	docRef := s.client.Collection(detailsCollection).Doc(userID)

	var newValue bool
	err := s.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		doc, err := tx.Get(docRef)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				return ErrNotFound
			}
			return err
		}
		var fd firestoreDetails
		if err := doc.DataTo(&fd); err != nil {
			return err
		}
		newValue = !fd.IsAvailable
		return tx.Update(docRef, []firestore.Update{
			{Path: "is_available", Value: newValue},
		})
	})
	if err != nil {
		logging.LogAuditEvent(ctx, "update", userID, "provider_details", userID, "failure",
			map[string]any{"field": "is_available"})
		return false, err
	}
	logging.LogAuditEvent(ctx, "update", userID, "provider_details", userID, "success",
		map[string]any{"field": "is_available", "value": newValue})
	return newValue, nil
}

func (s *FirestoreStore) replaceCategoryLinks(ctx context.Context, userID string, categoryIDs []string) error {
	it := s.client.Collection(linksCollection).
		Where("user_id", "==", userID).
		Documents(ctx)
	defer it.Stop()

	bw := s.client.BulkWriter(ctx)
	for {
		doc, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return err
		}
		if _, err := bw.Delete(doc.Ref); err != nil {
			return err
		}
	}
	for _, catID := range categoryIDs {
		ref := s.client.Collection(linksCollection).NewDoc()
		if _, err := bw.Create(ref, firestoreLink{UserID: userID, CategoryID: catID}); err != nil {
			return err
		}
	}
	bw.End()
	return nil
}

func (s *FirestoreStore) categoryNames(ctx context.Context, userID string) ([]string, error) {
	it := s.client.Collection(linksCollection).
		Where("user_id", "==", userID).
		Documents(ctx)
	defer it.Stop()

	var refs []*firestore.DocumentRef
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
		if link.CategoryID != "" {
			refs = append(refs, s.client.Collection(categoriesCollection).Doc(link.CategoryID))
		}
	}
	if len(refs) == 0 {
		return nil, nil
	}

	docs, err := s.client.GetAll(ctx, refs)
	if err != nil {
		return nil, err
	}
	var names []string
	for _, doc := range docs {
		if !doc.Exists() {
			continue
		}
		if v, err := doc.DataAt("name"); err == nil {
			if n, ok := v.(string); ok && n != "" {
				names = append(names, n)
			}
		}
	}
	return names, nil
}

// Compile-time interface check
var _ Service = (*FirestoreStore)(nil)
