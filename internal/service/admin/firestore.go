package admin

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const profilesCollection = "profiles"

type firestoreProfile struct {
	UserID    string    `firestore:"user_id"`
	FullName  string    `firestore:"full_name"`
	Phone     string    `firestore:"phone"`
	Role      string    `firestore:"role"`
	AvatarURL string    `firestore:"avatar_url"`
	CreatedAt time.Time `firestore:"created_at"`
}

// FirestoreStore implements Store; profile documents are keyed by user id.
type FirestoreStore struct {
	client *firestore.Client
}

// NewFirestoreStore creates a new Firestore-backed profile store.
func NewFirestoreStore(client *firestore.Client) *FirestoreStore {
	return &FirestoreStore{client: client}
}

// Save creates or overwrites the profile document.
func (s *FirestoreStore) Save(ctx context.Context, p Profile) error {
	_, err := s.client.Collection(profilesCollection).Doc(p.UserID).Set(ctx, firestoreProfile{
		UserID:    p.UserID,
		FullName:  p.FullName,
		Phone:     p.Phone,
		Role:      string(p.Role),
		AvatarURL: p.AvatarURL,
		CreatedAt: p.CreatedAt,
	})
	return err
}

// Get returns a profile or ErrNotFound.
func (s *FirestoreStore) Get(ctx context.Context, userID string) (*Profile, error) {
	doc, err := s.client.Collection(profilesCollection).Doc(userID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}
	var fp firestoreProfile
	if err := doc.DataTo(&fp); err != nil {
		return nil, err
	}
	p := profileFromDoc(doc.Ref.ID, fp)
	return &p, nil
}

// List returns all profiles, newest first.
func (s *FirestoreStore) List(ctx context.Context) ([]Profile, error) {
	it := s.client.Collection(profilesCollection).
		OrderBy("created_at", firestore.Desc).
		Documents(ctx)
	defer it.Stop()

	var out []Profile
	for {
		doc, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}
		var fp firestoreProfile
		if err := doc.DataTo(&fp); err != nil {
			return nil, err
		}
		out = append(out, profileFromDoc(doc.Ref.ID, fp))
	}
	return out, nil
}

// Update applies only the patched fields.
func (s *FirestoreStore) Update(ctx context.Context, userID string, patch ProfilePatch) error {
	var updates []firestore.Update
	if patch.FullName != nil {
		updates = append(updates, firestore.Update{Path: "full_name", Value: *patch.FullName})
	}
	if patch.Phone != nil {
		updates = append(updates, firestore.Update{Path: "phone", Value: *patch.Phone})
	}
	if patch.Role != nil {
		updates = append(updates, firestore.Update{Path: "role", Value: string(*patch.Role)})
	}
	if len(updates) == 0 {
		return nil
	}

	_, err := s.client.Collection(profilesCollection).Doc(userID).Update(ctx, updates)
	if status.Code(err) == codes.NotFound {
		return ErrNotFound
	}
	return err
}

// Delete removes the profile document.
func (s *FirestoreStore) Delete(ctx context.Context, userID string) error {
	ref := s.client.Collection(profilesCollection).Doc(userID)
	if _, err := ref.Get(ctx); err != nil {
		if status.Code(err) == codes.NotFound {
			return ErrNotFound
		}
		return err
	}
	_, err := ref.Delete(ctx)
	return err
}

func profileFromDoc(id string, fp firestoreProfile) Profile {
	userID := fp.UserID
	if userID == "" {
		userID = id
	}
	return Profile{
		UserID:    userID,
		FullName:  fp.FullName,
		Phone:     fp.Phone,
		Role:      Role(fp.Role),
		AvatarURL: fp.AvatarURL,
		CreatedAt: fp.CreatedAt,
	}
}

// Compile-time interface check
var _ Store = (*FirestoreStore)(nil)
