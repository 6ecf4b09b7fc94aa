package firestore

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	domain "github.com/wedloom/api/internal/domain"
	pfirestore "github.com/wedloom/api/internal/platform/firestore"
	"github.com/wedloom/api/internal/repositories"
)

// WishRepository stores guestbook entries beneath each wedding document.
type WishRepository struct {
	weddings *pfirestore.BaseRepository[weddingDocument]
	provider *pfirestore.Provider
}

// NewWishRepository constructs a Firestore-backed wish repository.
func NewWishRepository(provider *pfirestore.Provider) (*WishRepository, error) {
	if provider == nil {
		return nil, errors.New("wish repository: firestore provider is required")
	}
	base := pfirestore.NewBaseRepository[weddingDocument](provider, weddingsCollection, nil, nil)
	return &WishRepository{weddings: base, provider: provider}, nil
}

// Add appends an entry under weddings/{id}/wishes.
func (r *WishRepository) Add(ctx context.Context, wish domain.Wish) error {
	if r == nil || r.weddings == nil {
		return errors.New("wish repository not initialised")
	}
	weddingID := strings.TrimSpace(wish.WeddingID)
	if weddingID == "" {
		return errors.New("wish repository: wedding id is required")
	}
	wishID := strings.TrimSpace(wish.ID)
	if wishID == "" {
		return errors.New("wish repository: wish id is required")
	}
	docRef, err := r.weddings.DocumentRef(ctx, weddingID)
	if err != nil {
		return err
	}
	doc := wishDocument{
		Name:      strings.TrimSpace(wish.Name),
		Message:   strings.TrimSpace(wish.Message),
		CreatedAt: wish.CreatedAt.UTC(),
	}
	if _, err := docRef.Collection(wishSubcollection).Doc(wishID).Create(ctx, doc); err != nil {
		return pfirestore.WrapError("wishes.add", err)
	}
	return nil
}

// List returns guestbook entries for a wedding, newest first.
func (r *WishRepository) List(ctx context.Context, weddingID string, filter repositories.SubmissionListFilter) (domain.CursorPage[domain.Wish], error) {
	if r == nil || r.weddings == nil {
		return domain.CursorPage[domain.Wish]{}, errors.New("wish repository not initialised")
	}
	weddingID = strings.TrimSpace(weddingID)
	if weddingID == "" {
		return domain.CursorPage[domain.Wish]{}, errors.New("wish repository: wedding id is required")
	}
	docRef, err := r.weddings.DocumentRef(ctx, weddingID)
	if err != nil {
		return domain.CursorPage[domain.Wish]{}, err
	}

	snaps, nextToken, err := querySubmissions(ctx, docRef.Collection(wishSubcollection), filter, "wishes.list")
	if err != nil {
		return domain.CursorPage[domain.Wish]{}, err
	}

	items := make([]domain.Wish, 0, len(snaps))
	for _, snap := range snaps {
		var doc wishDocument
		if err := snap.DataTo(&doc); err != nil {
			return domain.CursorPage[domain.Wish]{}, fmt.Errorf("wish repository: decode document %s: %w", snap.Ref.ID, err)
		}
		items = append(items, domain.Wish{
			ID:        snap.Ref.ID,
			WeddingID: weddingID,
			Name:      doc.Name,
			Message:   doc.Message,
			CreatedAt: chooseTime(doc.CreatedAt, snap.CreateTime),
		})
	}

	return domain.CursorPage[domain.Wish]{Items: items, NextPageToken: nextToken}, nil
}

// DeleteAll removes every guestbook entry of a wedding.
func (r *WishRepository) DeleteAll(ctx context.Context, weddingID string) error {
	if r == nil || r.weddings == nil || r.provider == nil {
		return errors.New("wish repository not initialised")
	}
	weddingID = strings.TrimSpace(weddingID)
	if weddingID == "" {
		return errors.New("wish repository: wedding id is required")
	}
	docRef, err := r.weddings.DocumentRef(ctx, weddingID)
	if err != nil {
		return err
	}
	client, err := r.provider.Client(ctx)
	if err != nil {
		return err
	}
	if err := deleteCollectionDocs(ctx, client, docRef.Collection(wishSubcollection)); err != nil {
		return pfirestore.WrapError("wishes.delete_all", err)
	}
	return nil
}

type wishDocument struct {
	Name      string    `firestore:"name"`
	Message   string    `firestore:"message"`
	CreatedAt time.Time `firestore:"createdAt"`
}

var _ repositories.WishRepository = (*WishRepository)(nil)
