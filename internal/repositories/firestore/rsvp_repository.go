package firestore

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	domain "github.com/wedloom/api/internal/domain"
	pfirestore "github.com/wedloom/api/internal/platform/firestore"
	"github.com/wedloom/api/internal/repositories"
)

// RSVPRepository stores attendance replies beneath each wedding document.
type RSVPRepository struct {
	weddings *pfirestore.BaseRepository[weddingDocument]
	provider *pfirestore.Provider
}

// NewRSVPRepository constructs a Firestore-backed RSVP repository.
func NewRSVPRepository(provider *pfirestore.Provider) (*RSVPRepository, error) {
	if provider == nil {
		return nil, errors.New("rsvp repository: firestore provider is required")
	}
	base := pfirestore.NewBaseRepository[weddingDocument](provider, weddingsCollection, nil, nil)
	return &RSVPRepository{weddings: base, provider: provider}, nil
}

// Add appends a reply under weddings/{id}/rsvps.
func (r *RSVPRepository) Add(ctx context.Context, submission domain.RSVPSubmission) error {
	if r == nil || r.weddings == nil {
		return errors.New("rsvp repository not initialised")
	}
	weddingID := strings.TrimSpace(submission.WeddingID)
	if weddingID == "" {
		return errors.New("rsvp repository: wedding id is required")
	}
	submissionID := strings.TrimSpace(submission.ID)
	if submissionID == "" {
		return errors.New("rsvp repository: submission id is required")
	}
	docRef, err := r.weddings.DocumentRef(ctx, weddingID)
	if err != nil {
		return err
	}
	doc := rsvpDocument{
		Name:       strings.TrimSpace(submission.Name),
		Attending:  submission.Attending,
		GuestCount: submission.GuestCount,
		Message:    strings.TrimSpace(submission.Message),
		CreatedAt:  submission.CreatedAt.UTC(),
	}
	if _, err := docRef.Collection(rsvpSubcollection).Doc(submissionID).Create(ctx, doc); err != nil {
		return pfirestore.WrapError("rsvps.add", err)
	}
	return nil
}

// List returns replies for a wedding, newest first.
func (r *RSVPRepository) List(ctx context.Context, weddingID string, filter repositories.SubmissionListFilter) (domain.CursorPage[domain.RSVPSubmission], error) {
	if r == nil || r.weddings == nil {
		return domain.CursorPage[domain.RSVPSubmission]{}, errors.New("rsvp repository not initialised")
	}
	weddingID = strings.TrimSpace(weddingID)
	if weddingID == "" {
		return domain.CursorPage[domain.RSVPSubmission]{}, errors.New("rsvp repository: wedding id is required")
	}
	docRef, err := r.weddings.DocumentRef(ctx, weddingID)
	if err != nil {
		return domain.CursorPage[domain.RSVPSubmission]{}, err
	}

	docs, nextToken, err := querySubmissions(ctx, docRef.Collection(rsvpSubcollection), filter, "rsvps.list")
	if err != nil {
		return domain.CursorPage[domain.RSVPSubmission]{}, err
	}

	items := make([]domain.RSVPSubmission, 0, len(docs))
	for _, snap := range docs {
		var doc rsvpDocument
		if err := snap.DataTo(&doc); err != nil {
			return domain.CursorPage[domain.RSVPSubmission]{}, fmt.Errorf("rsvp repository: decode document %s: %w", snap.Ref.ID, err)
		}
		items = append(items, domain.RSVPSubmission{
			ID:         snap.Ref.ID,
			WeddingID:  weddingID,
			Name:       doc.Name,
			Attending:  doc.Attending,
			GuestCount: doc.GuestCount,
			Message:    doc.Message,
			CreatedAt:  chooseTime(doc.CreatedAt, snap.CreateTime),
		})
	}

	return domain.CursorPage[domain.RSVPSubmission]{Items: items, NextPageToken: nextToken}, nil
}

// DeleteAll removes every reply of a wedding.
func (r *RSVPRepository) DeleteAll(ctx context.Context, weddingID string) error {
	if r == nil || r.weddings == nil || r.provider == nil {
		return errors.New("rsvp repository not initialised")
	}
	weddingID = strings.TrimSpace(weddingID)
	if weddingID == "" {
		return errors.New("rsvp repository: wedding id is required")
	}
	docRef, err := r.weddings.DocumentRef(ctx, weddingID)
	if err != nil {
		return err
	}
	client, err := r.provider.Client(ctx)
	if err != nil {
		return err
	}
	if err := deleteCollectionDocs(ctx, client, docRef.Collection(rsvpSubcollection)); err != nil {
		return pfirestore.WrapError("rsvps.delete_all", err)
	}
	return nil
}

type rsvpDocument struct {
	Name       string    `firestore:"name"`
	Attending  bool      `firestore:"attending"`
	GuestCount int       `firestore:"guestCount"`
	Message    string    `firestore:"message,omitempty"`
	CreatedAt  time.Time `firestore:"createdAt"`
}

// querySubmissions runs the shared created-at-descending subcollection query
// used by both guest repositories.
func querySubmissions(ctx context.Context, coll *firestore.CollectionRef, filter repositories.SubmissionListFilter, op string) ([]*firestore.DocumentSnapshot, string, error) {
	limit := filter.Pagination.PageSize
	if limit < 0 {
		limit = 0
	}
	fetchLimit := limit
	if limit > 0 {
		fetchLimit = limit + 1
	}

	var startAfter []any
	if token := strings.TrimSpace(filter.Pagination.PageToken); token != "" {
		tokenTime, tokenID, err := decodeWeddingListToken(token)
		if err != nil {
			return nil, "", fmt.Errorf("%s: invalid page token: %w", op, err)
		}
		startAfter = []any{tokenTime, tokenID}
	}

	query := coll.Query
	if filter.Since != nil && !filter.Since.IsZero() {
		query = query.Where("createdAt", ">", filter.Since.UTC())
	}
	query = query.OrderBy("createdAt", firestore.Desc).OrderBy(firestore.DocumentID, firestore.Desc)
	if len(startAfter) == 2 {
		query = query.StartAfter(startAfter...)
	}
	if fetchLimit > 0 {
		query = query.Limit(fetchLimit)
	}

	iter := query.Documents(ctx)
	defer iter.Stop()

	var snaps []*firestore.DocumentSnapshot
	for {
		snap, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, "", pfirestore.WrapError(op, err)
		}
		snaps = append(snaps, snap)
	}

	nextToken := ""
	if limit > 0 && len(snaps) == fetchLimit {
		last := snaps[len(snaps)-1]
		nextToken = encodeWeddingListToken(last.CreateTime, last.Ref.ID)
		snaps = snaps[:len(snaps)-1]
	}
	return snaps, nextToken, nil
}

var _ repositories.RSVPRepository = (*RSVPRepository)(nil)
