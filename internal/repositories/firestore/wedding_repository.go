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
	"github.com/wedloom/api/internal/platform/pagination"
	"github.com/wedloom/api/internal/repositories"
)

const (
	weddingsCollection = "weddings"

	rsvpSubcollection = "rsvps"
	wishSubcollection = "wishes"

	deleteBatchSize = 200
)

// WeddingRepository persists wedding site documents keyed by slug.
type WeddingRepository struct {
	base     *pfirestore.BaseRepository[weddingDocument]
	provider *pfirestore.Provider
}

// NewWeddingRepository constructs a Firestore-backed wedding repository.
func NewWeddingRepository(provider *pfirestore.Provider) (*WeddingRepository, error) {
	if provider == nil {
		return nil, errors.New("wedding repository: firestore provider is required")
	}
	base := pfirestore.NewBaseRepository[weddingDocument](provider, weddingsCollection, nil, nil)
	return &WeddingRepository{base: base, provider: provider}, nil
}

// Create reserves the slug and stores the record in one write. Firestore's
// Create fails with AlreadyExists when the document id is taken, which keeps
// two couples from racing onto the same slug.
func (r *WeddingRepository) Create(ctx context.Context, record domain.WeddingRecord) error {
	if r == nil || r.base == nil {
		return errors.New("wedding repository not initialised")
	}
	weddingID := strings.TrimSpace(record.ID)
	if weddingID == "" {
		return errors.New("wedding repository: wedding id is required")
	}
	if _, err := r.base.Create(ctx, weddingID, encodeWeddingDocument(record)); err != nil {
		return err
	}
	return nil
}

// UpdateFields applies a partial field patch to the wedding document. Only
// the provided paths change; everything else stays as persisted.
func (r *WeddingRepository) UpdateFields(ctx context.Context, weddingID string, fields map[string]any) error {
	if r == nil || r.base == nil {
		return errors.New("wedding repository not initialised")
	}
	weddingID = strings.TrimSpace(weddingID)
	if weddingID == "" {
		return errors.New("wedding repository: wedding id is required")
	}
	if len(fields) == 0 {
		return errors.New("wedding repository: no fields to update")
	}
	docRef, err := r.base.DocumentRef(ctx, weddingID)
	if err != nil {
		return err
	}
	updates := make([]firestore.Update, 0, len(fields)+1)
	for path, value := range fields {
		updates = append(updates, firestore.Update{Path: path, Value: encodeFieldValue(value)})
	}
	updates = append(updates, firestore.Update{Path: "updatedAt", Value: firestore.ServerTimestamp})
	if _, err := docRef.Update(ctx, updates); err != nil {
		return pfirestore.WrapError("weddings.update_fields", err)
	}
	return nil
}

// SetSections replaces the persisted section order wholesale.
func (r *WeddingRepository) SetSections(ctx context.Context, weddingID string, sections []domain.Section) error {
	if r == nil || r.base == nil {
		return errors.New("wedding repository not initialised")
	}
	weddingID = strings.TrimSpace(weddingID)
	if weddingID == "" {
		return errors.New("wedding repository: wedding id is required")
	}
	docRef, err := r.base.DocumentRef(ctx, weddingID)
	if err != nil {
		return err
	}
	updates := []firestore.Update{
		{Path: "sections", Value: encodeSections(sections)},
		{Path: "updatedAt", Value: firestore.ServerTimestamp},
	}
	if _, err := docRef.Update(ctx, updates); err != nil {
		return pfirestore.WrapError("weddings.set_sections", err)
	}
	return nil
}

// FindByID fetches a single wedding by slug.
func (r *WeddingRepository) FindByID(ctx context.Context, weddingID string) (domain.WeddingRecord, error) {
	if r == nil || r.base == nil {
		return domain.WeddingRecord{}, errors.New("wedding repository not initialised")
	}
	weddingID = strings.TrimSpace(weddingID)
	if weddingID == "" {
		return domain.WeddingRecord{}, errors.New("wedding repository: wedding id is required")
	}
	doc, err := r.base.Get(ctx, weddingID)
	if err != nil {
		return domain.WeddingRecord{}, err
	}
	return decodeWeddingDocument(weddingID, doc.Data, doc.CreateTime, doc.UpdateTime), nil
}

// Exists reports whether the slug is already reserved.
func (r *WeddingRepository) Exists(ctx context.Context, weddingID string) (bool, error) {
	if r == nil || r.base == nil {
		return false, errors.New("wedding repository not initialised")
	}
	_, err := r.FindByID(ctx, weddingID)
	if err == nil {
		return true, nil
	}
	var repoErr repositories.RepositoryError
	if errors.As(err, &repoErr) && repoErr.IsNotFound() {
		return false, nil
	}
	return false, err
}

// ListByOwner returns the weddings owned by a user ordered by most recent creation.
func (r *WeddingRepository) ListByOwner(ctx context.Context, ownerID string, filter repositories.WeddingListFilter) (domain.CursorPage[domain.WeddingRecord], error) {
	if r == nil || r.base == nil {
		return domain.CursorPage[domain.WeddingRecord]{}, errors.New("wedding repository not initialised")
	}
	ownerID = strings.TrimSpace(ownerID)
	if ownerID == "" {
		return domain.CursorPage[domain.WeddingRecord]{}, errors.New("wedding repository: owner id is required")
	}

	limit := filter.Pagination.PageSize
	if limit < 0 {
		limit = 0
	}
	fetchLimit := limit
	if limit > 0 {
		fetchLimit = limit + 1
	}

	direction := firestore.Desc
	if filter.SortOrder == domain.SortAsc {
		direction = firestore.Asc
	}

	var startAfter []any
	if token := strings.TrimSpace(filter.Pagination.PageToken); token != "" {
		tokenTime, tokenID, err := decodeWeddingListToken(token)
		if err != nil {
			return domain.CursorPage[domain.WeddingRecord]{}, fmt.Errorf("wedding repository: invalid page token: %w", err)
		}
		startAfter = []any{tokenTime, tokenID}
	}

	docs, err := r.base.Query(ctx, func(q firestore.Query) firestore.Query {
		q = q.Where("ownerUid", "==", ownerID)
		q = q.OrderBy("createdAt", direction).OrderBy(firestore.DocumentID, direction)
		if len(startAfter) == 2 {
			q = q.StartAfter(startAfter...)
		}
		if fetchLimit > 0 {
			q = q.Limit(fetchLimit)
		}
		return q
	})
	if err != nil {
		return domain.CursorPage[domain.WeddingRecord]{}, err
	}

	valueDocs := docs
	nextToken := ""
	if limit > 0 && len(valueDocs) == fetchLimit {
		last := valueDocs[len(valueDocs)-1]
		tokenTime := last.Data.CreatedAt
		if tokenTime.IsZero() {
			tokenTime = last.CreateTime
		}
		nextToken = encodeWeddingListToken(tokenTime, last.ID)
		valueDocs = valueDocs[:len(valueDocs)-1]
	}

	items := make([]domain.WeddingRecord, 0, len(valueDocs))
	for _, doc := range valueDocs {
		items = append(items, decodeWeddingDocument(doc.ID, doc.Data, doc.CreateTime, doc.UpdateTime))
	}

	return domain.CursorPage[domain.WeddingRecord]{
		Items:         items,
		NextPageToken: nextToken,
	}, nil
}

// Delete removes the wedding document along with its guest subcollections.
func (r *WeddingRepository) Delete(ctx context.Context, weddingID string) error {
	if r == nil || r.base == nil || r.provider == nil {
		return errors.New("wedding repository not initialised")
	}
	weddingID = strings.TrimSpace(weddingID)
	if weddingID == "" {
		return errors.New("wedding repository: wedding id is required")
	}
	docRef, err := r.base.DocumentRef(ctx, weddingID)
	if err != nil {
		return err
	}
	client, err := r.provider.Client(ctx)
	if err != nil {
		return err
	}
	for _, sub := range []string{rsvpSubcollection, wishSubcollection} {
		if err := deleteCollectionDocs(ctx, client, docRef.Collection(sub)); err != nil {
			return pfirestore.WrapError("weddings.delete", err)
		}
	}
	if _, err := docRef.Delete(ctx); err != nil {
		return pfirestore.WrapError("weddings.delete", err)
	}
	return nil
}

// deleteCollectionDocs drains a subcollection in bounded batches so a site
// with thousands of guest entries cannot blow a single write request.
func deleteCollectionDocs(ctx context.Context, client *firestore.Client, coll *firestore.CollectionRef) error {
	for {
		iter := coll.Limit(deleteBatchSize).Documents(ctx)
		writer := client.BulkWriter(ctx)
		deleted := 0
		for {
			snap, err := iter.Next()
			if errors.Is(err, iterator.Done) {
				break
			}
			if err != nil {
				iter.Stop()
				writer.End()
				return err
			}
			if _, err := writer.Delete(snap.Ref); err != nil {
				iter.Stop()
				writer.End()
				return err
			}
			deleted++
		}
		iter.Stop()
		writer.End()
		if deleted < deleteBatchSize {
			return nil
		}
	}
}

type weddingDocument struct {
	OwnerRef string `firestore:"ownerRef"`
	OwnerUID string `firestore:"ownerUid"`

	GroomName string     `firestore:"groomName,omitempty"`
	BrideName string     `firestore:"brideName,omitempty"`
	EventDate *time.Time `firestore:"eventDate,omitempty"`

	Color          string  `firestore:"color,omitempty"`
	CustomColor    string  `firestore:"customColor,omitempty"`
	CustomEndColor string  `firestore:"customEndColor,omitempty"`
	FlowerFrame    string  `firestore:"flowerFrame,omitempty"`
	Effect         string  `firestore:"effect,omitempty"`
	HeroImageURL   string  `firestore:"heroImageUrl,omitempty"`
	ImageScale     float64 `firestore:"imageScale,omitempty"`
	ImageOffsetX   float64 `firestore:"imageOffsetX,omitempty"`
	ImageOffsetY   float64 `firestore:"imageOffsetY,omitempty"`

	VideoTitle       string `firestore:"videoTitle,omitempty"`
	VideoDescription string `firestore:"videoDescription,omitempty"`
	VideoURL         string `firestore:"videoUrl,omitempty"`

	StoryTitle       string               `firestore:"storyTitle,omitempty"`
	StoryDescription string               `firestore:"storyDescription,omitempty"`
	StoryEvents      []storyEventDocument `firestore:"storyEvents,omitempty"`

	BrideGroomTitle       string `firestore:"brideGroomTitle,omitempty"`
	BrideGroomDescription string `firestore:"brideGroomDescription,omitempty"`
	GroomBio              string `firestore:"groomBio,omitempty"`
	GroomImage            string `firestore:"groomImage,omitempty"`
	BrideBio              string `firestore:"brideBio,omitempty"`
	BrideImage            string `firestore:"brideImage,omitempty"`

	GiftTitle       string                `firestore:"giftTitle,omitempty"`
	GiftDescription string                `firestore:"giftDescription,omitempty"`
	BankAccounts    []bankAccountDocument `firestore:"bankAccounts,omitempty"`

	RSVPTitle       string     `firestore:"rsvpTitle,omitempty"`
	RSVPDescription string     `firestore:"rsvpDescription,omitempty"`
	RSVPDeadline    *time.Time `firestore:"rsvpDeadline,omitempty"`

	MusicTitle       string   `firestore:"musicTitle,omitempty"`
	MusicDescription string   `firestore:"musicDescription,omitempty"`
	MusicURLs        []string `firestore:"musicUrls,omitempty"`

	WishesTitle       string `firestore:"wishesTitle,omitempty"`
	WishesDescription string `firestore:"wishesDescription,omitempty"`
	WishesEnabled     bool   `firestore:"wishesEnabled"`

	AlbumTitle       string   `firestore:"albumTitle,omitempty"`
	AlbumDescription string   `firestore:"albumDescription,omitempty"`
	AlbumImages      []string `firestore:"albumImages,omitempty"`

	EventsTitle       string                `firestore:"eventsTitle,omitempty"`
	EventsDescription string                `firestore:"eventsDescription,omitempty"`
	Events            []agendaEventDocument `firestore:"events,omitempty"`

	Sections []sectionDocument `firestore:"sections"`

	CreatedAt time.Time `firestore:"createdAt"`
	UpdatedAt time.Time `firestore:"updatedAt"`
}

type sectionDocument struct {
	ID      string `firestore:"id"`
	Name    string `firestore:"name"`
	Enabled bool   `firestore:"enabled"`
	Order   int    `firestore:"order"`
	Icon    string `firestore:"icon,omitempty"`
}

type storyEventDocument struct {
	ID          string `firestore:"id"`
	Date        string `firestore:"date,omitempty"`
	Title       string `firestore:"title"`
	Description string `firestore:"description,omitempty"`
	Image       string `firestore:"image,omitempty"`
	Position    string `firestore:"position"`
}

type bankAccountDocument struct {
	ID            string `firestore:"id"`
	BankName      string `firestore:"bankName"`
	AccountNumber string `firestore:"accountNumber"`
	AccountName   string `firestore:"accountName"`
	QRCode        string `firestore:"qrCode,omitempty"`
}

type agendaEventDocument struct {
	ID          string `firestore:"id"`
	Title       string `firestore:"title"`
	Time        string `firestore:"time,omitempty"`
	Venue       string `firestore:"venue,omitempty"`
	Address     string `firestore:"address,omitempty"`
	MapURL      string `firestore:"mapUrl,omitempty"`
	Description string `firestore:"description,omitempty"`
}

// encodeFieldValue converts domain values inside a field patch into their
// document representations so partial updates and full writes agree on the
// stored shape.
func encodeFieldValue(value any) any {
	switch typed := value.(type) {
	case []domain.StoryEvent:
		return encodeStoryEvents(typed)
	case []domain.BankAccount:
		return encodeBankAccounts(typed)
	case []domain.AgendaEvent:
		return encodeAgendaEvents(typed)
	case []domain.Section:
		return encodeSections(typed)
	case time.Time:
		return typed.UTC()
	default:
		return value
	}
}

func encodeWeddingDocument(record domain.WeddingRecord) weddingDocument {
	return weddingDocument{
		OwnerRef: userDocPath(record.OwnerID),
		OwnerUID: strings.TrimSpace(record.OwnerID),

		GroomName: strings.TrimSpace(record.GroomName),
		BrideName: strings.TrimSpace(record.BrideName),
		EventDate: normalizeTimePointer(record.EventDate),

		Color:          strings.TrimSpace(record.Color),
		CustomColor:    strings.TrimSpace(record.CustomColor),
		CustomEndColor: strings.TrimSpace(record.CustomEndColor),
		FlowerFrame:    strings.TrimSpace(record.FlowerFrame),
		Effect:         strings.TrimSpace(record.Effect),
		HeroImageURL:   strings.TrimSpace(record.HeroImageURL),
		ImageScale:     record.ImageScale,
		ImageOffsetX:   record.ImageOffsetX,
		ImageOffsetY:   record.ImageOffsetY,

		VideoTitle:       strings.TrimSpace(record.VideoTitle),
		VideoDescription: strings.TrimSpace(record.VideoDescription),
		VideoURL:         strings.TrimSpace(record.VideoURL),

		StoryTitle:       strings.TrimSpace(record.StoryTitle),
		StoryDescription: strings.TrimSpace(record.StoryDescription),
		StoryEvents:      encodeStoryEvents(record.StoryEvents),

		BrideGroomTitle:       strings.TrimSpace(record.BrideGroomTitle),
		BrideGroomDescription: strings.TrimSpace(record.BrideGroomDescription),
		GroomBio:              strings.TrimSpace(record.GroomBio),
		GroomImage:            strings.TrimSpace(record.GroomImage),
		BrideBio:              strings.TrimSpace(record.BrideBio),
		BrideImage:            strings.TrimSpace(record.BrideImage),

		GiftTitle:       strings.TrimSpace(record.GiftTitle),
		GiftDescription: strings.TrimSpace(record.GiftDescription),
		BankAccounts:    encodeBankAccounts(record.BankAccounts),

		RSVPTitle:       strings.TrimSpace(record.RSVPTitle),
		RSVPDescription: strings.TrimSpace(record.RSVPDescription),
		RSVPDeadline:    normalizeTimePointer(record.RSVPDeadline),

		MusicTitle:       strings.TrimSpace(record.MusicTitle),
		MusicDescription: strings.TrimSpace(record.MusicDescription),
		MusicURLs:        cloneStrings(record.MusicURLs),

		WishesTitle:       strings.TrimSpace(record.WishesTitle),
		WishesDescription: strings.TrimSpace(record.WishesDescription),
		WishesEnabled:     record.WishesEnabled,

		AlbumTitle:       strings.TrimSpace(record.AlbumTitle),
		AlbumDescription: strings.TrimSpace(record.AlbumDescription),
		AlbumImages:      cloneStrings(record.AlbumImages),

		EventsTitle:       strings.TrimSpace(record.EventsTitle),
		EventsDescription: strings.TrimSpace(record.EventsDescription),
		Events:            encodeAgendaEvents(record.Events),

		Sections: encodeSections(record.Sections),

		CreatedAt: record.CreatedAt.UTC(),
		UpdatedAt: record.UpdatedAt.UTC(),
	}
}

func decodeWeddingDocument(id string, doc weddingDocument, createdAt, updatedAt time.Time) domain.WeddingRecord {
	return domain.WeddingRecord{
		ID:        strings.TrimSpace(id),
		OwnerID:   extractOwner(doc.OwnerRef, doc.OwnerUID),
		CreatedAt: chooseTime(doc.CreatedAt, createdAt),
		UpdatedAt: chooseTime(doc.UpdatedAt, updatedAt),

		GroomName: doc.GroomName,
		BrideName: doc.BrideName,
		EventDate: normalizeTimePointer(doc.EventDate),

		Color:          doc.Color,
		CustomColor:    doc.CustomColor,
		CustomEndColor: doc.CustomEndColor,
		FlowerFrame:    doc.FlowerFrame,
		Effect:         doc.Effect,
		HeroImageURL:   doc.HeroImageURL,
		ImageScale:     doc.ImageScale,
		ImageOffsetX:   doc.ImageOffsetX,
		ImageOffsetY:   doc.ImageOffsetY,

		VideoTitle:       doc.VideoTitle,
		VideoDescription: doc.VideoDescription,
		VideoURL:         doc.VideoURL,

		StoryTitle:       doc.StoryTitle,
		StoryDescription: doc.StoryDescription,
		StoryEvents:      decodeStoryEvents(doc.StoryEvents),

		BrideGroomTitle:       doc.BrideGroomTitle,
		BrideGroomDescription: doc.BrideGroomDescription,
		GroomBio:              doc.GroomBio,
		GroomImage:            doc.GroomImage,
		BrideBio:              doc.BrideBio,
		BrideImage:            doc.BrideImage,

		GiftTitle:       doc.GiftTitle,
		GiftDescription: doc.GiftDescription,
		BankAccounts:    decodeBankAccounts(doc.BankAccounts),

		RSVPTitle:       doc.RSVPTitle,
		RSVPDescription: doc.RSVPDescription,
		RSVPDeadline:    normalizeTimePointer(doc.RSVPDeadline),

		MusicTitle:       doc.MusicTitle,
		MusicDescription: doc.MusicDescription,
		MusicURLs:        cloneStrings(doc.MusicURLs),

		WishesTitle:       doc.WishesTitle,
		WishesDescription: doc.WishesDescription,
		WishesEnabled:     doc.WishesEnabled,

		AlbumTitle:       doc.AlbumTitle,
		AlbumDescription: doc.AlbumDescription,
		AlbumImages:      cloneStrings(doc.AlbumImages),

		EventsTitle:       doc.EventsTitle,
		EventsDescription: doc.EventsDescription,
		Events:            decodeAgendaEvents(doc.Events),

		Sections: decodeSections(doc.Sections),
	}
}

func encodeSections(sections []domain.Section) []sectionDocument {
	if len(sections) == 0 {
		return nil
	}
	out := make([]sectionDocument, 0, len(sections))
	for _, section := range sections {
		out = append(out, sectionDocument{
			ID:      section.ID,
			Name:    section.Name,
			Enabled: section.Enabled,
			Order:   section.Order,
			Icon:    section.Icon,
		})
	}
	return out
}

func decodeSections(docs []sectionDocument) []domain.Section {
	if len(docs) == 0 {
		return nil
	}
	out := make([]domain.Section, 0, len(docs))
	for _, doc := range docs {
		out = append(out, domain.Section{
			ID:      doc.ID,
			Name:    doc.Name,
			Enabled: doc.Enabled,
			Order:   doc.Order,
			Icon:    doc.Icon,
		})
	}
	return out
}

func encodeStoryEvents(events []domain.StoryEvent) []storyEventDocument {
	if len(events) == 0 {
		return nil
	}
	out := make([]storyEventDocument, 0, len(events))
	for _, event := range events {
		out = append(out, storyEventDocument{
			ID:          event.ID,
			Date:        event.Date,
			Title:       event.Title,
			Description: event.Description,
			Image:       event.Image,
			Position:    event.Position,
		})
	}
	return out
}

func decodeStoryEvents(docs []storyEventDocument) []domain.StoryEvent {
	if len(docs) == 0 {
		return nil
	}
	out := make([]domain.StoryEvent, 0, len(docs))
	for _, doc := range docs {
		out = append(out, domain.StoryEvent{
			ID:          doc.ID,
			Date:        doc.Date,
			Title:       doc.Title,
			Description: doc.Description,
			Image:       doc.Image,
			Position:    doc.Position,
		})
	}
	return out
}

func encodeBankAccounts(accounts []domain.BankAccount) []bankAccountDocument {
	if len(accounts) == 0 {
		return nil
	}
	out := make([]bankAccountDocument, 0, len(accounts))
	for _, account := range accounts {
		out = append(out, bankAccountDocument{
			ID:            account.ID,
			BankName:      account.BankName,
			AccountNumber: account.AccountNumber,
			AccountName:   account.AccountName,
			QRCode:        account.QRCode,
		})
	}
	return out
}

func decodeBankAccounts(docs []bankAccountDocument) []domain.BankAccount {
	if len(docs) == 0 {
		return nil
	}
	out := make([]domain.BankAccount, 0, len(docs))
	for _, doc := range docs {
		out = append(out, domain.BankAccount{
			ID:            doc.ID,
			BankName:      doc.BankName,
			AccountNumber: doc.AccountNumber,
			AccountName:   doc.AccountName,
			QRCode:        doc.QRCode,
		})
	}
	return out
}

func encodeAgendaEvents(events []domain.AgendaEvent) []agendaEventDocument {
	if len(events) == 0 {
		return nil
	}
	out := make([]agendaEventDocument, 0, len(events))
	for _, event := range events {
		out = append(out, agendaEventDocument{
			ID:          event.ID,
			Title:       event.Title,
			Time:        event.Time,
			Venue:       event.Venue,
			Address:     event.Address,
			MapURL:      event.MapURL,
			Description: event.Description,
		})
	}
	return out
}

func decodeAgendaEvents(docs []agendaEventDocument) []domain.AgendaEvent {
	if len(docs) == 0 {
		return nil
	}
	out := make([]domain.AgendaEvent, 0, len(docs))
	for _, doc := range docs {
		out = append(out, domain.AgendaEvent{
			ID:          doc.ID,
			Title:       doc.Title,
			Time:        doc.Time,
			Venue:       doc.Venue,
			Address:     doc.Address,
			MapURL:      doc.MapURL,
			Description: doc.Description,
		})
	}
	return out
}

func encodeWeddingListToken(createdAt time.Time, docID string) string {
	return pagination.EncodeToken(pagination.Cursor{CreatedAt: createdAt, DocID: docID})
}

func decodeWeddingListToken(token string) (time.Time, string, error) {
	cursor, err := pagination.DecodeToken(token)
	if err != nil {
		return time.Time{}, "", err
	}
	return cursor.CreatedAt, cursor.DocID, nil
}

var _ repositories.WeddingRepository = (*WeddingRepository)(nil)
