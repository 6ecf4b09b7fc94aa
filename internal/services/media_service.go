package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/wedloom/api/internal/platform/storage"
	"github.com/wedloom/api/internal/repositories"
)

const (
	maxImageUploadBytes = 10 << 20
	maxAudioUploadBytes = 25 << 20

	defaultUploadExpiry = 15 * time.Minute
)

// ErrStorageClientMissing indicates the media service was constructed
// without a signed URL client.
var ErrStorageClientMissing = errors.New("media service: storage client dependency is required")

// ErrStorageBucketMissing indicates the media service was constructed
// without a bucket name.
var ErrStorageBucketMissing = errors.New("media service: storage bucket is required")

// ErrUploadInvalid indicates the signed upload request failed validation.
var ErrUploadInvalid = errors.New("media service: invalid upload request")

var imageContentTypes = []string{"image/jpeg", "image/png", "image/webp"}
var audioContentTypes = []string{"audio/mpeg", "audio/mp4", "audio/ogg"}

var uploadPurposes = map[string]struct {
	purpose      storage.AssetPurpose
	contentTypes []string
	maxBytes     int64
}{
	"hero":   {storage.PurposeHeroImage, imageContentTypes, maxImageUploadBytes},
	"album":  {storage.PurposeAlbumImage, imageContentTypes, maxImageUploadBytes},
	"couple": {storage.PurposeCoupleImage, imageContentTypes, maxImageUploadBytes},
	"music":  {storage.PurposeMusicTrack, audioContentTypes, maxAudioUploadBytes},
}

// MediaServiceDeps groups constructor parameters for the media service.
type MediaServiceDeps struct {
	Weddings    repositories.WeddingRepository
	Storage     *storage.Client
	Bucket      string
	IDGenerator func() string
	Logger      func(ctx context.Context, event string, fields map[string]any)
}

type mediaService struct {
	weddings repositories.WeddingRepository
	storage  *storage.Client
	bucket   string
	idGen    func() string
	logger   func(ctx context.Context, event string, fields map[string]any)
}

var _ MediaService = (*mediaService)(nil)

// NewMediaService constructs the signed upload issuer for wedding imagery
// and audio.
func NewMediaService(deps MediaServiceDeps) (MediaService, error) {
	if deps.Weddings == nil {
		return nil, ErrWeddingRepositoryMissing
	}
	if deps.Storage == nil {
		return nil, ErrStorageClientMissing
	}
	bucket := strings.TrimSpace(deps.Bucket)
	if bucket == "" {
		return nil, ErrStorageBucketMissing
	}
	idGen := deps.IDGenerator
	if idGen == nil {
		idGen = func() string { return ulid.Make().String() }
	}
	logger := deps.Logger
	if logger == nil {
		logger = func(context.Context, string, map[string]any) {}
	}
	return &mediaService{
		weddings: deps.Weddings,
		storage:  deps.Storage,
		bucket:   bucket,
		idGen:    idGen,
		logger:   logger,
	}, nil
}

// IssueSignedUpload validates the request against the caller's ownership of
// the wedding and returns a short-lived signed PUT URL for the object.
func (s *mediaService) IssueSignedUpload(ctx context.Context, cmd SignedUploadCommand) (SignedUploadResponse, error) {
	spec, ok := uploadPurposes[strings.ToLower(strings.TrimSpace(cmd.Purpose))]
	if !ok {
		return SignedUploadResponse{}, fmt.Errorf("%w: unknown purpose %q", ErrUploadInvalid, cmd.Purpose)
	}
	contentType := strings.TrimSpace(cmd.ContentType)
	if contentType == "" {
		return SignedUploadResponse{}, fmt.Errorf("%w: content type is required", ErrUploadInvalid)
	}
	if cmd.SizeBytes > spec.maxBytes {
		return SignedUploadResponse{}, fmt.Errorf("%w: size exceeds %d bytes", ErrUploadInvalid, spec.maxBytes)
	}

	record, err := s.ownedRecord(ctx, cmd.WeddingID, cmd.ActorID)
	if err != nil {
		return SignedUploadResponse{}, err
	}

	objectPath, err := storage.BuildObjectPath(spec.purpose, storage.PathParams{
		WeddingID: record.ID,
		AssetID:   s.idGen(),
		FileName:  strings.TrimSpace(cmd.FileName),
	})
	if err != nil {
		return SignedUploadResponse{}, fmt.Errorf("%w: %v", ErrUploadInvalid, err)
	}

	result, err := s.storage.SignedURL(ctx, s.bucket, objectPath, storage.SignedURLOptions{
		Upload: &storage.UploadOptions{
			Method:              http.MethodPut,
			ContentType:         contentType,
			AllowedContentTypes: spec.contentTypes,
			MaxSize:             spec.maxBytes,
			ExpiresIn:           defaultUploadExpiry,
		},
	})
	if err != nil {
		return SignedUploadResponse{}, err
	}

	s.logger(ctx, "media.upload_signed", map[string]any{
		"weddingId": record.ID,
		"purpose":   string(spec.purpose),
		"object":    objectPath,
	})
	return SignedUploadResponse{
		UploadURL:  result.URL,
		Method:     result.Method,
		ObjectPath: objectPath,
		PublicURL:  fmt.Sprintf("https://storage.googleapis.com/%s/%s", s.bucket, objectPath),
		ExpiresAt:  result.ExpiresAt,
		Headers:    result.Headers,
	}, nil
}

func (s *mediaService) ownedRecord(ctx context.Context, weddingID, actorID string) (WeddingRecord, error) {
	weddingID = strings.TrimSpace(weddingID)
	if weddingID == "" {
		return WeddingRecord{}, errors.New("media service: wedding id is required")
	}
	actorID = strings.TrimSpace(actorID)
	if actorID == "" {
		return WeddingRecord{}, errors.New("media service: actor id is required")
	}
	record, err := s.weddings.FindByID(ctx, weddingID)
	if err != nil {
		if isRepositoryNotFound(err) {
			return WeddingRecord{}, ErrWeddingNotFound
		}
		return WeddingRecord{}, err
	}
	if record.OwnerID != actorID {
		return WeddingRecord{}, ErrWeddingForbidden
	}
	return record, nil
}
