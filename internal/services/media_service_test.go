package services

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"

	domain "github.com/wedloom/api/internal/domain"
	"github.com/wedloom/api/internal/platform/storage"
)

type fakeStorageSigner struct{}

func (fakeStorageSigner) Email() string { return "signer@test.iam.gserviceaccount.com" }

func (fakeStorageSigner) SignBytes(_ context.Context, payload []byte) ([]byte, error) {
	if len(payload) == 0 {
		return nil, errors.New("empty payload")
	}
	return []byte("signed"), nil
}

func newMediaServiceForTest(t *testing.T, repo *stubWeddingRepository) MediaService {
	t.Helper()
	client, err := storage.NewClient(fakeStorageSigner{})
	if err != nil {
		t.Fatalf("storage.NewClient: %v", err)
	}
	service, err := NewMediaService(MediaServiceDeps{
		Weddings:    repo,
		Storage:     client,
		Bucket:      "wedloom-media",
		IDGenerator: func() string { return "asset-1" },
	})
	if err != nil {
		t.Fatalf("NewMediaService: %v", err)
	}
	return service
}

func TestMediaService_IssueSignedUpload_BuildsWeddingScopedPath(t *testing.T) {
	record := domain.WeddingRecord{ID: "minh-hoa-08112026", OwnerID: "uid-1"}
	service := newMediaServiceForTest(t, newStubWeddingRepository(record))

	resp, err := service.IssueSignedUpload(context.Background(), SignedUploadCommand{
		WeddingID:   "minh-hoa-08112026",
		ActorID:     "uid-1",
		Purpose:     "album",
		FileName:    "ceremony.jpg",
		ContentType: "image/jpeg",
		SizeBytes:   2 << 20,
	})
	if err != nil {
		t.Fatalf("IssueSignedUpload: %v", err)
	}

	if resp.ObjectPath != "weddings/minh-hoa-08112026/album/asset-1/ceremony.jpg" {
		t.Fatalf("unexpected object path %q", resp.ObjectPath)
	}
	if resp.Method != http.MethodPut {
		t.Fatalf("expected PUT, got %q", resp.Method)
	}
	if resp.UploadURL == "" || resp.ExpiresAt.IsZero() {
		t.Fatalf("incomplete response %#v", resp)
	}
	if !strings.HasSuffix(resp.PublicURL, resp.ObjectPath) {
		t.Fatalf("public url %q does not reference object", resp.PublicURL)
	}
}

func TestMediaService_IssueSignedUpload_RejectsUnknownPurpose(t *testing.T) {
	record := domain.WeddingRecord{ID: "minh-hoa-08112026", OwnerID: "uid-1"}
	service := newMediaServiceForTest(t, newStubWeddingRepository(record))

	_, err := service.IssueSignedUpload(context.Background(), SignedUploadCommand{
		WeddingID:   "minh-hoa-08112026",
		ActorID:     "uid-1",
		Purpose:     "banner",
		FileName:    "x.jpg",
		ContentType: "image/jpeg",
	})
	if !errors.Is(err, ErrUploadInvalid) {
		t.Fatalf("expected ErrUploadInvalid, got %v", err)
	}
}

func TestMediaService_IssueSignedUpload_RejectsOversizedUpload(t *testing.T) {
	record := domain.WeddingRecord{ID: "minh-hoa-08112026", OwnerID: "uid-1"}
	service := newMediaServiceForTest(t, newStubWeddingRepository(record))

	_, err := service.IssueSignedUpload(context.Background(), SignedUploadCommand{
		WeddingID:   "minh-hoa-08112026",
		ActorID:     "uid-1",
		Purpose:     "hero",
		FileName:    "huge.png",
		ContentType: "image/png",
		SizeBytes:   64 << 20,
	})
	if !errors.Is(err, ErrUploadInvalid) {
		t.Fatalf("expected ErrUploadInvalid, got %v", err)
	}
}

func TestMediaService_IssueSignedUpload_EnforcesOwnership(t *testing.T) {
	record := domain.WeddingRecord{ID: "minh-hoa-08112026", OwnerID: "uid-1"}
	service := newMediaServiceForTest(t, newStubWeddingRepository(record))

	_, err := service.IssueSignedUpload(context.Background(), SignedUploadCommand{
		WeddingID:   "minh-hoa-08112026",
		ActorID:     "uid-2",
		Purpose:     "hero",
		FileName:    "hero.jpg",
		ContentType: "image/jpeg",
	})
	if !errors.Is(err, ErrWeddingForbidden) {
		t.Fatalf("expected ErrWeddingForbidden, got %v", err)
	}
}
