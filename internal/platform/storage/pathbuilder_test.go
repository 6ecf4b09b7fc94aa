package storage

import "testing"

func TestBuildHeroImagePath(t *testing.T) {
	path, err := BuildObjectPath(PurposeHeroImage, PathParams{
		WeddingID: "wedding123",
		AssetID:   "upload789",
		FileName:  "cover.png",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	expected := "weddings/wedding123/hero/upload789/cover.png"
	if path != expected {
		t.Fatalf("expected %s, got %s", expected, path)
	}
}

func TestBuildMusicTrackPath(t *testing.T) {
	path, err := BuildObjectPath(PurposeMusicTrack, PathParams{
		WeddingID: "wedding123",
		AssetID:   "track01",
		FileName:  "first-dance.mp3",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	expected := "weddings/wedding123/music/track01/first-dance.mp3"
	if path != expected {
		t.Fatalf("expected %s, got %s", expected, path)
	}
}

func TestBuildObjectPathUnsupportedPurpose(t *testing.T) {
	if _, err := BuildObjectPath(AssetPurpose("receipt"), PathParams{}); err == nil {
		t.Fatalf("expected error for unsupported purpose")
	}
}

func TestBuildObjectPathRejectsInvalidSegment(t *testing.T) {
	_, err := BuildObjectPath(PurposeAlbumImage, PathParams{
		WeddingID: "../bad",
		AssetID:   "upload",
		FileName:  "file.png",
	})
	if err == nil {
		t.Fatalf("expected error for invalid segment")
	}
}

func TestBuildObjectPathRejectsFileNameTraversal(t *testing.T) {
	_, err := BuildObjectPath(PurposeCoupleImage, PathParams{
		WeddingID: "wedding123",
		AssetID:   "upload",
		FileName:  "..\\escape.png",
	})
	if err == nil {
		t.Fatalf("expected error for traversal file name")
	}
}
