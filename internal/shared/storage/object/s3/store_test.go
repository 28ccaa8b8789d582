package s3

import (
	"context"
	"net/url"
	"strconv"
	"testing"

	"docanalytics-backend/internal/shared/storage/object"
)

func TestSignedURLExpiryWithinSigV4Limit(t *testing.T) {
	store, err := New(context.Background(), Options{
		Region:    "us-east-1",
		Bucket:    "documents",
		AccessKey: "AKID",
		SecretKey: "SECRET",
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	signed, err := store.SignedURL(context.Background(), "user-hash/file.pdf", "report.pdf")
	if err != nil {
		t.Fatalf("SignedURL: %v", err)
	}

	parsed, err := url.Parse(signed)
	if err != nil {
		t.Fatalf("parse url: %v", err)
	}

	raw := parsed.Query().Get("X-Amz-Expires")
	if raw == "" {
		t.Fatalf("expected X-Amz-Expires in %s", signed)
	}
	expires, err := strconv.Atoi(raw)
	if err != nil {
		t.Fatalf("parse X-Amz-Expires %q: %v", raw, err)
	}

	// SigV4 rejects presigned URLs valid for longer than 7 days.
	const sigV4Max = 7 * 24 * 60 * 60
	if expires > sigV4Max {
		t.Fatalf("X-Amz-Expires = %d, exceeds SigV4 maximum %d", expires, sigV4Max)
	}
	if expires != sigV4Max {
		t.Fatalf("X-Amz-Expires = %d, want nominal TTL clamped to %d", expires, sigV4Max)
	}

	disposition := parsed.Query().Get("response-content-disposition")
	if disposition != `attachment; filename="report.pdf"` {
		t.Fatalf("unexpected content disposition %q", disposition)
	}
}

func TestNominalTTLStillLongLived(t *testing.T) {
	// The interface-level TTL stays at ~6 months for backends without a
	// provider cap; only the S3 presigner clamps it.
	if object.SignedURLTTL <= maxPresignExpiry {
		t.Fatalf("SignedURLTTL %v should exceed the presign clamp %v", object.SignedURLTTL, maxPresignExpiry)
	}
}
