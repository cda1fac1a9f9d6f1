// Package identity derives stable identifiers for build artifacts.
package identity

import (
	"strings"

	hashid "github.com/goliatone/hashid/pkg/hashid"
	"github.com/google/uuid"
)

// UUID derives a deterministic UUID from key with go-hashid, falling back to
// a SHA-1 name based UUID. Blank keys map to uuid.Nil.
func UUID(key string) uuid.UUID {
	trimmed := strings.TrimSpace(key)
	if trimmed == "" {
		return uuid.Nil
	}
	uid, err := hashid.NewUUID(trimmed, hashid.WithHashAlgorithm(hashid.SHA256), hashid.WithNormalization(true))
	if err != nil || uid == uuid.Nil {
		return uuid.NewSHA1(uuid.NameSpaceOID, []byte(trimmed))
	}
	return uid
}

// ArticleUUID identifies an article by file type and id, e.g. wiki/jane_doe.
func ArticleUUID(fileType, articleID string) uuid.UUID {
	return UUID("talorgan:article:" + strings.ToLower(strings.TrimSpace(fileType)) + ":" + strings.TrimSpace(articleID))
}
