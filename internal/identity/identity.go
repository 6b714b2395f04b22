// Package identity derives stable Contentful asset identifiers from Alchemy
// picture file uids.
//
// The id is the hex-encoded md5 digest of the uid bytes. Every asset already
// present on the remote side was created under this scheme, so the derivation
// must stay byte-for-byte stable across runs and processes.
package identity

import (
	"crypto/md5"
	"encoding/hex"
)

// AssetID is a client-chosen Contentful asset identifier.
type AssetID string

// ForUID derives the asset id for an Alchemy image file uid. The derivation is
// pure and deterministic. An empty uid is a caller bug and panics.
func ForUID(uid string) AssetID {
	if uid == "" {
		panic("identity: empty image file uid")
	}
	sum := md5.Sum([]byte(uid))
	return AssetID(hex.EncodeToString(sum[:]))
}

func (id AssetID) String() string { return string(id) }
