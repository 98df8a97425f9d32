package service

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
)

// Packaged upload format: some clients pre-package payloads with integrity
// metadata ahead of the (already encrypted) content. The layout is a
// 4-byte magic marker, a 4-byte big-endian length of a UTF-8 JSON metadata
// segment, the metadata itself, then the payload bytes. The metadata
// carries at least an integer "size" with the true original payload size.
var packageMagic = []byte("TBX1")

const packageHeaderSize = 8

// packageMeta is the metadata segment of a packaged upload.
type packageMeta struct {
	Size *int64 `json:"size"`
}

// DeclaredSize returns the original payload size declared by a packaged
// upload, when the input is well-formed. The declared size, not the
// physical length of the container, is what gets checked against the
// upload ceiling. Returns (0, false) for non-packaged or unparsable input,
// in which case the caller falls back to the raw length.
func DeclaredSize(payload []byte) (int64, bool) {
	if len(payload) < packageHeaderSize || !bytes.Equal(payload[:4], packageMagic) {
		return 0, false
	}

	metaLen := binary.BigEndian.Uint32(payload[4:8])
	if int64(metaLen) > int64(len(payload)-packageHeaderSize) {
		return 0, false
	}

	var meta packageMeta
	if err := json.Unmarshal(payload[packageHeaderSize:packageHeaderSize+int(metaLen)], &meta); err != nil {
		return 0, false
	}
	if meta.Size == nil || *meta.Size < 0 {
		return 0, false
	}

	return *meta.Size, true
}
