package image

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
)

type pngChunk struct {
	typ  string
	data []byte
}

var pngSignature = []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}

// maxPNGChunk bounds a single chunk allocation; metadata chunks are small.
const maxPNGChunk = 64 << 20

// readPNGChunks returns the metadata chunks of a PNG stream, stopping at
// the first IDAT or IEND. Image data chunks are skipped, not read.
func readPNGChunks(r io.ReadSeeker) ([]pngChunk, error) {
	sig := make([]byte, 8)
	if _, err := io.ReadFull(r, sig); err != nil {
		return nil, err
	}
	if !bytes.Equal(sig, pngSignature) {
		return nil, fmt.Errorf("not a valid PNG")
	}

	var chunks []pngChunk
	hdr := make([]byte, 8)
	for {
		if _, err := io.ReadFull(r, hdr); err != nil {
			break
		}
		length := binary.BigEndian.Uint32(hdr[:4])
		typ := string(hdr[4:8])
		if typ == "IDAT" || typ == "IEND" || length > maxPNGChunk {
			break
		}
		data := make([]byte, length)
		if _, err := io.ReadFull(r, data); err != nil {
			break
		}
		// CRC
		if _, err := r.Seek(4, io.SeekCurrent); err != nil {
			break
		}
		chunks = append(chunks, pngChunk{typ: typ, data: data})
	}
	return chunks, nil
}
