package core

import (
	"path/filepath"
	"strings"
)

// FormatID enumerates every recognised format.
type FormatID string

const (
	FmtJPEG FormatID = "jpeg"
	FmtPNG  FormatID = "png"
	FmtGIF  FormatID = "gif"
	FmtTIFF FormatID = "tiff"
	FmtBMP  FormatID = "bmp"
	FmtHEIC FormatID = "heic"

	FmtMP4 FormatID = "mp4"
	FmtMOV FormatID = "mov"
	FmtMKV FormatID = "mkv"
	FmtAVI FormatID = "avi"
	FmtWMV FormatID = "wmv"
	FmtFLV FormatID = "flv"

	FmtUnknown FormatID = "unknown"
)

// extMap maps lowercase extensions to format IDs. Image and video
// extensions are disjoint.
var extMap = map[string]FormatID{
	".jpg":  FmtJPEG,
	".jpeg": FmtJPEG,
	".png":  FmtPNG,
	".gif":  FmtGIF,
	".tiff": FmtTIFF,
	".bmp":  FmtBMP,
	".heic": FmtHEIC,

	".mp4": FmtMP4,
	".mov": FmtMOV,
	".mkv": FmtMKV,
	".avi": FmtAVI,
	".wmv": FmtWMV,
	".flv": FmtFLV,
}

// DetectFormat returns the FormatID for path by extension, case-insensitive.
func DetectFormat(path string) FormatID {
	if id, ok := extMap[strings.ToLower(filepath.Ext(path))]; ok {
		return id
	}
	return FmtUnknown
}

// KindFor returns the broad media category for a format.
func KindFor(id FormatID) Kind {
	switch id {
	case FmtJPEG, FmtPNG, FmtGIF, FmtTIFF, FmtBMP, FmtHEIC:
		return KindImage
	case FmtMP4, FmtMOV, FmtMKV, FmtAVI, FmtWMV, FmtFLV:
		return KindVideo
	default:
		return KindIgnored
	}
}

// Classify returns the kind of the file at path, by extension only.
func Classify(path string) Kind {
	return KindFor(DetectFormat(path))
}
