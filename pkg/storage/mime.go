package storage

import (
	"net/http"
	"strings"
)

// MIME type constants.
const (
	MIMEOctetStream = "application/octet-stream"
	MIMEPDF         = "application/pdf"

	mimeDetectionBytes = 512 // http.DetectContentType requires up to 512 bytes
)

// mimeExtensions maps MIME types to preferred file extensions.
var mimeExtensions = map[string]string{
	"image/jpeg":      ".jpg",
	"image/png":       ".png",
	"image/gif":       ".gif",
	"image/webp":      ".webp",
	"image/bmp":       ".bmp",
	"image/tiff":      ".tiff",
	"image/heic":      ".heic",
	"image/heif":      ".heif",
	"image/avif":      ".avif",
	"application/pdf": ".pdf",
	"text/plain":      ".txt",
}

// ExtFromMIME returns the file extension for a MIME type.
// Returns empty string if MIME type is unknown.
func ExtFromMIME(mimeType string) string {
	return mimeExtensions[normalizeMIME(mimeType)]
}

// detectMIME sniffs the MIME type from the leading bytes of content.
func detectMIME(head []byte) string {
	if len(head) == 0 {
		return MIMEOctetStream
	}
	if len(head) > mimeDetectionBytes {
		head = head[:mimeDetectionBytes]
	}
	return normalizeMIME(http.DetectContentType(head))
}

// normalizeMIME extracts the base MIME type, removing parameters like charset.
// Returns the lowercase MIME type.
func normalizeMIME(mimeType string) string {
	mimeType, _, _ = strings.Cut(mimeType, ";")
	return strings.TrimSpace(strings.ToLower(mimeType))
}

// IsImageMIME reports whether the declared MIME type is an image type.
func IsImageMIME(mimeType string) bool {
	sub, ok := strings.CutPrefix(normalizeMIME(mimeType), "image/")
	return ok && sub != ""
}

// IsPDFMIME reports whether the declared MIME type is exactly application/pdf.
func IsPDFMIME(mimeType string) bool {
	return normalizeMIME(mimeType) == MIMEPDF
}
