package service

import (
	"encoding/base64"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const signaturePrefix = "data:image/png;base64,"

// ParseSignature decodes a PNG data url. The decoded bytes must really be a PNG.
func ParseSignature(dataUrl string) ([]byte, error) {
	dataUrl = strings.TrimSpace(dataUrl)
	if !strings.HasPrefix(dataUrl, signaturePrefix) {
		return nil, ErrInvalidSignature
	}
	payload := strings.TrimPrefix(dataUrl, signaturePrefix)
	if payload == "" {
		return nil, ErrInvalidSignature
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, ErrInvalidSignature.Wrap(err)
	}
	if !mimetype.Detect(data).Is("image/png") {
		return nil, ErrInvalidSignature
	}
	return data, nil
}

func normalizeText(value string) string {
	return strings.Join(strings.Fields(value), " ")
}

// sameName compares two person names ignoring case the way Danish collation does.
func sameName(a string, b string) bool {
	caser := cases.Lower(language.Danish)
	return caser.String(normalizeText(a)) == caser.String(normalizeText(b))
}
