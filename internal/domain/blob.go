package domain

import (
	"encoding/base64"
	"strings"
)

// Blob is a decoded self-describing payload. MediaType is empty when the
// data URI did not declare one.
type Blob struct {
	MediaType string
	Data      []byte
}

// Declared reports whether the payload carried its own media type.
func (b *Blob) Declared() bool {
	return b.MediaType != ""
}

// ParseDataURI decodes "data:<mimetype>;base64,<payload>". A URI without a
// media type ("data:;base64,...") or a bare base64 string yields an undeclared Blob.
func ParseDataURI(uri string) (*Blob, error) {
	uri = strings.TrimSpace(uri)
	if uri == "" {
		return nil, ValidationErrors{NewMissingFieldError("fileDataUri")}
	}

	var mediaType, payload string
	if strings.HasPrefix(uri, "data:") {
		comma := strings.IndexByte(uri, ',')
		if comma < 0 {
			return nil, ValidationErrors{NewInvalidFormatError("fileDataUri", "missing ',' separator")}
		}
		header := uri[len("data:"):comma]
		payload = uri[comma+1:]

		params := strings.Split(header, ";")
		isBase64 := false
		for _, p := range params[1:] {
			if strings.EqualFold(strings.TrimSpace(p), "base64") {
				isBase64 = true
			}
		}
		if !isBase64 {
			return nil, ValidationErrors{NewInvalidFormatError("fileDataUri", "payload must be base64 encoded")}
		}
		mediaType = strings.ToLower(strings.TrimSpace(params[0]))
	} else {
		payload = uri
	}

	data, err := decodeBase64(payload)
	if err != nil {
		return nil, ValidationErrors{NewInvalidFormatError("fileDataUri", "payload is not valid base64")}
	}
	if len(data) == 0 {
		return nil, ValidationErrors{NewValidationError("file is empty")}
	}
	return &Blob{MediaType: mediaType, Data: data}, nil
}

// DataURI re-encodes the blob with the given media type.
func (b *Blob) DataURI(mediaType string) string {
	return "data:" + mediaType + ";base64," + base64.StdEncoding.EncodeToString(b.Data)
}

func decodeBase64(s string) ([]byte, error) {
	s = strings.TrimSpace(s)
	if data, err := base64.StdEncoding.DecodeString(s); err == nil {
		return data, nil
	}
	return base64.RawStdEncoding.DecodeString(strings.TrimRight(s, "="))
}
