// Package codec turns stored documents into bytes and back.
package codec

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	domainerrors "gisteam.backend/internal/domain/errors"
	"gisteam.backend/internal/infrastructure/models"
)

// Encode writes doc as indented JSON so objects stay readable in the bucket
// console.
func Encode(doc models.Document) ([]byte, error) {
	if err := doc.Normalize(); err != nil {
		return nil, fmt.Errorf("encode %s: %w: %w", doc.DocumentID(), domainerrors.ErrInvalidInput, err)
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", doc.DocumentID(), err)
	}
	return data, nil
}

// Decode parses data read from path into a new M. Unknown fields are
// ignored; absent fields get their defaults. Any failure is a
// *errors.MalformedError.
func Decode[M any, PM interface {
	*M
	models.Document
}](path string, data []byte) (*M, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, &domainerrors.MalformedError{Path: path, Err: errors.New("empty document")}
	}

	doc := PM(new(M))
	if err := json.Unmarshal(data, doc); err != nil {
		return nil, &domainerrors.MalformedError{Path: path, Err: err}
	}
	if err := doc.Normalize(); err != nil {
		return nil, &domainerrors.MalformedError{Path: path, Err: err}
	}
	return (*M)(doc), nil
}
