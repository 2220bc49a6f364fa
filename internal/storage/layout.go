package storage

import (
	"errors"
	"time"

	"flatplan/internal/layout"
)

var (
	ErrLayoutNotFound       = errors.New("layout not found")
	ErrSharedAccessNotFound = errors.New("shared access not found")
)

// Layout is one stored flatplan document with its issue metadata. Pages
// holds the canonical page-record array, persisted as a JSON column.
type Layout struct {
	ID              string              `json:"id"`
	AccountID       string              `json:"account_id"`
	PublicationName string              `json:"publication_name"`
	IssueName       string              `json:"issue_name"`
	PublicationDate string              `json:"publication_date"`
	ModifiedDate    time.Time           `json:"modified_date"`
	Pages           []layout.PageRecord `json:"layout"`
}

// NewLayout carries the fields needed to create a layout.
type NewLayout struct {
	AccountID       string              `json:"account_id"`
	PublicationName string              `json:"publication_name"`
	IssueName       string              `json:"issue_name"`
	PublicationDate string              `json:"publication_date"`
	Pages           []layout.PageRecord `json:"layout"`
}

// LayoutMetadata is the editable issue metadata of a layout.
type LayoutMetadata struct {
	PublicationName string `json:"publication_name"`
	IssueName       string `json:"issue_name"`
	PublicationDate string `json:"publication_date"`
}
