// Package models holds the stored document shapes. Field names are the
// public contract of every object in the bucket: add fields, never rename.
package models

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// Collection names, used as object path prefixes.
const (
	CollectionAccounts        = "accounts"
	CollectionProjects        = "projects"
	CollectionGallery         = "gallery"
	CollectionTeamMembers     = "team-members"
	CollectionContactMessages = "contact-messages"
)

// DefaultMemberType applies to team member documents written before the
// member_type field existed.
const DefaultMemberType = "board"

var errMissingCreatedAt = errors.New("created_at is required")

// Document is implemented by every stored shape. Normalize fills defaults
// for absent fields and rejects documents that cannot be used.
type Document interface {
	DocumentID() string
	Normalize() error
}

// Touchable documents carry an updated_at that moves on every mutation.
type Touchable interface {
	Touch(now time.Time)
}

type AccountDocument struct {
	ID           string      `json:"id"`
	Username     string      `json:"username"`
	Email        string      `json:"email"`
	PasswordHash string      `json:"password_hash"`
	FirstName    null.String `json:"first_name"`
	LastName     null.String `json:"last_name"`
	CreatedAt    Timestamp   `json:"created_at"`
	UpdatedAt    *Timestamp  `json:"updated_at"`
	LastLogin    *Timestamp  `json:"last_login"`
	IsActive     *bool       `json:"is_active"`
}

func (d *AccountDocument) DocumentID() string { return d.ID }

func (d *AccountDocument) Touch(now time.Time) { touch(d.CreatedAt, &d.UpdatedAt, now) }

func (d *AccountDocument) Normalize() error {
	if err := requireID(d.ID); err != nil {
		return err
	}
	if d.Username == "" {
		return errors.New("username is required")
	}
	if err := normalizeTimes(d.CreatedAt, &d.UpdatedAt); err != nil {
		return err
	}
	d.IsActive = defaultTrue(d.IsActive)
	return nil
}

type ProjectDocument struct {
	ID          string      `json:"id"`
	Title       string      `json:"title"`
	CreatorName string      `json:"creator_name"`
	Description string      `json:"description"`
	ProjectLink string      `json:"project_link"`
	ProjectType string      `json:"project_type"`
	Tags        string      `json:"tags"`
	ImageURL    string      `json:"image_url"`
	CreatedBy   null.String `json:"created_by"`
	CreatedAt   Timestamp   `json:"created_at"`
	UpdatedAt   *Timestamp  `json:"updated_at"`
	IsActive    *bool       `json:"is_active"`
}

func (d *ProjectDocument) DocumentID() string { return d.ID }

func (d *ProjectDocument) Touch(now time.Time) { touch(d.CreatedAt, &d.UpdatedAt, now) }

func (d *ProjectDocument) Normalize() error {
	if err := requireID(d.ID); err != nil {
		return err
	}
	if err := normalizeTimes(d.CreatedAt, &d.UpdatedAt); err != nil {
		return err
	}
	d.IsActive = defaultTrue(d.IsActive)
	return nil
}

type GalleryItemDocument struct {
	ID          string      `json:"id"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	ImageURL    string      `json:"image_url"`
	CreatedBy   null.String `json:"created_by"`
	CreatedAt   Timestamp   `json:"created_at"`
	UpdatedAt   *Timestamp  `json:"updated_at"`
	IsActive    *bool       `json:"is_active"`
}

func (d *GalleryItemDocument) DocumentID() string { return d.ID }

func (d *GalleryItemDocument) Touch(now time.Time) { touch(d.CreatedAt, &d.UpdatedAt, now) }

func (d *GalleryItemDocument) Normalize() error {
	if err := requireID(d.ID); err != nil {
		return err
	}
	if err := normalizeTimes(d.CreatedAt, &d.UpdatedAt); err != nil {
		return err
	}
	d.IsActive = defaultTrue(d.IsActive)
	return nil
}

type TeamMemberDocument struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	LinkedInURL null.String `json:"linkedin_url"`
	MemberType  string      `json:"member_type"`
	Year        null.String `json:"year"`
	CreatedBy   null.String `json:"created_by"`
	CreatedAt   Timestamp   `json:"created_at"`
	UpdatedAt   *Timestamp  `json:"updated_at"`
}

func (d *TeamMemberDocument) DocumentID() string { return d.ID }

func (d *TeamMemberDocument) Touch(now time.Time) { touch(d.CreatedAt, &d.UpdatedAt, now) }

func (d *TeamMemberDocument) Normalize() error {
	if err := requireID(d.ID); err != nil {
		return err
	}
	if err := normalizeTimes(d.CreatedAt, &d.UpdatedAt); err != nil {
		return err
	}
	if d.MemberType == "" {
		d.MemberType = DefaultMemberType
	}
	return nil
}

type ContactMessageDocument struct {
	ID        string      `json:"id"`
	Name      string      `json:"name"`
	Email     string      `json:"email"`
	Subject   string      `json:"subject"`
	Message   string      `json:"message"`
	Timestamp Timestamp   `json:"timestamp"`
	UserID    null.String `json:"user_id"`
}

func (d *ContactMessageDocument) DocumentID() string { return d.ID }

func (d *ContactMessageDocument) Normalize() error {
	if err := requireID(d.ID); err != nil {
		return err
	}
	if d.Timestamp.IsZero() {
		return errors.New("timestamp is required")
	}
	return nil
}

func requireID(id string) error {
	if id == "" {
		return errors.New("id is required")
	}
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("invalid id %q: %w", id, err)
	}
	return nil
}

// normalizeTimes defaults updated_at to created_at and lifts it to
// created_at when an older writer left it behind.
func normalizeTimes(created Timestamp, updated **Timestamp) error {
	if created.IsZero() {
		return errMissingCreatedAt
	}
	if *updated == nil || (*updated).IsZero() || (*updated).Before(created.Time) {
		ts := created
		*updated = &ts
	}
	return nil
}

func defaultTrue(b *bool) *bool {
	if b != nil {
		return b
	}
	v := true
	return &v
}

// touch sets updated_at to now, never moving it backwards or before
// created_at when clocks disagree.
func touch(created Timestamp, updated **Timestamp, now time.Time) {
	next := NewTimestamp(now)
	if next.Before(created.Time) {
		next = created
	}
	if *updated != nil && next.Before((*updated).Time) {
		next = **updated
	}
	*updated = &next
}
