package domain

import (
	"time"

	"github.com/google/uuid"
)

type Notice struct {
	ID              uuid.UUID    `json:"id" db:"id"`
	Title           string       `json:"title" db:"title"`
	Body            string       `json:"body" db:"body"`
	Type            NoticeType   `json:"type" db:"type"`
	AudienceType    AudienceType `json:"audience_type" db:"audience_type"`
	AudienceRefID   *string      `json:"audience_ref_id,omitempty" db:"audience_ref_id"`
	IsPinned        bool         `json:"is_pinned" db:"is_pinned"`
	PublishAt       time.Time    `json:"publish_at" db:"publish_at"`
	AttachmentURL   *string      `json:"attachment_url,omitempty" db:"attachment_url"`
	CreatedByUserID *uuid.UUID   `json:"created_by_user_id,omitempty" db:"created_by_user_id"`
	CreatedAt       time.Time    `json:"created_at" db:"created_at"`
}

// AudienceRef returns the dereferenced audience ref id, empty when unset.
func (n *Notice) AudienceRef() string {
	if n.AudienceRefID == nil {
		return ""
	}
	return *n.AudienceRefID
}

type NoticeType string

const (
	NoticeAnnouncement NoticeType = "ANNOUNCEMENT"
	NoticeExamSchedule NoticeType = "EXAM_SCHEDULE"
	NoticeExamResult   NoticeType = "EXAM_RESULT"
	NoticePayment      NoticeType = "PAYMENT"
	NoticeUrgent       NoticeType = "URGENT"
	NoticeOther        NoticeType = "OTHER"
)

func (t NoticeType) Valid() bool {
	switch t {
	case NoticeAnnouncement, NoticeExamSchedule, NoticeExamResult, NoticePayment, NoticeUrgent, NoticeOther:
		return true
	}
	return false
}

type AudienceType string

const (
	AudienceAll          AudienceType = "ALL"
	AudienceBatch        AudienceType = "BATCH"
	AudienceClass        AudienceType = "CLASS"
	AudienceStudent      AudienceType = "STUDENT"
	AudienceGuardianOnly AudienceType = "GUARDIAN_ONLY"
	AudienceStaffOnly    AudienceType = "STAFF_ONLY"
)

func (t AudienceType) Valid() bool {
	switch t {
	case AudienceAll, AudienceBatch, AudienceClass, AudienceStudent, AudienceGuardianOnly, AudienceStaffOnly:
		return true
	}
	return false
}

// RequiresRef reports whether this audience type is meaningless without a
// concrete audience_ref_id.
func (t AudienceType) RequiresRef() bool {
	return t == AudienceBatch || t == AudienceClass || t == AudienceStudent
}

// NoticeRead is the per-recipient read receipt, unique on (notice_id, user_id).
// user_id holds a role-prefixed recipient identifier, not a raw account id.
type NoticeRead struct {
	NoticeID uuid.UUID `json:"notice_id" db:"notice_id"`
	UserID   string    `json:"user_id" db:"user_id"`
	ReadAt   time.Time `json:"read_at" db:"read_at"`
}

// AudienceFilter is one OR-branch of the visibility predicate applied to
// notice listing and unread counting. RefID is empty for types that do not
// carry one. A nil []AudienceFilter means unrestricted (admin view).
type AudienceFilter struct {
	Type  AudienceType
	RefID string
}

type CreateNoticeInput struct {
	Title         string  `json:"title"`
	Body          string  `json:"body"`
	Type          string  `json:"type"`
	AudienceType  string  `json:"audienceType"`
	AudienceRefID *string `json:"audienceRefId,omitempty"`
	IsPinned      *bool   `json:"isPinned,omitempty"`
	PublishAt     *string `json:"publishAt,omitempty"`
	AttachmentURL *string `json:"attachmentUrl,omitempty"`
}
