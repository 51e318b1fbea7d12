package audience

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"math-academy/internal/domain"
	"math-academy/internal/repository"
)

// Service resolves notice audiences two ways: as a per-recipient predicate
// (Matches, FiltersFor) and as a bulk subscription selector (Expand). Both
// forms must always agree on who a notice is addressed to; the unread count
// and the push fan-out share this resolver for exactly that reason.
type Service interface {
	Matches(principal domain.Principal, audienceType domain.AudienceType, refID string) bool
	FiltersFor(principal domain.Principal) []domain.AudienceFilter
	Expand(ctx context.Context, audienceType domain.AudienceType, refID string) (domain.SubscriptionSelector, error)
}

type service struct {
	studentRepo repository.StudentRepository
	userRepo    repository.UserRepository
}

func NewService(studentRepo repository.StudentRepository, userRepo repository.UserRepository) Service {
	return &service{
		studentRepo: studentRepo,
		userRepo:    userRepo,
	}
}

// Matches is the single-recipient membership predicate. Ref-carrying types
// with an empty ref match nobody.
func (s *service) Matches(p domain.Principal, t domain.AudienceType, refID string) bool {
	switch t {
	case domain.AudienceAll:
		return true
	case domain.AudienceStudent:
		return p.Student != nil && p.Student.ID.String() == refID && refID != ""
	case domain.AudienceBatch:
		return p.Student != nil && p.Student.BatchID != nil && refID != "" && p.Student.BatchID.String() == refID
	case domain.AudienceClass:
		return p.Student != nil && p.Student.Grade != nil && refID != "" && *p.Student.Grade == refID
	case domain.AudienceStaffOnly:
		return p.Role == domain.RoleAdmin
	case domain.AudienceGuardianOnly:
		// Placeholder until guardian accounts exist: the anonymous feed
		// stands in for guardians.
		return p.Role == domain.RoleAnonymous
	default:
		return false
	}
}

// FiltersFor renders the principal's visibility as the OR-filter list used
// by notice listing and unread counting. Admin is unrestricted (nil);
// anonymous gets the guardian placeholder feed.
func (s *service) FiltersFor(p domain.Principal) []domain.AudienceFilter {
	if p.IsAdmin() {
		return nil
	}

	if p.Student != nil {
		filters := []domain.AudienceFilter{
			{Type: domain.AudienceAll},
			{Type: domain.AudienceStudent, RefID: p.Student.ID.String()},
		}
		if p.Student.BatchID != nil {
			filters = append(filters, domain.AudienceFilter{Type: domain.AudienceBatch, RefID: p.Student.BatchID.String()})
		}
		if p.Student.Grade != nil {
			filters = append(filters, domain.AudienceFilter{Type: domain.AudienceClass, RefID: *p.Student.Grade})
		}
		return filters
	}

	return []domain.AudienceFilter{
		{Type: domain.AudienceAll},
		{Type: domain.AudienceGuardianOnly},
	}
}

// Expand resolves an audience to the bulk subscription selector for push
// fan-out. A ref-carrying type with a missing or unparseable ref expands to
// the empty selector, never to ALL and never to an error: creation-time
// validation already rejected that combination, so at dispatch time it can
// only mean "nobody".
func (s *service) Expand(ctx context.Context, t domain.AudienceType, refID string) (domain.SubscriptionSelector, error) {
	switch t {
	case domain.AudienceAll:
		return domain.SelectAllSubscriptions(), nil

	case domain.AudienceStaffOnly:
		admin, err := s.userRepo.FindAdminIdentity(ctx)
		if err != nil {
			return domain.SelectNoSubscriptions(), err
		}
		if admin == nil {
			return domain.SelectNoSubscriptions(), nil
		}
		return domain.SelectByRecipients([]string{domain.AdminRecipient(admin.ID)}), nil

	case domain.AudienceGuardianOnly:
		// Stand-in until guardian accounts exist: everything registered
		// under a student identity.
		return domain.SelectByPrefix(domain.StudentRecipientPrefix), nil

	case domain.AudienceStudent:
		id, err := uuid.Parse(refID)
		if err != nil {
			return domain.SelectNoSubscriptions(), nil
		}
		return domain.SelectByRecipients([]string{domain.StudentRecipient(id)}), nil

	case domain.AudienceBatch:
		batchID, err := uuid.Parse(refID)
		if err != nil {
			return domain.SelectNoSubscriptions(), nil
		}
		ids, err := s.studentRepo.FindIDsByBatch(ctx, batchID)
		if err != nil {
			return domain.SelectNoSubscriptions(), err
		}
		return domain.SelectByRecipients(recipientIDs(ids)), nil

	case domain.AudienceClass:
		if refID == "" {
			return domain.SelectNoSubscriptions(), nil
		}
		ids, err := s.studentRepo.FindIDsByGrade(ctx, refID)
		if err != nil {
			return domain.SelectNoSubscriptions(), err
		}
		return domain.SelectByRecipients(recipientIDs(ids)), nil

	default:
		return domain.SelectNoSubscriptions(), fmt.Errorf("unknown audience type %q", t)
	}
}

func recipientIDs(studentIDs []uuid.UUID) []string {
	recipients := make([]string, 0, len(studentIDs))
	for _, id := range studentIDs {
		recipients = append(recipients, domain.StudentRecipient(id))
	}
	return recipients
}
