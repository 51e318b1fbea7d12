package audience_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"math-academy/internal/domain"
	"math-academy/internal/mocks"
	"math-academy/internal/service/audience"
)

func studentPrincipal(student *domain.Student) domain.Principal {
	return domain.Principal{Role: domain.RoleStudent, UserID: student.ID, Student: student}
}

func TestAudienceService_Matches(t *testing.T) {
	svc := audience.NewService(new(mocks.StudentRepository), new(mocks.UserRepository))

	batchID := uuid.New()
	grade := "10"
	student := &domain.Student{ID: uuid.New(), BatchID: &batchID, Grade: &grade}

	admin := domain.Principal{Role: domain.RoleAdmin, UserID: uuid.New()}
	anon := domain.Anonymous()

	tests := []struct {
		name      string
		principal domain.Principal
		audience  domain.AudienceType
		refID     string
		want      bool
	}{
		{"All matches student", studentPrincipal(student), domain.AudienceAll, "", true},
		{"All matches admin", admin, domain.AudienceAll, "", true},
		{"All matches anonymous", anon, domain.AudienceAll, "", true},
		{"Student matches own id", studentPrincipal(student), domain.AudienceStudent, student.ID.String(), true},
		{"Student rejects other id", studentPrincipal(student), domain.AudienceStudent, uuid.New().String(), false},
		{"Student rejects empty ref", studentPrincipal(student), domain.AudienceStudent, "", false},
		{"Batch matches member", studentPrincipal(student), domain.AudienceBatch, batchID.String(), true},
		{"Batch rejects other batch", studentPrincipal(student), domain.AudienceBatch, uuid.New().String(), false},
		{"Batch rejects empty ref", studentPrincipal(student), domain.AudienceBatch, "", false},
		{"Class matches grade", studentPrincipal(student), domain.AudienceClass, "10", true},
		{"Class rejects other grade", studentPrincipal(student), domain.AudienceClass, "11", false},
		{"Staff matches admin", admin, domain.AudienceStaffOnly, "", true},
		{"Staff rejects student", studentPrincipal(student), domain.AudienceStaffOnly, "", false},
		{"Guardian matches anonymous", anon, domain.AudienceGuardianOnly, "", true},
		{"Guardian rejects student", studentPrincipal(student), domain.AudienceGuardianOnly, "", false},
		{"Guardian rejects admin", admin, domain.AudienceGuardianOnly, "", false},
		{"Unknown type matches nobody", admin, domain.AudienceType("BOGUS"), "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, svc.Matches(tt.principal, tt.audience, tt.refID))
		})
	}
}

func TestAudienceService_MatchesWithoutBatchOrGrade(t *testing.T) {
	svc := audience.NewService(new(mocks.StudentRepository), new(mocks.UserRepository))

	student := &domain.Student{ID: uuid.New()}
	p := studentPrincipal(student)

	assert.False(t, svc.Matches(p, domain.AudienceBatch, uuid.New().String()))
	assert.False(t, svc.Matches(p, domain.AudienceClass, "10"))
	assert.True(t, svc.Matches(p, domain.AudienceStudent, student.ID.String()))
}

func TestAudienceService_FiltersFor(t *testing.T) {
	svc := audience.NewService(new(mocks.StudentRepository), new(mocks.UserRepository))

	t.Run("Admin Unrestricted", func(t *testing.T) {
		filters := svc.FiltersFor(domain.Principal{Role: domain.RoleAdmin, UserID: uuid.New()})
		assert.Nil(t, filters)
	})

	t.Run("Student With Batch And Grade", func(t *testing.T) {
		batchID := uuid.New()
		grade := "10"
		student := &domain.Student{ID: uuid.New(), BatchID: &batchID, Grade: &grade}

		filters := svc.FiltersFor(studentPrincipal(student))

		assert.Equal(t, []domain.AudienceFilter{
			{Type: domain.AudienceAll},
			{Type: domain.AudienceStudent, RefID: student.ID.String()},
			{Type: domain.AudienceBatch, RefID: batchID.String()},
			{Type: domain.AudienceClass, RefID: "10"},
		}, filters)
	})

	t.Run("Student Without Batch", func(t *testing.T) {
		student := &domain.Student{ID: uuid.New()}

		filters := svc.FiltersFor(studentPrincipal(student))

		assert.Equal(t, []domain.AudienceFilter{
			{Type: domain.AudienceAll},
			{Type: domain.AudienceStudent, RefID: student.ID.String()},
		}, filters)
	})

	t.Run("Anonymous Gets Guardian Feed", func(t *testing.T) {
		filters := svc.FiltersFor(domain.Anonymous())

		assert.Equal(t, []domain.AudienceFilter{
			{Type: domain.AudienceAll},
			{Type: domain.AudienceGuardianOnly},
		}, filters)
	})
}

func TestAudienceService_Expand(t *testing.T) {
	ctx := context.Background()

	t.Run("All", func(t *testing.T) {
		svc := audience.NewService(new(mocks.StudentRepository), new(mocks.UserRepository))

		selector, err := svc.Expand(ctx, domain.AudienceAll, "")

		assert.NoError(t, err)
		assert.Equal(t, domain.SelectAll, selector.Mode)
	})

	t.Run("Staff Only", func(t *testing.T) {
		mockUserRepo := new(mocks.UserRepository)
		svc := audience.NewService(new(mocks.StudentRepository), mockUserRepo)

		adminID := uuid.New()
		mockUserRepo.On("FindAdminIdentity", ctx).Return(&domain.User{ID: adminID}, nil).Once()

		selector, err := svc.Expand(ctx, domain.AudienceStaffOnly, "")

		assert.NoError(t, err)
		assert.Equal(t, domain.SelectRecipients, selector.Mode)
		assert.Equal(t, []string{domain.AdminRecipient(adminID)}, selector.Recipients)
		mockUserRepo.AssertExpectations(t)
	})

	t.Run("Staff Only Without Admin", func(t *testing.T) {
		mockUserRepo := new(mocks.UserRepository)
		svc := audience.NewService(new(mocks.StudentRepository), mockUserRepo)

		mockUserRepo.On("FindAdminIdentity", ctx).Return(nil, nil).Once()

		selector, err := svc.Expand(ctx, domain.AudienceStaffOnly, "")

		assert.NoError(t, err)
		assert.Equal(t, domain.SelectNone, selector.Mode)
	})

	t.Run("Guardian Only Uses Student Prefix", func(t *testing.T) {
		svc := audience.NewService(new(mocks.StudentRepository), new(mocks.UserRepository))

		selector, err := svc.Expand(ctx, domain.AudienceGuardianOnly, "")

		assert.NoError(t, err)
		assert.Equal(t, domain.SelectPrefix, selector.Mode)
		assert.Equal(t, domain.StudentRecipientPrefix, selector.Prefix)
	})

	t.Run("Single Student", func(t *testing.T) {
		svc := audience.NewService(new(mocks.StudentRepository), new(mocks.UserRepository))

		studentID := uuid.New()
		selector, err := svc.Expand(ctx, domain.AudienceStudent, studentID.String())

		assert.NoError(t, err)
		assert.Equal(t, domain.SelectRecipients, selector.Mode)
		assert.Equal(t, []string{domain.StudentRecipient(studentID)}, selector.Recipients)
	})

	t.Run("Student With Bad Ref Selects Nobody", func(t *testing.T) {
		svc := audience.NewService(new(mocks.StudentRepository), new(mocks.UserRepository))

		selector, err := svc.Expand(ctx, domain.AudienceStudent, "not-a-uuid")

		assert.NoError(t, err)
		assert.Equal(t, domain.SelectNone, selector.Mode)
	})

	t.Run("Batch", func(t *testing.T) {
		mockStudentRepo := new(mocks.StudentRepository)
		svc := audience.NewService(mockStudentRepo, new(mocks.UserRepository))

		batchID := uuid.New()
		memberIDs := []uuid.UUID{uuid.New(), uuid.New()}
		mockStudentRepo.On("FindIDsByBatch", ctx, batchID).Return(memberIDs, nil).Once()

		selector, err := svc.Expand(ctx, domain.AudienceBatch, batchID.String())

		assert.NoError(t, err)
		assert.Equal(t, domain.SelectRecipients, selector.Mode)
		assert.Equal(t, []string{
			domain.StudentRecipient(memberIDs[0]),
			domain.StudentRecipient(memberIDs[1]),
		}, selector.Recipients)
		mockStudentRepo.AssertExpectations(t)
	})

	t.Run("Empty Batch Selects Nobody", func(t *testing.T) {
		mockStudentRepo := new(mocks.StudentRepository)
		svc := audience.NewService(mockStudentRepo, new(mocks.UserRepository))

		batchID := uuid.New()
		mockStudentRepo.On("FindIDsByBatch", ctx, batchID).Return([]uuid.UUID{}, nil).Once()

		selector, err := svc.Expand(ctx, domain.AudienceBatch, batchID.String())

		assert.NoError(t, err)
		assert.Equal(t, domain.SelectNone, selector.Mode)
	})

	t.Run("Batch Repo Error", func(t *testing.T) {
		mockStudentRepo := new(mocks.StudentRepository)
		svc := audience.NewService(mockStudentRepo, new(mocks.UserRepository))

		batchID := uuid.New()
		mockStudentRepo.On("FindIDsByBatch", ctx, batchID).Return(nil, errors.New("db error")).Once()

		selector, err := svc.Expand(ctx, domain.AudienceBatch, batchID.String())

		assert.Error(t, err)
		assert.Equal(t, domain.SelectNone, selector.Mode)
	})

	t.Run("Class", func(t *testing.T) {
		mockStudentRepo := new(mocks.StudentRepository)
		svc := audience.NewService(mockStudentRepo, new(mocks.UserRepository))

		memberIDs := []uuid.UUID{uuid.New()}
		mockStudentRepo.On("FindIDsByGrade", ctx, "10").Return(memberIDs, nil).Once()

		selector, err := svc.Expand(ctx, domain.AudienceClass, "10")

		assert.NoError(t, err)
		assert.Equal(t, domain.SelectRecipients, selector.Mode)
		assert.Equal(t, []string{domain.StudentRecipient(memberIDs[0])}, selector.Recipients)
	})

	t.Run("Class With Empty Ref Selects Nobody", func(t *testing.T) {
		svc := audience.NewService(new(mocks.StudentRepository), new(mocks.UserRepository))

		selector, err := svc.Expand(ctx, domain.AudienceClass, "")

		assert.NoError(t, err)
		assert.Equal(t, domain.SelectNone, selector.Mode)
	})

	t.Run("Unknown Type", func(t *testing.T) {
		svc := audience.NewService(new(mocks.StudentRepository), new(mocks.UserRepository))

		selector, err := svc.Expand(ctx, domain.AudienceType("BOGUS"), "")

		assert.Error(t, err)
		assert.Equal(t, domain.SelectNone, selector.Mode)
	})
}

// A recipient the bulk expansion selects must be one the membership predicate
// accepts, and vice versa. The unread badge and the push fan-out both lean on
// this agreement.
func TestAudienceService_ExpandAgreesWithMatches(t *testing.T) {
	ctx := context.Background()
	svc := audience.NewService(new(mocks.StudentRepository), new(mocks.UserRepository))

	student := &domain.Student{ID: uuid.New()}
	p := studentPrincipal(student)

	t.Run("Valid Student Ref", func(t *testing.T) {
		refID := student.ID.String()

		selector, err := svc.Expand(ctx, domain.AudienceStudent, refID)
		assert.NoError(t, err)

		assert.True(t, svc.Matches(p, domain.AudienceStudent, refID))
		assert.Contains(t, selector.Recipients, p.RecipientID())
	})

	t.Run("Unparseable Ref", func(t *testing.T) {
		refID := "garbage"

		selector, err := svc.Expand(ctx, domain.AudienceStudent, refID)
		assert.NoError(t, err)

		assert.False(t, svc.Matches(p, domain.AudienceStudent, refID))
		assert.Equal(t, domain.SelectNone, selector.Mode)
	})
}
