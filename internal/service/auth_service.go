package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/wellbeing-service/internal/auth"
	"github.com/spec-kit/wellbeing-service/internal/config"
	"github.com/spec-kit/wellbeing-service/internal/domain"
	"github.com/spec-kit/wellbeing-service/internal/repository"
)

// AuthService coordinates registration, login and account management flows.
type AuthService struct {
	students   repository.StudentRepository
	counselors repository.CounselorRepository
	resets     repository.PasswordResetRepository
	tokenMgr   *auth.TokenManager
	bcryptCost int
	resetTTL   time.Duration
}

// AuthDependencies encapsulates repo requirements for auth service.
type AuthDependencies struct {
	StudentRepo       repository.StudentRepository
	CounselorRepo     repository.CounselorRepository
	PasswordResetRepo repository.PasswordResetRepository
}

// ProfileUpdate carries optional profile fields; nil means unchanged.
type ProfileUpdate struct {
	Email        *string
	Bio          *string
	Tags         []string
	Specialty    *string
	Availability *string
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, deps AuthDependencies) *AuthService {
	return &AuthService{
		students:   deps.StudentRepo,
		counselors: deps.CounselorRepo,
		resets:     deps.PasswordResetRepo,
		tokenMgr:   auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes),
		bcryptCost: cfg.Auth.BcryptCost,
		resetTTL:   time.Duration(cfg.Auth.PasswordResetTTLMinutes) * time.Minute,
	}
}

// TokenManager exposes the token manager for middleware wiring.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}

// RegisterStudent creates a new student account.
func (s *AuthService) RegisterStudent(ctx context.Context, username, password string, tags []string) (*domain.Student, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, errors.New("Username and password are required")
	}
	if err := auth.ValidatePassword(password); err != nil {
		return nil, err
	}
	if _, err := s.students.GetByUsername(ctx, username); err == nil {
		return nil, errors.New("Username already exists")
	} else if err != pgx.ErrNoRows {
		return nil, err
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, err
	}

	student := &domain.Student{
		Username:     username,
		Tags:         tags,
		PasswordHash: hash,
		Status:       domain.AccountStatusActive,
	}
	if err := s.students.Create(ctx, student); err != nil {
		return nil, err
	}
	return student, nil
}

// RegisterCounselor creates a new counselor account.
func (s *AuthService) RegisterCounselor(ctx context.Context, username, password, specialty string) (*domain.Counselor, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, errors.New("Username and password are required")
	}
	if err := auth.ValidatePassword(password); err != nil {
		return nil, err
	}
	if _, err := s.counselors.GetByUsername(ctx, username); err == nil {
		return nil, errors.New("Username already exists")
	} else if err != pgx.ErrNoRows {
		return nil, err
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, err
	}

	counselor := &domain.Counselor{
		Username:     username,
		Specialty:    specialty,
		PasswordHash: hash,
		Status:       domain.AccountStatusActive,
	}
	if err := s.counselors.Create(ctx, counselor); err != nil {
		return nil, err
	}
	return counselor, nil
}

// LoginStudent authenticates a student and issues a token.
func (s *AuthService) LoginStudent(ctx context.Context, username, password string) (*domain.Student, string, time.Time, error) {
	student, err := s.students.GetByUsername(ctx, username)
	if err != nil {
		return nil, "", time.Time{}, errors.New("Invalid username or password")
	}
	if err := auth.ComparePassword(student.PasswordHash, password); err != nil {
		return nil, "", time.Time{}, errors.New("Invalid username or password")
	}
	token, exp, err := s.tokenMgr.GenerateToken(student.ID, student.Username, domain.SubjectTypeStudent)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	return student, token, exp, nil
}

// LoginCounselor authenticates a counselor and issues a token.
func (s *AuthService) LoginCounselor(ctx context.Context, username, password string) (*domain.Counselor, string, time.Time, error) {
	counselor, err := s.counselors.GetByUsername(ctx, username)
	if err != nil {
		return nil, "", time.Time{}, errors.New("Invalid username or password")
	}
	if err := auth.ComparePassword(counselor.PasswordHash, password); err != nil {
		return nil, "", time.Time{}, errors.New("Invalid username or password")
	}
	token, exp, err := s.tokenMgr.GenerateToken(counselor.ID, counselor.Username, domain.SubjectTypeCounselor)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	return counselor, token, exp, nil
}

// UpdateStudentProfile applies partial updates to a student profile.
func (s *AuthService) UpdateStudentProfile(ctx context.Context, username string, update ProfileUpdate) (*domain.Student, error) {
	student, err := s.students.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if update.Email != nil {
		student.Email = *update.Email
	}
	if update.Bio != nil {
		student.Bio = *update.Bio
	}
	if update.Tags != nil {
		student.Tags = update.Tags
	}
	if err := s.students.Update(ctx, student); err != nil {
		return nil, err
	}
	return student, nil
}

// UpdateCounselorProfile applies partial updates to a counselor profile.
func (s *AuthService) UpdateCounselorProfile(ctx context.Context, username string, update ProfileUpdate) (*domain.Counselor, error) {
	counselor, err := s.counselors.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if update.Email != nil {
		counselor.Email = *update.Email
	}
	if update.Bio != nil {
		counselor.Bio = *update.Bio
	}
	if update.Specialty != nil {
		counselor.Specialty = *update.Specialty
	}
	if update.Availability != nil {
		counselor.Availability = *update.Availability
	}
	if err := s.counselors.Update(ctx, counselor); err != nil {
		return nil, err
	}
	return counselor, nil
}

// ChangePassword verifies the current password and stores a new hash.
func (s *AuthService) ChangePassword(ctx context.Context, role domain.SubjectType, username, currentPassword, newPassword string) error {
	if err := auth.ValidatePassword(newPassword); err != nil {
		return err
	}

	switch role {
	case domain.SubjectTypeStudent:
		student, err := s.students.GetByUsername(ctx, username)
		if err != nil {
			return err
		}
		if err := auth.ComparePassword(student.PasswordHash, currentPassword); err != nil {
			return errors.New("Current password is incorrect")
		}
		hash, err := auth.HashPassword(newPassword, s.bcryptCost)
		if err != nil {
			return err
		}
		student.PasswordHash = hash
		return s.students.Update(ctx, student)
	case domain.SubjectTypeCounselor:
		counselor, err := s.counselors.GetByUsername(ctx, username)
		if err != nil {
			return err
		}
		if err := auth.ComparePassword(counselor.PasswordHash, currentPassword); err != nil {
			return errors.New("Current password is incorrect")
		}
		hash, err := auth.HashPassword(newPassword, s.bcryptCost)
		if err != nil {
			return err
		}
		counselor.PasswordHash = hash
		return s.counselors.Update(ctx, counselor)
	default:
		return errors.New("unknown subject")
	}
}

// DeleteAccount removes the account and any pending reset tokens.
func (s *AuthService) DeleteAccount(ctx context.Context, role domain.SubjectType, username string) error {
	switch role {
	case domain.SubjectTypeStudent:
		student, err := s.students.GetByUsername(ctx, username)
		if err != nil {
			return err
		}
		_ = s.resets.DeleteForSubject(ctx, string(role), student.ID)
		return s.students.Delete(ctx, username)
	case domain.SubjectTypeCounselor:
		counselor, err := s.counselors.GetByUsername(ctx, username)
		if err != nil {
			return err
		}
		_ = s.resets.DeleteForSubject(ctx, string(role), counselor.ID)
		return s.counselors.Delete(ctx, username)
	default:
		return errors.New("unknown subject")
	}
}

// RequestPasswordReset persists a reset token for either account type.
func (s *AuthService) RequestPasswordReset(ctx context.Context, username string) (*repository.PasswordResetToken, error) {
	subjectType := domain.SubjectTypeStudent
	subjectID := ""

	if student, err := s.students.GetByUsername(ctx, username); err == nil {
		subjectID = student.ID
	} else if err == pgx.ErrNoRows {
		counselor, counselorErr := s.counselors.GetByUsername(ctx, username)
		if counselorErr != nil {
			return nil, counselorErr
		}
		subjectType = domain.SubjectTypeCounselor
		subjectID = counselor.ID
	} else {
		return nil, err
	}

	token := &repository.PasswordResetToken{
		SubjectType: string(subjectType),
		SubjectID:   subjectID,
		Token:       uuid.NewString(),
		ExpiresAt:   time.Now().Add(s.resetTTL),
	}
	if err := s.resets.Create(ctx, token); err != nil {
		return nil, err
	}
	return token, nil
}

// ConfirmPasswordReset validates the reset token and updates the password.
func (s *AuthService) ConfirmPasswordReset(ctx context.Context, tokenStr, newPassword string) error {
	token, err := s.resets.GetByToken(ctx, tokenStr)
	if err != nil {
		return err
	}
	if token.UsedAt != nil || time.Now().After(token.ExpiresAt) {
		return errors.New("token expired or used")
	}
	if err := auth.ValidatePassword(newPassword); err != nil {
		return err
	}

	hash, err := auth.HashPassword(newPassword, s.bcryptCost)
	if err != nil {
		return err
	}

	switch domain.SubjectType(token.SubjectType) {
	case domain.SubjectTypeStudent:
		student, err := s.students.GetByID(ctx, token.SubjectID)
		if err != nil {
			return err
		}
		student.PasswordHash = hash
		if err := s.students.Update(ctx, student); err != nil {
			return err
		}
	case domain.SubjectTypeCounselor:
		counselor, err := s.counselors.GetByID(ctx, token.SubjectID)
		if err != nil {
			return err
		}
		counselor.PasswordHash = hash
		if err := s.counselors.Update(ctx, counselor); err != nil {
			return err
		}
	default:
		return errors.New("unknown subject")
	}

	return s.resets.MarkUsed(ctx, token.ID)
}
