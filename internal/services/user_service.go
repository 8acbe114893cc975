package services

import (
	"context"
	"net/mail"
	"regexp"
	"strings"
	"unicode/utf8"

	"expense_share/internal/models"
	"expense_share/pkg/utils"

	"github.com/google/uuid"
)

const maxUserNameLength = 100

// optional +, optional 91 country code, then ten digits
var mobilePattern = regexp.MustCompile(`^\+?91?\d{10}$`)

type UserService struct {
	store  Store
	mailer utils.Mailer
}

// NewUserService builds the user service. With a non-nil mailer new users
// get a welcome email; a failed send is logged and does not fail the create.
func NewUserService(store Store, mailer utils.Mailer) *UserService {
	return &UserService{store: store, mailer: mailer}
}

// ValidateUserID rejects ids that are not UUIDs before they reach the store.
func ValidateUserID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return utils.NewValidationError("user_id", "invalid user ID format, must be a valid UUID")
	}
	return nil
}

func validateName(name string) error {
	if name == "" || utf8.RuneCountInString(name) > maxUserNameLength {
		return utils.NewValidationError("name", "must be between 1 and %d characters", maxUserNameLength)
	}
	return nil
}

func validateMobile(mobile string) error {
	if !mobilePattern.MatchString(mobile) {
		return utils.NewValidationError("mobile", "invalid mobile number format")
	}
	return nil
}

func validateEmail(email string) error {
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return utils.NewValidationError("email", "invalid email address")
	}
	return nil
}

func (s *UserService) Create(ctx context.Context, u models.User) (models.User, error) {
	u.ID = ""
	u.Name = strings.TrimSpace(u.Name)
	u.Email = strings.TrimSpace(u.Email)
	u.Mobile = strings.TrimSpace(u.Mobile)

	if err := validateName(u.Name); err != nil {
		return models.User{}, err
	}
	if err := validateEmail(u.Email); err != nil {
		return models.User{}, err
	}
	if err := validateMobile(u.Mobile); err != nil {
		return models.User{}, err
	}

	if err := s.store.CreateUser(ctx, &u); err != nil {
		return models.User{}, err
	}
	utils.Logger.WithField("user_id", u.ID).Info("user created")

	if s.mailer != nil {
		if err := utils.SendWelcomeEmail(s.mailer, u.Email, u.Name); err != nil {
			utils.Logger.WithField("user_id", u.ID).WithError(err).Warn("welcome email not sent")
		}
	}
	return u, nil
}

func (s *UserService) Get(ctx context.Context, id string) (models.User, error) {
	if err := ValidateUserID(id); err != nil {
		return models.User{}, err
	}
	return s.store.GetUser(ctx, id)
}

func (s *UserService) List(ctx context.Context) ([]models.User, error) {
	return s.store.ListUsers(ctx)
}

// Update changes a user's name and/or mobile. Fields left nil are kept.
func (s *UserService) Update(ctx context.Context, id string, upd models.UserUpdate) (models.User, error) {
	if err := ValidateUserID(id); err != nil {
		return models.User{}, err
	}
	if upd.Empty() {
		return models.User{}, utils.NewValidationError("", "no fields to update")
	}
	if upd.Name != nil {
		name := strings.TrimSpace(*upd.Name)
		if err := validateName(name); err != nil {
			return models.User{}, err
		}
		upd.Name = &name
	}
	if upd.Mobile != nil {
		mobile := strings.TrimSpace(*upd.Mobile)
		if err := validateMobile(mobile); err != nil {
			return models.User{}, err
		}
		upd.Mobile = &mobile
	}
	return s.store.UpdateUser(ctx, id, upd)
}
