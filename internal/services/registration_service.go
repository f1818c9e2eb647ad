package services

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode"

	"BookingAPI/internal/model"
	"BookingAPI/internal/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	minPasswordLen     = 12
	saltLength         = 12
	selfRegisteredRole = "self_registered"

	passwordSpecials = "!?@$&*"
	passwordAlphabet = "@$!%*?&"
)

// SignupForm mirrors the registration request body.
type SignupForm struct {
	UserFirstName string `json:"userFirstName"`
	UserLastName  string `json:"userLastName"`
	UserEmail     string `json:"userEmail"`
	UserLogin     string `json:"userLogin"`
	UserPassword  string `json:"userPassword"`
	UserRepeat    string `json:"userRepeat"`
	BirthDate     string `json:"birthdate,omitempty"` // YYYY-MM-DD
	Agree         bool   `json:"agree"`
}

type RegistrationService struct {
	Users  *repository.UserAccessRepository
	Kdf    KdfService
	Random RandomService
}

func NewRegistrationService(u *repository.UserAccessRepository, kdf KdfService, random RandomService) *RegistrationService {
	return &RegistrationService{Users: u, Kdf: kdf, Random: random}
}

// Register validates the form field by field, collecting every violation into
// a map keyed by field name. Nothing is written unless the map stays empty.
// A write-time login collision (the store's unique constraint is the source
// of truth) surfaces as a single "Login already exists" error.
func (s *RegistrationService) Register(ctx context.Context, form SignupForm) (*model.UserAccess, map[string]string) {
	fieldErrors := s.validate(form)
	if len(fieldErrors) > 0 {
		return nil, fieldErrors
	}

	var birthDate *time.Time
	if form.BirthDate != "" {
		t, err := time.Parse("2006-01-02", form.BirthDate)
		if err != nil {
			return nil, map[string]string{"birthdate": "Birth date must be YYYY-MM-DD"}
		}
		birthDate = &t
	}

	salt, err := s.Random.OTP(saltLength)
	if err != nil {
		return nil, map[string]string{"userLogin": "Registration failed"}
	}

	userDataID := uuid.NewString()
	userAccess := &model.UserAccess{
		ID:     uuid.NewString(),
		UserID: userDataID,
		Login:  form.UserLogin,
		Salt:   salt,
		DK:     s.Kdf.DeriveKey(form.UserPassword, salt),
		UserData: &model.UserData{
			ID:        userDataID,
			FirstName: form.UserFirstName,
			LastName:  form.UserLastName,
			Email:     form.UserEmail,
			BirthDate: birthDate,
		},
		UserRole: &model.UserRole{ID: selfRegisteredRole},
	}

	if err := s.persist(ctx, userAccess); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return nil, map[string]string{"userLogin": "Login already exists"}
		}
		return nil, map[string]string{"userLogin": "Registration failed"}
	}
	return userAccess, nil
}

// persist writes the profile and credential rows in one transaction so a
// failure leaves no partial identity behind.
func (s *RegistrationService) persist(ctx context.Context, ua *model.UserAccess) error {
	tx, err := s.Users.DB.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if err := s.Users.CreateTx(ctx, tx, ua); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (s *RegistrationService) validate(form SignupForm) map[string]string {
	errs := map[string]string{}

	if form.UserFirstName == "" {
		errs["userFirstName"] = "First Name must not be empty!"
	}
	if form.UserLastName == "" {
		errs["userLastName"] = "Last Name must not be empty!"
	}
	if form.UserEmail == "" {
		errs["userEmail"] = "Email must not be empty!"
	}
	if form.UserLogin == "" {
		errs["userLogin"] = "Login must not be empty!"
	} else if strings.Contains(form.UserLogin, ":") {
		errs["userLogin"] = "Login must not contain ':'!"
	}
	if form.UserPassword == "" {
		errs["userPassword"] = "Password cannot be empty"
		errs["userRepeat"] = "Invalid original password"
	} else if !validPassword(form.UserPassword) {
		errs["userPassword"] = "Password must be at least 12 characters long and contain lower, " +
			"upper case letters, at least one number and at least one special character"
		errs["userRepeat"] = "Invalid original password"
	} else if form.UserRepeat != form.UserPassword {
		errs["userRepeat"] = "Passwords must match"
	}
	if !form.Agree {
		errs["agree"] = "You must agree with policies!"
	}
	return errs
}

// validPassword enforces the policy: minimum length, all four character
// classes, and an alphabet restricted to letters, digits and a narrow
// special-character set. Go regexps have no lookahead, so the classes are
// counted directly.
func validPassword(pw string) bool {
	if len(pw) < minPasswordLen {
		return false
	}
	var hasLower, hasUpper, hasDigit, hasSpecial bool
	for _, r := range pw {
		switch {
		case unicode.IsLower(r) && r < 128:
			hasLower = true
		case unicode.IsUpper(r) && r < 128:
			hasUpper = true
		case r >= '0' && r <= '9':
			hasDigit = true
		case strings.ContainsRune(passwordAlphabet, r):
			if strings.ContainsRune(passwordSpecials, r) {
				hasSpecial = true
			}
		default:
			return false
		}
	}
	return hasLower && hasUpper && hasDigit && hasSpecial
}
