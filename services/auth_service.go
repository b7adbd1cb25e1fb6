package services

import (
	"errors"
	"fmt"
	"time"

	"eduone-core/clients"
	"eduone-core/config"
	"eduone-core/models"
	"eduone-core/repositories"
	"eduone-core/search"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AuthService ...
type AuthService interface {
	Register(req models.RegisterRequest) (*models.AuthResponse, error)
	Login(req models.LoginRequest) (*models.AuthResponse, error)
	Verify(token string) error
	PreRegister(email string) error
	ListPreRegistrations() ([]models.PreRegistration, error)
}

type authService struct {
	tx         TxRunner
	userRepo   repositories.UserRepository
	preRegRepo repositories.PreRegistrationRepository
	outboxRepo repositories.OutboxRepository
	cfg        config.Config
	logger     *zap.Logger
}

// NewAuthService ...
func NewAuthService(
	tx TxRunner,
	userRepo repositories.UserRepository,
	preRegRepo repositories.PreRegistrationRepository,
	outboxRepo repositories.OutboxRepository,
	cfg config.Config,
	logger *zap.Logger,
) AuthService {
	return &authService{
		tx:         tx,
		userRepo:   userRepo,
		preRegRepo: preRegRepo,
		outboxRepo: outboxRepo,
		cfg:        cfg,
		logger:     logger,
	}
}

func (s *authService) Register(req models.RegisterRequest) (*models.AuthResponse, error) {
	if _, err := s.userRepo.FindByEmail(req.Email); err == nil {
		return nil, models.Conflict("email is already registered")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if _, err := s.userRepo.FindByUsername(req.Username); err == nil {
		return nil, models.Conflict("username is already taken")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		ID:        uuid.New(),
		Username:  req.Username,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  string(hash),
		IsActive:  true,
	}

	err = s.tx(func(tx *gorm.DB) error {
		if err := s.userRepo.WithTx(tx).Create(user); err != nil {
			return err
		}

		doc := map[string]any{
			"username":     user.Username,
			"first_name":   user.FirstName,
			"last_name":    user.LastName,
			"description":  user.Description,
			"achievements": []string{},
		}
		if err := s.outboxRepo.WithTx(tx).Enqueue(
			models.SearchIndexEntry(search.IndexUsers, user.ID.String(), doc)); err != nil {
			return err
		}

		verifyToken, err := s.issueToken(user, "verify", 48*time.Hour)
		if err != nil {
			return err
		}
		mail := clients.Mail{
			To:       user.Email,
			Template: clients.MailTemplateVerify,
			Subject:  "Подтвердите ваш аккаунт",
			Link:     fmt.Sprintf("%s?token=%s", s.cfg.VerifyURL, verifyToken),
		}
		return s.outboxRepo.WithTx(tx).Enqueue(models.MailEntry(mail))
	})
	if err != nil {
		return nil, err
	}

	token, err := s.issueToken(user, "access", s.cfg.JWTExpiration)
	if err != nil {
		return nil, err
	}
	return &models.AuthResponse{Token: token, User: *user}, nil
}

func (s *authService) Login(req models.LoginRequest) (*models.AuthResponse, error) {
	user, err := s.userRepo.FindByEmail(req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.InvalidOperation("invalid email or password")
		}
		return nil, err
	}
	if !user.IsActive {
		return nil, models.Forbidden("account is deactivated")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, models.InvalidOperation("invalid email or password")
	}

	token, err := s.issueToken(user, "access", s.cfg.JWTExpiration)
	if err != nil {
		return nil, err
	}
	return &models.AuthResponse{Token: token, User: *user}, nil
}

// Verify confirms the account referenced by an emailed verification token.
func (s *authService) Verify(token string) error {
	parsed, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil || !parsed.Valid {
		return models.InvalidOperation("invalid or expired verification token")
	}
	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok || claims["purpose"] != "verify" {
		return models.InvalidOperation("invalid verification token")
	}
	rawID, _ := claims["user_id"].(string)
	userID, err := uuid.Parse(rawID)
	if err != nil {
		return models.InvalidOperation("invalid verification token")
	}

	if _, err := s.userRepo.FindByID(userID); err != nil {
		return notFoundIfMissing(err, "user", userID)
	}
	return s.userRepo.Updates(userID, map[string]interface{}{"is_verified": true})
}

// PreRegister stores a launch-notification email and acknowledges it.
// Duplicate signups are accepted silently.
func (s *authService) PreRegister(email string) error {
	created, err := s.preRegRepo.Create(email)
	if err != nil {
		return err
	}
	if !created {
		return nil
	}

	mail := clients.Mail{
		To:       email,
		Template: clients.MailTemplatePreRegister,
		Subject:  "Мы сообщим вам о запуске",
	}
	if err := s.outboxRepo.Enqueue(models.MailEntry(mail)); err != nil {
		s.logger.Warn("enqueue pre-register mail failed", zap.Error(err))
	}
	return nil
}

func (s *authService) ListPreRegistrations() ([]models.PreRegistration, error) {
	return s.preRegRepo.List()
}

func (s *authService) issueToken(user *models.User, purpose string, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"user_id":      user.ID.String(),
		"purpose":      purpose,
		"is_superuser": user.IsSuperuser,
		"is_author":    user.IsAuthor,
		"exp":          time.Now().Add(ttl).Unix(),
		"iat":          time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}
