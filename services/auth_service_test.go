package services

import (
	"encoding/json"
	"testing"
	"time"

	"eduone-core/config"
	"eduone-core/models"
	"eduone-core/repositories"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type fakePreRegRepo struct {
	emails map[string]bool
}

func newFakePreRegRepo() *fakePreRegRepo { return &fakePreRegRepo{emails: map[string]bool{}} }

func (r *fakePreRegRepo) WithTx(tx *gorm.DB) repositories.PreRegistrationRepository { return r }

func (r *fakePreRegRepo) Create(email string) (bool, error) {
	if r.emails[email] {
		return false, nil
	}
	r.emails[email] = true
	return true, nil
}

func (r *fakePreRegRepo) List() ([]models.PreRegistration, error) {
	var out []models.PreRegistration
	for email := range r.emails {
		out = append(out, models.PreRegistration{Email: email})
	}
	return out, nil
}

type authFixture struct {
	service    AuthService
	userRepo   *fakeUserRepo
	preRegRepo *fakePreRegRepo
	outboxRepo *fakeOutboxRepo
}

func newAuthFixture() *authFixture {
	userRepo := newFakeUserRepo()
	preRegRepo := newFakePreRegRepo()
	outboxRepo := newFakeOutboxRepo()
	cfg := config.Config{
		JWTSecret:     "test-secret",
		JWTExpiration: time.Hour,
		VerifyURL:     "http://localhost:8080/api/v1/auth/verify",
	}

	return &authFixture{
		service:    NewAuthService(testTxRunner(), userRepo, preRegRepo, outboxRepo, cfg, zap.NewNop()),
		userRepo:   userRepo,
		preRegRepo: preRegRepo,
		outboxRepo: outboxRepo,
	}
}

func registerRequest() models.RegisterRequest {
	return models.RegisterRequest{
		Username:  "ivan",
		FirstName: "Иван",
		LastName:  "Петров",
		Email:     "ivan@example.com",
		Password:  "secret-password",
	}
}

func TestRegisterCreatesActiveUnverifiedUser(t *testing.T) {
	fixture := newAuthFixture()

	resp, err := fixture.service.Register(registerRequest())
	assert.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.True(t, resp.User.IsActive)
	assert.False(t, resp.User.IsVerified)
	assert.NotEqual(t, "secret-password", resp.User.Password, "password must be stored hashed")

	assert.Len(t, fixture.outboxRepo.byIntent(models.IntentSearchIndex), 1)
	assert.Len(t, fixture.outboxRepo.byIntent(models.IntentMail), 1)
}

func TestRegisterDuplicateEmailOrUsernameIsConflict(t *testing.T) {
	fixture := newAuthFixture()
	_, err := fixture.service.Register(registerRequest())
	assert.NoError(t, err)

	dup := registerRequest()
	dup.Username = "other"
	_, err = fixture.service.Register(dup)
	assert.IsType(t, models.ErrorConflict{}, err)

	dup = registerRequest()
	dup.Email = "other@example.com"
	_, err = fixture.service.Register(dup)
	assert.IsType(t, models.ErrorConflict{}, err)
}

func TestLoginRejectsWrongPasswordAndUnknownEmail(t *testing.T) {
	fixture := newAuthFixture()
	_, err := fixture.service.Register(registerRequest())
	assert.NoError(t, err)

	resp, err := fixture.service.Login(models.LoginRequest{Email: "ivan@example.com", Password: "secret-password"})
	assert.NoError(t, err)
	assert.NotEmpty(t, resp.Token)

	_, err = fixture.service.Login(models.LoginRequest{Email: "ivan@example.com", Password: "wrong"})
	assert.IsType(t, models.ErrorInvalidOperation{}, err)

	_, err = fixture.service.Login(models.LoginRequest{Email: "nobody@example.com", Password: "secret-password"})
	assert.IsType(t, models.ErrorInvalidOperation{}, err)
}

func TestLoginDeactivatedAccountIsForbidden(t *testing.T) {
	fixture := newAuthFixture()
	resp, err := fixture.service.Register(registerRequest())
	assert.NoError(t, err)
	assert.NoError(t, fixture.userRepo.Delete(resp.User.ID))

	_, err = fixture.service.Login(models.LoginRequest{Email: "ivan@example.com", Password: "secret-password"})
	assert.IsType(t, models.ErrorForbidden{}, err)
}

func TestVerifyMarksUserVerified(t *testing.T) {
	fixture := newAuthFixture()
	resp, err := fixture.service.Register(registerRequest())
	assert.NoError(t, err)

	mails := fixture.outboxRepo.byIntent(models.IntentMail)
	assert.Len(t, mails, 1)
	// The verification link carries the token after ?token=.
	var payload struct {
		Link string `json:"link"`
	}
	assert.NoError(t, json.Unmarshal(mails[0].Payload, &payload))
	token := payload.Link[len("http://localhost:8080/api/v1/auth/verify?token="):]

	assert.NoError(t, fixture.service.Verify(token))
	assert.True(t, fixture.userRepo.users[resp.User.ID].IsVerified)
}

func TestVerifyRejectsAccessTokens(t *testing.T) {
	fixture := newAuthFixture()
	resp, err := fixture.service.Register(registerRequest())
	assert.NoError(t, err)

	err = fixture.service.Verify(resp.Token)
	assert.IsType(t, models.ErrorInvalidOperation{}, err)
}

func TestPreRegisterAcceptsDuplicatesSilently(t *testing.T) {
	fixture := newAuthFixture()

	assert.NoError(t, fixture.service.PreRegister("wait@example.com"))
	assert.Len(t, fixture.outboxRepo.byIntent(models.IntentMail), 1)

	assert.NoError(t, fixture.service.PreRegister("wait@example.com"))
	assert.Len(t, fixture.outboxRepo.byIntent(models.IntentMail), 1, "duplicate signup must not mail again")
}
