package helper

import (
	"net/http/httptest"
	"testing"

	"eduone-core/models"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/stretchr/testify/assert"
	"gopkg.in/go-playground/validator.v9"
	entranslations "gopkg.in/go-playground/validator.v9/translations/en"
)

func newTestHelper(t *testing.T) HTTPHelper {
	english := en.New()
	uni := ut.New(english, english)
	translator, _ := uni.GetTranslator("en")
	validate := validator.New()
	assert.NoError(t, entranslations.RegisterDefaultTranslations(validate, translator))
	return HTTPHelper{Validate: validate, Translator: translator}
}

func TestValidateStructReportsFieldErrors(t *testing.T) {
	u := newTestHelper(t)

	err := u.Validate.Struct(models.RegisterRequest{Email: "not-an-email"})
	verr, ok := err.(validator.ValidationErrors)
	assert.True(t, ok)
	assert.NotEmpty(t, verr)

	assert.NoError(t, u.Validate.Struct(models.RegisterRequest{
		Username:  "vasya",
		FirstName: "Вася",
		LastName:  "Пупкин",
		Email:     "vasya@example.com",
		Password:  "secret1",
	}))
}

func TestSendValidationErrorTranslatesAndUnderscores(t *testing.T) {
	gin.SetMode(gin.TestMode)
	u := newTestHelper(t)
	recorder := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(recorder)

	err := u.Validate.Struct(models.RegisterRequest{Email: "not-an-email"})
	verr, ok := err.(validator.ValidationErrors)
	assert.True(t, ok)

	assert.NoError(t, u.SendValidationError(c, verr))
	assert.Equal(t, 400, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"first_name"`)
	assert.Contains(t, recorder.Body.String(), `"email"`)
}
