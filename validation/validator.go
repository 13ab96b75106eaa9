package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"cloud.google.com/go/civil"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"

	"github.com/semka95/authors/domain"
)

var authorIDPattern = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

// AppValidator represents validation struct
type AppValidator struct {
	UniTrans   *ut.UniversalTranslator
	V          *validator.Validate
	Translator ut.Translator
}

// NewAppValidator will initialize validator with translator
func NewAppValidator() (*AppValidator, error) {
	av := new(AppValidator)
	translator := en.New()
	av.UniTrans = ut.New(translator, translator)
	var found bool
	av.Translator, found = av.UniTrans.GetTranslator("en")
	if !found {
		av.Translator = av.UniTrans.GetFallback()
	}

	av.V = validator.New()

	err := enTranslations.RegisterDefaultTranslations(av.V, av.Translator)
	if err != nil {
		return nil, err
	}

	av.V.RegisterTagNameFunc(func(fld reflect.StructField) string {
		for _, key := range []string{"json", "yaml"} {
			name := strings.SplitN(fld.Tag.Get(key), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name != "" {
				return name
			}
		}
		return ""
	})

	// an invalid or zero date validates as an empty value
	av.V.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(civil.Date); ok && d.IsValid() {
			return d.String()
		}
		return ""
	}, civil.Date{})

	if err = av.registerAuthorID(); err != nil {
		return nil, err
	}

	return av, nil
}

func (av *AppValidator) registerAuthorID() error {
	err := av.V.RegisterValidation("authorid", func(fl validator.FieldLevel) bool {
		return authorIDPattern.MatchString(fl.Field().String())
	})
	if err != nil {
		return err
	}

	return av.V.RegisterTranslation("authorid", av.Translator, func(ut ut.Translator) error {
		return ut.Add("authorid", "{0} must contain only a-z, 0-9 characters separated by single dashes", true)
	}, func(ut ut.Translator, fe validator.FieldError) string {
		t, _ := ut.T("authorid", fe.Field())
		return t
	})
}

// Validate validates a struct using its validate tags
func (av *AppValidator) Validate(i interface{}) error {
	return av.V.Struct(i)
}

// Check validates i and translates failures into a single error wrapping
// domain.ErrBadParamInput. Field messages keep struct field order.
func (av *AppValidator) Check(i interface{}) error {
	err := av.V.Struct(i)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("%w: %s", domain.ErrBadParamInput, err.Error())
	}

	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msgs = append(msgs, fe.Translate(av.Translator))
	}

	return fmt.Errorf("%w: %s", domain.ErrBadParamInput, strings.Join(msgs, "; "))
}
