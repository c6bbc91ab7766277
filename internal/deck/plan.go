// Package deck turns a service plan into an ordered slide outline. It
// resolves scripture citations and hymn numbers through a corpus.Library and
// leaves rendering to an external presentation writer.
package deck

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	serrors "github.com/focory-beep/sermon-slide-generator/core/errors"
	"github.com/focory-beep/sermon-slide-generator/internal/validation"
)

// DefaultTitle is used when a plan has no title.
const DefaultTitle = "주일 예배"

// DateLayout formats the default service date.
const DateLayout = "2006년 01월 02일"

// OrderItem is one line of the order of worship.
type OrderItem struct {
	Title  string `yaml:"title" json:"title"`
	Detail string `yaml:"detail,omitempty" json:"detail,omitempty"`
}

// ScriptureItem is a reading. Text, when set, is shown as given instead of
// being fetched from the corpus.
type ScriptureItem struct {
	Reference   string `yaml:"reference" json:"reference" validate:"citation"`
	Translation string `yaml:"translation,omitempty" json:"translation,omitempty"`
	Text        string `yaml:"text,omitempty" json:"text,omitempty"`
}

// HymnItem selects a song by number.
type HymnItem struct {
	ID int `yaml:"id" json:"id"`
}

// Plan is a service plan as read from YAML or JSON.
type Plan struct {
	Title      string          `yaml:"title" json:"title"`
	Date       string          `yaml:"date" json:"date"`
	Order      []OrderItem     `yaml:"order" json:"order" validate:"planitems"`
	Scriptures []ScriptureItem `yaml:"scriptures" json:"scriptures" validate:"planitems,dive"`
	Hymns      []HymnItem      `yaml:"hymns" json:"hymns" validate:"planitems"`
	// MaxChars overrides the builder's characters per slide when positive.
	MaxChars int `yaml:"max_chars_per_slide,omitempty" json:"max_chars_per_slide,omitempty" validate:"gte=0"`
}

// planValidate checks plans. Field names in errors use the yaml keys.
var planValidate *validator.Validate

func init() {
	planValidate = validator.New(validator.WithRequiredStructEnabled())
	planValidate.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("yaml"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	_ = planValidate.RegisterValidation("planitems", func(fl validator.FieldLevel) bool {
		return fl.Field().Len() <= validation.MaxPlanItems
	})
	_ = planValidate.RegisterValidation("citation", func(fl validator.FieldLevel) bool {
		return validation.ValidateCitation(fl.Field().String()) == nil
	})
}

// LoadPlan reads a plan file.
func LoadPlan(path string) (*Plan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, serrors.NewNotFound("plan", path)
		}
		return nil, serrors.NewStorage("read", path, err)
	}
	return ParsePlan(bytes.NewReader(data))
}

// ParsePlan decodes a plan. Unknown keys are rejected so that typos in a
// hand-written plan surface instead of silently dropping items. JSON input is
// accepted as a YAML subset.
func ParsePlan(r io.Reader) (*Plan, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var p Plan
	if err := dec.Decode(&p); err != nil {
		if err == io.EOF {
			return &p, nil
		}
		return nil, serrors.NewValidation("plan", "", err.Error())
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &p, nil
}

// Validate checks item counts, citation text and the slide size override.
func (p *Plan) Validate() error {
	err := planValidate.Struct(p)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return serrors.NewValidation("plan", "", err.Error())
	}
	fe := verrs[0]
	field := strings.TrimPrefix(fe.Namespace(), "Plan.")
	value := fmt.Sprint(fe.Value())
	if fe.Kind() == reflect.Slice {
		value = fmt.Sprint(reflect.ValueOf(fe.Value()).Len())
	}
	return serrors.NewValidation(field, value, planMessage(fe))
}

func planMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "planitems":
		return fmt.Sprintf("at most %d items allowed", validation.MaxPlanItems)
	case "citation":
		return "citation is too long or contains control characters"
	case "gte":
		return "must not be negative"
	default:
		return fe.Error()
	}
}

func (p *Plan) withDefaults(now time.Time) Plan {
	out := *p
	if strings.TrimSpace(out.Title) == "" {
		out.Title = DefaultTitle
	}
	if strings.TrimSpace(out.Date) == "" {
		out.Date = now.Format(DateLayout)
	}
	return out
}
