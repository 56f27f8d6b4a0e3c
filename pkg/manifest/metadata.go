// SPDX-License-Identifier: MPL-2.0

package manifest

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/invopop/jsonschema"
)

const (
	// StatusDisabled is the "active" value of a disabled component.
	StatusDisabled Status = 0
	// StatusEnabled is the "active" value of an enabled component.
	StatusEnabled Status = 1
)

var (
	// componentNamePattern matches manifest names: a letter followed by letters,
	// digits, underscores or hyphens.
	componentNamePattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_-]*$`)
	// aliasPattern matches lowercase aliases.
	aliasPattern = regexp.MustCompile(`^[a-z][a-z0-9_.-]*$`)

	validateOnce sync.Once
	validate     *validator.Validate
)

type (
	// Status is the persisted enabled/disabled flag, stored as 0 or 1.
	Status int

	// Metadata is the typed view of the recognized manifest keys. It is built
	// from the attribute map by Metadata() and is never written back.
	Metadata struct {
		Name        string   `json:"name" validate:"required,componentname" jsonschema:"title=Name,description=Component identifier"`
		Alias       string   `json:"alias,omitempty" validate:"omitempty,componentalias" jsonschema:"description=Lowercase alias used for asset URLs and lookups"`
		Description string   `json:"description,omitempty"`
		Version     string   `json:"version" validate:"required"`
		Keywords    []string `json:"keywords,omitempty" validate:"dive,required"`
		Active      Status   `json:"active"`
		Order       int      `json:"order,omitempty" validate:"gte=0"`
		Providers   []string `json:"providers,omitempty" validate:"dive,required"`
		Aliases     []string `json:"aliases,omitempty"`
		Files       []string `json:"files,omitempty" validate:"dive,required"`
		Requires    []string `json:"requires,omitempty" validate:"dive,required"`
	}
)

// Enabled reports whether the status is StatusEnabled.
func (s Status) Enabled() bool { return s != StatusDisabled }

// JSONSchema restricts the status to the two persisted values.
func (Status) JSONSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		Type:        "integer",
		Enum:        []any{0, 1},
		Description: "1 when the component is enabled, 0 when disabled",
	}
}

// Metadata builds the typed view of the recognized keys. Missing keys yield
// zero values; it never fails on unrecognized keys.
func (m *Manifest) Metadata() *Metadata {
	md := &Metadata{
		Name:        m.GetString("name", ""),
		Alias:       m.GetString("alias", ""),
		Description: m.GetString("description", ""),
		Version:     m.GetString("version", ""),
		Keywords:    m.GetStrings("keywords"),
		Order:       m.GetInt("order", 0),
		Providers:   m.GetStrings("providers"),
		Aliases:     m.GetStrings("aliases"),
		Files:       m.GetStrings("files"),
		Requires:    m.GetStrings("requires"),
	}
	if m.GetBool("active", false) {
		md.Active = StatusEnabled
	}
	return md
}

// Validate checks the typed view against the manifest rules and returns an
// *InvalidManifestError describing every violation.
func (m *Manifest) Validate() error {
	err := manifestValidator().Struct(m.Metadata())
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("failed to validate manifest %s: %w", m.path, err)
	}

	fieldErrs := make([]error, 0, len(verrs))
	for _, fe := range verrs {
		fieldErrs = append(fieldErrs, &InvalidFieldError{
			Field: jsonFieldName(fe),
			Rule:  fe.Tag(),
			Value: fe.Value(),
		})
	}
	return &InvalidManifestError{Path: m.path, FieldErrors: fieldErrs}
}

// Schema returns the JSON Schema describing the recognized manifest keys.
// Unrecognized keys are allowed.
func Schema() ([]byte, error) {
	r := &jsonschema.Reflector{
		ExpandedStruct:            true,
		AllowAdditionalProperties: true,
	}
	s := r.Reflect(&Metadata{})
	s.Title = "component.json"
	s.Description = "Manifest of a component"

	out, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode manifest schema: %w", err)
	}
	return out, nil
}

func manifestValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = newValidator()
	})
	return validate
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("componentname", func(fl validator.FieldLevel) bool {
		return componentNamePattern.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("componentalias", func(fl validator.FieldLevel) bool {
		return aliasPattern.MatchString(fl.Field().String())
	})
	return v
}

func jsonFieldName(fe validator.FieldError) string {
	if fe.Field() != "" {
		return fe.Field()
	}
	return fe.StructField()
}
