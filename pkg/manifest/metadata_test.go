// SPDX-License-Identifier: MPL-2.0

package manifest

import (
	"encoding/json"
	"errors"
	"reflect"
	"testing"

	"github.com/spf13/afero"
)

func TestMetadata_FromStub(t *testing.T) {
	t.Parallel()

	md := loadStub(t).Metadata()

	want := &Metadata{
		Name:        "Order",
		Alias:       "order",
		Description: "My demo component",
		Version:     "0.1",
		Keywords:    []string{"my", "stub", "component"},
		Active:      StatusEnabled,
		Order:       1,
		Providers: []string{
			`Components\Order\Providers\OrderServiceProvider`,
			`Components\Order\Providers\EventServiceProvider`,
			`Components\Order\Providers\RouteServiceProvider`,
		},
		Aliases: []string{},
		Files:   []string{},
	}
	if !reflect.DeepEqual(md, want) {
		t.Errorf("Metadata() = %+v\nwant %+v", md, want)
	}
	if !md.Active.Enabled() {
		t.Error("Active.Enabled() = false, want true")
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		attrs      map[string]any
		wantFields []string
	}{
		{
			name:  "valid",
			attrs: map[string]any{"name": "Blog", "version": "1.0", "alias": "blog"},
		},
		{
			name:       "missing name and version",
			attrs:      map[string]any{},
			wantFields: []string{"name", "version"},
		},
		{
			name:       "name starts with digit",
			attrs:      map[string]any{"name": "9lives", "version": "1"},
			wantFields: []string{"name"},
		},
		{
			name:       "uppercase alias",
			attrs:      map[string]any{"name": "Blog", "version": "1", "alias": "Blog"},
			wantFields: []string{"alias"},
		},
		{
			name:       "negative order",
			attrs:      map[string]any{"name": "Blog", "version": "1", "order": -2},
			wantFields: []string{"order"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			m := New(afero.NewMemMapFs(), "/x/component.json")
			for _, k := range []string{"name", "version", "alias", "order"} {
				if v, ok := tt.attrs[k]; ok {
					m.Set(k, v)
				}
			}

			err := m.Validate()
			if len(tt.wantFields) == 0 {
				if err != nil {
					t.Fatalf("Validate() returned error: %v", err)
				}
				return
			}

			if !errors.Is(err, ErrInvalidManifest) {
				t.Fatalf("Validate() error = %v, want ErrInvalidManifest", err)
			}
			var invalid *InvalidManifestError
			if !errors.As(err, &invalid) {
				t.Fatalf("expected *InvalidManifestError, got %T", err)
			}
			var got []string
			for _, fe := range invalid.FieldErrors {
				var field *InvalidFieldError
				if errors.As(fe, &field) {
					got = append(got, field.Field)
				}
			}
			if !reflect.DeepEqual(got, tt.wantFields) {
				t.Errorf("invalid fields = %v, want %v", got, tt.wantFields)
			}
		})
	}
}

func TestValidate_Stub(t *testing.T) {
	t.Parallel()

	if err := loadStub(t).Validate(); err != nil {
		t.Errorf("Validate() on stub returned error: %v", err)
	}
}

func TestSchema(t *testing.T) {
	t.Parallel()

	out, err := Schema()
	if err != nil {
		t.Fatalf("Schema() returned error: %v", err)
	}

	var doc struct {
		Title      string                     `json:"title"`
		Required   []string                   `json:"required"`
		Properties map[string]json.RawMessage `json:"properties"`
	}
	if err := json.Unmarshal(out, &doc); err != nil {
		t.Fatalf("schema is not valid JSON: %v", err)
	}
	if doc.Title != "component.json" {
		t.Errorf("title = %q, want component.json", doc.Title)
	}
	for _, key := range []string{"name", "alias", "version", "active", "order", "providers"} {
		if _, ok := doc.Properties[key]; !ok {
			t.Errorf("schema is missing property %q", key)
		}
	}

	var active struct {
		Enum []int `json:"enum"`
	}
	if err := json.Unmarshal(doc.Properties["active"], &active); err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(active.Enum, []int{0, 1}) {
		t.Errorf("active enum = %v, want [0 1]", active.Enum)
	}
}
