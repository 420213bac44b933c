package domain

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/sand-hq/campaign-api/internal/fault"
)

// FieldType enumerates the widgets the form builder can emit.
type FieldType string

const (
	FieldText     FieldType = "text"
	FieldTextarea FieldType = "textarea"
	FieldEmail    FieldType = "email"
	FieldNumber   FieldType = "number"
	FieldDate     FieldType = "date"
	FieldPhone    FieldType = "phone"
	FieldDropdown FieldType = "dropdown"
	FieldRadio    FieldType = "radio"
	FieldCheckbox FieldType = "checkbox"
	FieldFile     FieldType = "file"
)

var knownFieldTypes = map[FieldType]struct{}{
	FieldText: {}, FieldTextarea: {}, FieldEmail: {}, FieldNumber: {}, FieldDate: {},
	FieldPhone: {}, FieldDropdown: {}, FieldRadio: {}, FieldCheckbox: {}, FieldFile: {},
}

func ParseFieldType(value string) (FieldType, bool) {
	t := FieldType(strings.ToLower(strings.TrimSpace(value)))
	_, ok := knownFieldTypes[t]
	return t, ok
}

// HasOptions reports whether the type renders a fixed choice list.
func (t FieldType) HasOptions() bool {
	return t == FieldDropdown || t == FieldRadio
}

// FieldSpec describes one input of a form. Rule is an optional boolean
// expression over `value` (the submitted value) and `data` (the whole payload).
type FieldSpec struct {
	Title    string
	Type     FieldType
	Options  []string
	Required bool
	Rule     string
}

// NewFieldSpec validates one field. position is zero based and only used to
// name untitled fields in errors.
func NewFieldSpec(position int, title, fieldType string, options []string, required bool, rule string) (FieldSpec, error) {
	name := strings.TrimSpace(title)
	if name == "" {
		return FieldSpec{}, fault.Validationf("field #%d: title is required", position+1)
	}
	t, ok := ParseFieldType(fieldType)
	if !ok {
		return FieldSpec{}, fault.Validationf("field %q: unknown type %q", name, fieldType)
	}

	var opts []string
	if t.HasOptions() {
		if len(options) == 0 {
			return FieldSpec{}, fault.Validationf("invalid options for field %q: %s fields need at least one option", name, t)
		}
		opts = make([]string, 0, len(options))
		for i, raw := range options {
			opt := strings.TrimSpace(raw)
			if opt == "" {
				return FieldSpec{}, fault.Validationf("invalid options for field %q: option #%d is blank", name, i+1)
			}
			opts = append(opts, opt)
		}
	}

	rule = strings.TrimSpace(rule)
	if rule != "" {
		if _, err := compileRule(rule); err != nil {
			return FieldSpec{}, fault.Validationf("field %q: invalid rule: %v", name, err)
		}
	}

	return FieldSpec{
		Title:    name,
		Type:     t,
		Options:  opts,
		Required: required,
		Rule:     rule,
	}, nil
}

// FormDefinition is a submittable form. Nested forms are stored as
// independent documents and linked from their parent by id.
type FormDefinition struct {
	ID             string
	CampaignID     string
	Title          string
	Fields         []FieldSpec
	CollectionName string
	IsNested       bool
	MainFormID     string
	NestedForms    []string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// CollectionNameFor maps a form id to the dynamic collection that stores its
// submissions. Names never come from user input.
func CollectionNameFor(formID string) string {
	return "form_" + formID
}

// HasNestedForm reports whether id is linked as a child.
func (f *FormDefinition) HasNestedForm(id string) bool {
	for _, existing := range f.NestedForms {
		if existing == id {
			return true
		}
	}
	return false
}

// LinkNestedForm appends id to the child set if absent.
func (f *FormDefinition) LinkNestedForm(id string) {
	if !f.HasNestedForm(id) {
		f.NestedForms = append(f.NestedForms, id)
	}
}

// CheckSubmission applies required flags and field rules to a payload keyed
// by field title. Option lists and field types only describe the form
// widgets, and keys not declared by the form are kept as is.
func (f *FormDefinition) CheckSubmission(data map[string]any) error {
	for _, field := range f.Fields {
		value, present := data[field.Title]
		if isBlankValue(value, present) {
			if field.Required {
				return fault.Validationf("field %q is required", field.Title)
			}
			continue
		}
		if field.Rule == "" {
			continue
		}
		ok, err := evaluateRule(field.Rule, value, data)
		if err != nil {
			return fault.Validationf("field %q: rule could not be evaluated: %v", field.Title, err)
		}
		if !ok {
			return fault.Validationf("field %q does not satisfy rule: %s", field.Title, field.Rule)
		}
	}
	return nil
}

// コンパイル済みのルールを式の文字列ごとに保持する。
var rulePrograms sync.Map

func compileRule(rule string) (*vm.Program, error) {
	if cached, ok := rulePrograms.Load(rule); ok {
		return cached.(*vm.Program), nil
	}
	program, err := expr.Compile(rule, expr.AsBool())
	if err != nil {
		return nil, err
	}
	actual, _ := rulePrograms.LoadOrStore(rule, program)
	return actual.(*vm.Program), nil
}

func evaluateRule(rule string, value any, data map[string]any) (bool, error) {
	program, err := compileRule(rule)
	if err != nil {
		return false, err
	}
	out, err := expr.Run(program, map[string]any{"value": value, "data": data})
	if err != nil {
		return false, err
	}
	result, ok := out.(bool)
	if !ok {
		return false, fmt.Errorf("rule returned %T", out)
	}
	return result, nil
}

func isBlankValue(value any, present bool) bool {
	if !present || value == nil {
		return true
	}
	if s, ok := value.(string); ok {
		return strings.TrimSpace(s) == ""
	}
	return false
}
