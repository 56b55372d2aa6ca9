package actions

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"

	"actionkit/internal/command"
)

type AnnotationType string

const (
	AnnotationError   AnnotationType = "error"
	AnnotationWarning AnnotationType = "warning"
	AnnotationNotice  AnnotationType = "notice"
)

var annotationAliases = map[string]AnnotationType{
	"error":   AnnotationError,
	"Error":   AnnotationError,
	"notice":  AnnotationNotice,
	"Notice":  AnnotationNotice,
	"note":    AnnotationNotice,
	"Note":    AnnotationNotice,
	"warning": AnnotationWarning,
	"Warning": AnnotationWarning,
	"warn":    AnnotationWarning,
	"Warn":    AnnotationWarning,
}

// AnnotationTypeError reports an unknown annotation type. It matches
// command.ErrValidation.
type AnnotationTypeError struct {
	Value string
}

func (e *AnnotationTypeError) Error() string {
	if e == nil {
		return ""
	}
	accepted := make([]string, 0, len(annotationAliases))
	for k := range annotationAliases {
		accepted = append(accepted, k)
	}
	sort.Strings(accepted)
	return fmt.Sprintf("%s: annotation type %q (accepted: %s)",
		command.ErrValidation.Error(), e.Value, strings.Join(accepted, ", "))
}

func (e *AnnotationTypeError) Unwrap() error { return command.ErrValidation }

func ParseAnnotationType(s string) (AnnotationType, error) {
	if t, ok := annotationAliases[s]; ok {
		return t, nil
	}
	return "", &AnnotationTypeError{Value: s}
}

// AnnotationProperties locate an annotation. Zero numbers and empty strings
// are left out of the command.
type AnnotationProperties struct {
	File      string `validate:"singleline"`
	Line      int    `validate:"gte=0"`
	Column    int    `validate:"gte=0"`
	EndLine   int    `validate:"gte=0"`
	EndColumn int    `validate:"gte=0"`
	Title     string `validate:"singleline"`
	// Summary replaces a body longer than maxAnnotationBody; the full body
	// is then printed as a plain log line.
	Summary string
}

var annotationValidate *validator.Validate

func init() {
	annotationValidate = validator.New()
	_ = annotationValidate.RegisterValidation("singleline", validateSingleLineField)
}

func validateSingleLineField(fl validator.FieldLevel) bool {
	return command.IsSimple(fl.Field().String())
}

func (p AnnotationProperties) Validate() error {
	err := annotationValidate.Struct(p)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return invalidf("annotation properties: %v", err)
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		parts = append(parts, fmt.Sprintf("%s failed %q", fe.Field(), fe.Tag()))
	}
	return invalidf("annotation properties: %s", strings.Join(parts, "; "))
}

const maxAnnotationBody = 4096

// Annotate emits an error, warning or notice annotation.
func (t *Toolkit) Annotate(typ string, data string, props AnnotationProperties) error {
	at, err := ParseAnnotationType(typ)
	if err != nil {
		return err
	}
	if err := props.Validate(); err != nil {
		return err
	}
	cmd, err := command.NewStdoutCommand(string(at))
	if err != nil {
		return err
	}
	for _, prop := range []struct {
		key   string
		value string
	}{
		{"file", props.File},
		{"line", positive(props.Line)},
		{"col", positive(props.Column)},
		{"endLine", positive(props.EndLine)},
		{"endColumn", positive(props.EndColumn)},
		{"title", props.Title},
	} {
		if prop.value == "" {
			continue
		}
		if err := cmd.SetProperty(prop.key, prop.value); err != nil {
			return err
		}
	}

	if utf8.RuneCountInString(data) <= maxAnnotationBody || props.Summary == "" {
		return t.emitter.Emit(cmd.SetMessage(data))
	}
	if err := t.printRaw(data); err != nil {
		return err
	}
	return t.emitter.Emit(cmd.SetMessage(props.Summary))
}

// printRaw prints text as a plain log line. Text that looks like a stdout
// command is fenced with stop-commands so the runner does not execute it.
func (t *Toolkit) printRaw(text string) error {
	if !strings.HasPrefix(strings.TrimSpace(text), "::") {
		return t.emitter.Println(text)
	}
	token, err := t.emitter.StopCommands("")
	if err != nil {
		return err
	}
	if err := t.emitter.Println(text); err != nil {
		return err
	}
	return t.emitter.ResumeCommands(token)
}

func positive(n int) string {
	if n <= 0 {
		return ""
	}
	return strconv.Itoa(n)
}

func (t *Toolkit) Error(data string, props AnnotationProperties) error {
	return t.Annotate(string(AnnotationError), data, props)
}

func (t *Toolkit) Warning(data string, props AnnotationProperties) error {
	return t.Annotate(string(AnnotationWarning), data, props)
}

func (t *Toolkit) Notice(data string, props AnnotationProperties) error {
	return t.Annotate(string(AnnotationNotice), data, props)
}
