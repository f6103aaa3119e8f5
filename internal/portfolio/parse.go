package portfolio

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Parser decodes raw YAML documents into typed records and checks their
// structure. A Parser is safe for concurrent use.
type Parser struct {
	validate *validator.Validate
}

// NewParser returns a Parser whose field paths use the YAML key names.
func NewParser() *Parser {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("yaml"), ",")
		if name == "-" {
			return ""
		}
		if name == "" {
			return f.Name
		}
		return name
	})
	return &Parser{validate: v}
}

// DecodePortfolio performs the structural phase only: YAML decoding, required
// fields, minimum lengths and enum membership. List defaults are applied.
func (p *Parser) DecodePortfolio(data []byte, source string) (*Portfolio, error) {
	var doc Portfolio
	if err := p.decode(data, source, &doc); err != nil {
		return nil, err
	}
	doc.applyDefaults()
	doc.SourceFile = source
	return &doc, nil
}

// ParsePortfolio decodes one company document and runs the full validation
// chain, returning the normalized document.
func (p *Parser) ParsePortfolio(data []byte, source string, index ContentIndex) (*Portfolio, error) {
	doc, err := p.DecodePortfolio(data, source)
	if err != nil {
		return nil, err
	}
	return ValidateAndNormalize(doc, index)
}

// ParseCatalog decodes and structurally validates the theme/tool catalog.
func (p *Parser) ParseCatalog(data []byte, source string) (*Catalog, error) {
	var c Catalog
	if err := p.decode(data, source, &c); err != nil {
		return nil, err
	}
	c.SourceFile = source
	return &c, nil
}

// ParseOrderConfig decodes and structurally validates an order config.
func (p *Parser) ParseOrderConfig(data []byte, source string) (*OrderConfig, error) {
	var c OrderConfig
	if err := p.decode(data, source, &c); err != nil {
		return nil, err
	}
	c.applyDefaults()
	c.SourceFile = source
	return &c, nil
}

func (p *Parser) decode(data []byte, source string, out any) error {
	var node yaml.Node
	if err := yaml.NewDecoder(bytes.NewReader(data)).Decode(&node); err != nil {
		if errors.Is(err, io.EOF) {
			return NewError(RuleSchema, source, Details{}, "document is empty")
		}
		return NewError(RuleSchema, source, Details{Violations: []string{err.Error()}}, "malformed YAML: %v", err)
	}
	if serr := checkShape(&node, reflect.TypeOf(out), ""); serr != nil {
		return NewError(RuleSchema, source, Details{Field: serr.path, Violations: []string{serr.Error()}},
			"1 field(s) failed validation: %s", serr.Error())
	}
	if err := node.Decode(out); err != nil {
		return NewError(RuleSchema, source, Details{Violations: []string{err.Error()}}, "malformed YAML: %v", err)
	}
	if err := p.validate.Struct(out); err != nil {
		return structuralError(source, err)
	}
	return nil
}

// structuralError converts validator output into a single SCHEMA error that
// lists every offending field path.
func structuralError(source string, err error) error {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return NewError(RuleSchema, source, Details{}, "%v", err)
	}

	violations := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		violations = append(violations, fieldPath(fe.Namespace())+": "+describe(fe))
	}
	first := fieldPath(fieldErrs[0].Namespace())
	return NewError(RuleSchema, source, Details{Field: first, Violations: violations},
		"%d field(s) failed validation: %s", len(violations), strings.Join(violations, "; "))
}

// fieldPath drops the root type name from a validator namespace:
// "Portfolio.projects[0].problem.statement" -> "projects[0].problem.statement".
func fieldPath(ns string) string {
	if _, rest, ok := strings.Cut(ns, "."); ok {
		return rest
	}
	return ns
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at least %s characters", fe.Param())
		}
		return fmt.Sprintf("must have at least %s entries", fe.Param())
	case "gte":
		return fmt.Sprintf("must be >= %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of [%s], got %q", strings.ReplaceAll(fe.Param(), " ", ", "), fmt.Sprint(fe.Value()))
	default:
		return fmt.Sprintf("failed %q constraint", fe.Tag())
	}
}
