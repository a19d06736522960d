package domain

import (
	_ "embed"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"

	m "gooze.dev/pkg/mutconf/internal/model"
)

//go:embed schema.json
var descriptorSchemaJSON []byte

const schemaRootField = "(root)"

var loadDescriptorSchema = sync.OnceValues(func() (*gojsonschema.Schema, error) {
	return gojsonschema.NewSchema(gojsonschema.NewBytesLoader(descriptorSchemaJSON))
})

// DescriptorSchema returns the JSON schema recognized keys are checked against.
func DescriptorSchema() []byte {
	return append([]byte(nil), descriptorSchemaJSON...)
}

// validateSchema checks the recognized keys and returns one ConfigurationError per
// violation, in the order gojsonschema reports them.
func validateSchema(doc map[string]any) error {
	schema, err := loadDescriptorSchema()
	if err != nil {
		return fmt.Errorf("compile descriptor schema: %w", err)
	}

	result, err := schema.Validate(gojsonschema.NewGoLoader(doc))
	if err != nil {
		return m.NewConfigurationError("", m.ErrMalformedValue, err)
	}

	if result.Valid() {
		return nil
	}

	errs := make([]error, 0, len(result.Errors()))
	for _, resultErr := range result.Errors() {
		errs = append(errs, schemaViolation(resultErr))
	}

	return errors.Join(errs...)
}

func schemaViolation(resultErr gojsonschema.ResultError) *m.ConfigurationError {
	key := resultErr.Field()

	if resultErr.Type() == "required" {
		if property, ok := resultErr.Details()["property"].(string); ok {
			key = joinKey(key, property)
		}

		return m.NewConfigurationError(key, m.ErrMissingField, nil)
	}

	if key == schemaRootField {
		key = ""
	}

	return m.NewConfigurationError(key, m.ErrMalformedValue, errors.New(resultErr.Description()))
}

func joinKey(parent, child string) string {
	if parent == "" || parent == schemaRootField {
		return child
	}

	return strings.Join([]string{parent, child}, ".")
}
