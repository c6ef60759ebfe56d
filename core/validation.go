// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package core

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	// Use JSON tag names in error details
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})
	return v
}

// ValidateBook validates a Book according to domain rules.
//
// Validation rules:
//   - Title must not be empty
//   - Author must not be empty
//   - ID must not contain the storage key separator
//
// NOT validated (populated by the catalog):
//   - ID may be empty until generated
//   - Views and timestamps
func ValidateBook(book *Book) error {
	if book == nil {
		return InvalidInput("book is nil")
	}

	book.Title = strings.TrimSpace(book.Title)
	book.Author = strings.TrimSpace(book.Author)

	if err := validate.Struct(book); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return err
		}
		details := make(map[string]string, len(fieldErrs))
		for _, fe := range fieldErrs {
			details[fe.Field()] = "is required"
		}
		return InvalidInput("title and author are required").WithDetails(details)
	}

	if err := ValidateIdentifier("book id", book.ID); err != nil {
		return err
	}
	return nil
}

// ValidateIdentifier rejects ids that cannot be embedded in storage keys.
func ValidateIdentifier(field, value string) error {
	if strings.ContainsRune(value, 0) {
		return InvalidInput("%s must not contain NUL characters", field)
	}
	return nil
}

// NormalizeBookID trims a caller-supplied book id and checks that it can
// be used in storage keys.
func NormalizeBookID(raw string) (string, error) {
	id := strings.TrimSpace(raw)
	if id == "" {
		return "", InvalidInput("book id is required")
	}
	if err := ValidateIdentifier("book id", id); err != nil {
		return "", err
	}
	return id, nil
}
