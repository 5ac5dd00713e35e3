package model

import (
	"errors"
	"regexp"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"gorm.io/gorm"
)

var phoneNumberPattern = regexp.MustCompile(`^\p{Nd}{10}$`)

// Author 作者（name 全局唯一）
type Author struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"type:text;uniqueIndex:ux_authors_name;not null"`
	PhoneNumber *string   `json:"phone_number" gorm:"type:varchar(32)"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (Author) TableName() string { return "authors" }

// NewAuthor builds an unsaved Author after running the field validators.
// Name uniqueness needs the store and is checked by the caller and again before flush.
func NewAuthor(name string, phone *string) (*Author, error) {
	a := &Author{}
	if err := a.SetName(name); err != nil {
		return nil, err
	}
	if err := a.SetPhoneNumber(phone); err != nil {
		return nil, err
	}
	return a, nil
}

// SetName assigns name if it is not blank. The field is untouched on failure.
func (a *Author) SetName(name string) error {
	if err := validateAuthorName(name); err != nil {
		return err
	}
	a.Name = name
	return nil
}

// SetPhoneNumber assigns phone; nil clears it.
func (a *Author) SetPhoneNumber(phone *string) error {
	if err := validatePhoneNumber(phone); err != nil {
		return err
	}
	a.PhoneNumber = phone
	return nil
}

// Validate re-runs every field rule against the current values.
func (a *Author) Validate() error {
	if err := validateAuthorName(a.Name); err != nil {
		return err
	}
	return validatePhoneNumber(a.PhoneNumber)
}

// BeforeSave 拦截绕过 setter 的直接字段赋值
func (a *Author) BeforeSave(tx *gorm.DB) error {
	return a.Validate()
}

func validateAuthorName(name string) error {
	err := validation.Validate(strings.TrimSpace(name),
		validation.Required.Error("author must have a name"),
	)
	if err != nil {
		return newValidationError("name", err)
	}
	return nil
}

func validatePhoneNumber(phone *string) error {
	if phone == nil {
		return nil
	}
	// Match skips empty strings, so Required is what rejects "".
	err := validation.Validate(*phone,
		validation.Required.Error("phone number must be exactly ten digits"),
		validation.Match(phoneNumberPattern).Error("phone number must be exactly ten digits"),
	)
	if err != nil {
		return newValidationError("phone_number", err)
	}
	return nil
}

// CheckAuthorNames is the pre-flush uniqueness pass. It runs inside the flush transaction
// with every record about to be inserted and fails the whole batch on the first duplicate,
// either against a committed author or between two pending ones.
func CheckAuthorNames(tx *gorm.DB, pending []any) error {
	seen := make(map[string]struct{})
	for _, rec := range pending {
		a, ok := rec.(*Author)
		if !ok || a.Name == "" {
			continue
		}
		if _, dup := seen[a.Name]; dup {
			return DuplicateAuthorNameError()
		}
		seen[a.Name] = struct{}{}

		var existing Author
		err := tx.Select("id").Where("name = ?", a.Name).Take(&existing).Error
		if err == nil {
			return DuplicateAuthorNameError()
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
	}
	return nil
}
