package model

import (
	"errors"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"gorm.io/gorm"
)

const (
	MinContentLength = 250
	MaxSummaryLength = 250

	CategoryFiction    = "Fiction"
	CategoryNonFiction = "Non-Fiction"
)

// Categories 允许的分类（固定枚举）
var Categories = []string{CategoryFiction, CategoryNonFiction}

// clickbaitWord opens a clickbait title when followed by whitespace, in any case.
const clickbaitWord = "why"

// Post 文章（与 Author 无外键关系）
type Post struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Title     string    `json:"title" gorm:"type:text;not null"`
	Content   *string   `json:"content" gorm:"type:text"`
	Summary   *string   `json:"summary" gorm:"type:varchar(255)"`
	Category  *string   `json:"category" gorm:"type:varchar(32);index:idx_posts_category"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Post) TableName() string { return "posts" }

// NewPost builds an unsaved Post, validating each field in declaration order.
func NewPost(title string, content, summary, category *string) (*Post, error) {
	p := &Post{}
	if err := p.SetTitle(title); err != nil {
		return nil, err
	}
	if err := p.SetContent(content); err != nil {
		return nil, err
	}
	if err := p.SetSummary(summary); err != nil {
		return nil, err
	}
	if err := p.SetCategory(category); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Post) SetTitle(title string) error {
	if err := validateTitle(title); err != nil {
		return err
	}
	p.Title = title
	return nil
}

func (p *Post) SetContent(content *string) error {
	if err := validateContent(content); err != nil {
		return err
	}
	p.Content = content
	return nil
}

func (p *Post) SetSummary(summary *string) error {
	if err := validateSummary(summary); err != nil {
		return err
	}
	p.Summary = summary
	return nil
}

func (p *Post) SetCategory(category *string) error {
	if err := validateCategory(category); err != nil {
		return err
	}
	p.Category = category
	return nil
}

// Validate re-runs every field rule. There are no cross-field rules.
func (p *Post) Validate() error {
	if err := validateTitle(p.Title); err != nil {
		return err
	}
	if err := validateContent(p.Content); err != nil {
		return err
	}
	if err := validateSummary(p.Summary); err != nil {
		return err
	}
	return validateCategory(p.Category)
}

func (p *Post) BeforeSave(tx *gorm.DB) error {
	return p.Validate()
}

var errClickbait = errors.New("title is clickbait")

func validateTitle(title string) error {
	if err := validation.Validate(strings.TrimSpace(title),
		validation.Required.Error("post must have a title"),
	); err != nil {
		return newValidationError("title", err)
	}
	if err := validation.Validate(title, validation.By(notClickbait)); err != nil {
		return newValidationError("title", err)
	}
	return nil
}

func notClickbait(value interface{}) error {
	s, _ := value.(string)
	if isClickbait(s) {
		return errClickbait
	}
	return nil
}

func isClickbait(title string) bool {
	n := len(clickbaitWord)
	if len(title) <= n || !strings.EqualFold(title[:n], clickbaitWord) {
		return false
	}
	r, _ := utf8.DecodeRuneInString(title[n:])
	return isTitleSpace(r)
}

// isTitleSpace is unicode.IsSpace plus the ASCII information separators U+001C..U+001F.
func isTitleSpace(r rune) bool {
	return unicode.IsSpace(r) || (r >= 0x1c && r <= 0x1f)
}

func validateContent(content *string) error {
	if content == nil {
		return nil
	}
	const msg = "content must be at least 250 characters"
	err := validation.Validate(*content,
		validation.Required.Error(msg),
		validation.RuneLength(MinContentLength, 0).Error(msg),
	)
	if err != nil {
		return newValidationError("content", err)
	}
	return nil
}

func validateSummary(summary *string) error {
	if summary == nil {
		return nil
	}
	err := validation.Validate(*summary,
		validation.RuneLength(0, MaxSummaryLength).Error("summary must be at most 250 characters"),
	)
	if err != nil {
		return newValidationError("summary", err)
	}
	return nil
}

func validateCategory(category *string) error {
	if category == nil {
		return nil
	}
	const msg = "category must be Fiction or Non-Fiction"
	err := validation.Validate(*category,
		validation.Required.Error(msg),
		validation.In(CategoryFiction, CategoryNonFiction).Error(msg),
	)
	if err != nil {
		return newValidationError("category", err)
	}
	return nil
}
