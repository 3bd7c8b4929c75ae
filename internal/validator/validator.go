package validator

import (
	"errors"
	"regexp"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"github.com/Yassen717/ModBlog/internal/domain"
)

var (
	slugRegex  = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)
	colorRegex = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}){1,2}$`)
)

const maxCommentWords = 1000

// Validator provides validation methods for domain entities.
type Validator struct{}

// NewValidator creates a new Validator instance.
func NewValidator() *Validator {
	return &Validator{}
}

// ValidatePost validates a Post after defaults have been applied.
func (v *Validator) ValidatePost(p *domain.Post) error {
	return validation.ValidateStruct(p,
		validation.Field(&p.Title,
			validation.Required.Error("title_required"),
			validation.Length(1, 200).Error("title_too_long"),
		),
		validation.Field(&p.Excerpt,
			validation.Required.Error("excerpt_required"),
		),
		validation.Field(&p.Content,
			validation.Required.Error("content_required"),
		),
		validation.Field(&p.Slug,
			validation.Required.Error("slug_required"),
			validation.Match(slugRegex).Error("invalid_slug_format"),
		),
		validation.Field(&p.Status,
			validation.Required.Error("status_required"),
			validation.In(domain.PostStatusDraft, domain.PostStatusPublished).Error("invalid_status"),
		),
		validation.Field(&p.Tags,
			validation.Each(validation.Required.Error("empty_tag")),
		),
		validation.Field(&p.ReadingTime,
			validation.Min(1).Error("invalid_reading_time"),
		),
	)
}

// ValidateCategory validates a Category.
func (v *Validator) ValidateCategory(c *domain.Category) error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Name,
			validation.Required.Error("name_required"),
		),
		validation.Field(&c.Slug,
			validation.Required.Error("slug_required"),
			validation.Match(slugRegex).Error("invalid_slug_format"),
		),
		validation.Field(&c.Color,
			validation.Required.Error("color_required"),
			validation.Match(colorRegex).Error("invalid_color"),
		),
	)
}

// ValidateAuthor validates an Author and its optional social links.
func (v *Validator) ValidateAuthor(a *domain.Author) error {
	err := validation.ValidateStruct(a,
		validation.Field(&a.Name,
			validation.Required.Error("name_required"),
		),
	)
	if err != nil || a.Social == nil {
		return err
	}

	s := a.Social
	if err := validation.ValidateStruct(s,
		validation.Field(&s.Twitter, is.URL.Error("invalid_url")),
		validation.Field(&s.GitHub, is.URL.Error("invalid_url")),
		validation.Field(&s.LinkedIn, is.URL.Error("invalid_url")),
		validation.Field(&s.Website, is.URL.Error("invalid_url")),
	); err != nil {
		return prefixErrors("social.", err)
	}
	return nil
}

// ValidateComment validates a Comment.
func (v *Validator) ValidateComment(c *domain.Comment) error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Author,
			validation.Required.Error("author_required"),
		),
		validation.Field(&c.Email,
			validation.Required.Error("email_required"),
			is.Email.Error("invalid_email_format"),
		),
		validation.Field(&c.Content,
			validation.Required.Error("content_required"),
			validation.By(wordCountRule(maxCommentWords)),
		),
		validation.Field(&c.PostID,
			validation.Required.Error("post_id_required"),
		),
		validation.Field(&c.Status,
			validation.Required.Error("status_required"),
			validation.In(domain.CommentStatusApproved, domain.CommentStatusPending, domain.CommentStatusSpam).Error("invalid_status"),
		),
	)
}

// ValidateUser validates a User.
func (v *Validator) ValidateUser(u *domain.User) error {
	return validation.ValidateStruct(u,
		validation.Field(&u.Email,
			validation.Required.Error("email_required"),
			is.Email.Error("invalid_email_format"),
		),
		validation.Field(&u.Name,
			validation.Required.Error("name_required"),
		),
		validation.Field(&u.Role,
			validation.Required.Error("role_required"),
			validation.In(domain.RoleAdministrator, domain.RoleEditor, domain.RoleAuthor, domain.RoleSubscriber).Error("invalid_role"),
		),
		validation.Field(&u.Status,
			validation.Required.Error("status_required"),
			validation.In(domain.UserStatusActive, domain.UserStatusInactive).Error("invalid_status"),
		),
	)
}

// ValidateSettings validates the settings singleton section by section.
func (v *Validator) ValidateSettings(s *domain.BlogSettings) error {
	errs := validation.Errors{}

	g := &s.General
	errs["general"] = validation.ValidateStruct(g,
		validation.Field(&g.SiteName, validation.Required.Error("site_name_required")),
		validation.Field(&g.SiteURL, is.URL.Error("invalid_url")),
	)

	a := &s.Appearance
	errs["appearance"] = validation.ValidateStruct(a,
		validation.Field(&a.Theme, validation.In("light", "dark", "system").Error("invalid_theme")),
		validation.Field(&a.PrimaryColor, validation.Match(colorRegex).Error("invalid_color")),
	)

	c := &s.Content
	errs["content"] = validation.ValidateStruct(c,
		validation.Field(&c.PostsPerPage,
			validation.Required.Error("posts_per_page_required"),
			validation.Min(1).Error("posts_per_page_out_of_range"),
			validation.Max(100).Error("posts_per_page_out_of_range"),
		),
	)

	sec := &s.Security
	errs["security"] = validation.ValidateStruct(sec,
		validation.Field(&sec.SessionTimeout, validation.Min(0).Error("invalid_session_timeout")),
		validation.Field(&sec.MaxLoginAttempts, validation.Min(1).Error("invalid_max_login_attempts")),
	)

	return flatten(errs)
}

// wordCountRule creates a validation rule for max word count.
func wordCountRule(maxWords int) validation.RuleFunc {
	return func(value interface{}) error {
		s, ok := value.(string)
		if !ok {
			return nil
		}
		if len(strings.Fields(s)) > maxWords {
			return validation.NewError("content_too_long", "content exceeds the word limit")
		}
		return nil
	}
}

// FieldErrors converts ozzo validation errors into a field to message map.
// Nested sections use dotted keys.
func FieldErrors(err error) map[string]string {
	fields := make(map[string]string)
	if err == nil {
		return fields
	}

	var ve validation.Errors
	if !errors.As(err, &ve) {
		fields["unknown"] = err.Error()
		return fields
	}
	for field, fieldErr := range ve {
		if fieldErr == nil {
			continue
		}
		var nested validation.Errors
		if errors.As(fieldErr, &nested) {
			for k, msg := range FieldErrors(nested) {
				fields[field+"."+k] = msg
			}
			continue
		}
		fields[field] = fieldErr.Error()
	}
	return fields
}

func prefixErrors(prefix string, err error) error {
	var ve validation.Errors
	if !errors.As(err, &ve) {
		return err
	}
	out := validation.Errors{}
	for k, v := range ve {
		out[prefix+k] = v
	}
	return out
}

// flatten drops nil sections so an all-valid result is a nil error.
func flatten(errs validation.Errors) error {
	out := validation.Errors{}
	for k, v := range errs {
		if v != nil {
			out[k] = v
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
