// Package validation provides input validation utilities producing
// per-field error maps suitable for the API's validation-failure envelope.
package validation

import (
	"fmt"
	"net"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
)

// Errors maps a field name to its list of human-readable messages.
type Errors map[string][]string

// Add appends a message for the given field.
func (e Errors) Add(field, message string) {
	e[field] = append(e[field], message)
}

// Any reports whether at least one field failed validation.
func (e Errors) Any() bool {
	return len(e) > 0
}

// Merge copies all messages from other into e.
func (e Errors) Merge(other Errors) {
	for field, msgs := range other {
		e[field] = append(e[field], msgs...)
	}
}

const (
	maxNameLength     = 250
	maxEmailLength    = 250
	maxTitleLength    = 255
	minPasswordLength = 8

	// MaxProductImageBytes caps product image uploads at 2048 KB.
	MaxProductImageBytes = 2048 * 1024
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// DNS lookups are package variables so tests can stub them.
var (
	lookupMX   = net.LookupMX
	lookupHost = net.LookupHost
)

var allowedImageExtensions = map[string]struct{}{
	".jpeg": {},
	".jpg":  {},
	".png":  {},
	".gif":  {},
}

var allowedImageContentTypes = map[string]struct{}{
	"image/jpeg": {},
	"image/jpg":  {},
	"image/png":  {},
	"image/gif":  {},
}

// RegisterInput carries the registration request fields.
type RegisterInput struct {
	Name                 string
	Email                string
	Password             string
	PasswordConfirmation string
}

// Register validates a registration request. Email uniqueness is the
// caller's responsibility (it needs the persistence layer).
func Register(in RegisterInput) Errors {
	errs := Errors{}

	if strings.TrimSpace(in.Name) == "" {
		errs.Add("name", "The name field is required.")
	} else if len(in.Name) > maxNameLength {
		errs.Add("name", fmt.Sprintf("The name must not be greater than %d characters.", maxNameLength))
	}

	errs.Merge(email(in.Email, true))

	if in.Password == "" {
		errs.Add("password", "The password field is required.")
	} else {
		if len(in.Password) < minPasswordLength {
			errs.Add("password", fmt.Sprintf("The password must be at least %d characters.", minPasswordLength))
		}
		if in.Password != in.PasswordConfirmation {
			errs.Add("password", "The password confirmation does not match.")
		}
	}

	return errs
}

// Login validates a login request.
func Login(emailAddr, password string) Errors {
	errs := Errors{}
	errs.Merge(email(emailAddr, false))
	if password == "" {
		errs.Add("password", "The password field is required.")
	}
	return errs
}

// email validates format and, when checkDNS is requested, that the domain
// resolves. DNS resolution is skipped outside production so tests and dev
// environments never depend on the network.
func email(addr string, checkDNS bool) Errors {
	errs := Errors{}
	if strings.TrimSpace(addr) == "" {
		errs.Add("email", "The email field is required.")
		return errs
	}
	if !emailRegex.MatchString(addr) {
		errs.Add("email", "The email must be a valid email address.")
		return errs
	}
	if len(addr) > maxEmailLength {
		errs.Add("email", fmt.Sprintf("The email must not be greater than %d characters.", maxEmailLength))
		return errs
	}
	if checkDNS && dnsChecksEnabled() && !domainResolves(addr) {
		errs.Add("email", "The email must be a valid email address.")
	}
	return errs
}

func dnsChecksEnabled() bool {
	env := os.Getenv("APP_ENV")
	return env == "production" || env == "prod"
}

func domainResolves(addr string) bool {
	at := strings.LastIndex(addr, "@")
	if at < 0 {
		return false
	}
	domain := addr[at+1:]
	if mx, err := lookupMX(domain); err == nil && len(mx) > 0 {
		return true
	}
	hosts, err := lookupHost(domain)
	return err == nil && len(hosts) > 0
}

// CatalogInput carries the text fields shared by categories and products.
type CatalogInput struct {
	Title            string
	ShortDescription string
	LongDescription  string
}

// Category validates category create/update text fields.
func Category(in CatalogInput) Errors {
	errs := Errors{}
	if strings.TrimSpace(in.Title) == "" {
		errs.Add("title", "The title field is required.")
	} else if len(in.Title) > maxTitleLength {
		errs.Add("title", fmt.Sprintf("The title must not be greater than %d characters.", maxTitleLength))
	}
	if strings.TrimSpace(in.ShortDescription) == "" {
		errs.Add("short_description", "The short description field is required.")
	}
	if strings.TrimSpace(in.LongDescription) == "" {
		errs.Add("long_description", "The long description field is required.")
	}
	return errs
}

// Product validates product create/update fields. categoryID is the raw
// form value; referential existence is checked by the caller.
func Product(categoryID string, in CatalogInput) Errors {
	errs := Category(in)
	if strings.TrimSpace(categoryID) == "" {
		errs.Add("category_id", "The category id field is required.")
	} else if _, err := strconv.ParseUint(categoryID, 10, 32); err != nil {
		errs.Add("category_id", "The category id must be an integer.")
	}
	return errs
}

// ImageUpload validates an optional uploaded image by filename extension,
// declared content type, and size. maxBytes <= 0 disables the size cap.
func ImageUpload(filename, contentType string, size, maxBytes int64) []string {
	var msgs []string

	ext := strings.ToLower(filepath.Ext(filename))
	if _, ok := allowedImageExtensions[ext]; !ok {
		msgs = append(msgs, "The image must be a file of type: jpeg, png, jpg, gif.")
	} else if contentType != "" {
		normalized := strings.ToLower(strings.TrimSpace(strings.Split(contentType, ";")[0]))
		if _, ok := allowedImageContentTypes[normalized]; !ok {
			msgs = append(msgs, "The image must be a file of type: jpeg, png, jpg, gif.")
		}
	}

	if maxBytes > 0 && size > maxBytes {
		msgs = append(msgs, fmt.Sprintf("The image must not be greater than %d kilobytes.", maxBytes/1024))
	}

	return msgs
}
