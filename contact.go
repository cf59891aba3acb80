package folio

import (
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/labstack/echo/v4"
	"github.com/oklog/ulid/v2"
)

const maxContactMessage = 5000

var reEmail = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// contactError messages are shown to the visitor as is.
type contactError string

func (e contactError) Error() string { return string(e) }

const (
	errContactMissing  contactError = "Missing required fields"
	errContactEmail    contactError = "Invalid email format"
	errContactTooLong  contactError = "Message is too long"
	errContactThrottle contactError = "Too many messages. Try again later."
)

// ContactRequest is a contact form submission. Company is optional.
type ContactRequest struct {
	Name    string `json:"name" form:"name"`
	Email   string `json:"email" form:"email"`
	Company string `json:"company" form:"company"`
	Subject string `json:"subject" form:"subject"`
	Message string `json:"message" form:"message"`
}

func (r *ContactRequest) normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.TrimSpace(r.Email)
	r.Company = strings.TrimSpace(r.Company)
	r.Subject = strings.TrimSpace(r.Subject)
	r.Message = strings.TrimSpace(r.Message)
}

// Validate reports the first problem with the submission.
func (r ContactRequest) Validate() error {
	err := validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required),
		validation.Field(&r.Email, validation.Required),
		validation.Field(&r.Subject, validation.Required),
		validation.Field(&r.Message, validation.Required),
	)
	if err != nil {
		return errContactMissing
	}
	if err := validation.Validate(r.Email, validation.Match(reEmail)); err != nil {
		return errContactEmail
	}
	if err := validation.Validate(r.Message, validation.RuneLength(0, maxContactMessage)); err != nil {
		return errContactTooLong
	}
	return nil
}

// submitContact validates and records a submission, returning its id.
// There is no mail delivery; submissions go to the log.
func (a *App) submitContact(c echo.Context) (string, int, error) {
	ip := c.RealIP()
	allowed := a.contactLimiter.Allow(ip)
	c.Response().Header().Set("X-RateLimit-Limit", strconv.Itoa(a.Config.ContactMax))
	c.Response().Header().Set("X-RateLimit-Remaining", strconv.Itoa(a.contactLimiter.Remaining(ip)))
	if !allowed {
		return "", http.StatusTooManyRequests, errContactThrottle
	}
	var req ContactRequest
	if err := c.Bind(&req); err != nil {
		return "", http.StatusBadRequest, errContactMissing
	}
	req.normalize()
	if err := req.Validate(); err != nil {
		return "", http.StatusBadRequest, err
	}
	company := req.Company
	if company == "" {
		company = "Not provided"
	}
	id := ulid.Make().String()
	c.Logger().Infof("contact %s: name=%q email=%q company=%q subject=%q ip=%s ua=%q at=%s",
		id, req.Name, req.Email, company, req.Subject, ip,
		c.Request().UserAgent(), time.Now().UTC().Format(time.RFC3339))
	return id, http.StatusOK, nil
}

func (a *App) handleContactAPI(c echo.Context) error {
	id, code, err := a.submitContact(c)
	if err != nil {
		return c.JSON(code, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, map[string]string{
		"id":      id,
		"message": "Message sent successfully",
	})
}

func (a *App) handleContactForm(c echo.Context) error {
	msg := "Thanks for reaching out! I'll get back to you soon."
	if _, _, err := a.submitContact(c); err != nil {
		msg = err.Error()
	}
	if err := addFlash(c, msg); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/#contact")
}
