package web

import (
	"net/http"
	"net/mail"
	"strings"
)

const maxFieldLen = 200

// Option is a select option on the pilot form.
type Option struct {
	Value string
	Label string
}

var agentOptions = []Option{
	{"taylor", "Taylor, Customer Service & Collections"},
	{"marshall", "Marshall, Compliance & QA"},
	{"alex", "Alex, Disputes & Chargebacks"},
	{"flynn", "Flynn, Total Loss & Mitigation"},
	{"multiple", "Multiple agents"},
}

var goalOptions = []Option{
	{"collections", "Improve collections recovery"},
	{"disputes", "Automate dispute handling"},
	{"compliance", "Increase QA coverage"},
	{"total-loss", "Streamline total-loss workflows"},
	{"other", "Other"},
}

// PilotRequest is a demo request submitted from the pilot page.
type PilotRequest struct {
	FirstName string
	LastName  string
	Email     string
	Company   string
	Title     string
	Agent     string
	Goal      string
	Notes     string
}

// FieldErrors maps form field names to messages.
type FieldErrors map[string]string

func parsePilotRequest(r *http.Request) PilotRequest {
	get := func(k string) string { return strings.TrimSpace(r.PostFormValue(k)) }
	return PilotRequest{
		FirstName: get("firstName"),
		LastName:  get("lastName"),
		Email:     get("email"),
		Company:   get("company"),
		Title:     get("title"),
		Agent:     get("agent"),
		Goal:      get("goal"),
		Notes:     get("notes"),
	}
}

// Validate checks required fields and the select values. An empty result
// means the request is acceptable.
func (p PilotRequest) Validate() FieldErrors {
	errs := FieldErrors{}
	required := []struct{ name, value, msg string }{
		{"firstName", p.FirstName, "First name is required"},
		{"lastName", p.LastName, "Last name is required"},
		{"email", p.Email, "Work email is required"},
		{"company", p.Company, "Company is required"},
	}
	for _, f := range required {
		if f.value == "" {
			errs[f.name] = f.msg
		} else if len(f.value) > maxFieldLen {
			errs[f.name] = "Too long"
		}
	}
	if _, ok := errs["email"]; !ok {
		if addr, err := mail.ParseAddress(p.Email); err != nil || addr.Address != p.Email {
			errs["email"] = "Enter a valid email address"
		}
	}
	if len(p.Title) > maxFieldLen {
		errs["title"] = "Too long"
	}
	if p.Agent != "" && !validOption(agentOptions, p.Agent) {
		errs["agent"] = "Select an agent"
	}
	if p.Goal != "" && !validOption(goalOptions, p.Goal) {
		errs["goal"] = "Select a goal"
	}
	if len(p.Notes) > 10*maxFieldLen {
		errs["notes"] = "Too long"
	}
	return errs
}

func validOption(opts []Option, v string) bool {
	for _, o := range opts {
		if o.Value == v {
			return true
		}
	}
	return false
}
