package web

import (
	"net/http"
	"strings"

	"go.uber.org/zap"
)

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	s.render(w, http.StatusOK, "home", page{
		Title:       "Salient | AI agents for US consumer lenders",
		Description: "Salient automates collections, customer service, disputes, and total-loss mitigation with compliance-first AI.",
		Path:        r.URL.Path,
		Data: map[string]any{
			"Features":      homeFeatures,
			"VoiceFeatures": voiceFeatures,
			"Integrations":  integrations,
			"Stats":         impactStats,
			"Customers":     customers,
			"Laws":          laws,
		},
	})
}

func (s *Server) handleWhy(w http.ResponseWriter, r *http.Request) {
	s.render(w, http.StatusOK, "why", page{
		Title:       "Why Salient | Built for US Consumer Lenders",
		Description: "Compliance-first AI agents with a tightly-scoped pilot approach.",
		Path:        r.URL.Path,
		Data: map[string]any{
			"Points":   whyPoints,
			"Approach": approach,
		},
	})
}

func (s *Server) handleAgent(w http.ResponseWriter, r *http.Request) {
	a, ok := AgentByKey(strings.ToLower(r.PathValue("agent")))
	if !ok {
		s.handleNotFound(w, r)
		return
	}
	s.render(w, http.StatusOK, "agent", page{
		Title:       a.Title + ", " + a.Type + " | Salient",
		Description: a.Description,
		Path:        r.URL.Path,
		Data:        a,
	})
}

func (s *Server) handleCompliance(w http.ResponseWriter, r *http.Request) {
	s.render(w, http.StatusOK, "compliance", page{
		Title:       "Compliance & Governance, Built In | Salient",
		Description: "Agents aligned with federal consumer-protection laws and built to support exams.",
		Path:        r.URL.Path,
		Data: map[string]any{
			"Laws":       laws,
			"ExamPacket": examPacket,
		},
	})
}

func (s *Server) handleCustomers(w http.ResponseWriter, r *http.Request) {
	s.render(w, http.StatusOK, "customers", page{
		Title:       "Customers | Banks, Credit Unions, and Auto Lenders | Salient",
		Description: "Lenders using Salient see measurable improvements across collections, disputes, compliance, and operations.",
		Path:        r.URL.Path,
		Data: map[string]any{
			"Customers":   customers,
			"Results":     results,
			"Testimonial": testimonial,
		},
	})
}

func (s *Server) handleCompany(w http.ResponseWriter, r *http.Request) {
	s.render(w, http.StatusOK, "company", page{
		Title:       "About Salient | Our Mission and Team",
		Description: "Salient builds compliance-first AI agents for US consumer lenders.",
		Path:        r.URL.Path,
		Data: map[string]any{
			"Story":  story,
			"Team":   team,
			"Values": values,
		},
	})
}

// pilotForm is the state of the contact form: idle, invalid or submitted.
type pilotForm struct {
	Steps     []Step
	Agents    []Option
	Goals     []Option
	Form      PilotRequest
	Errors    FieldErrors
	Submitted bool
	Limited   bool
}

func newPilotForm() pilotForm {
	return pilotForm{Steps: pilotSteps, Agents: agentOptions, Goals: goalOptions}
}

func (s *Server) pilotPage(r *http.Request, f pilotForm) page {
	return page{
		Title:       "Book a Demo | Start Your Pilot | Salient",
		Description: "Start with a focused pilot: one portfolio, one agent, clear success metrics.",
		Path:        r.URL.Path,
		Data:        f,
	}
}

func (s *Server) handlePilot(w http.ResponseWriter, r *http.Request) {
	s.render(w, http.StatusOK, "pilot", s.pilotPage(r, newPilotForm()))
}

func (s *Server) handlePilotSubmit(w http.ResponseWriter, r *http.Request) {
	f := newPilotForm()
	if !s.formLim.allow(clientIP(r), now()) {
		f.Limited = true
		s.render(w, http.StatusTooManyRequests, "pilot", s.pilotPage(r, f))
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, 64<<10)
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	f.Form = parsePilotRequest(r)
	if errs := f.Form.Validate(); len(errs) > 0 {
		f.Errors = errs
		s.render(w, http.StatusUnprocessableEntity, "pilot", s.pilotPage(r, f))
		return
	}

	// Submissions are not stored or forwarded.
	s.log.Info("pilot request",
		zap.String("company", f.Form.Company),
		zap.String("agent", f.Form.Agent),
		zap.String("goal", f.Form.Goal),
		zap.String("email_domain", emailDomain(f.Form.Email)),
	)
	f.Submitted = true
	f.Form = PilotRequest{}
	s.render(w, http.StatusOK, "pilot", s.pilotPage(r, f))
}

func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	s.render(w, http.StatusNotFound, "notfound", page{
		Title: "Page not found | Salient",
		Path:  r.URL.Path,
	})
}

func emailDomain(addr string) string {
	if i := strings.LastIndexByte(addr, '@'); i >= 0 {
		return addr[i+1:]
	}
	return ""
}
