package web

// Item is a titled blurb used by feature grids, steps and values.
type Item struct {
	Title string
	Desc  string
}

// Step is a numbered workflow step.
type Step struct {
	Step  string
	Title string
	Desc  string
}

// Agent is one of the Salient agents.
type Agent struct {
	Key          string
	Title        string
	Type         string
	Tagline      string
	Description  string
	Accent       string
	Capabilities []Item
	Workflow     []Step
	Compliance   []string
	Memory       []string
}

// Stat is a headline metric.
type Stat struct {
	Metric string
	Title  string
	Desc   string
}

// Result is a per-agent customer outcome.
type Result struct {
	Agent  string
	Metric string
	Result string
	Detail string
}

// Law is a regulation the agents are aligned with.
type Law struct {
	Abbr string
	Name string
}

// Testimonial is a customer quote.
type Testimonial struct {
	Quote string
	Role  string
	Org   string
}

var agentOrder = []string{"taylor", "marshall", "alex", "flynn"}

var agents = map[string]Agent{
	"taylor": {
		Key:         "taylor",
		Title:       "Taylor",
		Type:        "Customer Service & Collections Agent",
		Tagline:     "Your always-on collections and customer service team",
		Description: "Taylor handles inbound and outbound conversations across voice, text, and email, covering everything from welcome and verification to payment support, hardship discussions, and collections.",
		Accent:      "blue",
		Capabilities: []Item{
			{"Welcome & verification", "Authenticate borrowers and manage consent and communication preferences"},
			{"Payment support", "Take payments, set up payment plans, process extensions, and record promises to pay"},
			{"Hardship handling", "Conduct hardship conversations with empathy and route to appropriate programs"},
			{"Collections outreach", "Conduct compliant outbound collections across voice, SMS, and email channels"},
			{"Payoff quotes", "Generate accurate payoff quotes and handle payoff-related inquiries"},
			{"Escalation routing", "Intelligently escalate to human agents with full context when needed"},
		},
		Workflow: []Step{
			{"01", "Authenticate", "Verify borrower identity and pull account context"},
			{"02", "Understand", "Listen to the borrower's situation and intent"},
			{"03", "Resolve", "Take action: payment, promise, hardship, or escalation"},
			{"04", "Document", "Log everything for compliance and future context"},
		},
		Compliance: []string{
			"FDCPA-compliant call scripting and timing",
			"TCPA consent management for outbound contacts",
			"Mini-Miranda and state-specific disclosures",
			"Contact attempt limits and right-party verification",
		},
		Memory: []string{
			"Prior payment history and broken promises",
			"Previous hardship conversations and outcomes",
			"Communication preferences and best contact times",
			"Account status changes and recent interactions",
		},
	},
	"marshall": {
		Key:         "marshall",
		Title:       "Marshall",
		Type:        "Compliance & QA Agent",
		Tagline:     "100% coverage, zero sampling bias",
		Description: "Marshall monitors every call, text, and email, automatically flagging potential compliance issues and feeding QA scorecards, coaching recommendations, and exam-ready evidence.",
		Accent:      "emerald",
		Capabilities: []Item{
			{"Full-coverage QA", "Review 100% of interactions instead of random sampling"},
			{"Contact-rule monitoring", "Detect potential FDCPA timing and frequency violations"},
			{"Disclosure tracking", "Verify required disclosures are delivered correctly"},
			{"UDAAP language flags", "Identify potentially unfair, deceptive, or abusive language"},
			{"Scorecard automation", "Generate QA scorecards automatically for every interaction"},
			{"Coaching insights", "Surface coaching opportunities for human agents"},
		},
		Workflow: []Step{
			{"01", "Ingest", "Receive transcripts and recordings in real-time"},
			{"02", "Analyze", "Apply policy-based checks and language analysis"},
			{"03", "Flag", "Surface potential issues with severity and context"},
			{"04", "Report", "Generate evidence packs and trend reporting"},
		},
		Compliance: []string{
			"Policy-anchored evaluation criteria",
			"Configurable severity thresholds",
			"Audit trail for all findings",
			"Remediation tracking and follow-up",
		},
		Memory: []string{
			"Historical QA scores by agent and team",
			"Trending compliance issues over time",
			"Prior findings on specific borrower accounts",
			"Remediation status and outcomes",
		},
	},
	"alex": {
		Key:         "alex",
		Title:       "Alex",
		Type:        "Disputes & Chargebacks Agent",
		Tagline:     "From intake to case-ready in minutes, not days",
		Description: "Alex runs the full dispute and chargeback workflow: structured intake, document collection, reason-code classification, and case preparation, so your team reviews cases instead of re-typing them.",
		Accent:      "purple",
		Capabilities: []Item{
			{"Structured intake", "Guide borrowers through dispute details with smart questioning"},
			{"Document collection", "Request and organize supporting documents automatically"},
			{"Reason-code mapping", "Classify disputes to appropriate reason codes"},
			{"Narrative drafting", "Generate case narratives from collected information"},
			{"Case file creation", "Create complete case files in your dispute management system"},
			{"Status updates", "Keep borrowers informed throughout the process"},
		},
		Workflow: []Step{
			{"01", "Intake", "Collect dispute details through guided conversation"},
			{"02", "Gather", "Request and organize supporting documentation"},
			{"03", "Classify", "Map to reason codes and draft case narrative"},
			{"04", "Handoff", "Create case file for human review and decision"},
		},
		Compliance: []string{
			"FCRA dispute handling timelines",
			"Reg E and Reg Z requirements",
			"Documentation retention standards",
			"Borrower communication requirements",
		},
		Memory: []string{
			"Prior disputes on the same account",
			"Related transactions and account activity",
			"Previous document submissions",
			"Historical dispute outcomes",
		},
	},
	"flynn": {
		Key:         "flynn",
		Title:       "Flynn",
		Type:        "Total Loss & Mitigation Agent",
		Tagline:     "Fair settlements, faster resolution",
		Description: "Flynn represents your interests in total-loss workflows, automating intake from salvage and valuation systems, managing settlement negotiations, and handling deficiency and recovery workflows.",
		Accent:      "amber",
		Capabilities: []Item{
			{"Valuation intake", "Ingest data from IAAI, Copart, CCC Valuation, and other sources"},
			{"Settlement negotiation", "Manage offers and counteroffers within your policy parameters"},
			{"Deficiency handling", "Calculate and communicate deficiency balances"},
			{"Recovery workflows", "Coordinate GAP claims and other recovery sources"},
			{"Payment plans", "Set up deficiency payment arrangements when appropriate"},
			{"Documentation", "Maintain complete records of all settlement activities"},
		},
		Workflow: []Step{
			{"01", "Intake", "Receive total-loss notification and pull loan details"},
			{"02", "Value", "Ingest valuations and apply lender policies"},
			{"03", "Negotiate", "Manage settlement within approved parameters"},
			{"04", "Resolve", "Process settlement and handle deficiency"},
		},
		Compliance: []string{
			"Fair settlement practices",
			"State-specific total-loss requirements",
			"GAP claim coordination",
			"Deficiency balance regulations",
		},
		Memory: []string{
			"Loan and collateral details",
			"Prior payment and hardship history",
			"Settlement offer history",
			"Communication log with all parties",
		},
	},
}

// Agents returns the agents in navigation order.
func Agents() []Agent {
	out := make([]Agent, 0, len(agentOrder))
	for _, k := range agentOrder {
		out = append(out, agents[k])
	}
	return out
}

// AgentByKey looks up an agent by its URL key.
func AgentByKey(key string) (Agent, bool) {
	a, ok := agents[key]
	return a, ok
}

var homeFeatures = []Item{
	{"Compliance-first architecture", "Built around CFPB, OCC, FDIC, and NCUA expectations. Every interaction is logged, auditable, and exam-ready from day one."},
	{"End-to-end workflow automation", "Our agents don't just answer questions. They run complete workflows from intake through resolution, updating your systems along the way."},
	{"Borrower-level memory", "Every interaction builds on prior history: payment promises, hardship notes, disputes, and claims. Better context means better outcomes."},
}

var voiceFeatures = []Item{
	{"Natural, empathetic conversations", "Taylor delivers personalized conversations that feel human. Always available, endlessly patient, and able to reason, predict, and act in real-time."},
	{"Connect to your call center ecosystem", "Seamlessly integrate with your existing technology stack, with comprehensive summaries and intelligent routing when escalation is required."},
	{"Scale consistent experiences", "Build once and run everywhere, with a continuously-improving, trusted AI agent tailored to your brand, goals, and processes."},
}

var integrations = []string{"Genesys", "NICE", "Amazon Connect", "FIS", "Black Knight", "Fiserv"}

var impactStats = []Stat{
	{"500K+", "daily unique customer interactions", "Reduce manual call volume while improving customer satisfaction"},
	{"50%", "average cost reduction", "Automate manual workflow with cleaner documentation and fewer reworks"},
	{"1:1", "recovery rates matching human performance", "Automate your loss mitigation processes with no outcome gap"},
	{"100%", "compliance monitoring", "Improve exam readiness with complete, searchable records for every interaction and workflow"},
}

var customers = []string{"Westlake Financial", "UACC", "Exeter Finance", "CPS", "ACA"}

var results = []Result{
	{"Taylor", "Collections", "15-25% increase in net recovery", "While reducing manual call volume by 40%"},
	{"Alex", "Disputes", "60% faster resolution", "With cleaner documentation and fewer re-works"},
	{"Marshall", "Compliance", "100% QA coverage", "Up from 2-5% with manual sampling"},
	{"Flynn", "Total Loss", "12% higher settlements", "With 50% faster cycle times"},
}

var testimonial = Testimonial{
	Quote: "Salient gave us the ability to scale our collections operation without adding headcount, and our compliance team actually sleeps better at night knowing every interaction is logged and auditable.",
	Role:  "VP of Servicing",
	Org:   "Regional Auto Lender",
}

var laws = []Law{
	{"FDCPA", "Fair Debt Collection Practices Act"},
	{"UDAAP", "Unfair, Deceptive, or Abusive Acts or Practices"},
	{"Reg Z", "Truth in Lending Act"},
	{"FCRA", "Fair Credit Reporting Act"},
	{"ECOA / Reg B", "Equal Credit Opportunity Act"},
	{"SCRA / MLA", "Servicemember protections"},
}

var examPacket = []string{
	"Policy documentation",
	"Implementation evidence",
	"Monitoring reports",
	"Remediation records",
	"Testing results",
}

var whyPoints = []Item{
	{"Aligned with federal consumer-protection laws", "Agents are configured against the rules lenders are examined on, with disclosures and contact limits enforced in every workflow."},
	{"Built to support exams, not just pass legal review", "We think in exam packets: policies, evidence of implementation, monitoring, and remediation."},
	{"Automated testing before changes go live", "Edge-case scenarios, language checks, and regression tests reduce risk before deployment."},
}

var approach = []Step{
	{"01", "Discover", "Current policies, scripts, systems, and volumes"},
	{"02", "Design", "Guardrails, flows, and success criteria"},
	{"03", "Deploy", "Tightly-scoped pilot within your LMS/CCaaS stack"},
	{"04", "Document", "Evidence, learnings, and rollout plan"},
}

var story = []Item{
	{"We saw the gap", "Generic AI tools don't understand the regulatory complexity of US consumer lending. Lenders need solutions built specifically for their world."},
	{"Compliance-first design", "We started with exam expectations and worked backward to build agents that are audit-ready from day one."},
	{"Agents that work", "Four specialized agents that automate real workflows while maintaining the compliance rigor lenders need."},
}

var team = []Item{
	{"Leadership", "Consumer lending veterans with decades of experience at top lenders and servicers"},
	{"Engineering", "AI/ML experts from leading technology companies, focused on reliable, auditable systems"},
	{"Compliance", "Former regulators and compliance officers who understand exam expectations"},
}

var values = []Item{
	{"Compliance is non-negotiable", "Every feature starts with regulatory requirements"},
	{"Borrowers deserve better", "AI should improve the borrower experience, not just cut costs"},
	{"Transparency builds trust", "Every action is logged, explainable, and auditable"},
	{"Start small, prove value", "Focused pilots with measurable outcomes"},
}

var pilotSteps = []Step{
	{"01", "Define the scope", "Select one portfolio, one agent, and clear success metrics"},
	{"02", "Connect systems", "Read-only integrations for the pilot slice of your data"},
	{"03", "Configure guardrails", "Set policies, scripts, allowed actions, and escalation rules"},
	{"04", "Run & measure", "Operate the pilot alongside your existing process and track results"},
}
