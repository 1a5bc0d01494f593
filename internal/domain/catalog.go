package domain

// Option is a selectable value with its display label.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

var Timezones = []Option{
	{Value: "pst", Label: "PST (UTC-8)"},
	{Value: "mst", Label: "MST (UTC-7)"},
	{Value: "cst", Label: "CST (UTC-6)"},
	{Value: "est", Label: "EST (UTC-5)"},
	{Value: "utc", Label: "UTC (UTC+0)"},
	{Value: "cet", Label: "CET (UTC+1)"},
}

var FounderTypes = []Option{
	{Value: string(FounderHacker), Label: "Hacker (technical)"},
	{Value: string(FounderHipster), Label: "Hipster (design)"},
	{Value: string(FounderHustler), Label: "Hustler (business)"},
}

var WeeklyHourBands = []Option{
	{Value: string(Hours0To10), Label: "0-10 hours/week"},
	{Value: string(Hours10To20), Label: "10-20 hours/week"},
	{Value: string(Hours20To30), Label: "20-30 hours/week"},
	{Value: string(Hours30To40), Label: "30-40 hours/week"},
	{Value: string(Hours40Plus), Label: "40+ hours/week (Full-time)"},
}

var IdeaStatuses = []Option{
	{Value: string(IdeaYes), Label: "Yes, I have an idea and need help building it"},
	{Value: string(IdeaNo), Label: "No, I want to join someone else's idea"},
	{Value: string(IdeaBoth), Label: "Both - I'm open to either"},
}

var CalendarTypes = []Option{
	{Value: string(CalendarCalendly), Label: "Calendly"},
	{Value: string(CalendarCal), Label: "Cal.com"},
	{Value: string(CalendarGoogle), Label: "Google Calendar"},
	{Value: string(CalendarOutlook), Label: "Outlook Calendar"},
}

// Skills is the fixed catalog founders pick from.
var Skills = []string{
	"React",
	"Node.js",
	"Python",
	"AI/ML",
	"Mobile Dev",
	"DevOps",
	"UI/UX Design",
	"Product Management",
	"Marketing",
	"Sales",
	"Fundraising",
	"Operations",
	"Strategy",
	"Analytics",
}

func IsTimezone(v string) bool {
	for _, o := range Timezones {
		if o.Value == v {
			return true
		}
	}
	return false
}

func IsSkill(v string) bool {
	for _, s := range Skills {
		if s == v {
			return true
		}
	}
	return false
}
