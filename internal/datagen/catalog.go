package datagen

// Name and role pools used to build plausible employees.
var (
	firstNames = []string{ //nolint:gochecknoglobals // static pool
		"John", "Sarah", "Michael", "Emily", "David", "Jessica", "James", "Ashley",
		"Robert", "Amanda", "Daniel", "Olivia", "Christopher", "Sophia", "Matthew",
		"Isabella", "Andrew", "Mia", "Joshua", "Charlotte", "Priya", "Arjun", "Wei", "Fatima",
	}
	lastNames = []string{ //nolint:gochecknoglobals // static pool
		"Smith", "Johnson", "Chen", "Davis", "Wilson", "Martinez", "Anderson", "Taylor",
		"Thomas", "Moore", "Jackson", "White", "Harris", "Martin", "Thompson", "Garcia",
		"Robinson", "Clark", "Lewis", "Patel", "Kumar", "Nguyen", "Okafor", "Rossi",
	}
	locations = []string{ //nolint:gochecknoglobals // static pool
		"New York", "Los Angeles", "San Francisco", "Chicago", "Boston", "Miami",
		"Seattle", "Austin", "Dallas", "Denver", "Portland", "Atlanta",
	}
)

type department struct {
	name      string
	positions []string
	skills    []string
}

var departments = []department{ //nolint:gochecknoglobals // static pool
	{"Engineering", []string{"Junior Developer", "Senior Developer", "Tech Lead", "DevOps Engineer", "QA Engineer"},
		[]string{"Go", "JavaScript", "React", "Python", "Kubernetes", "AWS", "SQL", "Docker", "Terraform"}},
	{"Marketing", []string{"Content Writer", "Growth Marketer", "Marketing Manager"},
		[]string{"SEO", "Copywriting", "Analytics", "Paid Ads", "Content Strategy"}},
	{"Sales", []string{"Sales Representative", "Account Executive", "Sales Director"},
		[]string{"Negotiation", "CRM", "Cold Calling", "Lead Generation", "Enterprise Sales"}},
	{"Finance", []string{"Accountant", "Financial Analyst", "Controller"},
		[]string{"Excel", "Forecasting", "Accounting", "Compliance", "SAP"}},
	{"HR", []string{"HR Specialist", "Recruiter", "HR Director"},
		[]string{"Recruiting", "Onboarding", "Compensation", "Employee Relations"}},
	{"Design", []string{"UX Designer", "Visual Designer", "Design Lead"},
		[]string{"Figma", "User Research", "Prototyping", "Illustrator", "Branding"}},
	{"Operations", []string{"Operations Manager", "Supply Chain Analyst", "Logistics Coordinator"},
		[]string{"Logistics", "Lean", "Vendor Management", "Tableau", "SQL"}},
}
