package scoring

type Weights struct {
	Technical     float64
	Communication float64
	Analytical    float64
	Creativity    float64
}

type Career struct {
	Title       string
	Domain      string
	Description string
	AvgSalary   string
	GrowthRate  string
	KeySkills   []string
	Weights     Weights
}

func DefaultCatalog() []Career {
	return []Career{
		{
			Title:       "Software Engineer",
			Domain:      "technology",
			Description: "Designs, builds and maintains software systems and services.",
			AvgSalary:   "₹8-25 LPA",
			GrowthRate:  "22% (much faster than average)",
			KeySkills:   []string{"Data structures", "System design", "Version control", "Testing"},
			Weights:     Weights{Technical: 0.5, Communication: 0.1, Analytical: 0.3, Creativity: 0.1},
		},
		{
			Title:       "DevOps Engineer",
			Domain:      "technology",
			Description: "Automates delivery pipelines and keeps production infrastructure reliable.",
			AvgSalary:   "₹7-22 LPA",
			GrowthRate:  "20% (much faster than average)",
			KeySkills:   []string{"Linux", "CI/CD", "Containers", "Cloud platforms"},
			Weights:     Weights{Technical: 0.6, Communication: 0.1, Analytical: 0.25, Creativity: 0.05},
		},
		{
			Title:       "Data Scientist",
			Domain:      "data",
			Description: "Builds statistical and machine learning models to answer business questions.",
			AvgSalary:   "₹10-30 LPA",
			GrowthRate:  "35% (much faster than average)",
			KeySkills:   []string{"Python", "Statistics", "Machine learning", "Data visualization"},
			Weights:     Weights{Technical: 0.35, Communication: 0.1, Analytical: 0.45, Creativity: 0.1},
		},
		{
			Title:       "Data Analyst",
			Domain:      "data",
			Description: "Turns raw data into reports and dashboards that guide decisions.",
			AvgSalary:   "₹5-15 LPA",
			GrowthRate:  "23% (much faster than average)",
			KeySkills:   []string{"SQL", "Spreadsheets", "Dashboards", "Storytelling with data"},
			Weights:     Weights{Technical: 0.25, Communication: 0.2, Analytical: 0.5, Creativity: 0.05},
		},
		{
			Title:       "UX Designer",
			Domain:      "design",
			Description: "Researches user needs and designs intuitive product experiences.",
			AvgSalary:   "₹6-20 LPA",
			GrowthRate:  "16% (faster than average)",
			KeySkills:   []string{"User research", "Wireframing", "Prototyping", "Usability testing"},
			Weights:     Weights{Technical: 0.1, Communication: 0.3, Analytical: 0.2, Creativity: 0.4},
		},
		{
			Title:       "Graphic Designer",
			Domain:      "design",
			Description: "Creates visual identities, layouts and marketing assets.",
			AvgSalary:   "₹3-10 LPA",
			GrowthRate:  "5% (average)",
			KeySkills:   []string{"Typography", "Layout", "Adobe Creative Suite", "Branding"},
			Weights:     Weights{Technical: 0.1, Communication: 0.2, Analytical: 0.1, Creativity: 0.6},
		},
		{
			Title:       "Product Manager",
			Domain:      "business",
			Description: "Owns product direction and aligns engineering, design and business goals.",
			AvgSalary:   "₹12-35 LPA",
			GrowthRate:  "10% (faster than average)",
			KeySkills:   []string{"Roadmapping", "Stakeholder management", "Prioritization", "Metrics"},
			Weights:     Weights{Technical: 0.15, Communication: 0.4, Analytical: 0.3, Creativity: 0.15},
		},
		{
			Title:       "Business Analyst",
			Domain:      "business",
			Description: "Maps business processes and translates needs into requirements.",
			AvgSalary:   "₹5-15 LPA",
			GrowthRate:  "11% (faster than average)",
			KeySkills:   []string{"Requirements gathering", "Process modeling", "SQL", "Presentation"},
			Weights:     Weights{Technical: 0.15, Communication: 0.35, Analytical: 0.45, Creativity: 0.05},
		},
		{
			Title:       "Digital Marketing Specialist",
			Domain:      "business",
			Description: "Plans and runs campaigns across search, social and content channels.",
			AvgSalary:   "₹4-12 LPA",
			GrowthRate:  "10% (faster than average)",
			KeySkills:   []string{"SEO", "Content strategy", "Analytics", "Copywriting"},
			Weights:     Weights{Technical: 0.1, Communication: 0.4, Analytical: 0.2, Creativity: 0.3},
		},
		{
			Title:       "Healthcare Data Analyst",
			Domain:      "healthcare",
			Description: "Analyzes clinical and operational data to improve patient outcomes.",
			AvgSalary:   "₹5-14 LPA",
			GrowthRate:  "17% (faster than average)",
			KeySkills:   []string{"Clinical data standards", "SQL", "Statistics", "Compliance"},
			Weights:     Weights{Technical: 0.25, Communication: 0.15, Analytical: 0.5, Creativity: 0.1},
		},
		{
			Title:       "Health Educator",
			Domain:      "healthcare",
			Description: "Designs programs that help communities adopt healthier habits.",
			AvgSalary:   "₹3-8 LPA",
			GrowthRate:  "7% (average)",
			KeySkills:   []string{"Public speaking", "Program design", "Empathy", "Outreach"},
			Weights:     Weights{Technical: 0.05, Communication: 0.5, Analytical: 0.15, Creativity: 0.3},
		},
	}
}
