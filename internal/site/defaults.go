package site

// DefaultProfile is served when no profile.yaml exists in the content
// directory.
func DefaultProfile() Profile {
	return Profile{
		Name:     "Zach",
		Headline: "Software developer building tools that are useful and fun",
		About: []string{
			`I love building software that's both useful and fun, and I'm always curious about how things work behind the scenes.
Most of my projects start with a simple idea and turn into a chance to learn something new, whether it's exploring a
different language, experimenting with tools, or solving tricky problems.`,
			`When I'm not coding, you'll usually find me training Muay Thai, shooting pool with friends,
or chasing down a new challenge outside the screen.`,
		},
		Skills: []SkillGroup{
			{Category: "Languages", Items: []string{"Go", "TypeScript", "Python", "SQL"}},
			{Category: "Web", Items: []string{"Gin", "HTMX", "Tailwind CSS", "Alpine.js"}},
			{Category: "Tooling", Items: []string{"Docker", "Git", "Linux", "SQLite"}},
		},
		Work: []Experience{
			{
				Title:        "Presentation Expert",
				Organization: "Target",
				StartDate:    "Aug 2023",
				EndDate:      "Present",
				LogoPath:     "/images/TargetLogo.jpg",
				BulletPoints: []string{
					"Executed over 300 merchandising transitions on tight timelines by organizing team workflows and adapting quickly to changing priorities",
					"Boosted operational efficiency by managing backroom inventory processes and streamlining communication between floor and logistics teams",
				},
			},
			{
				Title:        "Manager",
				Organization: "Jasons Catered Events",
				StartDate:    "Aug 2016",
				EndDate:      "Present",
				LogoPath:     "/images/jasonsCateringLogo.png",
				BulletPoints: []string{
					"Supported event technology by troubleshooting AV equipment and managing digital order tracking systems",
				},
			},
		},
		Education: []Experience{
			{
				Title:        "Bachelor of Computer Science",
				Organization: "Western Governors University",
				StartDate:    "Sept 2019",
				EndDate:      "May 2023",
				LogoPath:     "/images/WGU-logo.png",
				BulletPoints: []string{"Relevant coursework: Data Structures, Algorithms, Web Development"},
			},
		},
		Links: []SocialLink{
			{Label: "GitHub", URL: "https://github.com/Zachkp"},
		},
	}
}
