package extract

// term is a lowercase search token with the display name reported for it.
type term struct {
	token   string
	display string
}

var technicalTerms = []term{
	// programming languages
	{"python", "Python"},
	{"java", "Java"},
	{"javascript", "JavaScript"},
	{"c++", "C++"},
	{"c#", "C#"},
	{"php", "PHP"},
	{"ruby", "Ruby"},
	{"swift", "Swift"},
	{"kotlin", "Kotlin"},
	{"go", "Go"},
	{"rust", "Rust"},
	{"scala", "Scala"},
	{"r", "R"},
	{"matlab", "MATLAB"},
	{"perl", "Perl"},
	{"typescript", "TypeScript"},

	// web
	{"html", "HTML"},
	{"css", "CSS"},
	{"react", "React"},
	{"angular", "Angular"},
	{"vue", "Vue.js"},
	{"node.js", "Node.js"},
	{"express", "Express.js"},
	{"django", "Django"},
	{"flask", "Flask"},
	{"laravel", "Laravel"},
	{"spring", "Spring"},
	{"bootstrap", "Bootstrap"},
	{"jquery", "jQuery"},

	// databases
	{"sql", "SQL"},
	{"mysql", "MySQL"},
	{"postgresql", "PostgreSQL"},
	{"mongodb", "MongoDB"},
	{"sqlite", "SQLite"},
	{"oracle", "Oracle"},
	{"redis", "Redis"},
	{"cassandra", "Cassandra"},
	{"elasticsearch", "Elasticsearch"},
	{"dynamodb", "DynamoDB"},

	// cloud
	{"aws", "AWS"},
	{"azure", "Azure"},
	{"gcp", "GCP"},
	{"google cloud", "Google Cloud"},
	{"heroku", "Heroku"},
	{"digitalocean", "DigitalOcean"},
	{"docker", "Docker"},
	{"kubernetes", "Kubernetes"},
	{"terraform", "Terraform"},

	// tools
	{"git", "Git"},
	{"jenkins", "Jenkins"},
	{"ansible", "Ansible"},
	{"webpack", "Webpack"},
	{"babel", "Babel"},
	{"jest", "Jest"},
	{"pytest", "pytest"},
	{"selenium", "Selenium"},
	{"linux", "Linux"},

	// data
	{"machine learning", "Machine Learning"},
	{"tensorflow", "TensorFlow"},
	{"pytorch", "PyTorch"},
	{"pandas", "Pandas"},
	{"numpy", "NumPy"},
	{"statistics", "Statistics"},
	{"excel", "Excel"},
	{"tableau", "Tableau"},
}

var softTerms = []term{
	{"communication", "Communication"},
	{"leadership", "Leadership"},
	{"teamwork", "Teamwork"},
	{"problem solving", "Problem Solving"},
	{"project management", "Project Management"},
	{"time management", "Time Management"},
	{"analytical thinking", "Analytical Thinking"},
	{"creativity", "Creativity"},
	{"adaptability", "Adaptability"},
	{"attention to detail", "Attention to Detail"},
	{"critical thinking", "Critical Thinking"},
}

var (
	experienceKeywords = []string{
		"experience", "work", "employment", "position", "role",
		"job", "career", "professional", "intern", "internship",
	}
	projectKeywords = []string{
		"project", "developed", "built", "created", "designed",
		"implemented", "application", "system", "website", "app",
	}
	achievementKeywords = []string{
		"award", "recognition", "honor", "medal", "certificate", "winner",
	}
)

var stopWords = map[string]bool{
	"a": true, "about": true, "above": true, "after": true, "again": true, "against": true,
	"all": true, "am": true, "an": true, "and": true, "any": true, "are": true, "as": true,
	"at": true, "be": true, "because": true, "been": true, "before": true, "being": true,
	"below": true, "between": true, "both": true, "but": true, "by": true, "can": true,
	"did": true, "do": true, "does": true, "doing": true, "down": true, "during": true,
	"each": true, "few": true, "for": true, "from": true, "further": true, "had": true,
	"has": true, "have": true, "having": true, "he": true, "her": true, "here": true,
	"hers": true, "him": true, "his": true, "how": true, "i": true, "if": true, "in": true,
	"into": true, "is": true, "it": true, "its": true, "just": true, "me": true, "more": true,
	"most": true, "my": true, "no": true, "nor": true, "not": true, "now": true, "of": true,
	"off": true, "on": true, "once": true, "only": true, "or": true, "other": true, "our": true,
	"ours": true, "out": true, "over": true, "own": true, "same": true, "she": true,
	"should": true, "so": true, "some": true, "such": true, "than": true, "that": true,
	"the": true, "their": true, "them": true, "then": true, "there": true, "these": true,
	"they": true, "this": true, "those": true, "through": true, "to": true, "too": true,
	"under": true, "until": true, "up": true, "very": true, "was": true, "we": true,
	"were": true, "what": true, "when": true, "where": true, "which": true, "while": true,
	"who": true, "whom": true, "why": true, "will": true, "with": true, "you": true,
	"your": true, "yours": true,
}
