package skills

// Entry maps one spelling of a skill to its canonical name.
type Entry struct {
	Variant   string
	Canonical string
}

// DefaultVocabulary lists every canonical name as its own variant first, followed by
// the alternative spellings. Variants are unique and lowercase.
var DefaultVocabulary = []Entry{
	{"python", "python"},
	{"python3", "python"},
	{"java", "java"},
	{"javascript", "javascript"},
	{"js", "javascript"},
	{"ecmascript", "javascript"},
	{"typescript", "typescript"},
	{"ts", "typescript"},
	{"go", "go"},
	{"golang", "go"},
	{"rust", "rust"},
	{"c++", "c++"},
	{"cpp", "c++"},
	{"c#", "c#"},
	{"csharp", "c#"},
	{"ruby", "ruby"},
	{"php", "php"},
	{"kotlin", "kotlin"},
	{"swift", "swift"},
	{"scala", "scala"},
	{"sql", "sql"},
	{"postgresql", "postgresql"},
	{"postgres", "postgresql"},
	{"mysql", "mysql"},
	{"mongodb", "mongodb"},
	{"mongo", "mongodb"},
	{"redis", "redis"},
	{"elasticsearch", "elasticsearch"},
	{"kafka", "kafka"},
	{"apache kafka", "kafka"},
	{"rabbitmq", "rabbitmq"},
	{"aws", "aws"},
	{"amazon web services", "aws"},
	{"gcp", "gcp"},
	{"google cloud", "gcp"},
	{"google cloud platform", "gcp"},
	{"azure", "azure"},
	{"microsoft azure", "azure"},
	{"docker", "docker"},
	{"kubernetes", "kubernetes"},
	{"k8s", "kubernetes"},
	{"terraform", "terraform"},
	{"ansible", "ansible"},
	{"jenkins", "jenkins"},
	{"git", "git"},
	{"github actions", "github actions"},
	{"ci/cd", "ci/cd"},
	{"cicd", "ci/cd"},
	{"linux", "linux"},
	{"react", "react"},
	{"reactjs", "react"},
	{"react.js", "react"},
	{"angular", "angular"},
	{"angularjs", "angular"},
	{"vue", "vue"},
	{"vuejs", "vue"},
	{"vue.js", "vue"},
	{"node.js", "node.js"},
	{"nodejs", "node.js"},
	{"node", "node.js"},
	{"django", "django"},
	{"flask", "flask"},
	{"fastapi", "fastapi"},
	{"spring", "spring"},
	{"spring boot", "spring"},
	{"graphql", "graphql"},
	{"rest", "rest"},
	{"restful", "rest"},
	{"rest api", "rest"},
	{"microservices", "microservices"},
	{"microservice", "microservices"},
	{"html", "html"},
	{"html5", "html"},
	{"css", "css"},
	{"css3", "css"},
	{"machine learning", "machine learning"},
	{"ml", "machine learning"},
	{"deep learning", "deep learning"},
	{"artificial intelligence", "artificial intelligence"},
	{"ai", "artificial intelligence"},
	{"natural language processing", "natural language processing"},
	{"nlp", "natural language processing"},
	{"tensorflow", "tensorflow"},
	{"pytorch", "pytorch"},
	{"scikit-learn", "scikit-learn"},
	{"sklearn", "scikit-learn"},
	{"pandas", "pandas"},
	{"numpy", "numpy"},
	{"spark", "spark"},
	{"apache spark", "spark"},
	{"hadoop", "hadoop"},
	{"tableau", "tableau"},
	{"power bi", "power bi"},
	{"excel", "excel"},
	{"microsoft excel", "excel"},
	{"agile", "agile"},
	{"scrum", "scrum"},
	{"jira", "jira"},
	{"figma", "figma"},
}
