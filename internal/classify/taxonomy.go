package classify

// Category maps a hierarchical category path to the keywords that trigger it.
type Category struct {
	Path     string
	Keywords []string
}

// taxonomy is the fixed classification rule table. Order matters: when two
// categories match the same number of distinct keywords, the earlier entry
// wins. Adding or removing categories is a code change, not configuration.
var taxonomy = []Category{
	// Artificial intelligence
	{Path: "Computer Science > AI > NLP", Keywords: []string{"neural", "language model", "tokenizer", "transformer", "bert", "gpt"}},
	{Path: "Computer Science > AI > Machine Learning", Keywords: []string{"regression", "classifier", "training", "dataset", "scikit-learn", "random forest", "gradient boosting"}},
	{Path: "Computer Science > AI > Computer Vision", Keywords: []string{"image", "opencv", "cnn", "detection", "segmentation", "yolo", "resnet"}},

	// Web development
	{Path: "Computer Science > Web > Frontend", Keywords: []string{"html", "css", "javascript", "react", "vue", "tailwind", "bootstrap"}},
	{Path: "Computer Science > Web > Backend", Keywords: []string{"asp.net", "node.js", "django", "laravel", "api", "mvc", "controller"}},
	{Path: "Computer Science > Web > Full Stack", Keywords: []string{"full stack", "frontend", "backend", "rest", "json", "authentication"}},

	// Cloud and distributed systems
	{Path: "Computer Science > Cloud > Azure", Keywords: []string{"azure", "blob storage", "function app", "resource group", "app service"}},
	{Path: "Computer Science > Cloud > AWS", Keywords: []string{"aws", "s3", "ec2", "lambda", "dynamodb"}},
	{Path: "Computer Science > Cloud > Distributed Systems", Keywords: []string{"distributed", "latency", "replication", "scalability", "consistency"}},

	// Data science
	{Path: "Computer Science > Data Science > Analytics", Keywords: []string{"data analysis", "pandas", "matplotlib", "notebook", "jupyter"}},
	{Path: "Computer Science > Data Science > Big Data", Keywords: []string{"hadoop", "spark", "big data", "data lake", "hive", "mapreduce"}},

	// Security
	{Path: "Computer Science > Security > Network Security", Keywords: []string{"firewall", "ddos", "intrusion detection", "vpn", "packet"}},
	{Path: "Computer Science > Security > Cryptography", Keywords: []string{"encryption", "rsa", "aes", "public key", "digital signature"}},

	// Databases
	{Path: "Computer Science > Databases > SQL", Keywords: []string{"sql", "select", "join", "stored procedure", "query", "index"}},
	{Path: "Computer Science > Databases > NoSQL", Keywords: []string{"mongodb", "nosql", "document store", "collection", "shard"}},

	// Operating systems
	{Path: "Computer Science > Systems > Operating Systems", Keywords: []string{"kernel", "process", "thread", "scheduling", "memory management", "semaphore"}},

	// Networking
	{Path: "Computer Science > Networking > Protocols", Keywords: []string{"http", "tcp", "ip", "udp", "dns", "routing", "packet"}},

	// Software engineering
	{Path: "Computer Science > Software Engineering > Methodologies", Keywords: []string{"agile", "scrum", "kanban", "sprint", "requirements", "user stories"}},
	{Path: "Computer Science > Software Engineering > Testing", Keywords: []string{"unit test", "integration test", "tdd", "mock", "xunit", "jest"}},
}

// Taxonomy returns a copy of the rule table in classification order.
// Keyword slices are copied too, so callers cannot mutate the table.
func Taxonomy() []Category {
	out := make([]Category, len(taxonomy))
	for i, cat := range taxonomy {
		keywords := make([]string, len(cat.Keywords))
		copy(keywords, cat.Keywords)
		out[i] = Category{Path: cat.Path, Keywords: keywords}
	}
	return out
}
