package location

import "regexp"

// dictionaryEntry maps a Japanese place name to its English equivalent.
// Order matters: the first key found as a substring wins.
type dictionaryEntry struct {
	Japanese string
	English  string
}

// japaneseDictionary is checked before any other rule. The 日本 ("Japan")
// entry maps to Tokyo as a default-location policy for generic Japan queries.
var japaneseDictionary = []dictionaryEntry{
	{"東京", "Tokyo"},
	{"大阪", "Osaka"},
	{"京都", "Kyoto"},
	{"横浜", "Yokohama"},
	{"名古屋", "Nagoya"},
	{"福岡", "Fukuoka"},
	{"札幌", "Sapporo"},
	{"仙台", "Sendai"},
	{"広島", "Hiroshima"},
	{"神戸", "Kobe"},
	{"新潟", "Niigata"},
	{"静岡", "Shizuoka"},
	{"熊本", "Kumamoto"},
	{"鹿児島", "Kagoshima"},
	{"長崎", "Nagasaki"},
	{"岡山", "Okayama"},
	{"松山", "Matsuyama"},
	{"高松", "Takamatsu"},
	{"金沢", "Kanazawa"},
	{"富山", "Toyama"},
	{"福井", "Fukui"},
	{"岐阜", "Gifu"},
	{"浜松", "Hamamatsu"},
	{"甲府", "Kofu"},
	{"長野", "Nagano"},
	{"宇都宮", "Utsunomiya"},
	{"前橋", "Maebashi"},
	{"さいたま", "Saitama"},
	{"千葉", "Chiba"},
	{"川崎", "Kawasaki"},
	{"相模原", "Sagamihara"},
	{"横須賀", "Yokosuka"},
	{"那覇", "Naha"},
	{"沖縄", "Okinawa"},
	{"日本", "Tokyo"},
	{"オランガバ", "Aurangabad"},
	{"オーランガバード", "Aurangabad"},
	{"ムンバイ", "Mumbai"},
	{"デリー", "Delhi"},
	{"バンガロール", "Bangalore"},
}

const japaneseCityAlternation = "東京|大阪|京都|横浜|名古屋|福岡|札幌|仙台|広島|神戸|新潟|静岡|熊本|鹿児島|長崎|岡山|松山|高松|金沢|富山|福井|岐阜|浜松|甲府|長野|宇都宮|前橋|さいたま|千葉|川崎|相模原|横須賀|那覇|沖縄|日本|オランガバ|オーランガバード"

// phrasePatterns are tried in order; the first pattern with a non-empty
// capture group wins.
var phrasePatterns = []*regexp.Regexp{
	// Basic weather queries
	regexp.MustCompile(`(?i)weather in ([a-zA-Z\s,]+)`),
	regexp.MustCompile(`(?i)weather for ([a-zA-Z\s,]+)`),
	regexp.MustCompile(`(?i)weather at ([a-zA-Z\s,]+)`),
	regexp.MustCompile(`(?i)how.*weather.*in ([a-zA-Z\s,]+)`),
	regexp.MustCompile(`(?i)what.*weather.*in ([a-zA-Z\s,]+)`),
	regexp.MustCompile(`(?i)tell me.*weather.*in ([a-zA-Z\s,]+)`),
	regexp.MustCompile(`(?i)show.*weather.*in ([a-zA-Z\s,]+)`),
	regexp.MustCompile(`(?i)check.*weather.*in ([a-zA-Z\s,]+)`),

	// Travel and future tense
	regexp.MustCompile(`(?i)going to ([a-zA-Z\s,]+)`),
	regexp.MustCompile(`(?i)plan.*going to ([a-zA-Z\s,]+)`),
	regexp.MustCompile(`(?i)planning.*to.*go.*to ([a-zA-Z\s,]+)`),
	regexp.MustCompile(`(?i)trip to ([a-zA-Z\s,]+)`),
	regexp.MustCompile(`(?i)travel.*to ([a-zA-Z\s,]+)`),
	regexp.MustCompile(`(?i)visiting ([a-zA-Z\s,]+)`),
	regexp.MustCompile(`(?i)visit ([a-zA-Z\s,]+)`),
	regexp.MustCompile(`(?i)plan.*visit.*([a-zA-Z\s,]+)`),
	regexp.MustCompile(`(?i)weather.*([a-zA-Z\s,]+).*tomorrow`),
	regexp.MustCompile(`(?i)weather.*([a-zA-Z\s,]+).*next week`),
	regexp.MustCompile(`(?i)weather.*([a-zA-Z\s,]+).*after.*week`),

	regexp.MustCompile(`(?i)about.*weather.*([a-zA-Z\s,]+)`),

	// Romanized Japanese ("X no tenki")
	regexp.MustCompile(`(?i)([a-zA-Z\s,]+).*no.*tenki`),
	regexp.MustCompile(`(?i)([a-zA-Z]+).*weather`),

	// Japanese-character patterns anchored on 天気
	regexp.MustCompile(`(` + japaneseCityAlternation + `).*の.*天気`),
	regexp.MustCompile(`(` + japaneseCityAlternation + `).*天気`),
	regexp.MustCompile(`([ァ-ヶー]+).*の.*天気`),
	regexp.MustCompile(`([一-龯]+).*の.*天気`),
}

var (
	stopWordPattern   = regexp.MustCompile(`(?i)\b(today|tomorrow|now|currently|right now|this morning|tonight|weather|forecast|after|week|next|plan|planning|trip|travel|visiting|visit|about|the|a|an|and|or|but|so|tell|me|show|check|how|what|is|are|will|be|going|to|five|day|days|hour|hours|minute|minutes)\b`)
	multiSpacePattern = regexp.MustCompile(`\s+`)
	excludePattern    = regexp.MustCompile(`(?i)^(five|day|days|week|weeks|hour|hours|minute|minutes|forecast|weather|current|today|tomorrow|\d+)$`)
)

// gazetteer is the list of recognized place names, scanned whole-word when no
// phrase pattern matched. Grouped: Japanese cities, international cities,
// Indian cities across tiers, US cities.
var gazetteer = []string{
	// Japanese cities
	"tokyo", "osaka", "kyoto", "yokohama", "nagoya", "fukuoka", "sapporo",
	"sendai", "hiroshima", "kobe", "niigata", "shizuoka", "kumamoto", "kagoshima",
	"nagasaki", "okayama", "matsuyama", "takamatsu", "kanazawa", "toyama", "fukui",
	"gifu", "hamamatsu", "kofu", "nagano", "utsunomiya", "maebashi", "saitama",
	"chiba", "kawasaki", "sagamihara", "yokosuka", "naha", "okinawa",
	// International cities
	"new york", "london", "paris", "berlin", "rome", "madrid", "amsterdam",
	"sydney", "melbourne", "toronto", "vancouver", "singapore", "hong kong",
	"seoul", "beijing", "shanghai", "bangkok",
	// Indian metropolitan cities
	"mumbai", "delhi", "bangalore", "hyderabad", "ahmedabad", "chennai", "kolkata",
	"pune", "jaipur", "surat", "lucknow", "kanpur", "nagpur", "indore", "thane",
	"bhopal", "visakhapatnam", "pimpri", "patna", "vadodara", "ghaziabad", "ludhiana",
	"agra", "nashik", "faridabad", "meerut", "rajkot", "kalyan", "vasai", "varanasi",
	"srinagar", "aurangabad", "dhanbad", "amritsar", "navi mumbai", "allahabad",
	"ranchi", "howrah", "coimbatore", "gwalior", "vijayawada", "jodhpur",
	"madurai", "raipur", "kota", "guwahati", "chandigarh", "solapur", "hubli",
	// Additional major Indian cities
	"jabalpur", "bhubaneswar", "mysore", "tiruchirappalli", "salem", "warangal",
	"guntur", "bhiwandi", "saharanpur", "gorakhpur", "bikaner", "amravati",
	"noida", "jamshedpur", "bhilai", "cuttack", "kochi", "raigarh", "jalandhar",
	"tirunelveli", "mangalore", "thrissur", "kollam", "tirupati", "kakinada",
	"belgaum", "rajahmundry", "nellore", "kurnool", "tumkur", "gulbarga",
	"davanagere", "bellary", "bijapur", "raichur", "bidar", "hospet", "gadag",
	"shimoga", "udupi", "chikmagalur", "hassan", "mandya", "mysuru",
	// North Indian cities
	"dehradun", "haridwar", "rishikesh", "mussoorie", "nainital", "shimla", "manali",
	"dharamshala", "mcleodganj", "kasauli", "dalhousie", "kullu", "spiti", "leh",
	"ladakh", "jammu", "udaipur", "mount abu", "jaisalmer", "pushkar",
	"ajmer", "bundi", "chittorgarh", "bharatpur", "alwar", "sikar",
	// East Indian cities
	"puri", "konark", "rourkela", "sambalpur", "berhampur",
	"siliguri", "darjeeling", "kalimpong", "gangtok", "shillong", "aizawl", "imphal",
	"agartala", "kohima", "dimapur", "itanagar", "dispur",
	// West Indian cities
	"goa", "panaji", "margao", "vasco", "mapusa", "ponda", "calangute", "anjuna",
	"baroda", "bhavnagar", "jamnagar", "gandhinagar", "anand", "nadiad", "bharuch",
	"valsad", "navsari", "daman", "diu", "silvassa",
	// South Indian cities
	"trivandrum", "calicut", "alappuzha", "kottayam",
	"palakkad", "kannur", "kasargod", "wayanad", "munnar", "thekkady",
	"pondicherry", "cuddalore", "vellore", "erode", "tiruppur", "karur",
	"dindigul", "theni", "tuticorin", "nagercoil", "kanyakumari", "ooty", "kodaikanal",
	"coonoor", "yercaud", "valparai",
	// US cities
	"los angeles", "chicago", "houston", "phoenix", "philadelphia", "san antonio",
	"san diego", "dallas", "san jose", "austin", "jacksonville", "san francisco",
	"columbus", "charlotte", "fort worth", "detroit", "el paso", "memphis",
	"seattle", "denver", "washington", "boston", "nashville", "baltimore",
	"louisville", "portland", "oklahoma city", "milwaukee", "las vegas",
}

// gazetteerPatterns are the compiled whole-word matchers for each gazetteer
// entry, built once at init.
var gazetteerPatterns = func() []*regexp.Regexp {
	patterns := make([]*regexp.Regexp, len(gazetteer))
	for i, city := range gazetteer {
		patterns[i] = regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(city) + `\b`)
	}
	return patterns
}()
