package heuristics

// Phrase and word lists are fixed, hand-tuned evidence tables. Matching
// semantics differ per list: phrases are case-insensitive substring
// matches against the whole document, vocabulary and slang are whole-word
// matches against the tokenized document.

// formulaicPhrases are filler transitions and marketing buzzwords that
// LLMs reach for far more often than people writing casual posts.
var formulaicPhrases = []string{
	"in today's world",
	"it's important to note",
	"it is important to note",
	"in conclusion",
	"delve into",
	"dive into",
	"let's explore",
	"game changer",
	"game-changer",
	"at the end of the day",
	"leverage",
	"navigate the complexities",
	"in this article",
	"here's the thing",
	"without further ado",
	"it's worth noting",
	"that being said",
	"having said that",
	"comprehensive guide",
	"revolutionize",
	"cutting-edge",
	"seamlessly",
	"furthermore",
	"moreover",
	"in the realm of",
	"paradigm shift",
	"holistic approach",
	"synergy",
	"thought leader",
	"value proposition",
	"best practices",
	"circle back",
	"unpack this",
	"at its core",
	"it goes without saying",
}

// aiVocabulary are standalone words heavily over-represented in model
// output. Matched whole-word so "delve" does not fire on "delved into
// the archives" twice via substring overlap with the phrase list.
var aiVocabulary = []string{
	"plethora",
	"delve",
	"delves",
	"delving",
	"unleash",
	"unlock",
	"harness",
	"paradigm",
	"synergy",
	"holistic",
	"nuanced",
	"robust",
	"transformative",
	"tapestry",
	"bustling",
	"myriad",
	"pivotal",
	"confluence",
	"trajectory",
	"multifaceted",
	"supercharge",
	"empower",
	"elevate",
	"groundbreaking",
	"monumental",
	"unparalleled",
}

// slangWords are whole-word informality markers that models almost never
// produce unprompted.
var slangWords = []string{
	"lol",
	"lmao",
	"lmfao",
	"tbh",
	"smh",
	"fr",
	"ngl",
	"omg",
	"wtf",
	"imo",
	"imho",
	"idk",
	"rn",
	"bruh",
	"lowkey",
	"highkey",
	"deadass",
	"yikes",
	"welp",
}

// casualContractions are matched as substrings: they commonly appear
// glued to other words ("gonna've" and friends) and inside typos.
var casualContractions = []string{
	"gonna",
	"wanna",
	"gotta",
	"kinda",
	"sorta",
	"dunno",
	"ain't",
	"y'all",
	"tryna",
	"cuz",
}

// promotionalPhrases are call-to-action and motivational-post templates
// typical of engagement-bait content.
var promotionalPhrases = []string{
	"follow for more",
	"like and share",
	"like and subscribe",
	"drop a comment",
	"link in bio",
	"don't miss out",
	"tag someone",
	"turn on notifications",
	"double tap",
	"smash that like",
	"sign up today",
	"limited time",
	"act now",
	"join thousands",
	"what are you waiting for",
	"hit the bell",
	"share this post",
	"save this post",
	"you won't believe",
	"your future self will thank you",
	"rise and grind",
	"let that sink in",
	"agree or disagree",
	"thoughts?",
}
