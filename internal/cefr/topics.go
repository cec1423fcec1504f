package cefr

import "math/rand/v2"

// topicPools maps each level to topics whose register suits that level.
// Lower levels get concrete everyday topics; higher levels get abstract ones.
var topicPools = map[Level][]string{
	A1: {
		"family", "food", "colors", "animals", "my house",
		"daily routine", "the weather", "school", "clothes", "numbers",
	},
	A2: {
		"travel", "shopping", "hobbies", "sports", "my town",
		"holidays", "jobs", "transport", "music", "friends",
	},
	B1: {
		"travel", "technology", "health", "the environment", "education",
		"work life", "cooking", "movies", "social media", "city life",
	},
	B2: {
		"climate change", "artificial intelligence", "cultural traditions",
		"urban planning", "career changes", "scientific discoveries",
		"media literacy", "globalization", "volunteering", "public health",
	},
	C1: {
		"economic inequality", "bioethics", "linguistic diversity",
		"renewable energy policy", "art criticism", "migration",
		"privacy in the digital age", "space exploration", "behavioral economics",
	},
	C2: {
		"epistemology", "postcolonial literature", "quantum computing ethics",
		"macroeconomic policy", "philosophy of mind", "judicial independence",
		"semiotics", "historiography",
	},
}

// Topics returns the topic pool for a level.
func Topics(l Level) []string {
	return topicPools[l]
}

// RandomTopic picks a topic from the level's pool using the given source.
func RandomTopic(l Level, rng *rand.Rand) string {
	pool := topicPools[l]
	if len(pool) == 0 {
		return "everyday life"
	}
	return pool[rng.IntN(len(pool))]
}
