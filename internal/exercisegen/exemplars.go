package exercisegen

import "github.com/rgilks/comprehendo-sub000/internal/cefr"

// Exemplar is a worked "good question / bad question" pair shown to the
// model. The bad example demonstrates the most common failure at that
// level: a question answerable without reading the passage.
type Exemplar struct {
	Good    string
	GoodWhy string
	Bad     string
	BadWhy  string
}

var exemplars = map[cefr.Level]Exemplar{
	cefr.A1: {
		Good:    `Passage about a red cat: "What color is the cat in the text?"`,
		GoodWhy: "Answerable only from the passage, using basic vocabulary.",
		Bad:     `"What do cats usually eat?"`,
		BadWhy:  "General knowledge; the passage is not needed to answer.",
	},
	cefr.A2: {
		Good:    `Passage about a market visit: "What did Maria buy at the market?"`,
		GoodWhy: "Requires locating a specific detail stated in the passage.",
		Bad:     `"Where can you usually buy vegetables?"`,
		BadWhy:  "Answerable from everyday experience without the passage.",
	},
	cefr.B1: {
		Good:    `Passage about a delayed trip: "Why did the narrator miss the connecting train?"`,
		GoodWhy: "Requires connecting a cause mentioned early with an effect later in the passage.",
		Bad:     `"Is travelling by train better than flying?"`,
		BadWhy:  "Opinion question with no basis in the passage.",
	},
	cefr.B2: {
		Good:    `Passage contrasting two recycling schemes: "What advantage of the second scheme does the author emphasise?"`,
		GoodWhy: "Requires distinguishing the author's emphasis from details merely mentioned.",
		Bad:     `"What is recycling?"`,
		BadWhy:  "Definitional; no comprehension of this passage required.",
	},
	cefr.C1: {
		Good:    `Passage on urban policy: "What does the author imply about the council's motives?"`,
		GoodWhy: "Tests inference of implied meaning rather than literal retrieval.",
		Bad:     `"Do you agree with the council's decision?"`,
		BadWhy:  "Invites opinion; untestable against the passage.",
	},
	cefr.C2: {
		Good:    `Essay passage: "How does the rhetorical shift in the final paragraph qualify the argument made earlier?"`,
		GoodWhy: "Tests grasp of argumentative structure and register.",
		Bad:     `"What is the main topic of the text?"`,
		BadWhy:  "Answerable from a skim; trivial at this level.",
	},
}

// ExemplarFor returns the worked good/bad pair for a level.
func ExemplarFor(l cefr.Level) Exemplar {
	return exemplars[l]
}
