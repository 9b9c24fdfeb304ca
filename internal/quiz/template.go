package quiz

import "encoding/json"

// templateQuestions is the fixed two-item example exported for users who
// want to hand-write an import file. One question of each kind documents
// the expected shape.
var templateQuestions = []Question{
	{
		ID:     "mcq1",
		Kind:   KindMultipleChoice,
		Prompt: "When does React's `useEffect` run by default?",
		Options: []string{
			"Only on mount",
			"Only on update",
			"After every render",
			"Only on unmount",
		},
		CorrectOptionIndex: 2,
		Explanation:        "`useEffect` runs after every completed render unless a dependency array is provided.",
	},
	{
		ID:          "qa1",
		Kind:        KindOpenEnded,
		Prompt:      "Explain closures in JavaScript.",
		ModelAnswer: "A closure is the combination of a function and references to its surrounding lexical environment.",
	},
}

// Template renders the import template document.
func Template() ([]byte, error) {
	return json.MarshalIndent(templateQuestions, "", "  ")
}
