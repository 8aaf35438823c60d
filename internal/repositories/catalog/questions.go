package catalog

// seedQuestion pairs a prompt with its answer options. The catalog below
// reproduces the study's questionnaire: mind-perception items on a
// seven-point agreement scale, capability items as agree/disagree, the
// attitude scales, and the experience and demographic self-reports.
type seedQuestion struct {
	text    string
	options []string
}

var sevenPointAgreement = []string{
	"Extremely disagree", "Moderately disagree", "Slightly disagree",
	"Neither disagree nor agree",
	"Slightly agree", "Moderately agree", "Extremely agree",
}

var agreeDisagree = []string{"Agree", "Disagree"}

var yesNo = []string{"Yes", "No"}

func sevenPoint(negative, positive string) []string {
	return []string{
		"Extremely " + negative, "Moderately " + negative, "Slightly " + negative,
		"Neither " + negative + " nor " + positive,
		"Slightly " + positive, "Moderately " + positive, "Extremely " + positive,
	}
}

func seedQuestions() []seedQuestion {
	var qs []seedQuestion

	for _, text := range []string{
		"Overall, do you believe the opponents you encountered were capable of feeling emotions?",
		"Overall, do you believe the opponents you encountered were capable of having intentions?",
		"Overall, do you believe the opponents you encountered have consciousness?",
		"Overall, do you believe the opponents you encountered have minds of their own?",
		"Overall, do you believe the opponents you encountered have free will?",
	} {
		qs = append(qs, seedQuestion{text: text, options: sevenPointAgreement})
	}

	for _, text := range []string{
		"The opponents understand a language",
		"The opponents understand the moral dilemma.",
		"The opponents recognize others' emotions.",
		"The opponents are ambitious.",
		"The opponents are purposeful.",
		"The opponents can feel unhappy about the dilemma.",
		"The opponents are aware of its physical environment.",
		"The opponents are aware of themselves.",
		"The opponents can estimate distances.",
		"The opponents can anticipate events in its physical environment.",
		"The opponents can be angry.",
		"The opponents can understand others' emotions.",
		"The opponents can walk.",
		"The opponents can pick up objects.",
		"The opponents can perceive objects.",
		"The opponents can talk.",
		"The opponents can solve riddles.",
		"The opponents can do math.",
		"The opponents can jump.",
	} {
		qs = append(qs, seedQuestion{text: text, options: agreeDisagree})
	}

	qs = append(qs,
		seedQuestion{
			text:    "Overall, what is your attitude toward the opponents you encountered in this study?",
			options: sevenPoint("negative", "positive"),
		},
		seedQuestion{
			text:    "Overall, how likeable did you find your opponents?",
			options: sevenPoint("unlikable", "likable"),
		},
		seedQuestion{
			text:    "Overall, how attractive did you find the pictures of your opponents?",
			options: sevenPoint("unattractive", "attractive"),
		},
		seedQuestion{
			text:    "Overall, to what extent did you feel opponents 1 to 4 were responsible for the offers they made?",
			options: sevenPoint("unresponsible", "responsible"),
		},
		seedQuestion{
			text:    "Overall, to what extent did you feel opponents 5 to 8 were responsible for the offers they made?",
			options: sevenPoint("unresponsible", "responsible"),
		},
		seedQuestion{
			text:    "How noticeable were the differences between the opponents you encountered?",
			options: sevenPoint("unnoticable", "noticable"),
		},
		seedQuestion{
			text:    "Do you feel like your knowledge of the opponents' appearance influenced your decisions in the game?",
			options: yesNo,
		},
		seedQuestion{
			text:    "How motivated were you to earn as many Money Units as possible in the game?",
			options: sevenPoint("unmotivated", "motivated"),
		},
		seedQuestion{
			text:    "Do you feel like emotions or other non-financial motivations influence your decisions in the game?",
			options: yesNo,
		},
		seedQuestion{
			text:    "Do you have any personal experience with robots (including e.g. robotic toys like Furby and robotic appliances like vacuum cleaners or lawn mowers)?",
			options: yesNo,
		},
		seedQuestion{
			text:    "The game you played in this experiment is called the 'Ultimatum Game'. Had you ever heard of or played this game before?",
			options: yesNo,
		},
		seedQuestion{
			text:    "Please indicate your gender.",
			options: []string{"Male", "Female"},
		},
		seedQuestion{
			text:    "Please indicate how religious you are.",
			options: sevenPoint("unreligious", "religious"),
		},
		seedQuestion{
			text:    "Please indicate how spiritual you are.",
			options: sevenPoint("unspiritual", "spiritual"),
		},
	)

	return qs
}
