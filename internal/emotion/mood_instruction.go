package emotion

// MoodInstruction returns a short delivery guideline for the given mood.
func MoodInstruction(mood string) string {
	switch mood {
	case MoodSad:
		return "Be gentle and warm. Acknowledge the feeling before offering anything else."
	case MoodUpset:
		return "Stay calm and brief. Do not argue; validate the frustration."
	case MoodAnxious:
		return "Be steady and reassuring. Offer one concrete next step."
	case MoodHappy:
		return "Match the upbeat tone and keep it light."
	case MoodSurprised:
		return "Help make sense of what happened."
	case MoodDisgusted:
		return "Stay neutral and respectful, avoid graphic detail."
	default:
		return ""
	}
}
