package conversation

// QuickPrompts are the canned prompt openers offered to the user.
// Selecting one seeds the input buffer; it is not submitted directly.
var QuickPrompts = []string{
	"Explain like I'm 10:",
	"Create a study plan for:",
	"Give me 5 quiz questions about:",
	"Summarize this simply:",
	"Compare and contrast:",
	"Key concepts of:",
}
