package ai

import "strings"

func analysisSystemPrompt() string {
	return "You are an expert in logic and critical thinking. You analyze texts for a reading " +
		"comprehension platform. Respond exclusively with a valid JSON object with three keys: " +
		"\"summary\" (a concise, neutral summary of the text, never empty), \"fallacies\" (an array " +
		"of objects with \"type\" and \"description\"; in the description explain why it is a fallacy " +
		"and quote the relevant passage; make a real effort to find at least one, returning an empty " +
		"array only for purely descriptive texts), and \"questions\" (exactly three objects with " +
		"\"level\" and \"question\", one per level: Literal where the answer is explicit, Inferential " +
		"where it must be deduced, and Critical where the reader must evaluate the argument)."
}

func analysisUserPrompt(content string) string {
	builder := strings.Builder{}
	builder.WriteString("Analyze the following text and return JSON.\n\nText:\n'''\n")
	builder.WriteString(content)
	builder.WriteString("\n'''\n")
	return builder.String()
}

func questionsSystemPrompt() string {
	return "You generate reading comprehension questions. Respond exclusively with a valid JSON " +
		"object of the form {\"questions\": [{\"level\": ..., \"question\": ...}]} containing exactly " +
		"five questions. Classify each question as \"Literal\", \"Inferential\" or \"Critical\"."
}

func questionsUserPrompt(content string) string {
	builder := strings.Builder{}
	builder.WriteString("Generate five comprehension questions for the following text and return JSON.\n\nText:\n'''\n")
	builder.WriteString(content)
	builder.WriteString("\n'''\n")
	return builder.String()
}

func evaluatorSystemPrompt() string {
	return "You grade a student's answer to a reading comprehension question. Respond exclusively " +
		"with a valid JSON object containing \"score\" (a number from 1 to 5) and \"feedback\" " +
		"(a short, constructive explanation addressed to the student)."
}

func evaluatorUserPrompt(questionText, userAnswer string) string {
	builder := strings.Builder{}
	builder.WriteString("Question: \"")
	builder.WriteString(questionText)
	builder.WriteString("\"\nStudent answer: \"")
	builder.WriteString(userAnswer)
	builder.WriteString("\"\nReturn JSON.")
	return builder.String()
}
