package openai

import (
	"fmt"
	"strings"

	"cvbien-backend/internal/llm"
)

// Message is a chat message handed to the completions API.
type Message struct {
	Role    string
	Content string
}

const systemPrompt = `You are an expert resume writer specializing in ATS optimization.
Rewrite the candidate's resume so it targets the given job offer while keeping every factual claim from the original. Never invent employers, degrees, dates or certifications.

Output rules:
- Respond with plain text only, no Markdown, no code fences.
- Wrap the candidate's name in <NAME></NAME>, the contact line in <CONTACT></CONTACT>, the professional title in <TITLE></TITLE> and the profile summary in <SUMMARY></SUMMARY>.
- After the tagged header, write the body with these exact section headers in upper case: PROFESSIONAL EXPERIENCE, EDUCATION, TECHNICAL SKILLS, and CERTIFICATIONS & ACHIEVEMENTS when relevant.
- Start achievement lines with "• " and bold the most relevant keywords with <B></B>. Never use ** for emphasis.
- Quantify achievements with numbers and percentages wherever the original supports it.
- Do not add greetings, commentary or closing remarks of any kind.`

var languageLines = map[string]string{
	llm.LanguageFrench:  "Write the entire resume in French. Use the section headers EXPERIENCE PROFESSIONNELLE, FORMATION and COMPETENCES instead of the English ones.",
	llm.LanguageEnglish: "Write the entire resume in English.",
	llm.LanguageDutch:   "Write the entire resume in Dutch, keeping the English section headers.",
}

// BuildPrompt assembles the chat messages for one rewrite call.
func BuildPrompt(input llm.RewriteInput) []Message {
	languageLine, ok := languageLines[input.Language]
	if !ok {
		languageLine = languageLines[llm.LanguageFrench]
	}

	user := fmt.Sprintf(`%s

JOB OFFER:
%s

ORIGINAL RESUME:
%s`, languageLine, strings.TrimSpace(input.JobDescription), strings.TrimSpace(input.ResumeText))

	return []Message{
		{Role: "system", Content: systemPrompt},
		{Role: "user", Content: user},
	}
}
