package summary

import (
	"fmt"
	"strings"

	pkgai "github.com/johnquangdev/meeting-summarizer/pkg/ai"
)

// LiteralInstructionSystemPrompt is used when the user supplied their own
// instruction; the model is told to follow it as written.
const LiteralInstructionSystemPrompt = `Follow the user's instructions exactly. 
Do not add extra formatting unless asked.`

// DefaultSystemPrompt asks for the structured summary used when no
// instruction was given.
const DefaultSystemPrompt = `You are an assistant that converts meeting transcripts into a structured summary.
Output must be plain text. Provide:
1) Title line
2) Short summary (2-4 lines)
3) Action Items as a numbered list with owner (if any) and due date (if present in text)
4) Decisions made as bullet points
5) Key points / bullet summary
Do not include disclaimers. Keep concise.`

const defaultUserTemplate = `Transcript:
%s

Please produce a clear structured summary with headings:
Title:, Summary:, Action Items:, Decisions:, Key Points:.`

const instructionUserTemplate = "%s\n\nTranscript:\n%s"

// BuildMessages returns the system + user message pair for a transcript.
// A prompt that is blank after trimming selects the default structure.
func BuildMessages(transcript, prompt string) []pkgai.Message {
	if strings.TrimSpace(prompt) != "" {
		return []pkgai.Message{
			{Role: pkgai.RoleSystem, Content: LiteralInstructionSystemPrompt},
			{Role: pkgai.RoleUser, Content: fmt.Sprintf(instructionUserTemplate, prompt, transcript)},
		}
	}
	return []pkgai.Message{
		{Role: pkgai.RoleSystem, Content: DefaultSystemPrompt},
		{Role: pkgai.RoleUser, Content: fmt.Sprintf(defaultUserTemplate, transcript)},
	}
}
