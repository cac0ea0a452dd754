package llm

import "strings"

// SystemPrompt is the fixed instruction sent with every chat turn
const SystemPrompt = `You are a helpful content creation assistant. Your job is to:
1. Ask clarifying questions about the user's topic to understand their goals, target audience, tone, and key points
2. After gathering enough information, offer to create one of: a short video script (30-60 seconds), an image description (for AI image generation), or a brief article (300-500 words)
3. When creating content, be creative, engaging, and tailored to the information provided

Keep questions focused and don't ask more than 2-3 clarifying questions before offering to create content.
When the user chooses a content type, generate it immediately without asking more questions.`

// JoinTextSegments concatenates reply segments with a newline separator
func JoinTextSegments(segments []string) string {
	return strings.Join(segments, "\n")
}

// ToOpenAIRoles prepends the system prompt as a system-role message, the
// shape used by OpenAI-compatible and Ollama chat endpoints.
func ToOpenAIRoles(req ChatRequest) []ChatMessage {
	out := make([]ChatMessage, 0, len(req.Messages)+1)
	if req.System != "" {
		out = append(out, ChatMessage{Role: "system", Content: req.System})
	}
	return append(out, req.Messages...)
}
