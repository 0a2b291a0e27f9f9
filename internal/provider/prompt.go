package provider

import (
	"fmt"
	"strings"
)

// systemPrompt primes the generative providers for the fact-checking
// role.
const systemPrompt = "You are an expert fact-checker and misinformation analyst. Analyze news articles for credibility, bias, and potential misinformation."

// BuildPrompt constructs the instructional prompt shared by the
// generative providers. Title and content are embedded verbatim; the
// model is asked for a single JSON object so the adapters can extract
// and parse it.
func BuildPrompt(title, content string) string {
	return strings.TrimSpace(fmt.Sprintf(`Analyze this news article for credibility, bias, and potential misinformation.

Title: %s
Content: %s

Provide your analysis in the following JSON format:
{
    "label": "Trusted|Biased|Fake",
    "confidence": 0.85,
    "reasoning": "Brief explanation of your assessment",
    "keywords": ["keyword1", "keyword2", "keyword3"],
    "red_flags": ["flag1", "flag2"],
    "credibility_indicators": ["indicator1", "indicator2"]
}

Consider these factors:
1. Source credibility and bias
2. Factual accuracy and verifiability
3. Emotional language and sensationalism
4. Logical consistency
5. Supporting evidence quality
6. Potential misinformation patterns

Respond with ONLY the JSON object, no additional text.`, title, content))
}
