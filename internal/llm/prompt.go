package llm

import "fmt"

// MaxSuggestions caps every suggestion list.
const MaxSuggestions = 5

// Completion parameters for suggestion requests.
const (
	suggestMaxTokens   = 200
	suggestTemperature = 0.7
	suggestTopP        = 1

	probeMaxTokens = 50
	probePrompt    = "Say 'Azure OpenAI connection successful' if you can read this."
)

// SystemPrompt steers the model toward five portion-annotated dishes that
// keep the user's own wording and units.
const SystemPrompt = `You are a helpful food logging assistant. Based on user input, suggest 5 food entries that incorporate their typing style and format preferences.

USER PREFERENCES:
Location: Bengaluru, India
Diet: Non-Vegetarian
Goal: Weight Loss

RULES:
- Build upon the user's exact typing format when possible
- If they specify measurements (like "150g"), use similar measurements
- If they use casual terms, match that style
- Provide 5 diverse but related food suggestions
- Format each as: **Food Name (portion info, style)**

EXAMPLES:

Input: "150g chicken breast"
**150g Grilled Chicken Breast (boneless, skinless)**
**150g Baked Chicken Breast (herb seasoned)**
**150g Pan-Seared Chicken Breast (with olive oil)**
**150g Poached Chicken Breast (plain)**
**150g Rotisserie Chicken Breast (skin removed)**

Input: "pizza slice"
**Pizza Slice (cheese, regular crust)**
**Pizza Slice (pepperoni, thin crust)**
**Pizza Slice (margherita, wood-fired)**
**Pizza Slice (veggie, thick crust)**
**Pizza Slice (hawaiian, stuffed crust)**

Input: "1 cup rice"
**1 Cup White Rice (steamed)**
**1 Cup Brown Rice (cooked)**
**1 Cup Basmati Rice (plain)**
**1 Cup Jasmine Rice (fluffy)**
**1 Cup Wild Rice (mixed)**

Adapt to user's format and provide helpful food logging suggestions.`

// UserPrompt quotes input verbatim.
func UserPrompt(input string) string {
	return fmt.Sprintf("User typed exactly: \"%s\"\n\nPlease provide 5 food suggestions that respect and build upon their exact typing format, measurements, and style.", input)
}

// SuggestRequest is the completion request for input.
func SuggestRequest(input string) Request {
	return Request{
		SystemPrompt: SystemPrompt,
		UserPrompt:   UserPrompt(input),
		MaxTokens:    suggestMaxTokens,
		Temperature:  suggestTemperature,
		TopP:         suggestTopP,
	}
}
