package config

// Option is one selectable game, tone or provider.
type Option struct {
	ID    string
	Label string
	Hint  string
}

var Games = []Option{
	{ID: "905.z5", Label: "9:05 by Adam Cadre"},
	{ID: "lostpig.z8", Label: "Lost Pig by Admiral Jota"},
	{ID: "zork1.z5", Label: "Zork I"},
}

var Tones = []Option{
	{ID: "pratchett", Label: "pratchett: cheeky, sarcastic"},
	{ID: "gumshoe", Label: "gumshoe: hard-boiled noir"},
	{ID: "legal", Label: "legal: formal, lawyer speak"},
	{ID: "spaceopera", Label: "spaceopera: sci-fi melodrama"},
	{ID: "original", Label: "original: keep original tone"},
	{ID: "none", Label: "- no rewrite -"},
}

var Providers = []Option{
	{
		ID:    "anthropic",
		Label: "Claude 3.5 Sonnet",
		Hint:  "The deployed endpoint needs a valid ANTHROPIC_API_KEY in its .env file.",
	},
	{
		ID:    "openai",
		Label: "GPT-4o-mini",
		Hint:  "The deployed endpoint needs a valid OPENAI_API_KEY in its .env file.",
	},
	{ID: "hosted", Label: "Hosted"},
}

func Lookup(options []Option, id string) (Option, bool) {
	for _, option := range options {
		if option.ID == id {
			return option, true
		}
	}
	return Option{}, false
}

// IDs returns the option ids in catalog order.
func IDs(options []Option) []string {
	out := make([]string, 0, len(options))
	for _, option := range options {
		out = append(out, option.ID)
	}
	return out
}
