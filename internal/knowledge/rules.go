package knowledge

import "github.com/Conceptual-Machines/echo-api/internal/models"

// Rule is a static piece of advice gated by keyword or phrase triggers.
// A keyword containing a space is matched as a phrase.
type Rule struct {
	Keywords []string `json:"keywords"`
	Advice   string   `json:"advice"`
}

var lyricsRules = []Rule{
	{Keywords: []string{"message", "theme", "meaning", "what is it about"}, Advice: "Focus on ONE clear core message. Avoid mixing unrelated ideas."},
	{Keywords: []string{"emotion", "feeling", "sad", "happy", "angry", "nostalgic"}, Advice: "Show emotion through moments/images, not by naming the emotion."},
	{Keywords: []string{"pov", "perspective", "narrator", "i", "you", "he", "she"}, Advice: "Pick ONE point of view (I/you/he) and keep it consistent."},
	{Keywords: []string{"imagery", "visual", "scene", "picture", "describe"}, Advice: "Prefer concrete images/actions over abstract statements."},
	{Keywords: []string{"details", "specific", "real", "story"}, Advice: "Add specific details (place/time/object) to make it believable."},
	{Keywords: []string{"metaphor", "symbol", "like", "as if"}, Advice: "Metaphors should be easy to visualize and stay consistent."},
	{Keywords: []string{"cliche", "generic", "cringe"}, Advice: "Avoid clichés unless you personalize or flip them."},
	{Keywords: []string{"flow", "rhythm", "cadence"}, Advice: "Keep line length similar within the same section for better flow."},
	{Keywords: []string{"syllables", "too long", "hard to sing"}, Advice: "If it’s hard to sing: reduce syllables, simplify words, shorten lines."},
	{Keywords: []string{"spoken", "natural", "say it"}, Advice: "Read it out loud—lyrics should sound natural when spoken."},
	{Keywords: []string{"rhyme", "rhymes"}, Advice: "Rhyme should support clarity—don’t force awkward words."},
	{Keywords: []string{"near rhyme", "imperfect rhyme", "slant rhyme"}, Advice: "Near-rhymes often sound more modern and natural than perfect rhymes."},
	{Keywords: []string{"repetition", "repeat", "again"}, Advice: "Use repetition intentionally to strengthen hooks and emotion."},
	{Keywords: []string{"chorus", "hook", "refrain"}, Advice: "Chorus = simplest words + main message + a repeatable hook."},
	{Keywords: []string{"title", "name of the song"}, Advice: "Strong titles often appear in the chorus hook."},
	{Keywords: []string{"catchy", "memorable"}, Advice: "A hook is short, repeatable, and emotionally direct."},
	{Keywords: []string{"verse", "story", "details"}, Advice: "Verses should add NEW details; don’t just repeat the chorus idea."},
	{Keywords: []string{"bridge", "switch", "change up"}, Advice: "Bridge adds contrast (new angle/emotion/imagery), then returns to chorus."},
	{Keywords: []string{"progress", "develop", "advance"}, Advice: "Each section should move the song forward (new info or new feeling)."},
	{Keywords: []string{"edit", "rewrite", "improve"}, Advice: "Edit in small steps: change ONE thing at a time (image, rhyme, or rhythm)."},
	{Keywords: []string{"clarity", "confusing", "doesn't make sense"}, Advice: "If intent is unclear, clarify the message before rewriting lines."},
}

var melodyRules = []Rule{
	{Keywords: []string{"tempo", "bpm", "speed", "fast", "slow"}, Advice: "Tempo should support the emotional intent (sad=slower, hype=faster)."},
	{Keywords: []string{"groove", "rhythm", "beat", "swing"}, Advice: "Pick one groove and keep it consistent across sections."},
	{Keywords: []string{"energy", "dynamic", "build"}, Advice: "Build energy into the chorus (more drums, wider melody, stronger bass)."},
	{Keywords: []string{"contrast", "different", "switch"}, Advice: "Contrast between sections keeps listeners engaged (texture/beat/range)."},
	{Keywords: []string{"arc", "journey", "progression"}, Advice: "Think of the song as an emotional arc, not a static loop."},
	{Keywords: []string{"melody", "shape", "range", "higher"}, Advice: "Choruses usually lift: higher notes + longer held tones on the hook."},
	{Keywords: []string{"hook melody", "catchy melody", "motif"}, Advice: "Strong melodic hooks are short and repeatable (motif)."},
	{Keywords: []string{"instruments", "arrangement", "production"}, Advice: "Arrange to leave space for vocals; avoid clutter in the same frequency range."},
	{Keywords: []string{"minimal", "sparse", "dense", "full"}, Advice: "Sparse = intimate emotion; dense = impact/energy."},
	{Keywords: []string{"vocal", "delivery", "singing"}, Advice: "Vocal delivery should match the lyric emotion (soft/intimate vs powerful)."},
	{Keywords: []string{"intimate", "powerful"}, Advice: "Intimate: softer dynamics; Powerful: stronger drums + more lift in chorus."},
	{Keywords: []string{"genre", "style"}, Advice: "Melody/production choices should fit genre expectations unless intentionally breaking them."},
	{Keywords: []string{"reference", "artist", "like", "similar to"}, Advice: "Reference songs/artists help lock tempo, groove, and instrument palette."},
	{Keywords: []string{"theory", "chords", "key"}, Advice: "Avoid heavy theory—describe feel, contour, and instruments in simple language."},
	{Keywords: []string{"options", "choose", "which"}, Advice: "Offer 2–3 options; user chooses the final direction."},
}

var defaultAdvice = map[models.Mode][]string{
	models.ModeLyrics: {
		"Keep it simple and singable. Prefer concrete images.",
		"Chorus = main message + repeatable hook (title helps).",
	},
	models.ModeMelody: {
		"Match tempo/groove to mood; keep it consistent.",
		"Chorus should lift (bigger energy + wider melody range).",
	},
}

// RulesFor returns the rule set of a mode, nil for an unknown mode
func RulesFor(mode models.Mode) []Rule {
	switch mode {
	case models.ModeLyrics:
		return lyricsRules
	case models.ModeMelody:
		return melodyRules
	default:
		return nil
	}
}

// DefaultRules returns the generic fallback advice of a mode
func DefaultRules(mode models.Mode) []Rule {
	advice := defaultAdvice[mode]
	rules := make([]Rule, 0, len(advice))
	for _, a := range advice {
		rules = append(rules, Rule{Keywords: []string{}, Advice: a})
	}
	return rules
}
