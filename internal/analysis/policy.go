package analysis

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Lexicon is a three-tier keyword set. For mood the tiers are risk levels,
// for stress they are intensity levels.
type Lexicon struct {
	High   []string `yaml:"high"`
	Medium []string `yaml:"medium"`
	Low    []string `yaml:"low"`
}

type TierWeights struct {
	High   float64 `yaml:"high"`
	Medium float64 `yaml:"medium"`
	Low    float64 `yaml:"low"`
}

// Band maps every score at or above Min to a level. Bands are kept in
// descending Min order.
type Band struct {
	Min         float64 `yaml:"min"`
	Level       string  `yaml:"level"`
	Explanation string  `yaml:"explanation"`
	Class       string  `yaml:"class,omitempty"`
}

type MoodPolicy struct {
	Lexicon                Lexicon     `yaml:"lexicon"`
	Weights                TierWeights `yaml:"weights"`
	KeywordFactor          float64     `yaml:"keyword_factor"`
	PolarityFactor         float64     `yaml:"polarity_factor"`
	EmotionFactor          float64     `yaml:"emotion_factor"`
	SadnessWeight          float64     `yaml:"sadness_weight"`
	AngerWeight            float64     `yaml:"anger_weight"`
	FearWeight             float64     `yaml:"fear_weight"`
	NeutralThreshold       float64     `yaml:"neutral_threshold"`
	NeutralPolarityCeiling float64     `yaml:"neutral_polarity_ceiling"`
	NeutralFactor          float64     `yaml:"neutral_factor"`
	StressKeywordPenalty   float64     `yaml:"stress_keyword_penalty"`
	Divisor                float64     `yaml:"divisor"`
	Bands                  []Band      `yaml:"bands"`
}

type StressPolicy struct {
	Lexicon         Lexicon     `yaml:"lexicon"`
	Weights         TierWeights `yaml:"weights"`
	FearWeight      float64     `yaml:"fear_weight"`
	AngerWeight     float64     `yaml:"anger_weight"`
	SurpriseWeight  float64     `yaml:"surprise_weight"`
	PolarityPenalty float64     `yaml:"polarity_penalty"`
	Divisor         float64     `yaml:"divisor"`
	Bands           []Band      `yaml:"bands"`
}

// OverridePolicy short-circuits the classifier when any trigger phrase is
// present.
type OverridePolicy struct {
	Triggers []string           `yaml:"triggers"`
	Dominant string             `yaml:"dominant"`
	Profile  map[string]float64 `yaml:"profile"`
}

// FeelingBranch adds Label = base*Factor when any trigger matches. A branch
// without triggers always matches and acts as the fallback.
type FeelingBranch struct {
	Triggers []string `yaml:"triggers,omitempty"`
	Label    string   `yaml:"label"`
	Factor   float64  `yaml:"factor"`
}

type FeelingRule struct {
	Emotion  string          `yaml:"emotion"`
	Branches []FeelingBranch `yaml:"branches"`
}

type FeelingPolicy struct {
	Rules            []FeelingRule `yaml:"rules"`
	BaseEmotions     []string      `yaml:"base_emotions"`
	DropBaseEmotions bool          `yaml:"drop_base_emotions"`
}

type RecommendationMessages struct {
	Crisis    string `yaml:"crisis"`
	Grounding string `yaml:"grounding"`
	Workload  string `yaml:"workload"`
	Talk      string `yaml:"talk"`
	Walk      string `yaml:"walk"`
	Positive  string `yaml:"positive"`
	CheckIn   string `yaml:"check_in"`
}

type RecommendationPolicy struct {
	CrisisMoodMax      int                    `yaml:"crisis_mood_max"`
	GroundingStressMin int                    `yaml:"grounding_stress_min"`
	WorkloadStressMin  int                    `yaml:"workload_stress_min"`
	WorkloadMoodMin    int                    `yaml:"workload_mood_min"`
	WorkloadMoodMax    int                    `yaml:"workload_mood_max"`
	TalkMoodMin        int                    `yaml:"talk_mood_min"`
	TalkMoodMax        int                    `yaml:"talk_mood_max"`
	WalkStressMin      int                    `yaml:"walk_stress_min"`
	WalkStressMax      int                    `yaml:"walk_stress_max"`
	PositiveMoodMin    int                    `yaml:"positive_mood_min"`
	PositiveStressMax  int                    `yaml:"positive_stress_max"`
	Limit              int                    `yaml:"limit"`
	Messages           RecommendationMessages `yaml:"messages"`
}

// MaxRecommendations bounds the recommendation list whatever the policy says.
const MaxRecommendations = 3

// Policy holds every tunable of the scoring pipeline so retuning is a data
// change. A Policy is read-only once handed to an Analyzer.
type Policy struct {
	MinInputLength      int                  `yaml:"min_input_length"`
	ClassifierMaxLength int                  `yaml:"classifier_max_length"`
	Override            OverridePolicy       `yaml:"override"`
	Mood                MoodPolicy           `yaml:"mood"`
	Stress              StressPolicy         `yaml:"stress"`
	Feelings            FeelingPolicy        `yaml:"feelings"`
	Recommendations     RecommendationPolicy `yaml:"recommendations"`
}

func DefaultPolicy() *Policy {
	p := &Policy{
		MinInputLength:      10,
		ClassifierMaxLength: 1000,
		Override: OverridePolicy{
			Triggers: []string{"overwhelmed", "amount of work", "too much"},
			Dominant: "fear",
			Profile: map[string]float64{
				"fear":     85.0,
				"anger":    5.0,
				"sadness":  5.0,
				"neutral":  2.0,
				"surprise": 1.0,
				"joy":      1.0,
				"disgust":  1.0,
			},
		},
		Mood: MoodPolicy{
			Lexicon: Lexicon{
				High:   []string{"suicide", "kill myself", "end it all", "want to die", "better off dead", "harm myself", "no point living", "no reason to live"},
				Medium: []string{"hopeless", "empty", "numb", "cant go on", "cant cope", "worthless", "dont care anymore", "nothing matters"},
				Low:    []string{"sad", "unhappy", "down", "tired", "sleepy", "lonely", "alone", "miserable", "upset", "crying"},
			},
			Weights:                TierWeights{High: 100, Medium: 40, Low: 15},
			KeywordFactor:          0.3,
			PolarityFactor:         30,
			EmotionFactor:          0.8,
			SadnessWeight:          1.5,
			AngerWeight:            1.5,
			FearWeight:             0.7,
			NeutralThreshold:       50,
			NeutralPolarityCeiling: 0.5,
			NeutralFactor:          0.15,
			StressKeywordPenalty:   25,
			Divisor:                1.5,
			Bands: []Band{
				{Min: 80, Level: "GREAT MOOD", Explanation: "Your words suggest you are feeling upbeat and positive.", Class: "great-mood"},
				{Min: 60, Level: "GOOD MOOD", Explanation: "You seem to be in a good frame of mind overall.", Class: "good-mood"},
				{Min: 40, Level: "NEUTRAL", Explanation: "Your mood appears steady or mixed, neither high nor low.", Class: "neutral-mood"},
				{Min: 20, Level: "LOW MOOD", Explanation: "There are signs of low mood or sadness in what you shared.", Class: "low-mood"},
				{Min: 0, Level: "VERY LOW MOOD", Explanation: "Your words show signs of very low mood. Please consider reaching out for support.", Class: "very-low-mood"},
			},
		},
		Stress: StressPolicy{
			Lexicon: Lexicon{
				High:   []string{"overwhelmed", "cant handle", "breaking down", "too much pressure", "drowning", "panic", "burned out", "burnt out"},
				Medium: []string{"stressed", "anxious", "worried", "pressure", "nervous", "tense", "amount of work", "deadline", "cant sleep"},
				Low:    []string{"busy", "tired", "concerned", "apprehensive", "restless"},
			},
			Weights:         TierWeights{High: 60, Medium: 35, Low: 15},
			FearWeight:      0.9,
			AngerWeight:     0.5,
			SurpriseWeight:  0.3,
			PolarityPenalty: 15,
			Divisor:         1.7,
			Bands: []Band{
				{Min: 70, Level: "HIGH STRESS", Explanation: "High stress detected. Take immediate steps to relax."},
				{Min: 40, Level: "MODERATE STRESS", Explanation: "Moderate stress. Try mindfulness or rest."},
				{Min: 0, Level: "LOW STRESS", Explanation: "You appear calm and balanced."},
			},
		},
		Feelings: FeelingPolicy{
			Rules: []FeelingRule{
				{Emotion: "sadness", Branches: []FeelingBranch{
					{Triggers: []string{"lonely", "alone"}, Label: "lonely", Factor: 0.9},
					{Triggers: []string{"disappoint", "fed up", "not working"}, Label: "disappointed", Factor: 0.9},
					{Label: "despair", Factor: 0.7},
				}},
				{Emotion: "anger", Branches: []FeelingBranch{
					{Triggers: []string{"frustrat", "annoy", "irritat", "fed up"}, Label: "frustrated", Factor: 0.95},
					{Label: "mad", Factor: 0.8},
				}},
				{Emotion: "fear", Branches: []FeelingBranch{
					{Triggers: []string{"anxious", "anxiety", "worried", "nervous", "overwhelmed", "panic"}, Label: "anxious", Factor: 0.95},
					{Label: "scared", Factor: 0.8},
				}},
				{Emotion: "joy", Branches: []FeelingBranch{
					{Triggers: []string{"hope", "excited", "looking forward", "grateful"}, Label: "optimistic", Factor: 0.95},
					{Label: "peaceful", Factor: 0.7},
				}},
			},
			BaseEmotions:     []string{"sadness", "anger", "fear", "joy"},
			DropBaseEmotions: true,
		},
		Recommendations: RecommendationPolicy{
			CrisisMoodMax:      15,
			GroundingStressMin: 70,
			WorkloadStressMin:  50,
			WorkloadMoodMin:    40,
			WorkloadMoodMax:    70,
			TalkMoodMin:        15,
			TalkMoodMax:        35,
			WalkStressMin:      40,
			WalkStressMax:      70,
			PositiveMoodMin:    75,
			PositiveStressMax:  40,
			Limit:              3,
			Messages: RecommendationMessages{
				Crisis:    "If you are thinking about harming yourself, call or text 988 (US) or your local crisis line right now.",
				Grounding: "Try a grounding exercise: slow 4-7-8 breathing, or name five things you can see around you.",
				Workload:  "Break your workload into smaller tasks and put short breaks on your schedule.",
				Talk:      "Talk to someone you trust about how you feel, or reach out to a counselor.",
				Walk:      "Step away for a short walk or a stretch break to reset.",
				Positive:  "You seem to be in a good place. Keep up the habits that got you here.",
				CheckIn:   "Keep checking in with yourself and stick with your self-care routine.",
			},
		},
	}
	p.normalize()
	return p
}

// LoadPolicyFile reads a YAML policy. Fields missing from the file keep their
// default values. An override profile in the file replaces the default one
// as a whole.
func LoadPolicyFile(path string) (*Policy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scoring policy: %w", err)
	}

	var profile struct {
		Override struct {
			Profile map[string]float64 `yaml:"profile"`
		} `yaml:"override"`
	}
	if err := yaml.Unmarshal(data, &profile); err != nil {
		return nil, fmt.Errorf("failed to parse scoring policy: %w", err)
	}

	p := DefaultPolicy()
	if profile.Override.Profile != nil {
		p.Override.Profile = nil
	}
	if err := yaml.Unmarshal(data, p); err != nil {
		return nil, fmt.Errorf("failed to parse scoring policy: %w", err)
	}
	p.normalize()

	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Policy) Validate() error {
	var errs []error

	if p.MinInputLength < 1 {
		errs = append(errs, errors.New("min_input_length must be positive"))
	}
	if p.ClassifierMaxLength < 1 {
		errs = append(errs, errors.New("classifier_max_length must be positive"))
	}
	if p.Mood.Divisor <= 0 {
		errs = append(errs, errors.New("mood.divisor must be positive"))
	}
	if p.Stress.Divisor <= 0 {
		errs = append(errs, errors.New("stress.divisor must be positive"))
	}
	if err := validateLexicon("mood", p.Mood.Lexicon); err != nil {
		errs = append(errs, err)
	}
	if err := validateLexicon("stress", p.Stress.Lexicon); err != nil {
		errs = append(errs, err)
	}
	if err := validateBands("mood", p.Mood.Bands); err != nil {
		errs = append(errs, err)
	}
	if err := validateBands("stress", p.Stress.Bands); err != nil {
		errs = append(errs, err)
	}
	if _, ok := p.Override.Profile[p.Override.Dominant]; len(p.Override.Triggers) > 0 && !ok {
		errs = append(errs, fmt.Errorf("override.dominant %q missing from override.profile", p.Override.Dominant))
	}
	if p.Recommendations.Limit < 1 || p.Recommendations.Limit > MaxRecommendations {
		errs = append(errs, fmt.Errorf("recommendations.limit must be between 1 and %d", MaxRecommendations))
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid scoring policy: %w", errors.Join(errs...))
	}
	return nil
}

func validateLexicon(name string, l Lexicon) error {
	if len(l.High)+len(l.Medium)+len(l.Low) == 0 {
		return fmt.Errorf("%s lexicon is empty", name)
	}
	return nil
}

func validateBands(name string, bands []Band) error {
	if len(bands) == 0 {
		return fmt.Errorf("%s bands are empty", name)
	}
	for i := 1; i < len(bands); i++ {
		if bands[i].Min >= bands[i-1].Min {
			return fmt.Errorf("%s bands must be in descending order of min", name)
		}
	}
	return nil
}

// normalize runs every phrase through NormalizeText so lexicon entries and
// request text agree on one spelling.
func (p *Policy) normalize() {
	normalizeAll(p.Override.Triggers)
	for _, l := range []*Lexicon{&p.Mood.Lexicon, &p.Stress.Lexicon} {
		normalizeAll(l.High)
		normalizeAll(l.Medium)
		normalizeAll(l.Low)
	}
	for i := range p.Feelings.Rules {
		for j := range p.Feelings.Rules[i].Branches {
			normalizeAll(p.Feelings.Rules[i].Branches[j].Triggers)
		}
	}
}

func normalizeAll(phrases []string) {
	for i, phrase := range phrases {
		phrases[i] = NormalizeText(phrase)
	}
}
